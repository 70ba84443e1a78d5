package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/leadscout/internal/domain"
)

// ErrLeadNotFound is returned when a lead lookup matches nothing.
var ErrLeadNotFound = errors.New("lead not found")

// LeadsRepository handles database operations for qualified leads.
type LeadsRepository struct {
	db *sqlx.DB
}

// NewLeadsRepository creates a new leads repository.
func NewLeadsRepository(db *sqlx.DB) *LeadsRepository {
	return &LeadsRepository{db: db}
}

// LeadFilter narrows List results. Zero values mean no constraint.
type LeadFilter struct {
	Platform  domain.Platform
	MinScore  int
	WithEmail bool
	Limit     int
	Offset    int
}

// Promote upserts a qualified lead and clears any standing rejection for
// the same account in one transaction. A previously rejected account that
// now qualifies must not stay in both tables.
func (r *LeadsRepository) Promote(ctx context.Context, lead *domain.Lead) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin promote transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.upsert(ctx, tx, lead); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rejections WHERE platform = $1 AND username = $2`,
		lead.Platform, lead.Username,
	); err != nil {
		return fmt.Errorf("failed to clear rejection for promoted lead: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit promote transaction: %w", err)
	}
	return nil
}

func (r *LeadsRepository) upsert(ctx context.Context, tx *sqlx.Tx, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (
			platform, username, display_name, bio, follower_count,
			following_count, media_count, is_verified, is_business, category,
			external_url, city, score, matched_signals, engagement_score,
			engagement_status, email, email_source, phone, source,
			discovered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (platform, username) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			follower_count = EXCLUDED.follower_count,
			following_count = EXCLUDED.following_count,
			media_count = EXCLUDED.media_count,
			is_verified = EXCLUDED.is_verified,
			is_business = EXCLUDED.is_business,
			category = EXCLUDED.category,
			external_url = EXCLUDED.external_url,
			city = EXCLUDED.city,
			score = EXCLUDED.score,
			matched_signals = EXCLUDED.matched_signals,
			engagement_score = EXCLUDED.engagement_score,
			engagement_status = EXCLUDED.engagement_status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRowContext(
		ctx,
		query,
		lead.Platform,
		lead.Username,
		lead.DisplayName,
		lead.Bio,
		lead.FollowerCount,
		lead.FollowingCount,
		lead.MediaCount,
		lead.IsVerified,
		lead.IsBusiness,
		lead.Category,
		lead.ExternalURL,
		lead.City,
		lead.Score,
		pq.Array(lead.MatchedSignals),
		lead.EngagementScore,
		lead.EngagementStatus,
		lead.Email,
		lead.EmailSource,
		lead.Phone,
		lead.Source,
		lead.DiscoveredAt,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert lead: %w", err)
	}
	return nil
}

// SetEnrichment records the outcome of a contact waterfall pass. Called
// for misses too: enrichment_attempted stops the sweep from re-running
// expensive tiers for the same account.
func (r *LeadsRepository) SetEnrichment(ctx context.Context, platform domain.Platform, username, email, source string, attemptedAt time.Time) error {
	query := `
		UPDATE leads
		SET email = CASE WHEN $3 <> '' THEN $3 ELSE email END,
		    email_source = CASE WHEN $3 <> '' THEN $4 ELSE email_source END,
		    enrichment_attempted = TRUE,
		    enriched_at = $5,
		    updated_at = NOW()
		WHERE platform = $1 AND username = $2
	`

	result, err := r.db.ExecContext(ctx, query, platform, username, email, source, attemptedAt)
	if err != nil {
		return fmt.Errorf("failed to set enrichment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check enrichment update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrLeadNotFound, platform, username)
	}
	return nil
}

// GetByUsername retrieves a lead by its identity pair.
func (r *LeadsRepository) GetByUsername(ctx context.Context, platform domain.Platform, username string) (*domain.Lead, error) {
	var lead domain.Lead
	query := `
		SELECT id, platform, username, display_name, bio, follower_count,
		       following_count, media_count, is_verified, is_business, category,
		       external_url, city, score, matched_signals, engagement_score,
		       engagement_status, email, email_source, phone,
		       enrichment_attempted, source, discovered_at, created_at,
		       updated_at, enriched_at
		FROM leads
		WHERE platform = $1 AND username = $2
	`

	err := r.db.QueryRowContext(ctx, query, platform, username).Scan(
		&lead.ID,
		&lead.Platform,
		&lead.Username,
		&lead.DisplayName,
		&lead.Bio,
		&lead.FollowerCount,
		&lead.FollowingCount,
		&lead.MediaCount,
		&lead.IsVerified,
		&lead.IsBusiness,
		&lead.Category,
		&lead.ExternalURL,
		&lead.City,
		&lead.Score,
		pq.Array(&lead.MatchedSignals),
		&lead.EngagementScore,
		&lead.EngagementStatus,
		&lead.Email,
		&lead.EmailSource,
		&lead.Phone,
		&lead.EnrichmentAttempted,
		&lead.Source,
		&lead.DiscoveredAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&lead.EnrichedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", ErrLeadNotFound, platform, username)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return &lead, nil
}

// List retrieves leads matching the filter, newest first.
func (r *LeadsRepository) List(ctx context.Context, filter LeadFilter) ([]*domain.Lead, error) {
	query := `
		SELECT id, platform, username, display_name, bio, follower_count,
		       following_count, media_count, is_verified, is_business, category,
		       external_url, city, score, matched_signals, engagement_score,
		       engagement_status, email, email_source, phone,
		       enrichment_attempted, source, discovered_at, created_at,
		       updated_at, enriched_at
		FROM leads
		WHERE ($1 = '' OR platform = $1)
		  AND score >= $2
		  AND ($3 = FALSE OR email <> '')
		ORDER BY score DESC, created_at DESC
		LIMIT $4 OFFSET $5
	`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, query,
		string(filter.Platform), filter.MinScore, filter.WithEmail, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Platform,
			&lead.Username,
			&lead.DisplayName,
			&lead.Bio,
			&lead.FollowerCount,
			&lead.FollowingCount,
			&lead.MediaCount,
			&lead.IsVerified,
			&lead.IsBusiness,
			&lead.Category,
			&lead.ExternalURL,
			&lead.City,
			&lead.Score,
			pq.Array(&lead.MatchedSignals),
			&lead.EngagementScore,
			&lead.EngagementStatus,
			&lead.Email,
			&lead.EmailSource,
			&lead.Phone,
			&lead.EnrichmentAttempted,
			&lead.Source,
			&lead.DiscoveredAt,
			&lead.CreatedAt,
			&lead.UpdatedAt,
			&lead.EnrichedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}

	return leads, nil
}

// ListUnenriched returns leads that never went through the contact
// waterfall, oldest first so backlog drains in discovery order.
func (r *LeadsRepository) ListUnenriched(ctx context.Context, limit int) ([]*domain.Lead, error) {
	query := `
		SELECT id, platform, username, display_name, bio, follower_count,
		       following_count, media_count, is_verified, is_business, category,
		       external_url, city, score, matched_signals, engagement_score,
		       engagement_status, email, email_source, phone,
		       enrichment_attempted, source, discovered_at, created_at,
		       updated_at, enriched_at
		FROM leads
		WHERE enrichment_attempted = FALSE
		ORDER BY created_at ASC
		LIMIT $1
	`

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unenriched leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Platform,
			&lead.Username,
			&lead.DisplayName,
			&lead.Bio,
			&lead.FollowerCount,
			&lead.FollowingCount,
			&lead.MediaCount,
			&lead.IsVerified,
			&lead.IsBusiness,
			&lead.Category,
			&lead.ExternalURL,
			&lead.City,
			&lead.Score,
			pq.Array(&lead.MatchedSignals),
			&lead.EngagementScore,
			&lead.EngagementStatus,
			&lead.Email,
			&lead.EmailSource,
			&lead.Phone,
			&lead.EnrichmentAttempted,
			&lead.Source,
			&lead.DiscoveredAt,
			&lead.CreatedAt,
			&lead.UpdatedAt,
			&lead.EnrichedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unenriched leads: %w", err)
	}

	return leads, nil
}
