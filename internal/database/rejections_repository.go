package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/leadscout/internal/domain"
)

// ErrRejectionNotFound is returned when a rejection lookup matches nothing.
var ErrRejectionNotFound = errors.New("rejection not found")

// RejectionsRepository handles database operations for rejected accounts.
type RejectionsRepository struct {
	db *sqlx.DB
}

// NewRejectionsRepository creates a new rejections repository.
func NewRejectionsRepository(db *sqlx.DB) *RejectionsRepository {
	return &RejectionsRepository{db: db}
}

// Upsert records a rejection, replacing any earlier verdict for the same
// account so the table always holds the latest evaluation.
func (r *RejectionsRepository) Upsert(ctx context.Context, rec *domain.RejectionRecord) error {
	query := `
		INSERT INTO rejections (platform, username, reasons, signals, score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform, username) DO UPDATE SET
			reasons = EXCLUDED.reasons,
			signals = EXCLUDED.signals,
			score = EXCLUDED.score,
			rejected_at = NOW()
		RETURNING id, rejected_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		rec.Platform,
		rec.Username,
		pq.Array(rec.Reasons),
		pq.Array(rec.Signals),
		rec.Score,
	).Scan(&rec.ID, &rec.RejectedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert rejection: %w", err)
	}
	return nil
}

// Delete removes a rejection so the account can be re-evaluated.
func (r *RejectionsRepository) Delete(ctx context.Context, platform domain.Platform, username string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM rejections WHERE platform = $1 AND username = $2`,
		platform, username,
	)
	if err != nil {
		return fmt.Errorf("failed to delete rejection: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rejection delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRejectionNotFound, platform, username)
	}
	return nil
}

// IsRejected reports whether a standing rejection exists for the account.
func (r *RejectionsRepository) IsRejected(ctx context.Context, platform domain.Platform, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM rejections WHERE platform = $1 AND username = $2)`

	if err := r.db.QueryRowContext(ctx, query, platform, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rejection: %w", err)
	}
	return exists, nil
}

// List retrieves rejections, newest first.
func (r *RejectionsRepository) List(ctx context.Context, limit, offset int) ([]*domain.RejectionRecord, error) {
	query := `
		SELECT id, platform, username, reasons, signals, score, rejected_at
		FROM rejections
		ORDER BY rejected_at DESC
		LIMIT $1 OFFSET $2
	`

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rejections: %w", err)
	}
	defer rows.Close()

	var records []*domain.RejectionRecord
	for rows.Next() {
		var rec domain.RejectionRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Platform,
			&rec.Username,
			pq.Array(&rec.Reasons),
			pq.Array(&rec.Signals),
			&rec.Score,
			&rec.RejectedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rejection: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rejections: %w", err)
	}

	return records, nil
}
