package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/leadscout/internal/domain"
)

// ErrRunNotFound is returned when a run lookup matches nothing.
var ErrRunNotFound = errors.New("run not found")

// RunsRepository handles database operations for pipeline runs.
type RunsRepository struct {
	db *sqlx.DB
}

// NewRunsRepository creates a new runs repository.
func NewRunsRepository(db *sqlx.DB) *RunsRepository {
	return &RunsRepository{db: db}
}

// Create inserts a new run in running state with its config snapshot.
func (r *RunsRepository) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (
			id, status, follower_min, follower_max, score_threshold,
			catalog_version
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING started_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		run.ID,
		run.Status,
		run.FollowerMin,
		run.FollowerMax,
		run.ScoreThreshold,
		run.CatalogVersion,
	).Scan(&run.StartedAt)

	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Finish records the terminal status and counters of a run.
func (r *RunsRepository) Finish(ctx context.Context, run *domain.Run) error {
	query := `
		UPDATE runs
		SET status = $2, discovered = $3, classified = $4, qualified = $5,
		    rejected = $6, enriched = $7, errors = $8, completed_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Status,
		run.Discovered,
		run.Classified,
		run.Qualified,
		run.Rejected,
		run.Enriched,
		run.Errors,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

// Get retrieves a run by id.
func (r *RunsRepository) Get(ctx context.Context, id string) (*domain.Run, error) {
	var run domain.Run
	query := `
		SELECT id, status, discovered, classified, qualified, rejected,
		       enriched, errors, follower_min, follower_max, score_threshold,
		       catalog_version, started_at, completed_at
		FROM runs
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

// List retrieves runs, newest first.
func (r *RunsRepository) List(ctx context.Context, limit, offset int) ([]*domain.Run, error) {
	var runs []*domain.Run
	query := `
		SELECT id, status, discovered, classified, qualified, rejected,
		       enriched, errors, follower_min, follower_max, score_threshold,
		       catalog_version, started_at, completed_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1 OFFSET $2
	`

	if limit <= 0 {
		limit = 50
	}

	if err := r.db.SelectContext(ctx, &runs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}
