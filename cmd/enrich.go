package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/leadscout/internal/database"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// enrichCommand drains the backlog of leads that never went through the
// contact waterfall.
func enrichCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Resolve contact emails for unenriched leads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAppDeps()
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()
			ctx := cmd.Context()
			cfg := deps.Config

			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			repo := database.NewLeadsRepository(db)
			waterfall := newWaterfall(cfg, deps.Logger)

			leads, err := repo.ListUnenriched(ctx, limit)
			if err != nil {
				return err
			}

			found := 0
			for _, lead := range leads {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				cand := &domain.Candidate{
					Platform:    lead.Platform,
					Username:    lead.Username,
					Bio:         lead.Bio,
					ExternalURL: lead.ExternalURL,
				}
				result := waterfall.Enrich(ctx, cand)
				if result.Found() {
					found++
				}

				if err := repo.SetEnrichment(ctx, lead.Platform, lead.Username,
					result.Email, string(result.Tier), result.AttemptedAt); err != nil {
					deps.Logger.Error("failed to persist enrichment",
						logger.String("username", lead.Username),
						logger.Error(err))
				}
			}

			fmt.Printf("enriched %d of %d leads\n", found, len(leads))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum leads to process")
	return cmd
}
