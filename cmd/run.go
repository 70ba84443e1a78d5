package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/leadscout/internal/metrics"
)

// runCommand executes one full sweep: discovery, classification,
// enrichment and persistence.
func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one full discovery and qualification sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAppDeps()
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := openDatabase(deps.Config)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			p, store, err := newPipeline(ctx, deps, db, metrics.New())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			run, err := p.Run(ctx, runSnapshot(deps.Config))
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			fmt.Printf("run %s: discovered=%d classified=%d qualified=%d rejected=%d enriched=%d errors=%d\n",
				run.ID, run.Discovered, run.Classified, run.Qualified,
				run.Rejected, run.Enriched, run.Errors)
			return nil
		},
	}
}
