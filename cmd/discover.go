package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/leadscout/internal/discovery"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// discoverCommand runs the discovery sources once and prints what they
// surfaced, without classifying anything.
func discoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Run discovery sources and print new candidates",
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

			store, err := newDedupStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connect dedup store: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			engine := newDiscoveryEngine(cfg, store, deps.Logger)

			var all []discovery.Result
			for _, tag := range cfg.Discovery.Hashtags {
				results, _, err := engine.DiscoverHashtag(ctx, tag)
				if err != nil {
					deps.Logger.Error("hashtag discovery failed",
						logger.String("tag", tag),
						logger.Error(err))
					continue
				}
				all = append(all, results...)
			}
			for _, seed := range cfg.Discovery.SeedAccounts {
				results, _, err := engine.DiscoverPeers(ctx, seed)
				if err != nil {
					deps.Logger.Error("peer discovery failed",
						logger.String("seed", seed),
						logger.Error(err))
					continue
				}
				all = append(all, results...)
			}
			if len(cfg.Discovery.SearchQueries) > 0 {
				results, _, err := engine.DiscoverSearch(ctx, cfg.Discovery.SearchQueries)
				if err != nil {
					deps.Logger.Error("search discovery failed", logger.Error(err))
				}
				all = append(all, results...)
			}

			for _, res := range all {
				fmt.Printf("%s\t%s\t%s\n", res.Platform, res.Username, res.Source)
			}
			fmt.Printf("discovered %d new candidates\n", len(all))
			return nil
		},
	}
}
