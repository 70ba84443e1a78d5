package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/leadscout/internal/domain"
)

// classifyCommand fetches one account and prints its score breakdown,
// useful for tuning the catalog against real profiles.
func classifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [username]",
		Short: "Fetch one account and print its score breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newAppDeps()
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()
			cfg := deps.Config

			cat, err := loadCatalog(cfg)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			clf, community := newClassifiers(cfg, cat, deps.Logger)

			client := newProfileClient(cfg, deps.Logger)
			profile, err := client.FetchProfile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}

			cand := profile.Candidate(domain.PlatformInstagram, "manual")
			breakdown := clf.Classify(cand)

			out := map[string]any{
				"username":  cand.Username,
				"score":     breakdown.Total,
				"qualified": breakdown.Qualified,
				"signals":   breakdown.Signals,
			}
			if !breakdown.Qualified && !breakdown.HardFailed() {
				out["community"] = community.Classify(cand.Bio, cand.Username, nil)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
