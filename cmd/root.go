// Package cmd implements the leadscout command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "leadscout",
		Short: "Creator lead discovery and qualification",
		Long: `leadscout discovers social-media creator accounts, scores them
against a target persona and resolves contact emails for the ones worth
outreach.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("leadscout version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(discoverCommand())
	rootCmd.AddCommand(classifyCommand())
	rootCmd.AddCommand(enrichCommand())
	rootCmd.AddCommand(runCommand())
	rootCmd.AddCommand(httpdCommand())
}
