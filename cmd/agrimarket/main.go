// Package main provides the AgriMarket terminal client entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Canzo32/farmer-web/cmd/agrimarket/config"
	"github.com/Canzo32/farmer-web/internal/logging"
)

var (
	// Global flags
	verbose    bool
	backendURL string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "agrimarket",
	Short: "AgriMarket Ghana - terminal marketplace client",
	Long: `AgriMarket connects farmers, suppliers, and buyers across the Accra,
Ashanti, and Western regions.

Run without arguments to start the interactive interface. Subcommands offer
a scriptable surface over the same backend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("failed to resolve config dir: %w", err)
		}
		// TUI and CLI output own stdout; logs always go to a file.
		if err := logging.Initialize(dir, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(loadConfig())
	},
}

// loadConfig resolves the effective configuration, flag beats file.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logging.Get("boot").Warnw("failed to load config, using defaults", "err", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	cfg.Verbose = verbose
	return cfg
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend API base URL (overrides config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
