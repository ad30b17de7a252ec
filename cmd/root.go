// Package cmd implements the replayctl CLI: parsing a replay into a full
// analysis report, listing and showing cached reports, and an
// interactive shell for poking around a report's analyzers.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rlcoach/replay-analysis/internal/config"
)

// configPath is the path to the TOML config file, set via --config.
var configPath string

// cfg is the loaded configuration, available to every subcommand after
// rootCmd's PersistentPreRunE has run.
var cfg *config.Config

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

var rootCmd = &cobra.Command{
	Use:   "replayctl",
	Short: "Rocket League replay analysis tool",
	Long:  "Parse Rocket League replay files and compute per-player and per-team analysis reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
			logger.SetLevel(lvl)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to replayctl.toml (default: search cwd, ~/.replayctl, /etc/replayctl)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(shellCmd)
}
