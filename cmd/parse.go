package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlcoach/replay-analysis/internal/parseradapter"
	"github.com/rlcoach/replay-analysis/internal/reportbuild"
	"github.com/rlcoach/replay-analysis/internal/reportcache"
)

var (
	parseOutPath string
	parseNoCache bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <replay-file>",
	Short: "Parse a replay and print its analysis report as JSON",
	Long: `Parse a single Rocket League replay file, run the full detection and
analysis pipeline, and print the resulting report as JSON.

When the cache is enabled in the configuration and --no-cache is not set,
the report is also stored in the report cache keyed by its replay_id (the
source file's SHA-256), so a later "show" can print it without re-running
the pipeline. "parse" itself always runs the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutPath, "out", "o", "", "write the report JSON to this file instead of stdout")
	parseCmd.Flags().BoolVar(&parseNoCache, "no-cache", false, "skip storing the report in the cache")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger.Info("parsing replay", "path", path)

	adapter := adapterFor(cfg.Parser.Adapter)
	report, errReport := reportbuild.Build(path, adapter)
	if errReport != nil {
		return printJSON(os.Stdout, errReport)
	}

	if cfg.Cache.Enabled && !parseNoCache {
		db, err := reportcache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("could not open report cache", "err", err)
		} else {
			defer db.Close()
			if err := db.Put(report); err != nil {
				logger.Warn("could not store report in cache", "err", err)
			}
		}
	}

	if parseOutPath != "" {
		f, err := os.Create(parseOutPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		return printJSON(f, report)
	}
	return printJSON(os.Stdout, report)
}

func adapterFor(name string) parseradapter.Adapter {
	switch name {
	case "null", "":
		return parseradapter.NullAdapter{}
	default:
		logger.Warn("unknown parser adapter, falling back to null adapter", "adapter", name)
		return parseradapter.NullAdapter{}
	}
}

func printJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
