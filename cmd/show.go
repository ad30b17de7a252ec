package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlcoach/replay-analysis/internal/reportcache"
)

var showCmd = &cobra.Command{
	Use:   "show <replay-id>",
	Short: "Print a cached replay report by replay_id",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := reportcache.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open report cache: %w", err)
	}
	defer db.Close()

	r, err := db.Get(args[0])
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no cached report for replay_id %s", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
