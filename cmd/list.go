package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/rlcoach/replay-analysis/internal/reportcache"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached replay reports",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := reportcache.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open report cache: %w", err)
	}
	defer db.Close()

	ids, err := db.List()
	if err != nil {
		return fmt.Errorf("list cached reports: %w", err)
	}
	if len(ids) == 0 {
		fmt.Println("no cached reports")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("REPLAY_ID", "MAP", "PLAYLIST", "GENERATED_AT")
	for _, id := range ids {
		r, err := db.Get(id)
		if err != nil || r == nil {
			continue
		}
		table.Append(r.ReplayID[:12], r.Metadata.Map, r.Metadata.Playlist, r.GeneratedAtUTC)
	}
	return table.Render()
}
