package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sot/chandra-time/internal/config"
	"github.com/sot/chandra-time/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive converter",
	Long:  "Tui opens a full-screen interactive converter over the live leap-second table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		table := loadTable(cfg)

		var refresh func()
		if dirs := cfg.LeapDirs(); len(dirs) > 0 {
			maxAge := time.Duration(cfg.LeapMaxAgeSecs) * time.Second
			refresh = func() {
				// Diagnostic only; the old table keeps conversions going.
				_ = table.MaybeReload(dirs, cfg.LeapFile, maxAge)
			}
		}
		return tui.Run(table, refresh)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
