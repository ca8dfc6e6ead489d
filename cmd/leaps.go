package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sot/chandra-time/internal/config"
	"github.com/sot/chandra-time/internal/leapsec"
)

var leapsCmd = &cobra.Command{
	Use:   "leaps",
	Short: "Inspect and refresh the leap-second table",
}

var leapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active leap-second table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		table := loadTable(cfg)
		printer.LeapTable(table)
		return nil
	},
}

var leapsWatch bool

var leapsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the leap-second table from the timing directory",
	Long: "Refresh forces a reload of the leap-second table from the configured\n" +
		"timing directories, regardless of the staleness window. With --watch it\n" +
		"stays running and re-adopts the file every time it changes on disk.",
	RunE: runLeapsRefresh,
}

func init() {
	rootCmd.AddCommand(leapsCmd)
	leapsCmd.AddCommand(leapsListCmd)
	leapsCmd.AddCommand(leapsRefreshCmd)

	leapsRefreshCmd.Flags().BoolVarP(&leapsWatch, "watch", "w", false, "keep watching the table file for changes")
}

func runLeapsRefresh(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	dirs := cfg.LeapDirs()
	if len(dirs) == 0 {
		return fmt.Errorf("no timing directory configured (set timing_dir or TIMING_DIR)")
	}

	table := leapsec.New()
	if err := table.Reload(dirs, cfg.LeapFile); err != nil {
		printer.LeapReloadFailed(err)
		if !leapsWatch {
			return err
		}
	} else {
		printer.LeapReloaded(table.Source(), table.Len())
	}

	if !leapsWatch {
		return nil
	}

	w, err := leapsec.NewWatcher(table, dirs[0], cfg.LeapFile)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()
	printer.Watching(filepath.Join(dirs[0], cfg.LeapFile))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev := <-w.Reloads:
			if ev.Err != nil {
				printer.LeapReloadFailed(ev.Err)
			} else {
				printer.LeapReloaded(ev.Path, table.Len())
			}
		case <-sig:
			return nil
		}
	}
}
