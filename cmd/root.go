package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sot/chandra-time/internal/config"
	"github.com/sot/chandra-time/internal/leapsec"
	"github.com/sot/chandra-time/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "axtime",
	Short: "Spacecraft time conversion",
	Long: "Axtime converts instants between mission elapsed time, TT, TAI, and UTC\n" +
		"in seconds, Julian day, modified Julian day, and date formats, and keeps\n" +
		"good-time-interval range lists.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var printer = ui.New()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .axtime.yaml)")
	rootCmd.PersistentFlags().String("timing-dir", "", "directory holding the leap-second table")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".axtime")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("AXTIME")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("timing_dir", rootCmd.PersistentFlags().Lookup("timing-dir"))

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadTable builds the leap-second table for this invocation: the builtin
// entries, superseded by the configured table file when one can be adopted.
// A missing or unreadable file is not fatal; the builtin table still covers
// every historic leap second.
func loadTable(cfg config.Config) *leapsec.Table {
	table := leapsec.New()
	dirs := cfg.LeapDirs()
	if len(dirs) == 0 {
		return table
	}
	maxAge := time.Duration(cfg.LeapMaxAgeSecs) * time.Second
	if err := table.MaybeReload(dirs, cfg.LeapFile, maxAge); err != nil {
		printer.LeapReloadFailed(err)
	}
	return table
}
