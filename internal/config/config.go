package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for an axtime session.
// Values are populated from .axtime.yaml, AXTIME_* env vars, and CLI flags.
type Config struct {
	TimingDir      string `mapstructure:"timing_dir"`
	DataDir        string `mapstructure:"data_dir"`
	LeapFile       string `mapstructure:"leap_file"`
	LeapMaxAgeSecs int64  `mapstructure:"leap_max_age_secs"`
	Decimals       int    `mapstructure:"decimals"`
	CatalogPath    string `mapstructure:"catalog_path"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags. The TIMING_DIR and
// ASC_DATA environment variables are honored as legacy fallbacks for the
// leap-second table directory.
func Load() Config {
	viper.SetDefault("timing_dir", "")
	viper.SetDefault("data_dir", "")
	viper.SetDefault("leap_file", "tai-utc.dat")
	viper.SetDefault("leap_max_age_secs", int64(5000000))
	viper.SetDefault("decimals", 0)
	viper.SetDefault("catalog_path", ".axtime/gti.db")

	var cfg Config
	_ = viper.Unmarshal(&cfg)

	if cfg.TimingDir == "" {
		cfg.TimingDir = os.Getenv("TIMING_DIR")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("ASC_DATA")
	}
	return cfg
}

// LeapDirs returns the directories searched for the leap-second table, in
// priority order, skipping unset entries.
func (c Config) LeapDirs() []string {
	var dirs []string
	for _, d := range []string{c.TimingDir, c.DataDir} {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
