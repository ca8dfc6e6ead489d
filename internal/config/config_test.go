package config

import (
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoadDefaults(t *testing.T) {
	resetViper()
	t.Setenv("TIMING_DIR", "")
	t.Setenv("ASC_DATA", "")

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"TimingDir", cfg.TimingDir, ""},
		{"DataDir", cfg.DataDir, ""},
		{"LeapFile", cfg.LeapFile, "tai-utc.dat"},
		{"LeapMaxAgeSecs", cfg.LeapMaxAgeSecs, int64(5000000)},
		{"Decimals", cfg.Decimals, 0},
		{"CatalogPath", cfg.CatalogPath, ".axtime/gti.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadLegacyEnvFallbacks(t *testing.T) {
	resetViper()
	t.Setenv("TIMING_DIR", "/data/timing")
	t.Setenv("ASC_DATA", "/data/asc")

	cfg := Load()
	if cfg.TimingDir != "/data/timing" {
		t.Errorf("TimingDir = %q, want /data/timing", cfg.TimingDir)
	}
	if cfg.DataDir != "/data/asc" {
		t.Errorf("DataDir = %q, want /data/asc", cfg.DataDir)
	}
}

func TestLoadExplicitBeatsLegacyEnv(t *testing.T) {
	resetViper()
	t.Setenv("TIMING_DIR", "/data/legacy")
	viper.Set("timing_dir", "/data/configured")

	cfg := Load()
	if cfg.TimingDir != "/data/configured" {
		t.Errorf("TimingDir = %q, want /data/configured", cfg.TimingDir)
	}
}

func TestLeapDirs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"both set", Config{TimingDir: "/a", DataDir: "/b"}, 2},
		{"timing only", Config{TimingDir: "/a"}, 1},
		{"none", Config{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.LeapDirs(); len(got) != tt.want {
				t.Errorf("LeapDirs() = %v, want %d entries", got, tt.want)
			}
		})
	}

	dirs := Config{TimingDir: "/a", DataDir: "/b"}.LeapDirs()
	if dirs[0] != "/a" {
		t.Errorf("LeapDirs()[0] = %q, want the timing directory first", dirs[0])
	}
}
