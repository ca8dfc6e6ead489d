package leapsec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fullTable is a complete tai-utc.dat covering every built-in entry plus a
// fictitious 2030 leap second, so reloads are never rejected as shrinking.
func fullTable(t *testing.T) string {
	t.Helper()
	records := []struct {
		year string
		jd   float64
		leap float64
	}{
		{"1972", 2441317.5, 10}, {"1972", 2441499.5, 11}, {"1973", 2441683.5, 12},
		{"1974", 2442048.5, 13}, {"1975", 2442413.5, 14}, {"1976", 2442778.5, 15},
		{"1977", 2443144.5, 16}, {"1978", 2443509.5, 17}, {"1979", 2443874.5, 18},
		{"1980", 2444239.5, 19}, {"1981", 2444786.5, 20}, {"1982", 2445151.5, 21},
		{"1983", 2445516.5, 22}, {"1985", 2446247.5, 23}, {"1988", 2447161.5, 24},
		{"1990", 2447892.5, 25}, {"1991", 2448257.5, 26}, {"1992", 2448804.5, 27},
		{"1993", 2449169.5, 28}, {"1994", 2449534.5, 29}, {"1996", 2450083.5, 30},
		{"1997", 2450630.5, 31}, {"1999", 2451179.5, 32}, {"2006", 2453736.5, 33},
		{"2009", 2454832.5, 34}, {"2012", 2456109.5, 35}, {"2015", 2457204.5, 36},
		{"2017", 2457754.5, 37}, {"2030", 2462502.5, 38},
	}
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s JAN  1 =JD %.1f  TAI-UTC=  %.1f       S + (MJD - 41317.) X 0.0      S\n",
			r.year, r.jd, r.leap)
	}
	return b.String()
}

func writeTable(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing table file: %v", err)
	}
	return path
}

func TestReloadFromFile(t *testing.T) {
	table := New()
	path := writeTable(t, t.TempDir(), fullTable(t))

	if err := table.ReloadFromFile(path); err != nil {
		t.Fatalf("ReloadFromFile() error: %v", err)
	}
	if table.Len() != 29 {
		t.Errorf("Len() = %d, want 29", table.Len())
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}

	// The fictitious 2030 entry is live: MJD 62502 onward counts 38.
	leap, _ := table.At(62600, 0)
	if leap != 38 {
		t.Errorf("At(62600) = %v, want 38", leap)
	}
}

// A table with fewer entries than already known indicates a truncated read;
// the reload must fail and leave the current table in effect.
func TestReloadRejectsShrink(t *testing.T) {
	table := New()
	short := "1972 JAN  1 =JD 2441317.5  TAI-UTC=  10.0       S + (MJD - 41317.) X 0.0      S\n"
	path := writeTable(t, t.TempDir(), short)

	err := table.ReloadFromFile(path)
	if !errors.Is(err, ErrTableUnavailable) {
		t.Fatalf("ReloadFromFile() error = %v, want ErrTableUnavailable", err)
	}
	if table.Len() != len(builtin) {
		t.Errorf("Len() = %d after failed reload, want %d", table.Len(), len(builtin))
	}
	if table.Source() != SourceBuiltin {
		t.Errorf("Source() = %q after failed reload", table.Source())
	}
}

func TestReloadMissingFile(t *testing.T) {
	table := New()
	err := table.Reload([]string{t.TempDir()}, "")
	if !errors.Is(err, ErrTableUnavailable) {
		t.Fatalf("Reload() error = %v, want ErrTableUnavailable", err)
	}
}

// Reload searches directories in order and adopts the first usable file.
func TestReloadSearchOrder(t *testing.T) {
	table := New()
	empty := t.TempDir()
	good := t.TempDir()
	path := writeTable(t, good, fullTable(t))

	if err := table.Reload([]string{"", empty, good}, ""); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
}

func TestMaybeReloadFreshTable(t *testing.T) {
	table := New()
	path := writeTable(t, t.TempDir(), fullTable(t))
	if err := table.ReloadFromFile(path); err != nil {
		t.Fatalf("ReloadFromFile() error: %v", err)
	}

	// The file was adopted moments ago, so no reload is attempted even
	// though the only candidate directory has no file.
	if err := table.MaybeReload([]string{t.TempDir()}, "", time.Hour); err != nil {
		t.Fatalf("MaybeReload() on a fresh table error: %v", err)
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
}

// A builtin-only table has never adopted an external source, so MaybeReload
// consults the file regardless of the threshold.
func TestMaybeReloadBuiltinTable(t *testing.T) {
	table := New()
	path := writeTable(t, t.TempDir(), fullTable(t))

	if err := table.MaybeReload([]string{filepath.Dir(path)}, "", time.Hour); err != nil {
		t.Fatalf("MaybeReload() error: %v", err)
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
}

func TestMaybeReloadStaleTable(t *testing.T) {
	table := New()
	path := writeTable(t, t.TempDir(), fullTable(t))

	if err := table.MaybeReload([]string{filepath.Dir(path)}, "", 0); err != nil {
		t.Fatalf("MaybeReload() error: %v", err)
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
}
