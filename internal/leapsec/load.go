package leapsec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// FileName is the conventional name of the leap-second data file.
const FileName = "tai-utc.dat"

// ErrTableUnavailable reports that an external leap-second source could not
// be adopted. It is diagnostic only: the previous table stays in effect and
// conversions keep working.
var ErrTableUnavailable = errors.New("leap-second table unavailable")

// lineRe matches the USNO tai-utc.dat record layout, e.g.
//
//	1972 JAN  1 =JD 2441317.5  TAI-UTC=  10.0       S + (MJD - 41317.) X 0.0      S
//
// capturing the year, the Julian Day, and the cumulative TAI-UTC seconds.
var lineRe = regexp.MustCompile(`^\s*(\d{4})\s+[A-Za-z]{3}\s+\d+\s*=\s*JD\s+(\d+(?:\.\d+)?)\s+TAI-UTC\s*=\s*([0-9.]+)\s*S`)

// Parse reads tai-utc.dat records, keeping entries from 1972 on (earlier
// records use rubber-second offsets that this table does not model).
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := lineRe.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil || year <= 1970 {
			continue
		}
		jd, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		leap, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{MJD: int64(jd - 2400000.5 + 0.1), Leap: leap})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leapsec: read table: %w", err)
	}
	return entries, nil
}

// ReloadFromFile replaces the table with the contents of path. The new table
// must not know fewer leap seconds than the current one; a shorter or
// unreadable file indicates a read problem and leaves the table unchanged,
// returning an error wrapping ErrTableUnavailable.
func (t *Table) ReloadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableUnavailable, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTableUnavailable, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(entries) < len(t.snapshot()) {
		return fmt.Errorf("%w: %s has %d entries, fewer than the %d already known",
			ErrTableUnavailable, path, len(entries), len(t.snapshot()))
	}
	t.entries.Store(&entries)
	t.loadedAt = time.Now()
	t.source = path
	return nil
}

// Reload searches dirs in order for the named file and adopts the first one
// that parses and does not shrink the table. With an empty name, FileName is
// used. Empty dirs are skipped.
func (t *Table) Reload(dirs []string, name string) error {
	if name == "" {
		name = FileName
	}
	var firstErr error
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		err := t.ReloadFromFile(filepath.Join(dir, name))
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("%w: no candidate directories", ErrTableUnavailable)
	}
	return firstErr
}

// MaybeReload applies the expiry policy: if the current table is older than
// maxAge it attempts a Reload, otherwise it does nothing. The error, if any,
// is diagnostic; the previous table remains valid either way.
func (t *Table) MaybeReload(dirs []string, name string, maxAge time.Duration) error {
	if time.Since(t.LoadedAt()) <= maxAge {
		return nil
	}
	return t.Reload(dirs, name)
}
