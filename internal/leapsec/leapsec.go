// Package leapsec maintains the table of leap seconds that relates UTC to
// the uniform atomic timescales. The table is an ordered list of
// (MJD, cumulative TAI-UTC seconds) pairs starting at 1972-01-01. A built-in
// copy covers everything known at build time; an external tai-utc.dat file,
// when available, supersedes it.
//
// A Table is safe for concurrent use: lookups read an immutable snapshot and
// a reload replaces the whole snapshot in one pointer swap, so readers never
// observe a partial update.
package leapsec

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

const sec2day = 1.0 / 86400.0

// Entry is one row of the leap-second table: from UTC day MJD onward,
// TAI-UTC equals Leap seconds.
type Entry struct {
	MJD  int64
	Leap float64
}

// builtin holds the leap seconds known at build time, 1972-01-01 (10 s)
// through 2017-01-01 (37 s).
var builtin = []Entry{
	{41317, 10}, {41499, 11}, {41683, 12}, {42048, 13}, {42413, 14},
	{42778, 15}, {43144, 16}, {43509, 17}, {43874, 18}, {44239, 19},
	{44786, 20}, {45151, 21}, {45516, 22}, {46247, 23}, {47161, 24},
	{47892, 25}, {48257, 26}, {48804, 27}, {49169, 28}, {49534, 29},
	{50083, 30}, {50630, 31}, {51179, 32}, {53736, 33}, {54832, 34},
	{56109, 35}, {57204, 36}, {57754, 37},
}

// SourceBuiltin is the Source value before any file has been adopted.
const SourceBuiltin = "builtin"

// Table is an ordered leap-second table with atomic snapshot replacement.
// The zero value is not usable; construct with New.
type Table struct {
	entries atomic.Pointer[[]Entry]

	mu       sync.Mutex // serializes reloads
	loadedAt time.Time
	source   string
}

// New returns a Table populated from the built-in fallback.
func New() *Table {
	t := &Table{source: SourceBuiltin}
	e := make([]Entry, len(builtin))
	copy(e, builtin)
	t.entries.Store(&e)
	return t
}

func (t *Table) snapshot() []Entry {
	return *t.entries.Load()
}

// Entries returns a copy of the current table.
func (t *Table) Entries() []Entry {
	e := t.snapshot()
	out := make([]Entry, len(e))
	copy(out, e)
	return out
}

// Len returns the number of entries in the current table.
func (t *Table) Len() int {
	return len(t.snapshot())
}

// Source reports where the current table came from: SourceBuiltin or the
// path of the adopted file.
func (t *Table) Source() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source
}

// LoadedAt reports when an external source was last adopted. It is the zero
// time while the table is still the built-in fallback, so the expiry policy
// treats a never-loaded table as due for refresh.
func (t *Table) LoadedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadedAt
}

// last returns the index of the last entry whose MJD is <= day, or 0 when
// day precedes the table (no leap seconds before 1972 are modeled).
func last(e []Entry, day int64) int {
	i := len(e) - 1
	for i > 0 && day < e[i].MJD {
		i--
	}
	return i
}

// At returns the cumulative leap-second count applicable at an instant given
// as a split MJD on the TAI scale, and whether the instant falls inside an
// inserted leap second. The frac part may lie outside [0,1); it is summed
// with the integer part before the lookup.
//
// Around a table transition at UTC day B the count changes at UTC midnight,
// which on the TAI scale is B plus the new count in seconds. TAI instants in
// that window still belong to the previous UTC day, so the previous count
// applies; the final second of the window is the inserted 23:59:60.
func (t *Table) At(mjdInt int64, frac float64) (leap float64, inLeap bool) {
	e := t.snapshot()
	x := float64(mjdInt) + frac
	day := int64(math.Floor(x))
	i := last(e, day)
	if i > 0 {
		utc := x - e[i].Leap*sec2day
		if utc < float64(e[i].MJD) {
			boundary := e[i].MJD
			i--
			if x >= float64(boundary)+e[i].Leap*sec2day {
				inLeap = true
			}
		}
	}
	return e[i].Leap, inLeap
}

// AtUTC returns the count applicable on UTC day number day, and whether
// day+frac names the inserted second: a day fraction at or past 1.0 (the
// second field reading 60) on the eve of a table transition.
func (t *Table) AtUTC(day int64, frac float64) (leap float64, inLeap bool) {
	e := t.snapshot()
	i := last(e, day)
	if i < len(e)-1 && day+1 == e[i+1].MJD && frac >= 1.0 && frac < 1.0+sec2day {
		inLeap = true
	}
	return e[i].Leap, inLeap
}

// AtSeconds returns the count for an instant expressed as a fractional UTC
// day number reached by plain seconds arithmetic from a reference, with no
// leap insertions counted along the way. Under that convention the inserted
// second coincides with the first second after a transition day boundary.
func (t *Table) AtSeconds(q float64) (leap float64, inLeap bool) {
	e := t.snapshot()
	day := int64(math.Floor(q))
	i := last(e, day)
	if i > 0 && q-float64(e[i].MJD) < sec2day {
		i--
		inLeap = true
	}
	return e[i].Leap, inLeap
}
