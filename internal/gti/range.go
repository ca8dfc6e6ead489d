// Package gti implements good-time-interval bookkeeping: labeled time
// ranges over xtime instants, with the union/intersection/complement
// algebra used to combine screening criteria. Lists of ranges are kept
// sorted, non-overlapping, and non-adjacent.
package gti

import (
	"fmt"

	"github.com/sot/chandra-time/internal/xtime"
)

// Position locates an instant relative to a range.
type Position int

const (
	Before Position = -1
	Inside Position = 0
	After  Position = 1
)

// Range is a pair of instants. A range is empty when the start does not
// precede the stop in MET seconds, or when either endpoint is non-positive.
type Range struct {
	start *xtime.Time
	stop  *xtime.Time
	empty bool
}

// NewRange builds a range from two instants.
func NewRange(start, stop *xtime.Time) Range {
	r := Range{start: start, stop: stop}
	r.refresh()
	return r
}

// NewRangeMET builds a range from MET seconds, deriving the endpoints from
// base's table and reference epoch.
func NewRangeMET(base *xtime.Time, start, stop float64) Range {
	return NewRange(base.Derive(start), base.Derive(stop))
}

func (r *Range) refresh() {
	t1 := r.start.MET()
	t2 := r.stop.MET()
	r.empty = t1 >= t2 || t1 <= 0 || t2 <= 0
}

// Start returns the start instant.
func (r Range) Start() *xtime.Time { return r.start }

// Stop returns the stop instant.
func (r Range) Stop() *xtime.Time { return r.stop }

// METStart returns the start in MET seconds.
func (r Range) METStart() float64 { return r.start.MET() }

// METStop returns the stop in MET seconds.
func (r Range) METStop() float64 { return r.stop.MET() }

// IsEmpty reports whether the range covers no time.
func (r Range) IsEmpty() bool { return r.empty }

// Total returns the covered time in seconds, zero when empty.
func (r Range) Total() float64 {
	if r.empty {
		return 0
	}
	return r.stop.MET() - r.start.MET()
}

// Contains locates MET seconds t relative to the range. Endpoints count as
// inside; an empty range reports After for anything not before it.
func (r Range) Contains(t float64) Position {
	switch {
	case t < r.start.MET():
		return Before
	case t > r.stop.MET():
		return After
	case r.empty:
		return After
	default:
		return Inside
	}
}

// ContainsTime locates an instant relative to the range.
func (r Range) ContainsTime(t *xtime.Time) Position {
	return r.Contains(t.MET())
}

// withStart returns a copy starting at MET seconds t.
func (r Range) withStart(t float64) Range {
	return NewRange(r.start.Derive(t), r.stop)
}

// withStop returns a copy stopping at MET seconds t.
func (r Range) withStop(t float64) Range {
	return NewRange(r.start, r.stop.Derive(t))
}

// Format renders the range as a two-line description with UTC ordinal
// dates.
func (r Range) Format() string {
	return r.format(xtime.OrdinalDate)
}

// FormatCal is Format with calendar dates.
func (r Range) FormatCal() string {
	return r.format(xtime.CalendarDate)
}

func (r Range) format(f xtime.Format) string {
	startDate, err := r.start.GetDate(xtime.UTC, f, 0)
	if err != nil {
		startDate = err.Error()
	}
	stopDate, err := r.stop.GetDate(xtime.UTC, f, 0)
	if err != nil {
		stopDate = err.Error()
	}
	return fmt.Sprintf("start: %.3f (%s)\nstop:  %.3f (%s)",
		r.start.MET(), startDate, r.stop.MET(), stopDate)
}
