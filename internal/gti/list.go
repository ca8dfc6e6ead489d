package gti

import (
	"fmt"
	"strings"

	"github.com/sot/chandra-time/internal/xtime"
)

// Sentinel MET bounds used when complementing a list. The mission never
// produces events before MET 1000 or anywhere near 1e20.
const (
	metFloor   = 1000.0
	metCeiling = 1.0e20
)

// RangeList is an ordered set of disjoint, non-empty ranges. The zero
// value is an empty list.
type RangeList struct {
	ranges []Range
}

// NewList builds a list from the given ranges, OR-ing them together so
// overlapping and touching inputs merge.
func NewList(ranges ...Range) *RangeList {
	l := &RangeList{}
	for _, r := range ranges {
		l.OrRange(r)
	}
	return l
}

// Intersect builds the intersection of two lists: each range of the
// shorter list is AND-ed into a copy of the other list, and the results
// are OR-ed together.
func Intersect(a, b *RangeList) *RangeList {
	if a.IsEmpty() || b.IsEmpty() {
		return &RangeList{}
	}
	long, short := a, b
	if len(short.ranges) > len(long.ranges) {
		long, short = short, long
	}
	out := &RangeList{}
	for _, r := range short.ranges {
		scratch := long.Clone()
		scratch.AndRange(r)
		out.OrList(scratch)
	}
	return out
}

// Clone returns an independent copy of the list.
func (l *RangeList) Clone() *RangeList {
	c := &RangeList{ranges: make([]Range, len(l.ranges))}
	copy(c.ranges, l.ranges)
	return c
}

// IsEmpty reports whether the list covers no time.
func (l *RangeList) IsEmpty() bool { return len(l.ranges) == 0 }

// Len returns the number of ranges.
func (l *RangeList) Len() int { return len(l.ranges) }

// Ranges returns the ranges in order. The slice is shared; do not modify.
func (l *RangeList) Ranges() []Range { return l.ranges }

// Range returns the i-th range in order.
func (l *RangeList) Range(i int) Range { return l.ranges[i] }

// ListRange returns the single range spanning the whole list. For an
// empty list it returns an empty range with zero endpoints.
func (l *RangeList) ListRange() Range {
	if l.IsEmpty() {
		return Range{empty: true}
	}
	first := l.ranges[0]
	last := l.ranges[len(l.ranges)-1]
	return NewRange(first.Start(), last.Stop())
}

// Total returns the summed time of all ranges in seconds.
func (l *RangeList) Total() float64 {
	var tt float64
	for _, r := range l.ranges {
		tt += r.Total()
	}
	return tt
}

// Contains reports whether MET seconds t falls inside any range.
func (l *RangeList) Contains(t float64) bool {
	return l.RangeContaining(t) != nil
}

// ContainsTime reports whether the instant falls inside any range.
func (l *RangeList) ContainsTime(t *xtime.Time) bool {
	return l.Contains(t.MET())
}

// RangeContaining returns the range holding MET seconds t, or nil.
func (l *RangeList) RangeContaining(t float64) *Range {
	for i := range l.ranges {
		if l.ranges[i].Contains(t) == Inside {
			return &l.ranges[i]
		}
	}
	return nil
}

// OrRange folds a range into the list, merging with any ranges it
// overlaps or touches.
func (l *RangeList) OrRange(r Range) {
	if r.IsEmpty() {
		return
	}
	tstart := r.METStart()
	tstop := r.METStop()

	out := l.ranges[:0:0]
	merged := r
	inserted := false
	for _, cur := range l.ranges {
		switch {
		case cur.METStop() < tstart:
			out = append(out, cur)
		case cur.METStart() > tstop:
			if !inserted {
				out = append(out, merged)
				inserted = true
			}
			out = append(out, cur)
		default:
			// Overlapping or touching at an endpoint: absorb.
			s := merged.METStart()
			e := merged.METStop()
			if cur.METStart() < s {
				s = cur.METStart()
			}
			if cur.METStop() > e {
				e = cur.METStop()
			}
			merged = NewRangeMET(cur.Start(), s, e)
			tstart, tstop = s, e
		}
	}
	if !inserted {
		out = append(out, merged)
	}
	l.ranges = out
}

// OrList folds every range of the other list into this one.
func (l *RangeList) OrList(other *RangeList) {
	for _, r := range other.ranges {
		l.OrRange(r)
	}
}

// AndRange clips the list to a range. Ranges outside it are dropped;
// ranges straddling an endpoint are trimmed.
func (l *RangeList) AndRange(r Range) {
	if l.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		l.ranges = nil
		return
	}
	tstart := r.METStart()
	tstop := r.METStop()

	out := l.ranges[:0:0]
	for _, cur := range l.ranges {
		if cur.METStop() <= tstart || cur.METStart() >= tstop {
			continue
		}
		if cur.METStart() < tstart {
			cur = cur.withStart(tstart)
		}
		if cur.METStop() > tstop {
			cur = cur.withStop(tstop)
		}
		if !cur.IsEmpty() {
			out = append(out, cur)
		}
	}
	l.ranges = out
}

// Not replaces the list by its complement within bound. The complement
// is taken over the full mission span and then clipped to bound.
func (l *RangeList) Not(bound Range) {
	if l.IsEmpty() {
		if !bound.IsEmpty() {
			l.ranges = []Range{bound}
		}
		return
	}

	base := l.ranges[0].Start()
	inv := make([]Range, 0, len(l.ranges)+1)
	prev := metFloor
	for _, cur := range l.ranges {
		inv = append(inv, NewRangeMET(base, prev, cur.METStart()))
		prev = cur.METStop()
	}
	inv = append(inv, NewRangeMET(base, prev, metCeiling))

	l.ranges = l.ranges[:0]
	for _, r := range inv {
		if !r.IsEmpty() {
			l.ranges = append(l.ranges, r)
		}
	}
	l.AndRange(bound)
}

// Format renders the list with UTC ordinal dates, one two-liner per
// range.
func (l *RangeList) Format() string {
	return l.format(Range.Format)
}

// FormatCal is Format with calendar dates.
func (l *RangeList) FormatCal() string {
	return l.format(Range.FormatCal)
}

func (l *RangeList) format(one func(Range) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ranges: %d, total: %.3f s\n", len(l.ranges), l.Total())
	for i, r := range l.ranges {
		fmt.Fprintf(&b, "[%d] %s\n", i, one(r))
	}
	return b.String()
}
