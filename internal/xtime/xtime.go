// Package xtime converts instants between the MET, TT, TAI, and UTC time
// systems and renders them in six formats: seconds (decimal, hexadecimal, or
// day:hour:minute:second), Julian Day, Modified Julian Day, ordinal date,
// calendar date, and FITS date-time strings.
//
// Every Time pivots internally on a split integer/fractional Modified Julian
// Day in the TT timescale. The other systems are additive views of that
// pivot: TAI differs from TT by exactly 32.184 s, UTC additionally by the
// accumulated leap seconds, and MET counts seconds from a configurable
// reference epoch (default 1998-01-01T00:00:00 TT, MJD 50814.0).
package xtime

import (
	"math"

	"github.com/sot/chandra-time/internal/leapsec"
)

const (
	// JD2MJD is the offset between Julian Day and Modified Julian Day.
	JD2MJD = 2400000.5
	// jdShiftDays is the integer part of JD2MJD; the remaining 0.5 shifts
	// the fractional part when a Julian Day is split onto the MJD pivot.
	jdShiftDays = 2400000
	// TAItoTT is the fixed TT - TAI offset in seconds.
	TAItoTT = 32.184
	// RefMJDInt is the default reference epoch, 1998-01-01T00:00:00 TT.
	RefMJDInt  = 50814
	RefMJDFrac = 0.0
	// refEpochLeaps is the leap-second count at the default reference epoch.
	refEpochLeaps = 31.0

	mjd1972 = 41317 // MJD of 1972-01-01, the calendar anchor
	day2sec = 86400.0
	sec2day = 1.0 / day2sec
)

// Ref overrides the reference epoch against which MET seconds are measured.
// It is interpreted in the time system of the Set call that carries it, as
// the original interface documented. Values with MJDInt <= 1 are ignored.
type Ref struct {
	MJDInt  int64
	MJDFrac float64
}

// Time is a single instant, pivoted on a TT-scale split MJD. The fractional
// part is kept normalized to [0,1); overflow carries into the integer part.
// Construct with New and one of the Set methods; after that only the
// correction-term and reference-epoch setters mutate it.
type Time struct {
	mjdInt   int64
	mjdFrac  float64
	timeZero float64 // correction term, days
	refInt   int64
	refFrac  float64
	myLeaps  float64 // leap seconds at this instant
	refLeaps float64 // leap seconds at the reference epoch
	inLeap   bool    // instant falls inside an inserted leap second

	table *leapsec.Table
}

// New returns a Time set to the default reference epoch. A nil table means
// the built-in leap-second table.
func New(table *leapsec.Table) *Time {
	if table == nil {
		table = leapsec.New()
	}
	return &Time{
		mjdInt:   RefMJDInt,
		mjdFrac:  RefMJDFrac,
		refInt:   RefMJDInt,
		refFrac:  RefMJDFrac,
		myLeaps:  refEpochLeaps,
		refLeaps: refEpochLeaps,
		table:    table,
	}
}

// leapsAt looks up the leap-second state for a TT-scale split MJD.
func (t *Time) leapsAt(mjdInt int64, frac float64) (float64, bool) {
	return t.table.At(mjdInt, frac-TAItoTT*sec2day)
}

// taiOffset returns the TT - TAI offset in seconds. TAI values fold this in
// when entering the TT pivot and fold it out on the way back, which is what
// keeps the TAI and TT seconds views numerically identical.
func taiOffset() float64 { return TAItoTT }

// Set sets the time from a single numeric value in the given system and
// format. Only Seconds, JulianDay, and ModifiedJulianDay are numeric
// formats; the hexadecimal and day-number renderings are front-end spellings
// of Seconds and the date formats go through SetDate.
func (t *Time) Set(v float64, sys System, f Format, ref *Ref) error {
	k := int64(v)
	return t.SetSplit(k, v-float64(k), sys, f, ref)
}

// SetSplit is the precision-preserving variant of Set: vi+vf is the value,
// split so that large day or second counts do not erode the fraction.
func (t *Time) SetSplit(vi int64, vf float64, sys System, f Format, ref *Ref) error {
	if ref != nil && ref.MJDInt > 1 {
		if err := t.setRef(ref.MJDInt, ref.MJDFrac, sys); err != nil {
			return err
		}
	}

	t.inLeap = false

	// Corrections relative to TT, in seconds, composed per system.
	total := 0.0

	var k int64
	var x float64
	switch f {
	case JulianDay, ModifiedJulianDay:
		if f == JulianDay {
			vi -= jdShiftDays
			vf -= 0.5
		}
		k = vi
		x = vf
		switch sys {
		case UTC:
			leap, inLeap := t.table.AtUTC(k, x+t.timeZero)
			t.myLeaps = leap
			t.inLeap = inLeap
			total += leap + taiOffset()
		case TAI:
			total += taiOffset()
		case TT, MET:
			// The pivot is already TT.
		}

	case Seconds:
		// Elapsed seconds since the reference epoch. Split the integer
		// seconds into days first so the fraction stays small.
		k = int64(float64(vi) * sec2day)
		x = float64(vi)*sec2day - float64(k)
		x += vf*sec2day + t.refFrac
		k += t.refInt
		switch sys {
		case UTC:
			// Referenced UTC arithmetic: remove the leap seconds already
			// baked into the reference, then add the ones in effect here.
			total -= t.refLeaps
			leap, inLeap := t.table.AtSeconds(float64(k) + x + t.timeZero)
			t.myLeaps = leap
			t.inLeap = inLeap
			total += leap
		case TAI, TT, MET:
			// Seconds are uniform in all three; nothing to add.
		}

	default:
		return &InvalidCombinationError{System: sys, Format: f,
			Reason: "not a numeric format"}
	}

	x += total * sec2day
	j := int64(math.Floor(x))
	t.mjdInt = k + j
	t.mjdFrac = x - float64(j)

	if sys != UTC {
		t.myLeaps, t.inLeap = t.leapsAt(t.mjdInt, t.mjdFrac+t.timeZero)
	}
	return nil
}

// setRef installs a caller-supplied reference epoch, interpreted in the
// system of the enclosing Set call: a UTC reference is converted through a
// scratch Time, a TAI reference gets the fixed offset, MET and TT are taken
// as already being on the pivot scale.
func (t *Time) setRef(mjdi int64, mjdf float64, sys System) error {
	switch sys {
	case UTC:
		scratch := New(t.table)
		if err := scratch.SetSplit(mjdi, mjdf, UTC, ModifiedJulianDay, nil); err != nil {
			return err
		}
		mjdi = scratch.mjdInt
		mjdf = scratch.mjdFrac
	case TAI:
		mjdf += taiOffset() * sec2day
		if mjdf < 0 {
			mjdf++
			mjdi--
		}
	}
	t.refInt = mjdi
	t.refFrac = mjdf
	t.refLeaps, _ = t.leapsAt(mjdi, mjdf)
	return nil
}

// SetTimeZero sets the additive correction term in seconds and refreshes the
// cached leap-second state for the corrected instant.
func (t *Time) SetTimeZero(seconds float64) {
	t.timeZero = seconds * sec2day
	t.myLeaps, t.inLeap = t.leapsAt(t.mjdInt, t.mjdFrac+t.timeZero)
}

// TimeZero returns the correction term in seconds.
func (t *Time) TimeZero() float64 {
	return t.timeZero * day2sec
}

// MET returns elapsed seconds since the reference epoch.
func (t *Time) MET() float64 {
	return (float64(t.mjdInt-t.refInt) + (t.mjdFrac - t.refFrac) + t.timeZero) * day2sec
}

// TT returns TT seconds since the reference epoch. MET is an offset view of
// TT, so the two are numerically identical.
func (t *Time) TT() float64 { return t.MET() }

// TAI returns TAI seconds since the reference epoch. The fixed offset is
// absorbed into the pivot, so this too equals MET.
func (t *Time) TAI() float64 { return t.MET() }

// UTC returns UTC seconds since the reference epoch: MET corrected for the
// leap seconds accumulated between the reference and this instant.
func (t *Time) UTC() float64 {
	return t.MET() - t.myLeaps + t.refLeaps
}

// InLeapSecond reports whether the instant falls inside an inserted leap
// second (the displayed 23:59:60).
func (t *Time) InLeapSecond() bool { return t.inLeap }

// LeapSeconds returns the cumulative leap-second count at this instant.
func (t *Time) LeapSeconds() float64 { return t.myLeaps }

// Derive returns a new Time sharing t's leap-second table, reference epoch,
// and correction term, set to the given MET seconds.
func (t *Time) Derive(metSeconds float64) *Time {
	d := *t
	// MET seconds always parse; the only Set errors are format mismatches.
	_ = d.Set(metSeconds, MET, Seconds, nil)
	return &d
}

// Get returns the time as a single numeric value in the given system and
// format: Seconds relative to the reference epoch, or JulianDay /
// ModifiedJulianDay.
func (t *Time) Get(sys System, f Format) (float64, error) {
	switch f {
	case Seconds:
		switch sys {
		case UTC:
			return t.UTC(), nil
		case TAI:
			return t.TAI(), nil
		case TT:
			return t.TT(), nil
		case MET:
			return t.MET(), nil
		}
	case JulianDay, ModifiedJulianDay:
		v := t.timeZero
		if f == JulianDay {
			v += JD2MJD
		}
		switch sys {
		case UTC:
			v -= (t.myLeaps + taiOffset()) * sec2day
		case TAI:
			v -= taiOffset() * sec2day
		case TT, MET:
		}
		return v + float64(t.mjdInt) + t.mjdFrac, nil
	}
	return 0, &InvalidCombinationError{System: sys, Format: f,
		Reason: "not a numeric format"}
}

// MJDParts returns the split MJD of the instant in the given system, with
// the fraction normalized to [0,1). The correction term is applied in every
// system.
func (t *Time) MJDParts(sys System) (int64, float64) {
	k := t.mjdInt
	x := t.mjdFrac + t.timeZero
	switch sys {
	case TAI:
		x -= taiOffset() * sec2day
	case UTC:
		x -= (taiOffset() + t.myLeaps) * sec2day
	case TT, MET:
	}
	for x < 0 {
		x++
		k--
	}
	for x >= 1 {
		x--
		k++
	}
	return k, x
}
