package xtime

import (
	"strconv"
	"strings"
)

// System identifies one of the four supported time systems.
type System int

const (
	MET System = iota // Mission Elapsed Time: seconds since the reference epoch
	TT                // Terrestrial Time
	UTC               // Coordinated Universal Time
	TAI               // International Atomic Time
)

func (s System) String() string {
	switch s {
	case MET:
		return "MET"
	case TT:
		return "TT"
	case UTC:
		return "UTC"
	case TAI:
		return "TAI"
	}
	return "unknown"
}

// Format identifies one of the supported value representations.
type Format int

const (
	Seconds           Format = iota // decimal seconds since the reference epoch
	HexSeconds                      // integer seconds, hexadecimal
	NumericDay                      // day:hour:minute:second elapsed time
	JulianDay                       // fractional Julian Day
	ModifiedJulianDay               // fractional MJD (JD - 2400000.5)
	OrdinalDate                     // yyyy:ddd:hh:mm:ss.s...
	CalendarDate                    // yyyyMondd at hh:mm:ss.s...
	FitsDate                        // yyyy-mm-ddThh:mm:ss.s...
)

func (f Format) String() string {
	switch f {
	case Seconds:
		return "SECS"
	case HexSeconds:
		return "HEXSECS"
	case NumericDay:
		return "NUMDAY"
	case JulianDay:
		return "JD"
	case ModifiedJulianDay:
		return "MJD"
	case OrdinalDate:
		return "DATE"
	case CalendarDate:
		return "CALDATE"
	case FitsDate:
		return "FITS"
	}
	return "unknown"
}

// IsDate reports whether f is one of the textual date formats.
func (f Format) IsDate() bool {
	return f == OrdinalDate || f == CalendarDate || f == FitsDate
}

// ParseSystem interprets a time system code. Codes are case-insensitive and
// match on the first significant letters: m[et], t[t], ta[i] or a, u[tc].
func ParseSystem(code string) (System, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if c == "" {
		return 0, &UnknownCodeError{Code: code, Kind: "system"}
	}
	switch c[0] {
	case 'm':
		return MET, nil
	case 't':
		if len(c) > 1 && c[1] == 'a' {
			return TAI, nil
		}
		return TT, nil
	case 'a':
		return TAI, nil
	case 'u':
		return UTC, nil
	}
	return 0, &UnknownCodeError{Code: code, Kind: "system"}
}

// ParseFormat interprets a time format code: s, h, n, j, m, d[N], c[N],
// f[N], case-insensitive. The optional trailing digits on the date codes
// select the number of decimals in the seconds field (default 0).
func ParseFormat(code string) (Format, int, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if c == "" {
		return 0, 0, &UnknownCodeError{Code: code, Kind: "format"}
	}

	var f Format
	switch c[0] {
	case 's':
		f = Seconds
	case 'h':
		f = HexSeconds
	case 'n':
		f = NumericDay
	case 'j':
		f = JulianDay
	case 'm':
		f = ModifiedJulianDay
	case 'd':
		f = OrdinalDate
	case 'c':
		f = CalendarDate
	case 'f':
		f = FitsDate
	default:
		return 0, 0, &UnknownCodeError{Code: code, Kind: "format"}
	}

	dec := 0
	if f.IsDate() && len(c) > 1 {
		n, err := strconv.Atoi(c[1:])
		if err != nil || n < 0 {
			return 0, 0, &UnknownCodeError{Code: code, Kind: "format"}
		}
		dec = n
	}
	return f, dec, nil
}
