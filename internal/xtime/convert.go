package xtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sot/chandra-time/internal/leapsec"
)

// FormatAuto is the input-format code that asks Convert to deduce the
// numeric format from the value's magnitude: MJD below 100000, JD below
// 2500000, seconds above that.
const FormatAuto = "-"

// Convert parses valueIn in the input system and format, and renders it in
// the output system and format. System and format codes follow ParseSystem
// and ParseFormat; a decimal-count suffix on the output date format selects
// the seconds precision. This is the whole front-end contract in one call.
func Convert(table *leapsec.Table, valueIn, sysIn, fmtIn, sysOut, fmtOut string) (string, error) {
	return ConvertWithRef(table, valueIn, sysIn, fmtIn, sysOut, fmtOut, nil)
}

// ConvertWithRef is Convert with an optional reference-epoch override,
// interpreted in the input system.
func ConvertWithRef(table *leapsec.Table, valueIn, sysIn, fmtIn, sysOut, fmtOut string, ref *Ref) (string, error) {
	si, err := ParseSystem(sysIn)
	if err != nil {
		return "", err
	}
	so, err := ParseSystem(sysOut)
	if err != nil {
		return "", err
	}
	fo, dec, err := ParseFormat(fmtOut)
	if err != nil {
		return "", err
	}

	var fi Format
	if strings.TrimSpace(fmtIn) == FormatAuto {
		fi, err = deduceFormat(valueIn)
	} else {
		fi, _, err = ParseFormat(fmtIn)
	}
	if err != nil {
		return "", err
	}

	t := New(table)
	if err := setFromString(t, valueIn, si, fi, ref); err != nil {
		return "", err
	}
	return render(t, so, fo, dec)
}

// ParseValue parses valueIn the way Convert does and returns the instant
// itself, for callers that need more than the rendered string.
func ParseValue(table *leapsec.Table, valueIn, sysIn, fmtIn string) (*Time, error) {
	si, err := ParseSystem(sysIn)
	if err != nil {
		return nil, err
	}

	var fi Format
	if strings.TrimSpace(fmtIn) == FormatAuto {
		fi, err = deduceFormat(valueIn)
	} else {
		fi, _, err = ParseFormat(fmtIn)
	}
	if err != nil {
		return nil, err
	}

	t := New(table)
	if err := setFromString(t, valueIn, si, fi, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// deduceFormat guesses a numeric input format by magnitude, mirroring the
// legacy command line's behavior when no format was given.
func deduceFormat(valueIn string) (Format, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(valueIn), 64)
	if err != nil {
		return 0, &ParseError{Value: valueIn, Format: Seconds, Reason: "not numeric"}
	}
	switch {
	case v < 100000.0:
		return ModifiedJulianDay, nil
	case v < 2500000.0:
		return JulianDay, nil
	default:
		return Seconds, nil
	}
}

// setFromString parses the textual value per format and sets t.
func setFromString(t *Time, valueIn string, sys System, f Format, ref *Ref) error {
	s := strings.TrimSpace(valueIn)
	switch f {
	case Seconds, JulianDay, ModifiedJulianDay:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &ParseError{Value: valueIn, Format: f, Reason: "not numeric"}
		}
		return t.Set(v, sys, f, ref)

	case HexSeconds:
		h := strings.TrimPrefix(strings.ToLower(s), "0x")
		u, err := strconv.ParseUint(h, 16, 64)
		if err != nil {
			return &ParseError{Value: valueIn, Format: f, Reason: "not a hexadecimal integer"}
		}
		return t.Set(float64(u), sys, Seconds, ref)

	case NumericDay:
		secs, err := parseNumericDay(s)
		if err != nil {
			return &ParseError{Value: valueIn, Format: f, Reason: err.Error()}
		}
		return t.Set(secs, sys, Seconds, ref)

	case OrdinalDate, CalendarDate, FitsDate:
		return t.SetDate(valueIn, sys, f, ref)
	}
	return &UnknownCodeError{Code: f.String(), Kind: "format"}
}

// parseNumericDay parses the day:hour:minute:second elapsed-time form into
// seconds.
func parseNumericDay(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("want day:hour:minute:second")
	}
	day, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad day field")
	}
	hour, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad hour field")
	}
	minute, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad minute field")
	}
	sec, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return 0, fmt.Errorf("bad second field")
	}
	return float64(day)*86400 + float64(hour)*3600 + float64(minute)*60 + sec, nil
}

// render produces the output string for the chosen system and format.
func render(t *Time, sys System, f Format, dec int) (string, error) {
	switch f {
	case Seconds, JulianDay, ModifiedJulianDay, HexSeconds, NumericDay:
		base := f
		if f == HexSeconds || f == NumericDay {
			base = Seconds
		}
		v, err := t.Get(sys, base)
		if err != nil {
			return "", err
		}
		switch f {
		case HexSeconds:
			return fmt.Sprintf("0x%7x", uint64(v)), nil
		case NumericDay:
			day := int64(v) / 86400
			v -= float64(day) * 86400
			h := int64(v) / 3600
			v -= float64(h) * 3600
			m := int64(v) / 60
			v -= float64(m) * 60
			return fmt.Sprintf("%d:%d:%d:%.10f", day, h, m, v), nil
		default:
			return fmt.Sprintf("%.9f", v), nil
		}

	case OrdinalDate, CalendarDate, FitsDate:
		return t.GetDate(sys, f, dec)
	}
	return "", &UnknownCodeError{Code: f.String(), Kind: "format"}
}
