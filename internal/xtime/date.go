package xtime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Month tables. The historical calendar arithmetic treats every year
// divisible by 4 as a leap year, with no century exception; that rule is a
// documented property of the format, not an oversight.
var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthLengths = [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int64) bool { return year%4 == 0 }

func daysInMonth(year int64, m int) int64 {
	if m == 1 && isLeapYear(year) {
		return 29
	}
	return monthLengths[m]
}

func maxDayOfYear(year int64) int64 {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// Date string grammars. The ordinal form is strictly five numeric fields;
// the calendar form uses a three-letter month abbreviation; the FITS form
// also accepts the three-field date-only variant.
var (
	ordinalRe = regexp.MustCompile(`^(\d+):(\d+):(\d+):(\d+):(\d+(?:\.\d*)?)$`)
	caldateRe = regexp.MustCompile(`^(\d+)([A-Za-z]{3})(\d+) +at +(\d+):(\d+):(\d+(?:\.\d*)?)$`)
	fitsRe    = regexp.MustCompile(`^(\d+)-(\d+)-(\d+)(?:T(\d+):(\d+):(\d+(?:\.\d*)?))?$`)
)

// SetDate sets the time from an ordinal, calendar, or FITS date string in
// the given system. Malformed strings yield a ParseError; using a numeric
// format here yields an InvalidCombinationError.
func (t *Time) SetDate(date string, sys System, f Format, ref *Ref) error {
	var year, doy, hour, minute int64
	var second float64

	s := strings.TrimSpace(date)
	fail := func(reason string) error {
		return &ParseError{Value: date, Format: f, Reason: reason}
	}

	switch f {
	case OrdinalDate:
		m := ordinalRe.FindStringSubmatch(s)
		if m == nil {
			return fail("want year:day:hour:minute:second")
		}
		year, _ = strconv.ParseInt(m[1], 10, 64)
		doy, _ = strconv.ParseInt(m[2], 10, 64)
		hour, _ = strconv.ParseInt(m[3], 10, 64)
		minute, _ = strconv.ParseInt(m[4], 10, 64)
		second, _ = strconv.ParseFloat(m[5], 64)
		if doy < 1 || doy > maxDayOfYear(year) {
			return fail(fmt.Sprintf("day %d out of range for year %d", doy, year))
		}

	case CalendarDate:
		m := caldateRe.FindStringSubmatch(s)
		if m == nil {
			return fail(`want yyyyMondd at hour:minute:second`)
		}
		year, _ = strconv.ParseInt(m[1], 10, 64)
		day, _ := strconv.ParseInt(m[3], 10, 64)
		hour, _ = strconv.ParseInt(m[4], 10, 64)
		minute, _ = strconv.ParseInt(m[5], 10, 64)
		second, _ = strconv.ParseFloat(m[6], 64)

		mon := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
		mi := -1
		for i, name := range monthNames {
			if name == mon {
				mi = i
				break
			}
		}
		if mi < 0 {
			return fail(fmt.Sprintf("unknown month %q", m[2]))
		}
		if day < 1 || day > daysInMonth(year, mi) {
			return fail(fmt.Sprintf("day %d out of range for %s %d", day, mon, year))
		}
		doy = day
		for i := 0; i < mi; i++ {
			doy += daysInMonth(year, i)
		}

	case FitsDate:
		m := fitsRe.FindStringSubmatch(s)
		if m == nil {
			return fail("want yyyy-mm-ddThh:mm:ss")
		}
		year, _ = strconv.ParseInt(m[1], 10, 64)
		mon, _ := strconv.ParseInt(m[2], 10, 64)
		day, _ := strconv.ParseInt(m[3], 10, 64)
		if m[4] != "" {
			hour, _ = strconv.ParseInt(m[4], 10, 64)
			minute, _ = strconv.ParseInt(m[5], 10, 64)
			second, _ = strconv.ParseFloat(m[6], 64)
		}
		if mon < 1 || mon > 12 {
			return fail(fmt.Sprintf("month %d out of range", mon))
		}
		if day < 1 || day > daysInMonth(year, int(mon-1)) {
			return fail(fmt.Sprintf("day %d out of range for month %d", day, mon))
		}
		doy = day
		for i := int64(0); i < mon-1; i++ {
			doy += daysInMonth(year, int(i))
		}

	default:
		return &InvalidCombinationError{System: sys, Format: f,
			Reason: "not a date format"}
	}

	// Day count from the 1972-01-01 anchor, with one leap day per year
	// divisible by 4 strictly before this one.
	day := doy + (year-1972)*365 - 1 + (year-1969)/4 + mjd1972
	frac := (second + float64(hour)*3600 + float64(minute)*60) * sec2day

	return t.SetSplit(day, frac, sys, ModifiedJulianDay, ref)
}

// GetDate renders the time as an ordinal, calendar, or FITS date string in
// the given system, with dec decimals in the seconds field.
func (t *Time) GetDate(sys System, f Format, dec int) (string, error) {
	if !f.IsDate() {
		return "", &InvalidCombinationError{System: sys, Format: f,
			Reason: "not a date format"}
	}

	k, x := t.MJDParts(sys)
	// Inside an inserted leap second the UTC day fraction has already
	// wrapped; step back one second so the decomposition lands on 23:59:60
	// instead of rolling into the next minute.
	showLeap := sys == UTC && t.inLeap
	if showLeap {
		x -= sec2day
	}
	for x < 0 {
		x++
		k--
	}
	for x >= 1 {
		x--
		k++
	}

	// Half a unit in the last decimal place, added before the split and
	// subtracted after, so 59.9999 does not display as 60.
	dsec := 0.5 * math.Pow(10, float64(-dec))

	day := k - mjd1972
	second := x*day2sec + dsec
	var hour, minute int64
	if showLeap {
		second++
		hour = int64(second) / 3600
		if hour > 23 {
			hour--
		}
		second -= float64(hour) * 3600
		minute = int64(second) / 60
		if minute > 59 {
			minute--
		}
		second -= float64(minute) * 60
	} else {
		hour = int64(second) / 3600
		second -= float64(hour) * 3600
		minute = int64(second) / 60
		second -= float64(minute) * 60
	}
	if hour > 23 {
		hour -= 24
		day++
	}
	second -= dsec
	if second < 0 {
		second = 0
	}

	// Split the day count into year and day-of-year, consuming the 366th
	// day of each fourth year.
	day++
	year := int64(1972)
	leapCycle := 0
	for day > 365 {
		if leapCycle == 0 {
			if day == 366 {
				break
			}
			day--
		}
		day -= 365
		year++
		leapCycle = (leapCycle + 1) % 4
	}

	var clock string
	if dec > 0 {
		clock = fmt.Sprintf("%02d:%02d:%0*.*f", hour, minute, dec+3, dec, second)
	} else {
		clock = fmt.Sprintf("%02d:%02d:%02.0f", hour, minute, second)
	}

	switch f {
	case OrdinalDate:
		return fmt.Sprintf("%4d:%03d:%s", year, day, clock), nil
	case CalendarDate, FitsDate:
		mon := 0
		for day > daysInMonth(year, mon) {
			day -= daysInMonth(year, mon)
			mon++
		}
		if f == CalendarDate {
			return fmt.Sprintf("%04d%s%02d at %s", year, monthNames[mon], day, clock), nil
		}
		return fmt.Sprintf("%04d-%02d-%02dT%s", year, mon+1, day, clock), nil
	}
	return "", &InvalidCombinationError{System: sys, Format: f, Reason: "not a date format"}
}
