package xtime

import (
	"errors"
	"testing"
)

func TestSetDateValidation(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		format Format
	}{
		{"ordinal day zero", "1999:000:00:00:00", OrdinalDate},
		{"ordinal day 366 in a common year", "1999:366:00:00:00", OrdinalDate},
		{"ordinal wrong arity", "1999:204:23:54", OrdinalDate},
		{"calendar unknown month", "1999Xxx23 at 00:00:00", CalendarDate},
		{"calendar day past month end", "1999Jun31 at 00:00:00", CalendarDate},
		{"fits month 13", "1999-13-01T00:00:00", FitsDate},
		{"fits day 30 in february", "1999-02-30T00:00:00", FitsDate},
		{"garbage", "not-a-time", FitsDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(nil)
			err := tm.SetDate(tt.date, UTC, tt.format, nil)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("SetDate(%q) error = %v, want *ParseError", tt.date, err)
			}
		})
	}
}

// Every year divisible by 4 is a leap year in this calendar, including the
// century years the Gregorian rule would exclude.
func TestSetDateQuadrennialLeapRule(t *testing.T) {
	tm := New(nil)
	if err := tm.SetDate("2100:366:00:00:00", TT, OrdinalDate, nil); err != nil {
		t.Fatalf("SetDate() rejected day 366 of 2100: %v", err)
	}
	got, err := tm.GetDate(TT, FitsDate, 0)
	if err != nil {
		t.Fatalf("GetDate() error: %v", err)
	}
	if got != "2100-12-31T00:00:00" {
		t.Errorf("GetDate() = %q, want 2100-12-31T00:00:00", got)
	}
}

func TestSetDateFitsDateOnly(t *testing.T) {
	tm := New(nil)
	if err := tm.SetDate("1999-07-23", TT, FitsDate, nil); err != nil {
		t.Fatalf("SetDate() error: %v", err)
	}
	got, err := tm.GetDate(TT, OrdinalDate, 0)
	if err != nil {
		t.Fatalf("GetDate() error: %v", err)
	}
	if got != "1999:204:00:00:00" {
		t.Errorf("GetDate() = %q, want 1999:204:00:00:00", got)
	}
}

func TestGetDateDecimals(t *testing.T) {
	tm := New(nil)
	if err := tm.SetDate("1999:204:23:54:55.816", TT, OrdinalDate, nil); err != nil {
		t.Fatalf("SetDate() error: %v", err)
	}

	tests := []struct {
		dec  int
		want string
	}{
		{0, "1999:204:23:54:56"},
		{1, "1999:204:23:54:55.8"},
		{3, "1999:204:23:54:55.816"},
	}
	for _, tt := range tests {
		got, err := tm.GetDate(TT, OrdinalDate, tt.dec)
		if err != nil {
			t.Fatalf("GetDate() error: %v", err)
		}
		if got != tt.want {
			t.Errorf("GetDate(dec=%d) = %q, want %q", tt.dec, got, tt.want)
		}
	}
}

func TestGetDateFormats(t *testing.T) {
	tm := New(nil)
	if err := tm.SetDate("2005-08-31T23:59:27.816", TT, FitsDate, nil); err != nil {
		t.Fatalf("SetDate() error: %v", err)
	}

	tests := []struct {
		format Format
		want   string
	}{
		{OrdinalDate, "2005:243:23:59:27.816"},
		{CalendarDate, "2005Aug31 at 23:59:27.816"},
		{FitsDate, "2005-08-31T23:59:27.816"},
	}
	for _, tt := range tests {
		got, err := tm.GetDate(TT, tt.format, 3)
		if err != nil {
			t.Fatalf("GetDate() error: %v", err)
		}
		if got != tt.want {
			t.Errorf("GetDate(%v) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestGetDateInvalidFormat(t *testing.T) {
	tm := New(nil)
	_, err := tm.GetDate(TT, Seconds, 0)
	var cerr *InvalidCombinationError
	if !errors.As(err, &cerr) {
		t.Fatalf("GetDate(Seconds) error = %v, want *InvalidCombinationError", err)
	}
}
