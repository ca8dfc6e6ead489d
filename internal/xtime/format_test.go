package xtime

import "testing"

func TestParseSystem(t *testing.T) {
	tests := []struct {
		code string
		want System
	}{
		{"m", MET},
		{"met", MET},
		{"t", TT},
		{"tt", TT},
		{"ta", TAI},
		{"tai", TAI},
		{"a", TAI},
		{"u", UTC},
		{"utc", UTC},
		{"U", UTC},
		{"TA", TAI},
		{" t ", TT},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseSystem(tt.code)
			if err != nil {
				t.Fatalf("ParseSystem(%q) error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("ParseSystem(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "x", "z9"} {
		if _, err := ParseSystem(bad); err == nil {
			t.Errorf("ParseSystem(%q) accepted an unknown code", bad)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		code    string
		want    Format
		wantDec int
	}{
		{"s", Seconds, 0},
		{"h", HexSeconds, 0},
		{"n", NumericDay, 0},
		{"j", JulianDay, 0},
		{"m", ModifiedJulianDay, 0},
		{"d", OrdinalDate, 0},
		{"d3", OrdinalDate, 3},
		{"c", CalendarDate, 0},
		{"c6", CalendarDate, 6},
		{"f", FitsDate, 0},
		{"f3", FitsDate, 3},
		{"F3", FitsDate, 3},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, dec, err := ParseFormat(tt.code)
			if err != nil {
				t.Fatalf("ParseFormat(%q) error: %v", tt.code, err)
			}
			if got != tt.want || dec != tt.wantDec {
				t.Errorf("ParseFormat(%q) = %v, %d, want %v, %d",
					tt.code, got, dec, tt.want, tt.wantDec)
			}
		})
	}

	for _, bad := range []string{"", "q", "d-1", "dx"} {
		if _, _, err := ParseFormat(bad); err == nil {
			t.Errorf("ParseFormat(%q) accepted an unknown code", bad)
		}
	}
}

func TestParseErrorDetail(t *testing.T) {
	err := &ParseError{Value: "bogus", Format: OrdinalDate, Reason: "want year:day:hour:minute:second"}
	if err.Error() != "Error: Incorrect time format; try again" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Detail() == err.Error() {
		t.Error("Detail() should carry the specifics, not the legacy message")
	}
}
