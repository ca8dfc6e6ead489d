package xtime

import "fmt"

// legacyParseMessage is the fixed string the original axTime utility printed
// for any malformed time value. Kept as the display message so callers that
// show errors verbatim stay compatible; the structured fields carry the
// specifics.
const legacyParseMessage = "Error: Incorrect time format; try again"

// ParseError reports an input value that does not match the grammar of its
// declared format: wrong field count, unparsable numeric token, or an
// out-of-range calendar component.
type ParseError struct {
	Value  string
	Format Format
	Reason string
}

func (e *ParseError) Error() string {
	return legacyParseMessage
}

// Detail describes what was wrong with the value, for diagnostics.
func (e *ParseError) Detail() string {
	return fmt.Sprintf("cannot parse %q as %s: %s", e.Value, e.Format, e.Reason)
}

// UnknownCodeError reports a system or format code that matches no
// recognized abbreviation.
type UnknownCodeError struct {
	Code string
	Kind string // "system" or "format"
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("Error: unrecognized %s code %q", e.Kind, e.Code)
}

// InvalidCombinationError reports a structurally meaningless pairing of
// system and format, or a format used with the wrong call (a date format on
// a numeric operation and vice versa).
type InvalidCombinationError struct {
	System System
	Format Format
	Reason string
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("Error: invalid %s/%s combination: %s", e.System, e.Format, e.Reason)
}
