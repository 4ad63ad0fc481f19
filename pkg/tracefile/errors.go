package tracefile

import (
	"errors"
	"fmt"
)

var errUnterminatedQuote = errors.New("unterminated quoted token")

// MalformedTraceError is returned when a trace file violates the trace
// format. Parsing stops at the first violation; there is no partial
// result.
type MalformedTraceError struct {
	// Path of the trace file, if known.
	Path string
	// LineNo is the 1-based line number of the offending line, 0 if
	// unknown.
	LineNo int
	// Reason describes the violation.
	Reason string
	// Cause is the underlying error, if any (for example a failed
	// numeric conversion).
	Cause error
}

func (e *MalformedTraceError) Error() string {
	msg := "malformed trace"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.LineNo > 0 {
		msg += fmt.Sprintf(" line %d", e.LineNo)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *MalformedTraceError) Unwrap() error { return e.Cause }

// DuplicateLineError is returned when two consecutive stops request the
// same source line. The number of instructions belonging to one source
// line varies across optimization levels, so a trace requesting two
// consecutive stops on the same line cannot be replayed reliably.
type DuplicateLineError struct {
	// Path of the trace file, if known.
	Path string
	// LineNo is the 1-based line number of the offending directive.
	LineNo int
	// StopLine is the duplicated source line number.
	StopLine int
}

func (e *DuplicateLineError) Error() string {
	msg := "invalid trace"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.LineNo > 0 {
		msg += fmt.Sprintf(" line %d", e.LineNo)
	}
	return fmt.Sprintf("%s: subsequent stops on line %d", msg, e.StopLine)
}
