package tracefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Trace is the parsed content of one trace file: the expected stops in
// file order plus the global suspend-on-entry flag. A Trace is
// immutable once parsing has completed and is safe for unsynchronized
// concurrent reads.
type Trace struct {
	stops          []*Stop
	suspendOnEntry bool
}

// Stops returns the expected stops in file order. The returned slice
// must not be modified.
func (t *Trace) Stops() []*Stop {
	return t.stops
}

// SuspendOnEntry reports whether the trace requests suspending the
// debuggee as soon as it starts.
func (t *Trace) SuspendOnEntry() bool {
	return t.suspendOnEntry
}

// RequestedBreakpoints returns the distinct source lines on which a
// breakpoint must be set before running, in first occurrence order.
func (t *Trace) RequestedBreakpoints() []int {
	var lines []int
	seen := make(map[int]bool)
	for _, stop := range t.stops {
		if stop.NeedsBreakpoint && !seen[stop.Line] {
			seen[stop.Line] = true
			lines = append(lines, stop.Line)
		}
	}
	return lines
}

// Parse reads a trace from r. Lines containing only whitespace are
// ignored. The first format violation aborts the parse; there is no
// partial result.
func Parse(r io.Reader) (*Trace, error) {
	trace := &Trace{}
	p := newParser(trace)

	scan := bufio.NewScanner(r)
	for scan.Scan() {
		p.lineno++
		line := scan.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}

	p.log.Debugf("parsed %d stops", len(trace.stops))
	return trace, nil
}

// ParseFile reads the trace file at path. All errors carry path so that
// the failing fixture can be identified from a test log.
func ParseFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not read trace file %s: %w", path, err)
	}
	defer f.Close()

	trace, err := Parse(f)
	switch err := err.(type) {
	case nil:
		return trace, nil
	case *MalformedTraceError:
		err.Path = path
		return nil, err
	case *DuplicateLineError:
		err.Path = path
		return nil, err
	default:
		return nil, fmt.Errorf("could not read trace file %s: %w", path, err)
	}
}
