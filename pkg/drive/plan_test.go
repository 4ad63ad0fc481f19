package drive

import (
	"strings"
	"testing"

	"github.com/google/go-dap"

	"github.com/tracecheck/tracecheck/pkg/tracefile"
)

func parseTrace(t *testing.T, lines ...string) *tracefile.Trace {
	trace, err := tracefile.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return trace
}

func TestPlan(t *testing.T) {
	trace := parseTrace(t,
		"BREAK 3 STEP_INTO main",
		"STOP 5 STEP_OUT helper",
		"STOP 8 STEP_OVER main",
		"BREAK 3 CONTINUE main",
		"STOP 12 NONE main",
		"STOP 14 UNWIND main",
		"STOP 17 KILL main",
	)

	msgs := Plan(trace, "testee.c")
	if len(msgs) != 7 {
		t.Fatalf("expected 7 requests, got %d", len(msgs))
	}

	sbp, ok := msgs[0].(*dap.SetBreakpointsRequest)
	if !ok {
		t.Fatalf("expected *dap.SetBreakpointsRequest first, got %#v", msgs[0])
	}
	if sbp.Arguments.Source.Path != "testee.c" {
		t.Fatalf("expected source path %q, got %q", "testee.c", sbp.Arguments.Source.Path)
	}
	if len(sbp.Arguments.Breakpoints) != 1 || sbp.Arguments.Breakpoints[0].Line != 3 {
		t.Fatalf("expected a single breakpoint on line 3, got %#v", sbp.Arguments.Breakpoints)
	}

	if _, ok := msgs[1].(*dap.StepInRequest); !ok {
		t.Fatalf("expected *dap.StepInRequest, got %#v", msgs[1])
	}
	if _, ok := msgs[2].(*dap.StepOutRequest); !ok {
		t.Fatalf("expected *dap.StepOutRequest, got %#v", msgs[2])
	}
	if _, ok := msgs[3].(*dap.NextRequest); !ok {
		t.Fatalf("expected *dap.NextRequest, got %#v", msgs[3])
	}
	if _, ok := msgs[4].(*dap.ContinueRequest); !ok {
		t.Fatalf("expected *dap.ContinueRequest, got %#v", msgs[4])
	}
	// The NONE stop produces no request.
	if _, ok := msgs[5].(*dap.RestartFrameRequest); !ok {
		t.Fatalf("expected *dap.RestartFrameRequest, got %#v", msgs[5])
	}
	if _, ok := msgs[6].(*dap.TerminateRequest); !ok {
		t.Fatalf("expected *dap.TerminateRequest, got %#v", msgs[6])
	}
}

func TestPlanSeqNumbers(t *testing.T) {
	trace := parseTrace(t,
		"BREAK 3 CONTINUE main",
		"STOP 5 STEP_OVER main",
	)
	for i, msg := range Plan(trace, "testee.c") {
		var seq int
		switch msg := msg.(type) {
		case *dap.SetBreakpointsRequest:
			seq = msg.Seq
		case *dap.ContinueRequest:
			seq = msg.Seq
		case *dap.NextRequest:
			seq = msg.Seq
		default:
			t.Fatalf("unexpected request %#v", msg)
		}
		if seq != i+1 {
			t.Fatalf("expected seq %d at position %d, got %d", i+1, i, seq)
		}
	}
}

func TestPlanNoBreakpoints(t *testing.T) {
	trace := parseTrace(t,
		"STOP 5 STEP_OVER main",
	)
	msgs := Plan(trace, "testee.c")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(msgs))
	}
	if _, ok := msgs[0].(*dap.NextRequest); !ok {
		t.Fatalf("expected *dap.NextRequest, got %#v", msgs[0])
	}
}
