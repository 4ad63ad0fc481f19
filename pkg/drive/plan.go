// Package drive turns a parsed trace into the DAP requests a client
// must issue to replay it against a debug adapter.
package drive

import (
	"github.com/google/go-dap"

	"github.com/tracecheck/tracecheck/pkg/logflags"
	"github.com/tracecheck/tracecheck/pkg/tracefile"
)

// defaultThreadID is used for all stepping requests; the traces this
// package replays describe single threaded debuggees.
const defaultThreadID = 1

// Plan returns the ordered DAP requests to replay trace against the
// source file at sourcePath: one setBreakpoints request covering every
// requested breakpoint line, then one continuation request per stop.
// Stops with strategy None produce no request.
func Plan(trace *tracefile.Trace, sourcePath string) []dap.Message {
	seq := 0
	newRequest := func(command string) dap.Request {
		seq++
		return dap.Request{
			ProtocolMessage: dap.ProtocolMessage{Seq: seq, Type: "request"},
			Command:         command,
		}
	}

	var msgs []dap.Message

	if lines := trace.RequestedBreakpoints(); len(lines) > 0 {
		breakpoints := make([]dap.SourceBreakpoint, len(lines))
		for i, line := range lines {
			breakpoints[i] = dap.SourceBreakpoint{Line: line}
		}
		msgs = append(msgs, &dap.SetBreakpointsRequest{
			Request: newRequest("setBreakpoints"),
			Arguments: dap.SetBreakpointsArguments{
				Source:      dap.Source{Path: sourcePath},
				Breakpoints: breakpoints,
			},
		})
	}

	for _, stop := range trace.Stops() {
		switch stop.Strategy {
		case tracefile.StepInto:
			msgs = append(msgs, &dap.StepInRequest{
				Request:   newRequest("stepIn"),
				Arguments: dap.StepInArguments{ThreadId: defaultThreadID},
			})
		case tracefile.StepOut:
			msgs = append(msgs, &dap.StepOutRequest{
				Request:   newRequest("stepOut"),
				Arguments: dap.StepOutArguments{ThreadId: defaultThreadID},
			})
		case tracefile.StepOver:
			msgs = append(msgs, &dap.NextRequest{
				Request:   newRequest("next"),
				Arguments: dap.NextArguments{ThreadId: defaultThreadID},
			})
		case tracefile.Kill:
			msgs = append(msgs, &dap.TerminateRequest{
				Request: newRequest("terminate"),
			})
		case tracefile.Continue:
			msgs = append(msgs, &dap.ContinueRequest{
				Request:   newRequest("continue"),
				Arguments: dap.ContinueArguments{ThreadId: defaultThreadID},
			})
		case tracefile.Unwind:
			msgs = append(msgs, &dap.RestartFrameRequest{
				Request:   newRequest("restartFrame"),
				Arguments: dap.RestartFrameArguments{FrameId: 0},
			})
		case tracefile.None:
			// The debugger takes no action after this stop.
		}
	}

	logflags.DAPLogger().Debugf("planned %d requests for %d stops", len(msgs), len(trace.Stops()))
	return msgs
}
