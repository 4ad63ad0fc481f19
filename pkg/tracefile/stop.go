package tracefile

import "fmt"

// ContinueStrategy is the stepping action the debugger is expected to
// take after it reaches a stop.
type ContinueStrategy int

const (
	// StepInto steps to the next source line, entering function calls.
	StepInto ContinueStrategy = iota
	// StepOut runs until the current function returns.
	StepOut
	// StepOver steps to the next source line, skipping function calls.
	StepOver
	// Kill terminates the debuggee.
	Kill
	// Continue resumes execution until the next breakpoint.
	Continue
	// Unwind restarts the current stack frame.
	Unwind
	// None takes no action.
	None
)

var strategyKeywords = map[string]ContinueStrategy{
	"STEP_INTO": StepInto,
	"STEP_OUT":  StepOut,
	"STEP_OVER": StepOver,
	"KILL":      Kill,
	"CONTINUE":  Continue,
	"UNWIND":    Unwind,
	"NONE":      None,
}

func strategyFromKeyword(kw string) (ContinueStrategy, bool) {
	s, ok := strategyKeywords[kw]
	return s, ok
}

func (s ContinueStrategy) String() string {
	for kw, s2 := range strategyKeywords {
		if s == s2 {
			return kw
		}
	}
	return fmt.Sprintf("ContinueStrategy(%d)", int(s))
}

// Stop is one expected debugger halt.
type Stop struct {
	// Line is the source line the debugger is expected to stop on.
	Line int
	// Strategy is the action to take after the stop has been verified.
	Strategy ContinueStrategy
	// FunctionName is the function the debugger is expected to stop in.
	FunctionName string
	// NeedsBreakpoint is set when the stop was declared with BREAK and a
	// breakpoint must be set on Line before running.
	NeedsBreakpoint bool

	scopes []*Scope
}

// Scopes returns the scopes expected at this stop, outermost first. The
// returned slice must not be modified.
func (s *Stop) Scopes() []*Scope {
	return s.scopes
}

func (s *Stop) addScope(sc *Scope) {
	s.scopes = append(s.scopes, sc)
}

// Scope is one variable scope expected to be visible at a stop.
type Scope struct {
	// Name of the scope, empty if the trace did not name it.
	Name string

	members MemberList
}

// AddMember records the expected value of a variable in this scope,
// overwriting an earlier expectation for the same name.
func (s *Scope) AddMember(name string, v Value) {
	s.members.Insert(name, v)
}

// Members returns the expected variables of this scope.
func (s *Scope) Members() *MemberList {
	return &s.members
}
