package tracefile

import (
	"testing"
)

func TestFuncIndex(t *testing.T) {
	trace := parseTrace(t,
		"STOP 3 STEP_INTO main",
		"STOP 7 STEP_OUT helper",
		"STOP 9 STEP_OVER main",
		"BREAK 12 CONTINUE helperDeep",
	)
	index := NewFuncIndex(trace)

	mains := index.Stops("main")
	if len(mains) != 2 || mains[0].Line != 3 || mains[1].Line != 9 {
		t.Fatalf("unexpected stops for main: %#v", mains)
	}

	if stops := index.Stops("nosuch"); stops != nil {
		t.Fatalf("expected no stops, got %#v", stops)
	}

	funcs := index.Funcs("helper")
	if len(funcs) != 2 || funcs[0] != "helper" || funcs[1] != "helperDeep" {
		t.Fatalf("unexpected prefix matches: %v", funcs)
	}

	all := index.Funcs("")
	if len(all) != 3 {
		t.Fatalf("expected 3 functions, got %v", all)
	}
}
