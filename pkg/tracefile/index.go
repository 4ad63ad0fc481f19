package tracefile

import (
	"sort"

	"github.com/derekparker/trie"
)

// FuncIndex answers "which stops does the trace expect inside function
// F" without scanning the stop list, including prefix lookups for
// interactive use. Build it once per parsed trace.
type FuncIndex struct {
	funcs *trie.Trie
}

// NewFuncIndex indexes the stops of trace by function name.
func NewFuncIndex(trace *Trace) *FuncIndex {
	funcs := trie.New()
	for _, stop := range trace.Stops() {
		var stops []*Stop
		if node, ok := funcs.Find(stop.FunctionName); ok {
			stops = node.Meta().([]*Stop)
		}
		funcs.Add(stop.FunctionName, append(stops, stop))
	}
	return &FuncIndex{funcs: funcs}
}

// Stops returns the stops expected in the function named fn, in file
// order.
func (ix *FuncIndex) Stops(fn string) []*Stop {
	node, ok := ix.funcs.Find(fn)
	if !ok {
		return nil
	}
	return node.Meta().([]*Stop)
}

// Funcs returns the names of all functions with at least one expected
// stop whose name starts with prefix, sorted. An empty prefix returns
// every indexed function.
func (ix *FuncIndex) Funcs(prefix string) []string {
	var names []string
	if prefix == "" {
		names = ix.funcs.Keys()
	} else {
		names = ix.funcs.PrefixSearch(prefix)
	}
	sort.Strings(names)
	return names
}
