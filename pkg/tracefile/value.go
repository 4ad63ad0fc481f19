package tracefile

import (
	"fmt"
	"math/big"
	"strconv"
)

// Value is a single expected debug value. It is a closed set of
// implementations, one per member kind of the trace format; composite
// values are represented by StructuredValue, every other kind is a leaf.
type Value interface {
	// TypeName returns the type name the debugger is expected to report
	// for this value.
	TypeName() string
	// Buggy reports whether this value is a known-incorrect or
	// approximate debug information result.
	Buggy() bool
	// String returns a short representation of the expected payload.
	String() string

	value()
}

// AnyValue matches any debugger value of the declared type. It carries
// no payload and can never be buggy.
type AnyValue struct {
	Type string
}

// CharValue is an expected single character value.
type CharValue struct {
	Type    string
	Value   rune
	IsBuggy bool
}

// IntValue is an expected integer value of arbitrary precision.
type IntValue struct {
	Type    string
	Value   *big.Int
	IsBuggy bool
}

// Float32Value is an expected 32-bit floating point value.
type Float32Value struct {
	Type    string
	Value   float32
	IsBuggy bool
}

// Float64Value is an expected 64-bit floating point value.
type Float64Value struct {
	Type    string
	Value   float64
	IsBuggy bool
}

// AddressValue is an expected pointer value, stored as the verbatim
// token from the trace file.
type AddressValue struct {
	Type    string
	Value   string
	IsBuggy bool
}

// ExactValue is an expected value compared by its exact string
// rendering.
type ExactValue struct {
	Type    string
	Value   string
	IsBuggy bool
}

// StructuredValue is an expected composite value with named members.
// Members accumulate while the value's directive block is open in the
// trace file and are fixed afterward.
type StructuredValue struct {
	Type    string
	IsBuggy bool
	Members MemberList
}

func (v *AnyValue) TypeName() string        { return v.Type }
func (v *CharValue) TypeName() string       { return v.Type }
func (v *IntValue) TypeName() string        { return v.Type }
func (v *Float32Value) TypeName() string    { return v.Type }
func (v *Float64Value) TypeName() string    { return v.Type }
func (v *AddressValue) TypeName() string    { return v.Type }
func (v *ExactValue) TypeName() string      { return v.Type }
func (v *StructuredValue) TypeName() string { return v.Type }

func (v *AnyValue) Buggy() bool        { return false }
func (v *CharValue) Buggy() bool       { return v.IsBuggy }
func (v *IntValue) Buggy() bool        { return v.IsBuggy }
func (v *Float32Value) Buggy() bool    { return v.IsBuggy }
func (v *Float64Value) Buggy() bool    { return v.IsBuggy }
func (v *AddressValue) Buggy() bool    { return v.IsBuggy }
func (v *ExactValue) Buggy() bool      { return v.IsBuggy }
func (v *StructuredValue) Buggy() bool { return v.IsBuggy }

func (v *AnyValue) String() string     { return "<any>" }
func (v *CharValue) String() string    { return strconv.QuoteRune(v.Value) }
func (v *IntValue) String() string     { return v.Value.String() }
func (v *Float32Value) String() string { return strconv.FormatFloat(float64(v.Value), 'g', -1, 32) }
func (v *Float64Value) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }
func (v *AddressValue) String() string { return v.Value }
func (v *ExactValue) String() string   { return v.Value }

func (v *StructuredValue) String() string {
	return fmt.Sprintf("%s{%d members}", v.Type, v.Members.Len())
}

// AddMember inserts a named member, overwriting any member already
// recorded under the same name.
func (v *StructuredValue) AddMember(name string, member Value) {
	v.Members.Insert(name, member)
}

func (v *AnyValue) value()        {}
func (v *CharValue) value()       {}
func (v *IntValue) value()        {}
func (v *Float32Value) value()    {}
func (v *Float64Value) value()    {}
func (v *AddressValue) value()    {}
func (v *ExactValue) value()      {}
func (v *StructuredValue) value() {}

// MemberList is a name to Value mapping that preserves insertion order.
// Inserting a name that is already present overwrites the value but
// keeps the name's original position.
type MemberList struct {
	names  []string
	values map[string]Value
}

// Insert adds or overwrites the value recorded under name.
func (m *MemberList) Insert(name string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// Get returns the value recorded under name.
func (m *MemberList) Get(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns the member names in insertion order. The returned slice
// must not be modified.
func (m *MemberList) Names() []string {
	return m.names
}

// Len returns the number of members.
func (m *MemberList) Len() int {
	return len(m.names)
}
