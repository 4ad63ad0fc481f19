package tracefile

import (
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/tracecheck/tracecheck/pkg/logflags"
)

// parser holds the state carried across directive lines. One parser
// instance parses exactly one trace file end to end; parsers for
// different files share nothing.
type parser struct {
	trace  *Trace
	lineno int
	buf    []string

	stop       *Stop
	scope      *Scope
	structured *StructuredValue
	parents    []*StructuredValue

	log *logrus.Entry
}

func newParser(trace *Trace) *parser {
	return &parser{trace: trace, log: logflags.ParserLogger()}
}

func (p *parser) malformed(reason string, cause error) error {
	return &MalformedTraceError{LineNo: p.lineno, Reason: reason, Cause: cause}
}

// next removes and returns the first token of the current line. A
// missing token is a format error; what names the expected token in the
// error message.
func (p *parser) next(what string) (string, error) {
	if len(p.buf) == 0 {
		return "", p.malformed("missing "+what, nil)
	}
	tok := p.buf[0]
	p.buf = p.buf[1:]
	return tok, nil
}

// parseLine dispatches one directive line and verifies that the line
// had no tokens beyond those the directive consumed.
func (p *parser) parseLine(line string) error {
	toks, err := splitTokens(line)
	if err != nil {
		return p.malformed(err.Error(), nil)
	}
	p.buf = toks

	directive, err := p.next("directive")
	if err != nil {
		return err
	}

	switch directive {
	case "SUSPEND":
		if p.stop != nil {
			return p.malformed("SUSPEND after the first stop", nil)
		}
		p.trace.suspendOnEntry = true

	case "STOP":
		err = p.parseStop(false)

	case "BREAK":
		err = p.parseStop(true)

	case "OPEN_SCOPE":
		err = p.parseOpenScope()

	case "MEMBER":
		err = p.parseMember()

	case "END_MEMBERS":
		if p.structured == nil {
			return p.malformed("END_MEMBERS without an open structured value", nil)
		}
		if n := len(p.parents); n == 0 {
			p.structured = nil
		} else {
			p.structured = p.parents[n-1]
			p.parents = p.parents[:n-1]
		}

	default:
		return p.malformed("unknown directive "+strconv.Quote(directive), nil)
	}

	if err != nil {
		return err
	}
	if len(p.buf) != 0 {
		return p.malformed(fmt.Sprintf("%d leftover token(s) after %s directive", len(p.buf), directive), nil)
	}
	return nil
}

func (p *parser) parseStop(needsBreakpoint bool) error {
	if p.structured != nil || len(p.parents) != 0 {
		return p.malformed("stop directive inside a structured value", nil)
	}

	lineStr, err := p.next("stop line number")
	if err != nil {
		return err
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return p.malformed("invalid stop line number "+strconv.Quote(lineStr), err)
	}
	if line <= 0 {
		return p.malformed(fmt.Sprintf("stop line number must be positive, got %d", line), nil)
	}
	if p.stop != nil && line == p.stop.Line {
		return &DuplicateLineError{LineNo: p.lineno, StopLine: line}
	}

	kw, err := p.next("continuation strategy")
	if err != nil {
		return err
	}
	strategy, ok := strategyFromKeyword(kw)
	if !ok {
		return p.malformed("unknown continuation strategy "+strconv.Quote(kw), nil)
	}

	fn, err := p.next("function name")
	if err != nil {
		return err
	}

	stop := &Stop{Line: line, Strategy: strategy, FunctionName: fn, NeedsBreakpoint: needsBreakpoint}
	p.trace.stops = append(p.trace.stops, stop)
	p.stop = stop
	p.scope = nil
	p.log.Debugf("expecting stop at line %d in %q, then %s", line, fn, strategy)
	return nil
}

func (p *parser) parseOpenScope() error {
	// The scope name is optional.
	var name string
	if len(p.buf) > 0 {
		name = p.buf[0]
		p.buf = p.buf[1:]
	}
	if p.structured != nil || len(p.parents) != 0 || p.stop == nil {
		return p.malformed("OPEN_SCOPE outside a stop", nil)
	}
	sc := &Scope{Name: name}
	p.stop.addScope(sc)
	p.scope = sc
	return nil
}

// parseBuggy consumes a trailing "buggy" token if present. A value
// without its own marker still counts as buggy while an enclosing
// structured value is buggy.
func (p *parser) parseBuggy() bool {
	if len(p.buf) > 0 && p.buf[0] == "buggy" {
		p.buf = p.buf[1:]
		return true
	}
	return p.structured != nil && p.structured.IsBuggy
}

// addValue inserts a named value into the innermost open structured
// value, or into the current scope if none is open.
func (p *parser) addValue(name string, v Value) error {
	if p.structured != nil {
		p.structured.AddMember(name, v)
		return nil
	}
	if p.scope == nil {
		return p.malformed("MEMBER without an open scope", nil)
	}
	p.scope.AddMember(name, v)
	return nil
}

func (p *parser) parseMember() error {
	kind, err := p.next("member kind")
	if err != nil {
		return err
	}
	typ, err := p.next("member type")
	if err != nil {
		return err
	}
	name, err := p.next("member name")
	if err != nil {
		return err
	}

	var v Value
	switch kind {
	case "any":
		v = &AnyValue{Type: typ}

	case "char":
		tok, err := p.next("character value")
		if err != nil {
			return err
		}
		if utf8.RuneCountInString(tok) != 1 {
			return p.malformed("character value must be a single character, got "+strconv.Quote(tok), nil)
		}
		r, _ := utf8.DecodeRuneInString(tok)
		v = &CharValue{Type: typ, Value: r, IsBuggy: p.parseBuggy()}

	case "int":
		tok, err := p.next("integer value")
		if err != nil {
			return err
		}
		i, ok := new(big.Int).SetString(tok, 10)
		if !ok {
			return p.malformed("invalid integer value "+strconv.Quote(tok), nil)
		}
		v = &IntValue{Type: typ, Value: i, IsBuggy: p.parseBuggy()}

	case "float32":
		tok, err := p.next("float32 value")
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return p.malformed("invalid float32 value "+strconv.Quote(tok), err)
		}
		v = &Float32Value{Type: typ, Value: float32(f), IsBuggy: p.parseBuggy()}

	case "float64":
		tok, err := p.next("float64 value")
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return p.malformed("invalid float64 value "+strconv.Quote(tok), err)
		}
		v = &Float64Value{Type: typ, Value: f, IsBuggy: p.parseBuggy()}

	case "address":
		tok, err := p.next("address value")
		if err != nil {
			return err
		}
		v = &AddressValue{Type: typ, Value: tok, IsBuggy: p.parseBuggy()}

	case "exact":
		tok, err := p.next("exact value")
		if err != nil {
			return err
		}
		v = &ExactValue{Type: typ, Value: tok, IsBuggy: p.parseBuggy()}

	case "structured":
		nv := &StructuredValue{Type: typ, IsBuggy: p.parseBuggy()}
		if err := p.addValue(name, nv); err != nil {
			return err
		}
		// The enclosing structured value, if any, stays open underneath
		// the new one until the matching END_MEMBERS.
		if p.structured != nil {
			p.parents = append(p.parents, p.structured)
		}
		p.structured = nv
		return nil

	default:
		return p.malformed("unknown member kind "+strconv.Quote(kind), nil)
	}

	return p.addValue(name, v)
}
