package geom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Edge names a side of a sibling's resolved rectangle.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

var edgeNames = map[Edge]string{
	EdgeLeft:   "left",
	EdgeRight:  "right",
	EdgeTop:    "top",
	EdgeBottom: "bottom",
}

func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return "none"
}

// Of returns the coordinate of edge e of r.
func (e Edge) Of(r Rect) float64 {
	switch e {
	case EdgeLeft:
		return r.Left()
	case EdgeRight:
		return r.Right()
	case EdgeTop:
		return r.Top()
	case EdgeBottom:
		return r.Bottom()
	default:
		return 0
	}
}

var (
	// ErrSyntax is returned for malformed geometry expressions.
	ErrSyntax = errors.New("geom: invalid expression")
	// ErrUnresolved is returned when a bound sibling has not been placed.
	ErrUnresolved = errors.New("geom: unresolved reference")
)

// Value is a single coordinate or dimension rule.
type Value struct {
	Percent float64 // 0-100 scale of the parent's size along the axis
	Offset  float64 // pixels
	Edge    Edge
	Ref     string // sibling name when Edge != EdgeNone
}

// Fixed returns a Value of n pixels.
func Fixed(n float64) Value {
	return Value{Offset: n}
}

// Percent returns a Value of p percent (0-100) of the parent's size.
func Percent(p float64) Value {
	return Value{Percent: p}
}

// PercentOffset returns p percent of the parent's size plus off pixels.
func PercentOffset(p, off float64) Value {
	return Value{Percent: p, Offset: off}
}

// Bind returns a Value tied to edge e of sibling ref, plus off pixels.
func Bind(e Edge, ref string, off float64) Value {
	return Value{Edge: e, Ref: ref, Offset: off}
}

// IsBound reports whether v refers to a sibling.
func (v Value) IsBound() bool {
	return v.Edge != EdgeNone
}

// Resolve computes v in pixels. available is the parent's size along the
// axis; lookup returns the resolved rect of an earlier sibling.
func (v Value) Resolve(available float64, lookup func(name string) (Rect, bool)) (float64, error) {
	if v.IsBound() {
		if lookup == nil {
			return 0, fmt.Errorf("%w: %s(%s)", ErrUnresolved, v.Edge, v.Ref)
		}
		r, ok := lookup(v.Ref)
		if !ok {
			return 0, fmt.Errorf("%w: %s(%s)", ErrUnresolved, v.Edge, v.Ref)
		}
		return v.Edge.Of(r) + v.Offset, nil
	}
	return available*v.Percent/100.0 + v.Offset, nil
}

// String formats v in the same syntax Parse accepts.
func (v Value) String() string {
	var head string
	switch {
	case v.IsBound():
		head = fmt.Sprintf("%s(%s)", v.Edge, v.Ref)
	case v.Percent != 0:
		head = formatFloat(v.Percent) + "%"
	default:
		return formatFloat(v.Offset)
	}
	switch {
	case v.Offset > 0:
		return head + " + " + formatFloat(v.Offset)
	case v.Offset < 0:
		return head + " - " + formatFloat(-v.Offset)
	default:
		return head
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Parse reads a geometry expression:
//
//	15            fixed pixels
//	50%           percent of the parent's size
//	100% - 21     percent plus offset
//	right(a) - 20 edge of sibling a plus offset
func Parse(s string) (Value, error) {
	p := parser{src: strings.TrimSpace(s)}
	if p.src == "" {
		return Value{}, fmt.Errorf("%w: empty", ErrSyntax)
	}
	v, err := p.term()
	if err != nil {
		return Value{}, err
	}
	for {
		p.skipSpace()
		if p.done() {
			return v, nil
		}
		sign := 1.0
		switch p.src[p.pos] {
		case '+':
		case '-':
			sign = -1
		default:
			return Value{}, p.errorf("expected + or -")
		}
		p.pos++
		p.skipSpace()
		n, err := p.number()
		if err != nil {
			return Value{}, err
		}
		v.Offset += sign * n
	}
}

// MustParse is like Parse but panics on error. Only for literals.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(msg string) error {
	return fmt.Errorf("%w: %q at %d: %s", ErrSyntax, p.src, p.pos, msg)
}

func (p *parser) term() (Value, error) {
	if isLetter(p.src[p.pos]) {
		return p.binding()
	}
	n, err := p.number()
	if err != nil {
		return Value{}, err
	}
	if !p.done() && p.src[p.pos] == '%' {
		p.pos++
		return Percent(n), nil
	}
	return Fixed(n), nil
}

func (p *parser) binding() (Value, error) {
	start := p.pos
	for !p.done() && isLetter(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[start:p.pos]
	edge := EdgeNone
	for e, name := range edgeNames {
		if name == word {
			edge = e
		}
	}
	if edge == EdgeNone {
		return Value{}, p.errorf("unknown edge " + strconv.Quote(word))
	}
	if p.done() || p.src[p.pos] != '(' {
		return Value{}, p.errorf("expected (")
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], ')')
	if end < 0 {
		return Value{}, p.errorf("expected )")
	}
	ref := strings.TrimSpace(p.src[p.pos : p.pos+end])
	if ref == "" {
		return Value{}, p.errorf("empty reference")
	}
	p.pos += end + 1
	return Bind(edge, ref, 0), nil
}

func (p *parser) number() (float64, error) {
	start := p.pos
	if !p.done() && p.src[p.pos] == '-' {
		p.pos++
	}
	for !p.done() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("expected number")
	}
	return n, nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
