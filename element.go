package corepat

import (
	"errors"
	"fmt"

	"github.com/coregx/corepat/matcher"
	"github.com/coregx/corepat/meta"
)

var (
	// ErrNoMatch is the panic value of a view requested while the last
	// Match or Find of its pattern failed.
	ErrNoMatch = errors.New("corepat: no match to inspect")

	// ErrStale is the panic value of a view used after a later Match or
	// Find on its pattern replaced the match it was taken from.
	ErrStale = errors.New("corepat: view used after the pattern was matched again")
)

// RangeError reports a group or occurrence index outside the valid range.
// It is raised with panic, like an out of range slice index.
type RangeError struct {
	What  string // "group" or "element"
	Index int
	Count int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("corepat: %s index %d out of range [0,%d)", e.What, e.Index, e.Count)
}

// Element is one matched occurrence of a parenthesized part of a pattern,
// or the whole match. Offsets are bytes.
//
// An Element stays valid until the next Match or Find on its pattern.
type Element struct {
	engine *meta.Engine
	pos    int // position of the element's entry on the result stack
	gen    uint64
}

func (e *Element) entry() matcher.Entry {
	if e.gen != e.engine.Generation() {
		panic(ErrStale)
	}
	return e.engine.Result().At(e.pos)
}

// Start returns the offset where the element begins.
func (e *Element) Start() int {
	return e.entry().Start
}

// End returns the offset just past the element.
func (e *Element) End() int {
	return e.entry().End
}

// Bytes returns the matched text as a slice of the subject.
func (e *Element) Bytes() []byte {
	en := e.entry()
	return e.engine.Subject()[en.Start:en.End:en.End]
}

// Value returns the matched text.
func (e *Element) Value() string {
	return string(e.Bytes())
}

// Count returns the number of groups directly inside the element.
func (e *Element) Count() int {
	return e.entry().NumSub
}

// Group returns the g-th group directly inside the element, counting
// opening parentheses from 0. It panics with *RangeError if g is not in
// [0, Count()).
func (e *Element) Group(g int) *Group {
	en := e.entry()
	if g < 0 || g >= en.NumSub {
		panic(&RangeError{What: "group", Index: g, Count: en.NumSub})
	}
	return &Group{
		engine: e.engine,
		occ:    e.engine.Result().Occurrences(e.pos, g),
		gen:    e.gen,
	}
}

// Group is the set of occurrences of one parenthesized part of a pattern
// within an enclosing element. A part under a repetition may occur any
// number of times, including zero.
type Group struct {
	engine *meta.Engine
	occ    []int // result stack positions, in match order
	gen    uint64
}

func (g *Group) check() {
	if g.gen != g.engine.Generation() {
		panic(ErrStale)
	}
}

// Count returns the number of occurrences.
func (g *Group) Count() int {
	g.check()
	return len(g.occ)
}

// Elem returns the i-th occurrence in match order. It panics with
// *RangeError if i is not in [0, Count()).
func (g *Group) Elem(i int) *Element {
	g.check()
	if i < 0 || i >= len(g.occ) {
		panic(&RangeError{What: "element", Index: i, Count: len(g.occ)})
	}
	return &Element{engine: g.engine, pos: g.occ[i], gen: g.gen}
}
