package matcher

import "strings"

// Element is a parenthesized sub-pattern. Each successful match of its body
// pushes one Entry onto the shared Result; Retry and Rollback pop exactly
// one, checking its level.
type Element struct {
	body   Operator
	level  int
	index  int
	numSub int
	result *Result
}

// NewElement wraps body as the element with the given nesting level, index
// among its siblings and number of direct sub-elements.
func NewElement(body Operator, level, index, numSub int, result *Result) *Element {
	return &Element{body: body, level: level, index: index, numSub: numSub, result: result}
}

// Match implements Operator.
func (e *Element) Match(s []byte, i int) int {
	j := e.body.Match(s, i)
	if j < 0 {
		return NoMatch
	}
	e.result.Push(Entry{Level: e.level, Start: i, End: j, Index: e.index, NumSub: e.numSub})
	return j
}

// Retry implements Operator.
func (e *Element) Retry(s []byte) int {
	entry := e.result.Pop(e.level)
	j := e.body.Retry(s)
	if j < 0 {
		return NoMatch
	}
	entry.End = j
	e.result.Push(entry)
	return j
}

// Rollback implements Operator.
func (e *Element) Rollback() {
	e.result.Pop(e.level)
	e.body.Rollback()
}

// Reset implements Operator.
func (e *Element) Reset() {
	e.body.Reset()
}

func (e *Element) format(b *strings.Builder) {
	if e.level == 0 {
		e.body.format(b)
		return
	}
	b.WriteByte('(')
	e.body.format(b)
	b.WriteByte(')')
}
