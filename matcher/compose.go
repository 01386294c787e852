package matcher

import "strings"

// And matches left followed by right.
//
// On failure of right, left is asked for its next alternative; on Retry,
// right is exhausted before left is retried. And keeps no state of its own:
// the frames of its children, pushed left first, encode where it stands.
type And struct {
	left, right Operator
}

// NewAnd returns the sequence of left and right.
func NewAnd(left, right Operator) *And {
	return &And{left: left, right: right}
}

// Match implements Operator.
func (a *And) Match(s []byte, i int) int {
	for j := a.left.Match(s, i); j >= 0; j = a.left.Retry(s) {
		if k := a.right.Match(s, j); k >= 0 {
			return k
		}
	}
	return NoMatch
}

// Retry implements Operator.
func (a *And) Retry(s []byte) int {
	if k := a.right.Retry(s); k >= 0 {
		return k
	}
	for j := a.left.Retry(s); j >= 0; j = a.left.Retry(s) {
		if k := a.right.Match(s, j); k >= 0 {
			return k
		}
	}
	return NoMatch
}

// Rollback implements Operator.
func (a *And) Rollback() {
	a.right.Rollback()
	a.left.Rollback()
}

// Reset implements Operator.
func (a *And) Reset() {
	a.left.Reset()
	a.right.Reset()
}

func (a *And) format(b *strings.Builder) {
	a.left.format(b)
	a.right.format(b)
}

// choice is the frame of an Or: where it started and which branch matched.
type choice struct {
	start int
	right bool
}

// Or matches left or, failing that, right. Within one frame it moves from
// left to right at most once and never back.
type Or struct {
	left, right Operator
	frames      []choice
}

// NewOr returns the ordered alternation of left and right.
func NewOr(left, right Operator) *Or {
	return &Or{left: left, right: right}
}

// Match implements Operator.
func (o *Or) Match(s []byte, i int) int {
	if j := o.left.Match(s, i); j >= 0 {
		o.frames = append(o.frames, choice{start: i})
		return j
	}
	if j := o.right.Match(s, i); j >= 0 {
		o.frames = append(o.frames, choice{start: i, right: true})
		return j
	}
	return NoMatch
}

// Retry implements Operator.
func (o *Or) Retry(s []byte) int {
	c := &o.frames[len(o.frames)-1]
	if !c.right {
		if j := o.left.Retry(s); j >= 0 {
			return j
		}
		c.right = true
		if j := o.right.Match(s, c.start); j >= 0 {
			return j
		}
	} else if j := o.right.Retry(s); j >= 0 {
		return j
	}
	o.frames = o.frames[:len(o.frames)-1]
	return NoMatch
}

// Rollback implements Operator.
func (o *Or) Rollback() {
	c := o.frames[len(o.frames)-1]
	o.frames = o.frames[:len(o.frames)-1]
	if c.right {
		o.right.Rollback()
	} else {
		o.left.Rollback()
	}
}

// Reset implements Operator.
func (o *Or) Reset() {
	o.frames = o.frames[:0]
	o.left.Reset()
	o.right.Reset()
}

func (o *Or) format(b *strings.Builder) {
	o.left.format(b)
	b.WriteByte('|')
	o.right.format(b)
}
