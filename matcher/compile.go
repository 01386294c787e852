package matcher

import (
	"fmt"

	"github.com/coregx/corepat/syntax"
)

// Program is a compiled pattern: the operator tree rooted at the level 0
// element and the result stack its elements share.
//
// A Program is reused across subjects; Match resets the state left by the
// previous successful match. It is not safe for concurrent use.
type Program struct {
	root   Operator
	result *Result
	numSub int
	utf8   bool
	dirty  bool
}

// Compile builds the operator tree for a syntax tree returned by
// syntax.Parse.
func Compile(re *syntax.Regexp) (*Program, error) {
	if re.Op != syntax.OpCapture || re.Level != 0 {
		return nil, fmt.Errorf("matcher: syntax tree must be rooted at the level 0 capture, got %s", re.Op)
	}
	c := &compiler{result: &Result{}, utf8: re.Flags&syntax.UTF8 != 0}
	root, err := c.compile(re)
	if err != nil {
		return nil, err
	}
	return &Program{root: root, result: c.result, numSub: re.NumSub, utf8: c.utf8}, nil
}

// Match resets the program if a previous match left state behind, then
// matches s anchored at offset i. It returns the end offset or NoMatch.
//
// After a successful match the newest Result entry is the whole match.
func (p *Program) Match(s []byte, i int) int {
	if p.dirty {
		p.Reset()
	}
	j := p.root.Match(s, i)
	p.dirty = j >= 0
	return j
}

// Reset clears every operator frame and the result stack.
func (p *Program) Reset() {
	p.root.Reset()
	p.result.Reset()
	p.dirty = false
}

// Result returns the shared result stack.
func (p *Program) Result() *Result {
	return p.result
}

// NumSub returns the number of top level elements.
func (p *Program) NumSub() int {
	return p.numSub
}

// UTF8 reports whether the program matches code points rather than bytes.
func (p *Program) UTF8() bool {
	return p.utf8
}

// Root returns the root operator.
func (p *Program) Root() Operator {
	return p.root
}

// String returns the canonical pattern text.
func (p *Program) String() string {
	return String(p.root)
}

type compiler struct {
	result *Result
	utf8   bool
}

func (c *compiler) compile(re *syntax.Regexp) (Operator, error) {
	switch re.Op {
	case syntax.OpLiteral:
		return NewLiteral(re.Text), nil

	case syntax.OpCharClass:
		if c.utf8 {
			return NewRuneSet(re.Class, re.Negate), nil
		}
		return NewByteSet(re.Class, re.Negate), nil

	case syntax.OpAnyChar:
		if c.utf8 {
			return anyRune, nil
		}
		return anyByte, nil

	case syntax.OpBeginText:
		return begin, nil

	case syntax.OpEndText:
		return end, nil

	case syntax.OpConcat:
		return c.fold(re.Sub, func(l, r Operator) Operator { return NewAnd(l, r) })

	case syntax.OpAlternate:
		return c.fold(re.Sub, func(l, r Operator) Operator { return NewOr(l, r) })

	case syntax.OpCapture:
		body, err := c.single(re)
		if err != nil {
			return nil, err
		}
		return NewElement(body, re.Level, re.Index, re.NumSub, c.result), nil

	case syntax.OpRepeat:
		body, err := c.single(re)
		if err != nil {
			return nil, err
		}
		return NewRepeat(body, re.Min, re.Max, re.Strategy), nil
	}
	return nil, fmt.Errorf("matcher: unsupported syntax node %s", re.Op)
}

func (c *compiler) single(re *syntax.Regexp) (Operator, error) {
	if len(re.Sub) != 1 {
		return nil, fmt.Errorf("matcher: %s node needs exactly one operand, got %d", re.Op, len(re.Sub))
	}
	return c.compile(re.Sub[0])
}

// fold compiles subs into a right-nested chain: join(s0, join(s1, s2)).
func (c *compiler) fold(subs []*syntax.Regexp, join func(l, r Operator) Operator) (Operator, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("matcher: empty operand list")
	}
	last, err := c.compile(subs[len(subs)-1])
	if err != nil {
		return nil, err
	}
	for i := len(subs) - 2; i >= 0; i-- {
		op, err := c.compile(subs[i])
		if err != nil {
			return nil, err
		}
		last = join(op, last)
	}
	return last, nil
}
