// Package syntax parses corepat patterns into an abstract syntax tree.
//
// The syntax is deliberately small and is not Perl compatible:
//
//	expression = term {"|" term}
//	term       = factor {factor}
//	factor     = "^" | "$"
//	           | "." [quantifier]
//	           | "(" expression ")" [quantifier]
//	           | "{" set "}" [quantifier]
//	           | char [quantifier]
//	quantifier = ("?" | "+" | "*" | "[" min ["," [max]] "]") ["?" | "*"]
//	set        = ["!"] {char | char "-" char}
//
// Only the characters \ . | ( ) [ ] { } ? * + ^ $ may be escaped with a
// backslash. A quantifier without suffix is possessive, a trailing "*" makes
// it greedy and a trailing "?" makes it reluctant.
//
// In byte mode every factor stands for one byte. With the UTF8 flag every
// literal and set member is a whole code point and "." matches one well-formed
// UTF-8 sequence.
package syntax

import (
	"strconv"
	"strings"
)

// Flags control parsing.
type Flags uint8

const (
	// UTF8 parses the pattern as UTF-8 text: literals, sets and "." work on
	// code points instead of bytes.
	UTF8 Flags = 1 << iota
)

// Op is a node kind.
type Op uint8

// Node kinds.
const (
	OpLiteral   Op = iota + 1 // Text
	OpCharClass               // Class, Negate
	OpAnyChar                 // "."
	OpBeginText               // "^"
	OpEndText                 // "$"
	OpConcat                  // Sub...
	OpAlternate               // Sub[0] | Sub[1] | ...
	OpCapture                 // "(" Sub[0] ")"
	OpRepeat                  // Sub[0] quantified by Min, Max, Strategy
)

var opNames = [...]string{
	OpLiteral:   "literal",
	OpCharClass: "class",
	OpAnyChar:   "any",
	OpBeginText: "begin",
	OpEndText:   "end",
	OpConcat:    "concat",
	OpAlternate: "alternate",
	OpCapture:   "capture",
	OpRepeat:    "repeat",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "op" + strconv.Itoa(int(op))
}

// Strategy selects how a quantified factor gives back repetitions while
// backtracking.
type Strategy uint8

const (
	// Possessive consumes as many repetitions as possible and never gives
	// any back.
	Possessive Strategy = iota

	// Greedy consumes as many repetitions as possible, then gives them back
	// one at a time when the rest of the pattern fails.
	Greedy

	// Reluctant consumes the minimum number of repetitions, then takes one
	// more at a time when the rest of the pattern fails.
	Reluctant
)

func (s Strategy) String() string {
	switch s {
	case Possessive:
		return "possessive"
	case Greedy:
		return "greedy"
	case Reluctant:
		return "reluctant"
	}
	return "strategy" + strconv.Itoa(int(s))
}

// Unbounded is the Max of a repetition without upper limit.
const Unbounded = -1

// MaxRepeat is the largest count accepted in a "[min,max]" quantifier.
const MaxRepeat = 1000

// Regexp is a node of the syntax tree.
//
// The tree returned by Parse is always rooted at a capture with Level 0 that
// spans the whole pattern; its NumSub is the number of top level groups.
type Regexp struct {
	Op    Op
	Flags Flags
	Sub   []*Regexp

	// Text is the literal of an OpLiteral node. Adjacent unquantified
	// characters are merged into one node.
	Text []byte

	// Class holds the sorted, non-overlapping ranges of an OpCharClass node
	// as lo, hi pairs. Negate inverts membership.
	Class  []rune
	Negate bool

	// Min and Max bound an OpRepeat; Max is Unbounded for no upper limit.
	Min, Max int
	Strategy Strategy

	// Level is the nesting depth of an OpCapture (0 for the whole pattern),
	// Index its position among the captures directly inside the enclosing
	// capture and NumSub the number of captures directly inside it.
	Level, Index, NumSub int
}

// String returns a debug dump of the tree.
func (re *Regexp) String() string {
	var b strings.Builder
	re.dump(&b)
	return b.String()
}

func (re *Regexp) dump(b *strings.Builder) {
	b.WriteString(re.Op.String())
	switch re.Op {
	case OpLiteral:
		b.WriteByte('{')
		b.WriteString(strconv.Quote(string(re.Text)))
		b.WriteByte('}')
		return
	case OpCharClass:
		b.WriteByte('{')
		if re.Negate {
			b.WriteByte('!')
		}
		for i := 0; i+1 < len(re.Class); i += 2 {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(int(re.Class[i])))
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(int(re.Class[i+1])))
		}
		b.WriteByte('}')
		return
	case OpCapture:
		b.WriteString(strconv.Itoa(re.Level))
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(re.Index))
	case OpRepeat:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(re.Min))
		b.WriteByte(',')
		if re.Max != Unbounded {
			b.WriteString(strconv.Itoa(re.Max))
		}
		b.WriteByte(']')
		b.WriteString(re.Strategy.String())
	}
	if len(re.Sub) == 0 {
		return
	}
	b.WriteByte('{')
	for i, sub := range re.Sub {
		if i > 0 {
			b.WriteByte(' ')
		}
		sub.dump(b)
	}
	b.WriteByte('}')
}
