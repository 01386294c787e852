package matcher

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/coregx/corepat/syntax"
)

// Leaves carry no per-match state: Retry always fails and Rollback and Reset
// have nothing to undo.

// Literal matches an exact byte run.
type Literal struct {
	text []byte
}

// NewLiteral returns an operator matching text.
func NewLiteral(text []byte) *Literal {
	return &Literal{text: text}
}

// Text returns the matched bytes.
func (l *Literal) Text() []byte {
	return l.text
}

// Match implements Operator.
func (l *Literal) Match(s []byte, i int) int {
	if bytes.HasPrefix(s[i:], l.text) {
		return i + len(l.text)
	}
	return NoMatch
}

// Retry implements Operator.
func (l *Literal) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (l *Literal) Rollback() {}

// Reset implements Operator.
func (l *Literal) Reset() {}

func (l *Literal) format(b *strings.Builder) {
	for _, c := range l.text {
		if syntax.IsSpecial(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
}

// AnyByte matches any single byte.
type AnyByte struct{}

// Match implements Operator.
func (AnyByte) Match(s []byte, i int) int {
	if i < len(s) {
		return i + 1
	}
	return NoMatch
}

// Retry implements Operator.
func (AnyByte) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (AnyByte) Rollback() {}

// Reset implements Operator.
func (AnyByte) Reset() {}

func (AnyByte) format(b *strings.Builder) { b.WriteByte('.') }

// AnyRune matches one well-formed UTF-8 encoded code point.
type AnyRune struct{}

// Match implements Operator.
func (AnyRune) Match(s []byte, i int) int {
	if i >= len(s) {
		return NoMatch
	}
	if s[i] < utf8.RuneSelf {
		return i + 1
	}
	r, w := utf8.DecodeRune(s[i:])
	if r == utf8.RuneError && w <= 1 {
		return NoMatch
	}
	return i + w
}

// Retry implements Operator.
func (AnyRune) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (AnyRune) Rollback() {}

// Reset implements Operator.
func (AnyRune) Reset() {}

func (AnyRune) format(b *strings.Builder) { b.WriteByte('.') }

// Begin matches the empty string at the beginning of the subject.
type Begin struct{}

// Match implements Operator.
func (Begin) Match(_ []byte, i int) int {
	if i == 0 {
		return 0
	}
	return NoMatch
}

// Retry implements Operator.
func (Begin) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (Begin) Rollback() {}

// Reset implements Operator.
func (Begin) Reset() {}

func (Begin) format(b *strings.Builder) { b.WriteByte('^') }

// End matches the empty string at the end of the subject.
type End struct{}

// Match implements Operator.
func (End) Match(s []byte, i int) int {
	if i == len(s) {
		return i
	}
	return NoMatch
}

// Retry implements Operator.
func (End) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (End) Rollback() {}

// Reset implements Operator.
func (End) Reset() {}

func (End) format(b *strings.Builder) { b.WriteByte('$') }

// Shared stateless leaves.
var (
	anyByte Operator = AnyByte{}
	anyRune Operator = AnyRune{}
	begin   Operator = Begin{}
	end     Operator = End{}
)
