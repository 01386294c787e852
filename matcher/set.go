package matcher

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coregx/corepat/syntax"
)

// ByteSet matches one byte out of a set of bytes.
type ByteSet struct {
	bits   [4]uint64
	negate bool
	class  []rune
}

// NewByteSet builds a set from sorted lo, hi pairs of byte values. Members
// above 0xFF are ignored.
func NewByteSet(class []rune, negate bool) *ByteSet {
	s := &ByteSet{negate: negate, class: class}
	for i := 0; i+1 < len(class); i += 2 {
		lo, hi := class[i], min(class[i+1], 0xFF)
		for c := lo; c <= hi; c++ {
			s.bits[c>>6] |= 1 << (c & 63)
		}
	}
	return s
}

// Contains reports whether c belongs to the set, complement included.
func (s *ByteSet) Contains(c byte) bool {
	return (s.bits[c>>6]&(1<<(c&63)) != 0) != s.negate
}

// Match implements Operator.
func (s *ByteSet) Match(b []byte, i int) int {
	if i < len(b) && s.Contains(b[i]) {
		return i + 1
	}
	return NoMatch
}

// Retry implements Operator.
func (s *ByteSet) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (s *ByteSet) Rollback() {}

// Reset implements Operator.
func (s *ByteSet) Reset() {}

func (s *ByteSet) format(b *strings.Builder) {
	formatClass(b, s.class, s.negate, false)
}

// RuneSet matches one code point out of a set. Code points up to 0xFF are
// looked up in a bitmap, larger ones by binary search over sorted ranges.
type RuneSet struct {
	low    [4]uint64
	high   []rune // lo, hi pairs above 0xFF
	negate bool
	class  []rune
}

// NewRuneSet builds a set from sorted, non-overlapping lo, hi pairs.
func NewRuneSet(class []rune, negate bool) *RuneSet {
	s := &RuneSet{negate: negate, class: class}
	for i := 0; i+1 < len(class); i += 2 {
		lo, hi := class[i], class[i+1]
		for c := lo; c <= min(hi, 0xFF); c++ {
			s.low[c>>6] |= 1 << (c & 63)
		}
		if hi > 0xFF {
			s.high = append(s.high, max(lo, 0x100), hi)
		}
	}
	return s
}

// Contains reports whether r belongs to the set, complement included.
func (s *RuneSet) Contains(r rune) bool {
	return s.has(r) != s.negate
}

func (s *RuneSet) has(r rune) bool {
	if r <= 0xFF {
		return s.low[r>>6]&(1<<(r&63)) != 0
	}
	n := len(s.high) / 2
	k := sort.Search(n, func(k int) bool { return s.high[2*k+1] >= r })
	return k < n && s.high[2*k] <= r
}

// Match implements Operator.
func (s *RuneSet) Match(b []byte, i int) int {
	if i >= len(b) {
		return NoMatch
	}
	r, w := rune(b[i]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && w <= 1 {
			return NoMatch
		}
	}
	if s.Contains(r) {
		return i + w
	}
	return NoMatch
}

// Retry implements Operator.
func (s *RuneSet) Retry([]byte) int { return NoMatch }

// Rollback implements Operator.
func (s *RuneSet) Rollback() {}

// Reset implements Operator.
func (s *RuneSet) Reset() {}

func (s *RuneSet) format(b *strings.Builder) {
	formatClass(b, s.class, s.negate, true)
}

func formatClass(b *strings.Builder, class []rune, negate, utf8Mode bool) {
	b.WriteByte('{')
	if negate {
		b.WriteByte('!')
	}
	for i := 0; i+1 < len(class); i += 2 {
		lo, hi := class[i], class[i+1]
		writeSetChar(b, lo, utf8Mode)
		switch {
		case hi == lo:
		case hi == lo+1:
			writeSetChar(b, hi, utf8Mode)
		default:
			b.WriteByte('-')
			writeSetChar(b, hi, utf8Mode)
		}
	}
	b.WriteByte('}')
}

func writeSetChar(b *strings.Builder, r rune, utf8Mode bool) {
	if r < utf8.RuneSelf && syntax.IsSetSpecial(byte(r)) {
		b.WriteByte('\\')
	}
	if utf8Mode {
		b.WriteRune(r)
		return
	}
	b.WriteByte(byte(r))
}
