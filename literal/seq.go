// Package literal extracts literal byte sequences from parsed patterns.
//
// The primary use case is prefiltering unanchored searches: every match of
// /alpha=({0-9}+)/ starts with "alpha=", so a substring search for "alpha="
// proposes the only offsets worth handing to the backtracking matcher.
//
// Key concepts:
//   - A Literal is a concrete byte sequence a match starts with
//   - A Seq is a set of alternative literals (e.g. from /foo|bar/)
//   - Minimize and LongestCommonPrefix shrink a Seq for cheaper searching
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence extracted from a pattern. Complete is true when
// the sequence is everything the corresponding pattern part can match, which
// lets the extractor keep concatenating the following parts.
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hel+o/ → Literal{[]byte("hel"), false}
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debug representation: "literal{bytes, complete=true}".
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. A nil or empty Seq means nothing
// useful is known about how matches start.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence holds no literal.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every literal is complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		n = min(n, len(lit.Bytes))
	}
	return n
}

// Minimize removes literals made redundant by a shorter literal that is a
// prefix of them: any text starting with "foobar" also starts with "foo".
// Duplicates are removed as well.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(lit.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, lit)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return bytes.Clone(prefix)
}

// cross appends every literal of next to every complete literal of s. The
// result is bounded by maxLits literals of at most maxLen bytes; literals
// that hit the length bound become incomplete. It returns nil when the
// product would hold too many literals.
func (s *Seq) cross(next *Seq, maxLits, maxLen int) *Seq {
	out := make([]Literal, 0, s.Len()*next.Len())
	for _, a := range s.literals {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for _, b := range next.literals {
			joined := make([]byte, 0, len(a.Bytes)+len(b.Bytes))
			joined = append(joined, a.Bytes...)
			joined = append(joined, b.Bytes...)
			complete := b.Complete
			if len(joined) > maxLen {
				joined = joined[:maxLen]
				complete = false
			}
			out = append(out, Literal{Bytes: joined, Complete: complete})
		}
		if len(out) > maxLits {
			return nil
		}
	}
	return &Seq{literals: out}
}

// makeIncomplete marks every literal as a prefix only.
func (s *Seq) makeIncomplete() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}
