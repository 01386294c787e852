// Package prefilter provides fast candidate filtering for unanchored
// searches using literal prefixes extracted from a pattern.
//
// A prefilter proposes the offsets where a match could start: every match
// begins with one of the prefix literals, so offsets where none of them
// occurs are skipped without running the backtracking matcher.
//
// The builder selects a strategy from the extracted literals:
//   - Single byte → memchr
//   - Single substring, or a shared prefix of 2+ bytes → memmem
//   - Two or three single bytes → memchr2 / memchr3
//   - Any other set of literals → Aho-Corasick automaton
//
// Literals are first cut to a common length, so every strategy reports the
// leftmost candidate.
//
// Example usage:
//
//	re, _ := syntax.Parse("(hello|world)!", 0)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	pf := prefilter.NewBuilder(prefixes).Build()
//
//	pos := pf.Find([]byte("foo hello! bar"), 0)
//	// pos == 4
package prefilter

import (
	"github.com/coregx/corepat/literal"
	"github.com/coregx/corepat/simd"
)

// Prefilter finds candidate match positions before the matcher runs.
//
// A candidate is an offset where one of the prefix literals occurs. It does
// NOT guarantee a match; the caller verifies it with the matcher and, if that
// fails, continues from the next offset:
//
//	for pos := pf.Find(haystack, 0); pos >= 0; pos = pf.Find(haystack, pos+1) {
//	    if matchAt(haystack, pos) {
//	        return pos
//	    }
//	}
type Prefilter interface {
	// Find returns the first candidate at or after start, or -1.
	Find(haystack []byte, start int) int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int

	// String names the search strategy, e.g. "memmem".
	String() string
}

// Builder constructs a prefilter from extracted literals.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for the given prefix literals. A nil or empty
// sequence builds no prefilter.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter for the literals, or nil when no literal is
// known or the automaton cannot be built.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() || seq.MinLen() == 0 {
		return nil
	}
	seq = truncate(seq)

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchr(lit.Bytes[0])
		}
		return newMemmem(lit.Bytes)
	}

	// Every candidate starts with the common prefix, so it alone is searched.
	if lcp := seq.LongestCommonPrefix(); len(lcp) >= minCommonPrefix {
		return newMemmem(lcp)
	}

	if seq.Len() <= 3 && seq.MinLen() == 1 && maxLen(seq) == 1 {
		if seq.Len() == 2 {
			return newMemchr2(seq.Get(0).Bytes[0], seq.Get(1).Bytes[0])
		}
		return newMemchr3(seq.Get(0).Bytes[0], seq.Get(1).Bytes[0], seq.Get(2).Bytes[0])
	}

	pf, err := newAhoCorasick(seq)
	if err != nil {
		return nil
	}
	return pf
}

const minCommonPrefix = 2

// truncate cuts every literal to the length of the shortest one and drops
// duplicates. With needles of equal length the first occurrence to end is
// also the leftmost one to start.
func truncate(seq *literal.Seq) *literal.Seq {
	n := seq.MinLen()
	seen := make(map[string]bool, seq.Len())
	lits := make([]literal.Literal, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if lit.Len() > n {
			lit = literal.NewLiteral(lit.Bytes[:n], false)
		}
		if seen[string(lit.Bytes)] {
			continue
		}
		seen[string(lit.Bytes)] = true
		lits = append(lits, lit)
	}
	return literal.NewSeq(lits...)
}

func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle byte
}

func newMemchr(needle byte) Prefilter {
	return &memchrPrefilter{needle: needle}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return "memchr"
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	finder *simd.Finder
}

// newMemmem copies needle so the prefilter does not alias the literal.
func newMemmem(needle []byte) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)
	return &memmemPrefilter{finder: simd.NewFinder(needleCopy)}
}

// Find implements Prefilter.Find using a simd.Finder.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := p.finder.Find(haystack[start:])
	if idx == -1 {
		return -1
	}
	return start + idx
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.finder.Needle())
}

func (p *memmemPrefilter) String() string {
	return "memmem"
}
