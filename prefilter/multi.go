package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/corepat/literal"
	"github.com/coregx/corepat/simd"
)

// memchr2Prefilter searches for either of two bytes, as produced by /{ab}x/
// or /a.|b./.
type memchr2Prefilter struct {
	b1, b2 byte
}

func newMemchr2(b1, b2 byte) Prefilter {
	return &memchr2Prefilter{b1: b1, b2: b2}
}

// Find implements Prefilter.Find using simd.Memchr2.
func (p *memchr2Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr2(haystack[start:], p.b1, p.b2)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchr2Prefilter) HeapBytes() int {
	return 0
}

func (p *memchr2Prefilter) String() string {
	return "memchr2"
}

// memchr3Prefilter searches for any of three bytes.
type memchr3Prefilter struct {
	b1, b2, b3 byte
}

func newMemchr3(b1, b2, b3 byte) Prefilter {
	return &memchr3Prefilter{b1: b1, b2: b2, b3: b3}
}

// Find implements Prefilter.Find using simd.Memchr3.
func (p *memchr3Prefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr3(haystack[start:], p.b1, p.b2, p.b3)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchr3Prefilter) HeapBytes() int {
	return 0
}

func (p *memchr3Prefilter) String() string {
	return "memchr3"
}

// AhoCorasick searches for any of several literals at once with an
// Aho-Corasick automaton. It serves alternations such as /(GET|POST|PUT) /
// whose literals no single byte search can cover.
type AhoCorasick struct {
	auto     *ahocorasick.Automaton
	patterns [][]byte
}

func newAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	patterns := make([][]byte, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		patterns = append(patterns, lit.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto, patterns: patterns}, nil
}

// Find implements Prefilter.Find. The literals all have the same length,
// so the first occurrence the automaton reports is the leftmost one.
func (p *AhoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// Patterns returns the literals the automaton searches for.
func (p *AhoCorasick) Patterns() [][]byte {
	return p.patterns
}

// HeapBytes implements Prefilter.HeapBytes. It counts the pattern bytes;
// the automaton's own tables are not exposed.
func (p *AhoCorasick) HeapBytes() int {
	n := 0
	for _, pat := range p.patterns {
		n += len(pat)
	}
	return n
}

func (p *AhoCorasick) String() string {
	return "aho-corasick"
}
