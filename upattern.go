package corepat

import (
	"unicode/utf8"

	"github.com/coregx/corepat/meta"
	"github.com/coregx/corepat/simd"
)

// UPattern is a pattern compiled in UTF-8 mode whose offsets count code
// points instead of bytes.
//
// Example:
//
//	u := corepat.MustCompileUnicode("({α-ω}+)")
//	if u.Find("日本 αβγ", 0) {
//	    fmt.Println(u.Start(), u.End(), u.Value()) // 3 6 αβγ
//	}
type UPattern struct {
	p       *Pattern
	subject string

	// ascii is the byte offset of the first non-ASCII byte of subject, or
	// -1 if there is none. Below it byte and code point offsets coincide.
	ascii int
}

// CompileUnicode compiles a pattern in UTF-8 mode with code point offsets.
func CompileUnicode(re string) (*UPattern, error) {
	config := meta.DefaultConfig()
	config.UTF8 = true
	p, err := CompileWithConfig(re, config)
	if err != nil {
		return nil, err
	}
	return &UPattern{p: p, ascii: -1}, nil
}

// MustCompileUnicode is like CompileUnicode but panics if the pattern
// cannot be compiled.
func MustCompileUnicode(re string) *UPattern {
	u, err := CompileUnicode(re)
	if err != nil {
		panic("corepat: Compile(`" + re + "`): " + err.Error())
	}
	return u
}

// Match reports whether the pattern matches subject starting exactly at
// code point start.
func (u *UPattern) Match(subject string, start int) bool {
	b := u.load(subject)
	return u.p.Match(b, u.byteOffset(start))
}

// Find looks for the leftmost match starting at or after code point start.
func (u *UPattern) Find(subject string, start int) bool {
	b := u.load(subject)
	return u.p.Find(b, u.byteOffset(start))
}

func (u *UPattern) load(subject string) []byte {
	b := []byte(subject)
	u.subject = subject
	u.ascii = simd.FirstNonASCII(b)
	return b
}

// byteOffset converts a code point offset into the current subject to a
// byte offset. Offsets past the end map past the end.
func (u *UPattern) byteOffset(cp int) int {
	if cp < 0 || u.ascii < 0 || cp <= u.ascii {
		return cp
	}
	i, n := u.ascii, u.ascii
	for n < cp && i < len(u.subject) {
		_, w := utf8.DecodeRuneInString(u.subject[i:])
		i += w
		n++
	}
	if n < cp {
		return len(u.subject) + cp - n
	}
	return i
}

func (u *UPattern) codePoint(off int) int {
	if u.ascii < 0 || off <= u.ascii {
		return off
	}
	return u.ascii + utf8.RuneCountInString(u.subject[u.ascii:off])
}

// Element returns the whole match as an element view.
func (u *UPattern) Element() *UElement {
	return &UElement{e: u.p.Element(), u: u}
}

// Start returns the code point offset where the last match begins.
func (u *UPattern) Start() int {
	return u.Element().Start()
}

// End returns the code point offset where the last match ends.
func (u *UPattern) End() int {
	return u.Element().End()
}

// Value returns the text of the last match.
func (u *UPattern) Value() string {
	return u.Element().Value()
}

// Count returns the number of top level groups of the pattern.
func (u *UPattern) Count() int {
	return u.p.Count()
}

// Group returns the i-th top level group of the last match.
func (u *UPattern) Group(i int) *UGroup {
	return u.Element().Group(i)
}

// String returns the canonical text of the compiled pattern.
func (u *UPattern) String() string {
	return u.p.String()
}

// ResultString renders the group tree of the last match like
// Pattern.ResultString.
func (u *UPattern) ResultString(sep string) string {
	return u.p.ResultString(sep)
}

// Pattern returns the underlying byte offset pattern.
func (u *UPattern) Pattern() *Pattern {
	return u.p
}

// UElement is an Element with code point offsets.
type UElement struct {
	e *Element
	u *UPattern
}

// Start returns the code point offset where the element begins.
func (e *UElement) Start() int {
	return e.u.codePoint(e.e.Start())
}

// End returns the code point offset just past the element.
func (e *UElement) End() int {
	return e.u.codePoint(e.e.End())
}

// Value returns the matched text.
func (e *UElement) Value() string {
	return e.e.Value()
}

// Count returns the number of groups directly inside the element.
func (e *UElement) Count() int {
	return e.e.Count()
}

// Group returns the g-th group directly inside the element.
func (e *UElement) Group(g int) *UGroup {
	return &UGroup{g: e.e.Group(g), u: e.u}
}

// UGroup is a Group whose occurrences have code point offsets.
type UGroup struct {
	g *Group
	u *UPattern
}

// Count returns the number of occurrences.
func (g *UGroup) Count() int {
	return g.g.Count()
}

// Elem returns the i-th occurrence in match order.
func (g *UGroup) Elem(i int) *UElement {
	return &UElement{e: g.g.Elem(i), u: g.u}
}
