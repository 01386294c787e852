// Package corepat provides a backtracking pattern matcher with nested group
// capture.
//
// A pattern is compiled once into a tree of matcher operators and matched
// many times against different subjects. After a successful match the
// pattern itself is element 0: the whole match, whose groups can be walked
// down to any nesting level.
//
// Syntax:
//
//	abc        literal run
//	\x         escaped special character (one of \^$.|(){}[]*+?)
//	.          any byte (any code point in UTF-8 mode)
//	{a-z_}     set, {!0-9} its complement
//	(...)      element, captured as a group of its parent
//	a|b        alternation
//	^ $        start and end of the subject
//	* + ?      zero or more, one or more, zero or one
//	[n] [n,m] [n,]  counted repetition
//
// Repetitions are possessive by default. A trailing "*" makes one greedy
// (it gives back iterations on failure), a trailing "?" makes it reluctant.
//
// Basic usage:
//
//	p := corepat.MustCompile("({a-z}+)=({0-9}+)")
//	if p.MatchString("alpha=123", 0) {
//	    fmt.Println(p.Group(0).Elem(0).Value()) // "alpha"
//	    fmt.Println(p.Group(1).Elem(0).Value()) // "123"
//	}
//
// A compiled pattern and the views taken from it are not safe for
// concurrent use.
package corepat

import (
	"strconv"
	"strings"

	"github.com/coregx/corepat/meta"
	"github.com/coregx/corepat/syntax"
)

// Pattern is a compiled pattern with byte offsets.
//
// Example:
//
//	p := corepat.MustCompile("(ab)+")
//	if p.MatchString("ababx", 0) {
//	    println(p.End(), p.Group(0).Count()) // 4 2
//	}
type Pattern struct {
	engine *meta.Engine
}

// Compile compiles a pattern in byte mode.
//
// A malformed pattern yields a *syntax.Error carrying the byte offset of
// the problem.
//
// Example:
//
//	p, err := corepat.Compile("{a-z}+@{a-z}+")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(re string) (*Pattern, error) {
	return CompileWithConfig(re, meta.DefaultConfig())
}

// CompileUTF8 compiles a pattern in UTF-8 mode: literals, sets and "."
// match whole code points. Offsets are still reported in bytes; use
// CompileUnicode for code point offsets.
func CompileUTF8(re string) (*Pattern, error) {
	config := meta.DefaultConfig()
	config.UTF8 = true
	return CompileWithConfig(re, config)
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := corepat.DefaultConfig()
//	config.EnablePrefilter = false
//	p, err := corepat.CompileWithConfig("(GET|POST) /", config)
func CompileWithConfig(re string, config meta.Config) (*Pattern, error) {
	engine, err := meta.CompileWithConfig(re, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{engine: engine}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var keyValue = corepat.MustCompile("({a-z}+)=(.*)")
func MustCompile(re string) *Pattern {
	p, err := Compile(re)
	if err != nil {
		panic("corepat: Compile(`" + re + "`): " + err.Error())
	}
	return p
}

// Matches compiles re and matches it against subject at start.
// Use Compile when the pattern is matched more than once.
func Matches(re string, subject []byte, start int) (bool, error) {
	p, err := Compile(re)
	if err != nil {
		return false, err
	}
	return p.Match(subject, start), nil
}

// QuoteMeta returns a pattern matching the literal text s.
//
// Example:
//
//	corepat.QuoteMeta("1.5*2") // `1\.5\*2`
func QuoteMeta(s string) string {
	return syntax.QuoteMeta(s)
}

// Match reports whether the pattern matches subject starting exactly at
// offset start. The match need not extend to the end of subject.
//
// Every call invalidates the views taken after the previous one. A start
// outside [0, len(subject)] never matches.
func (p *Pattern) Match(subject []byte, start int) bool {
	return p.engine.Match(subject, start)
}

// MatchString is like Match but takes a string subject.
func (p *Pattern) MatchString(s string, start int) bool {
	return p.engine.Match([]byte(s), start)
}

// Find looks for the leftmost match starting at or after start. On success
// the pattern's views describe that match, exactly as after Match.
//
// Example:
//
//	p := corepat.MustCompile("{0-9}+")
//	if p.FindString("age: 42", 0) {
//	    fmt.Println(p.Start(), p.Value()) // 5 42
//	}
func (p *Pattern) Find(subject []byte, start int) bool {
	_, _, ok := p.engine.Find(subject, start)
	return ok
}

// FindString is like Find but takes a string subject.
func (p *Pattern) FindString(s string, start int) bool {
	_, _, ok := p.engine.Find([]byte(s), start)
	return ok
}

// Element returns the whole match as an element view.
// It panics with ErrNoMatch if the last Match or Find failed.
func (p *Pattern) Element() *Element {
	if !p.engine.Matched() {
		panic(ErrNoMatch)
	}
	return &Element{
		engine: p.engine,
		pos:    p.engine.Result().Len() - 1,
		gen:    p.engine.Generation(),
	}
}

// Start returns the byte offset where the last match begins.
func (p *Pattern) Start() int {
	return p.Element().Start()
}

// End returns the byte offset where the last match ends.
func (p *Pattern) End() int {
	return p.Element().End()
}

// Value returns the text of the last match.
func (p *Pattern) Value() string {
	return p.Element().Value()
}

// Bytes returns the last match as a slice of the subject.
func (p *Pattern) Bytes() []byte {
	return p.Element().Bytes()
}

// Count returns the number of top level groups of the pattern.
func (p *Pattern) Count() int {
	return p.engine.NumSub()
}

// Group returns the i-th top level group of the last match.
func (p *Pattern) Group(i int) *Group {
	return p.Element().Group(i)
}

// String returns the canonical text of the compiled pattern. Adjacent
// literals appear merged and sets appear sorted, so the result may differ
// from the source while compiling to the same matcher.
func (p *Pattern) String() string {
	return p.engine.String()
}

// Source returns the text the pattern was compiled from.
func (p *Pattern) Source() string {
	return p.engine.Pattern()
}

// UTF8 reports whether the pattern was compiled in UTF-8 mode.
func (p *Pattern) UTF8() bool {
	return p.engine.UTF8()
}

// ResultString renders the group tree of the last match: each element as
// its quoted value followed, if it has groups, by the groups in
// parentheses; each group as its occurrences in brackets. Siblings are
// separated by sep.
//
// Example:
//
//	p := corepat.MustCompile("({a-z}+)=({0-9}+)")
//	p.MatchString("alpha=123", 0)
//	p.ResultString(", ") // `"alpha=123"(["alpha"], ["123"])`
func (p *Pattern) ResultString(sep string) string {
	var b strings.Builder
	writeElement(&b, p.Element(), sep)
	return b.String()
}

func writeElement(b *strings.Builder, e *Element, sep string) {
	b.WriteString(strconv.Quote(e.Value()))
	n := e.Count()
	if n == 0 {
		return
	}
	b.WriteByte('(')
	for g := 0; g < n; g++ {
		if g > 0 {
			b.WriteString(sep)
		}
		group := e.Group(g)
		b.WriteByte('[')
		for i := 0; i < group.Count(); i++ {
			if i > 0 {
				b.WriteString(sep)
			}
			writeElement(b, group.Elem(i), sep)
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
}

// Strategy returns the search strategy Find uses for this pattern.
func (p *Pattern) Strategy() meta.Strategy {
	return p.engine.Strategy()
}

// Stats returns execution statistics.
func (p *Pattern) Stats() meta.Stats {
	return p.engine.Stats()
}

// ResetStats resets execution statistics to zero.
func (p *Pattern) ResetStats() {
	p.engine.ResetStats()
}
