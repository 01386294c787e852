// Fuzz tests comparing corepat against stdlib regexp.
//
// Patterns are generated from the fuzz input rather than parsed from it, so
// every input yields a valid pattern together with its regexp spelling.
// Without possessive repetitions a backtracking match explores every way
// to match, so the language accepted must agree with regexp:
//
//	go test -fuzz=FuzzMatch -fuzztime=30s
//	go test -fuzz=FuzzFindPrefilter -fuzztime=30s
package corepat

import (
	"regexp"
	"strings"
	"testing"
)

// patternGen builds a random pattern from a byte string. Every choice reads
// one byte; a zero byte (also returned once data runs out) picks the
// simplest option, so generation always terminates.
type patternGen struct {
	data       []byte
	pos        int
	possessive bool
}

func (g *patternGen) next() byte {
	if g.pos >= len(g.data) {
		return 0
	}
	b := g.data[g.pos]
	g.pos++
	return b
}

// pattern returns the corepat pattern and its regexp/syntax equivalent.
func (g *patternGen) pattern() (string, string) {
	pat, std := g.expr(3)
	if g.next()%5 == 1 {
		pat, std = "^"+pat, "^"+std
	}
	if g.next()%5 == 1 {
		pat, std = pat+"$", std+"$"
	}
	return pat, std
}

func (g *patternGen) expr(depth int) (string, string) {
	pat, std := g.term(depth)
	for g.next()%4 == 1 {
		p, s := g.term(depth)
		pat, std = pat+"|"+p, std+"|"+s
	}
	return pat, std
}

func (g *patternGen) term(depth int) (string, string) {
	var pat, std strings.Builder
	for n := 1 + int(g.next()%3); n > 0; n-- {
		p, s := g.factor(depth)
		pat.WriteString(p)
		std.WriteString(s)
	}
	return pat.String(), std.String()
}

func (g *patternGen) factor(depth int) (string, string) {
	var pat, std string
	switch k := g.next() % 8; {
	case k < 4:
		c := string(rune('a' + k%3))
		pat, std = c, c
	case k == 4:
		pat, std = ".", "(?s:.)"
	case k == 5:
		pat, std = "{ab}", "[ab]"
	case k == 6:
		pat, std = "{!a}", "[^a]"
	case depth > 0:
		p, s := g.expr(depth - 1)
		pat, std = "("+p+")", "("+s+")"
	default:
		pat, std = "c", "c"
	}
	return g.quantify(pat, std)
}

// quantify appends a greedy or reluctant quantifier, or a possessive one
// when the generator allows it. The regexp spelling of a possessive
// quantifier is meaningless and only used by self comparisons.
func (g *patternGen) quantify(pat, std string) (string, string) {
	var q, s string
	switch g.next() % 11 {
	case 4:
		q, s = "*", "*"
	case 5:
		q, s = "+", "+"
	case 6:
		q, s = "?", "?"
	case 7:
		q, s = "[1,2]", "{1,2}"
	case 8:
		return pat + "*?", std + "*?"
	case 9:
		return pat + "+?", std + "+?"
	case 10:
		return pat + "??", std + "??"
	default:
		return pat, std
	}
	if g.possessive && g.next()%3 == 1 {
		return pat + q, std + s
	}
	return pat + q + "*", std + s
}

// subjectFrom maps fuzz bytes onto a small alphabet so that generated
// patterns match often.
func subjectFrom(input []byte, alphabet string, limit int) []byte {
	if len(input) > limit {
		input = input[:limit]
	}
	out := make([]byte, len(input))
	for i, b := range input {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return out
}

func addSeeds(f *testing.F) {
	f.Add([]byte{7, 4, 4, 0, 9}, []byte{0, 0, 1})
	f.Add([]byte{7, 7, 0, 4, 4, 0, 4, 2, 0}, []byte{0, 0})
	f.Add([]byte{7, 7, 0, 10, 4, 2, 0}, []byte{0, 1})
	f.Add([]byte{1, 7, 0, 1, 0, 1, 1, 1, 0, 5}, []byte{2, 0, 1, 0, 1})
	f.Add([]byte{2, 5, 4, 6, 8, 1, 3, 0, 1, 1}, []byte{2, 1, 0, 2, 2, 1})
}

func FuzzMatch(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, shape, input []byte) {
		g := &patternGen{data: shape}
		pat, std := g.pattern()
		subject := subjectFrom(input, "abc", 12)

		p, err := Compile(pat)
		if err != nil {
			t.Fatalf("Compile(%q): %v", pat, err)
		}
		anchored := regexp.MustCompile(`^(?:` + std + `)`)
		if got, want := p.Match(subject, 0), anchored.Match(subject); got != want {
			t.Fatalf("%q Match(%q) = %v, regexp %q = %v", pat, subject, got, anchored, want)
		}

		loc := regexp.MustCompile(std).FindIndex(subject)
		found := p.Find(subject, 0)
		if found != (loc != nil) {
			t.Fatalf("%q Find(%q) = %v, regexp %q = %v", pat, subject, found, std, loc)
		}
		if found && p.Start() != loc[0] {
			t.Fatalf("%q Find(%q) start = %d, regexp %q start = %d", pat, subject, p.Start(), std, loc[0])
		}
	})
}

func FuzzFindPrefilter(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, shape, input []byte) {
		g := &patternGen{data: shape, possessive: true}
		pat, _ := g.pattern()
		subject := subjectFrom(input, "abcx", 24)

		withPF, err := Compile(pat)
		if err != nil {
			t.Fatalf("Compile(%q): %v", pat, err)
		}
		config := DefaultConfig()
		config.EnablePrefilter = false
		plain, err := CompileWithConfig(pat, config)
		if err != nil {
			t.Fatalf("CompileWithConfig(%q): %v", pat, err)
		}

		for start := 0; start <= len(subject); start++ {
			ok1 := withPF.Find(subject, start)
			ok2 := plain.Find(subject, start)
			if ok1 != ok2 {
				t.Fatalf("%q Find(%q, %d): %s = %v, plain = %v",
					pat, subject, start, withPF.Strategy(), ok1, ok2)
			}
			if ok1 && withPF.ResultString(",") != plain.ResultString(",") {
				t.Fatalf("%q Find(%q, %d): %s = %s, plain = %s", pat, subject, start,
					withPF.Strategy(), withPF.ResultString(","), plain.ResultString(","))
			}
		}
	})
}

func TestGeneratedPatternsCompile(t *testing.T) {
	shapes := [][]byte{
		nil,
		{7, 4, 4, 0, 9},
		{7, 7, 0, 10, 4, 2, 0},
		{1, 7, 0, 1, 0, 1, 1, 1, 0, 5},
		{255, 254, 253, 252, 251, 250, 249, 248, 247, 246, 245, 244},
	}
	for _, shape := range shapes {
		for _, possessive := range []bool{false, true} {
			g := &patternGen{data: shape, possessive: possessive}
			pat, std := g.pattern()
			if _, err := Compile(pat); err != nil {
				t.Errorf("Compile(%q): %v", pat, err)
			}
			if _, err := regexp.Compile(std); err != nil {
				t.Errorf("regexp.Compile(%q): %v", std, err)
			}
		}
	}
}
