package matcher

import (
	"errors"
	"slices"
	"testing"

	"github.com/coregx/corepat/syntax"
)

func mustCompile(t *testing.T, pattern string, flags syntax.Flags) *Program {
	t.Helper()
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	prog, err := Compile(re)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return prog
}

func TestProgramMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    int
	}{
		{"literal prefix", "abc", "abcd", 3},
		{"literal mismatch", "abc", "abd", NoMatch},
		{"first alternative wins", "a|ab", "ab", 1},
		{"alternation backtracks", "(a|ab)c", "abc", 3},
		{"possessive keeps everything", "a+a", "aaa", NoMatch},
		{"greedy gives back", "a+*a", "aaa", 3},
		{"reluctant takes minimum", "a+?", "aaa", 1},
		{"reluctant extends on demand", "a+?b", "aaab", 4},
		{"set", "{a-c}+", "abcd", 3},
		{"negated set", "{!a-c}", "d", 1},
		{"negated set rejects member", "{!a-c}", "b", NoMatch},
		{"begin anchor", "^a", "a", 1},
		{"end anchor", "a$", "a", 1},
		{"end anchor fails early", "a$", "ab", NoMatch},
		{"bounded repeat", "a[2,3]", "aaaa", 3},
		{"exact repeat too short", "a[2]", "a", NoMatch},
		{"empty iteration stops", "(a*)*", "b", 0},
		{"nullable body under greedy", "(a**)**c", "aa", NoMatch},
		{"nullable body under greedy one or more", "(a**)+*b", "aab", 3},
		{"greedy optional under greedy", "(a?*)+*c", "aac", 3},
		{"nullable body under reluctant", "(a**)+?c", "aac", 3},
		{"empty first alternative under greedy", "(a??)**b", "ab", 2},
		{"empty first alternative under reluctant", "(a??)*?b", "ab", 2},
		{"empty first alternative with lower bound", "(a??)[1,]*b", "ab", 2},
		{"empty first alternative under possessive", "(a??)*b", "ab", 2},
		{"greedy group", "(a|b)**c", "abac", 4},
		{"greedy any", "(.**)(.)", "ab", 2},
		{"reluctant any", "(.*?)(.)", "ab", 1},
		{"optional", "ab?c", "ac", 2},
		{"nested alternation retry", "((a|ab)(c|bcd))(d*)", "abcd", 4},
		{"any byte at end", ".", "", NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustCompile(t, tt.pattern, 0)
			if got := prog.Match([]byte(tt.subject), 0); got != tt.want {
				t.Errorf("Match(%q, %q) = %d, want %d", tt.pattern, tt.subject, got, tt.want)
			}
			if tt.want == NoMatch && prog.Result().Len() != 0 {
				t.Errorf("failed match left %d result entries", prog.Result().Len())
			}
		})
	}
}

func TestProgramMatchUTF8(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    int
	}{
		{"é+", "ééx", 4},
		{".", "\xff", NoMatch},
		{".", "日", 3},
		{"{α-γ}", "β", 2},
		{"{!α-γ}", "δ", 2},
		{"{!α-γ}", "\xce", NoMatch},
		{"{a日}+", "a日b", 4},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog := mustCompile(t, tt.pattern, syntax.UTF8)
			if got := prog.Match([]byte(tt.subject), 0); got != tt.want {
				t.Errorf("Match(%q, %q) = %d, want %d", tt.pattern, tt.subject, got, tt.want)
			}
		})
	}
}

func TestProgramMatchOffset(t *testing.T) {
	prog := mustCompile(t, "b+", 0)
	s := []byte("abbc")
	if got := prog.Match(s, 0); got != NoMatch {
		t.Errorf("Match at 0 = %d, want NoMatch", got)
	}
	if got := prog.Match(s, 1); got != 3 {
		t.Errorf("Match at 1 = %d, want 3", got)
	}

	anchored := mustCompile(t, "^b", 0)
	if got := anchored.Match(s, 1); got != NoMatch {
		t.Errorf("^ matched at offset 1")
	}
}

// retries collects the end offsets produced by Match and every Retry until
// the alternatives are exhausted.
func retries(op Operator, s string) []int {
	b := []byte(s)
	var ends []int
	for j := op.Match(b, 0); j >= 0; j = op.Retry(b) {
		ends = append(ends, j)
	}
	return ends
}

func TestRetryOrder(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    []int
	}{
		{"a|ab|abc", "abc", []int{1, 2, 3}},
		{"a*", "aaa", []int{3}},
		{"a**", "aaa", []int{3, 2, 1, 0}},
		{"a*?", "aaa", []int{0, 1, 2, 3}},
		{"a[1,2]*", "aaa", []int{2, 1}},
		{"a[1,2]?", "aaa", []int{1, 2}},
		{"(a|ab)(c|bcd)", "abcd", []int{4, 3}},
		{"(a|ab)**", "abab", []int{1, 3, 4, 2, 0}},
		{"(a??)**", "aa", []int{2, 1, 0}},
		{"(a??)*?", "aa", []int{0, 1, 2}},
		{"(a**)**", "aa", []int{2, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog := mustCompile(t, tt.pattern, 0)
			got := retries(prog.Root(), tt.subject)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ends = %v, want %v", got, tt.want)
			}
			if n := prog.Result().Len(); n != 0 {
				t.Errorf("exhausted tree left %d result entries", n)
			}
		})
	}
}

func TestRollbackRestoresState(t *testing.T) {
	prog := mustCompile(t, "((a)+*b?)", 0)
	root := prog.Root()
	s := []byte("aab")

	if got := root.Match(s, 0); got != 3 {
		t.Fatalf("Match = %d, want 3", got)
	}
	if prog.Result().Len() == 0 {
		t.Fatal("no result entries after match")
	}
	root.Rollback()
	if n := prog.Result().Len(); n != 0 {
		t.Errorf("Rollback left %d result entries", n)
	}

	// The tree is usable again without Reset.
	if got := root.Match(s, 0); got != 3 {
		t.Errorf("Match after Rollback = %d, want 3", got)
	}
}

func TestResultOccurrences(t *testing.T) {
	prog := mustCompile(t, "(a)(b)", 0)
	if prog.Match([]byte("ab"), 0) != 2 {
		t.Fatal("no match")
	}
	r := prog.Result()
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	top := r.Len() - 1
	if e := r.At(top); e.Level != 0 || e.Start != 0 || e.End != 2 || e.NumSub != 2 {
		t.Errorf("root entry = %+v", e)
	}
	if got := r.Occurrences(top, 0); !slices.Equal(got, []int{0}) {
		t.Errorf("Occurrences(top, 0) = %v", got)
	}
	if got := r.Occurrences(top, 1); !slices.Equal(got, []int{1}) {
		t.Errorf("Occurrences(top, 1) = %v", got)
	}

	prog = mustCompile(t, "(a)+", 0)
	if prog.Match([]byte("aaa"), 0) != 3 {
		t.Fatal("no match")
	}
	r = prog.Result()
	occ := r.Occurrences(r.Len()-1, 0)
	if len(occ) != 3 {
		t.Fatalf("Occurrences = %v, want 3 positions", occ)
	}
	for k, pos := range occ {
		if e := r.At(pos); e.Start != k || e.End != k+1 {
			t.Errorf("occurrence %d = [%d,%d), want [%d,%d)", k, e.Start, e.End, k, k+1)
		}
	}
}

func TestResultNested(t *testing.T) {
	prog := mustCompile(t, "((a)(b))+(c)", 0)
	if prog.Match([]byte("ababc"), 0) != 5 {
		t.Fatal("no match")
	}
	r := prog.Result()
	top := r.Len() - 1

	outer := r.Occurrences(top, 0)
	if len(outer) != 2 {
		t.Fatalf("outer occurrences = %v, want 2", outer)
	}
	for k, pos := range outer {
		e := r.At(pos)
		if e.Start != 2*k || e.End != 2*k+2 {
			t.Errorf("outer %d = [%d,%d)", k, e.Start, e.End)
		}
		b := r.Occurrences(pos, 1)
		if len(b) != 1 || r.At(b[0]).Start != 2*k+1 {
			t.Errorf("outer %d: b occurrences = %v", k, b)
		}
	}
	c := r.Occurrences(top, 1)
	if len(c) != 1 || r.At(c[0]).Start != 4 {
		t.Errorf("c occurrences = %v", c)
	}
}

func TestProgramReuse(t *testing.T) {
	prog := mustCompile(t, "(a)+", 0)
	if prog.Match([]byte("aa"), 0) != 2 {
		t.Fatal("first match failed")
	}
	if prog.Match([]byte("a"), 0) != 1 {
		t.Fatal("second match failed")
	}
	if n := prog.Result().Len(); n != 2 {
		t.Errorf("Len = %d, want 2 (one a plus the whole match)", n)
	}
}

func TestResultPopPanics(t *testing.T) {
	catch := func(f func()) (err *InvariantError) {
		defer func() {
			if r := recover(); r != nil {
				e, ok := r.(error)
				if !ok || !errors.As(e, &err) {
					t.Fatalf("panic value %v, want *InvariantError", r)
				}
			}
		}()
		f()
		return nil
	}

	r := &Result{}
	err := catch(func() { r.Pop(0) })
	if err == nil || err.Got != -1 || err.Want != 0 {
		t.Errorf("empty pop: %v", err)
	}

	r.Push(Entry{Level: 1})
	err = catch(func() { r.Pop(0) })
	if err == nil || err.Got != 1 || err.Want != 0 {
		t.Errorf("mismatched pop: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("failed pop removed the entry")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		want    string
	}{
		{"abc", 0, "abc"},
		{"a+*b?{a-c}", 0, "a+*b?{a-c}"},
		{"{abc}", 0, "{a-c}"},
		{"{ba}", 0, "{ab}"},
		{"{!x}", 0, "{!x}"},
		{`{\-a}`, 0, `{\-a}`},
		{"x[2,]?", 0, "x[2,]?"},
		{"x[2]", 0, "x[2]"},
		{"x[0,1]", 0, "x?"},
		{"x[1,]", 0, "x+"},
		{"x[0,]*", 0, "x**"},
		{"(a|b)(c)", 0, "(a|b)(c)"},
		{`a\.\(`, 0, `a\.\(`},
		{"^a.$", 0, "^a.$"},
		{"{α-γ}é", syntax.UTF8, "{α-γ}é"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			prog := mustCompile(t, tt.pattern, tt.flags)
			got := prog.String()
			if got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
			// The canonical text parses to the same canonical text.
			if again := mustCompile(t, got, tt.flags).String(); again != got {
				t.Errorf("round trip = %q, want %q", again, got)
			}
		})
	}
}

func TestByteSetContains(t *testing.T) {
	s := NewByteSet([]rune{'0', '9', 0xF0, 0xFF}, false)
	for _, c := range []byte{'0', '5', '9', 0xF0, 0xFF} {
		if !s.Contains(c) {
			t.Errorf("Contains(%q) = false", c)
		}
	}
	for _, c := range []byte{'/', ':', 0xEF, 0} {
		if s.Contains(c) {
			t.Errorf("Contains(%q) = true", c)
		}
	}

	neg := NewByteSet([]rune{'a', 'a'}, true)
	if neg.Contains('a') || !neg.Contains('b') {
		t.Error("negated set membership wrong")
	}
}

func TestRuneSetContains(t *testing.T) {
	s := NewRuneSet([]rune{'a', 'a', 0xF8, 0x105, 'α', 'γ', '日', '日'}, false)
	for _, r := range []rune{'a', 0xF8, 0xFF, 0x100, 0x105, 'β', '日'} {
		if !s.Contains(r) {
			t.Errorf("Contains(%q) = false", r)
		}
	}
	for _, r := range []rune{'b', 0xF7, 0x106, 'δ', '月'} {
		if s.Contains(r) {
			t.Errorf("Contains(%q) = true", r)
		}
	}
}

func TestCompileRejectsBareTree(t *testing.T) {
	re, err := syntax.Parse("ab", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compile(re.Sub[0]); err == nil {
		t.Error("Compile accepted a tree without the level 0 capture")
	}
}
