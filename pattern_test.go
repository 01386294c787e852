package corepat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/corepat/meta"
	"github.com/coregx/corepat/syntax"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		wantErr error
	}{
		{"hello", nil},
		{"({a-z}+)=({0-9}+)", nil},
		{"(a|b)**c", nil},
		{"{z-a}", syntax.ErrInvertedRange},
		{`\x`, syntax.ErrInvalidEscape},
		{"(abc", syntax.ErrMissingParen},
		{"abc)", syntax.ErrUnexpectedParen},
		{"a[0]", syntax.ErrInvalidRepeat},
		{"", syntax.ErrEmptyTerm},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Compile(tt.pattern)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, p)
				return
			}
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
			var serr *syntax.Error
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.PanicsWithValue(t,
		"corepat: Compile(`(abc`): corepat: missing closing ) at offset 4 in pattern \"(abc\"",
		func() { MustCompile("(abc") })
	assert.NotPanics(t, func() { MustCompile("abc") })
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxNestingDepth = 0
	_, err := CompileWithConfig("abc", config)
	var cerr *meta.ConfigError
	assert.ErrorAs(t, err, &cerr)

	config = DefaultConfig()
	config.EnablePrefilter = false
	p, err := CompileWithConfig("hello", config)
	require.NoError(t, err)
	assert.Equal(t, meta.UseBacktrack, p.Strategy())
	assert.True(t, p.FindString("say hello", 0))
	assert.Equal(t, 4, p.Start())
}

func TestLiteralExactness(t *testing.T) {
	texts := []string{
		"hello",
		"a.b*c",
		"(x|y)",
		"{a-z}",
		"[1,2]",
		`back\slash`,
		"^start$",
		"q?+!",
		"-!",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			p := MustCompile(QuoteMeta(text))
			require.True(t, p.MatchString(text, 0))
			assert.Equal(t, 0, p.Start())
			assert.Equal(t, len(text), p.End())
			assert.Equal(t, text, p.Value())

			assert.True(t, p.MatchString("x"+text+"x", 1))
			assert.Equal(t, len(text)+1, p.End())

			assert.False(t, p.MatchString(text[:len(text)-1], 0))
			assert.False(t, p.MatchString("x"+text, 0))
		})
	}
}

func TestAnchors(t *testing.T) {
	p := MustCompile("^abc")
	assert.True(t, p.MatchString("abcd", 0))
	assert.False(t, p.MatchString("xabc", 1))
	assert.False(t, p.FindString("xabc", 0))

	p = MustCompile("abc$")
	assert.True(t, p.MatchString("abc", 0))
	assert.False(t, p.MatchString("abcd", 0))
	require.True(t, p.FindString("abcabc", 0))
	assert.Equal(t, 3, p.Start())

	p = MustCompile("^$")
	assert.True(t, p.MatchString("", 0))
	assert.False(t, p.MatchString("a", 0))
}

func TestOptionalShorthand(t *testing.T) {
	pairs := [][2]string{
		{"ab?c", "ab[0,1]c"},
		{"(x)?y", "(x)[0,1]y"},
		{"a?*b", "a[0,1]*b"},
		{"a??b", "a[0,1]?b"},
	}
	subjects := []string{"", "b", "ab", "aab", "ac", "abc", "abbc", "xy", "y", "xxy"}

	for _, pair := range pairs {
		t.Run(pair[0], func(t *testing.T) {
			short := MustCompile(pair[0])
			long := MustCompile(pair[1])
			assert.Equal(t, short.String(), long.String())

			for _, s := range subjects {
				ok := short.MatchString(s, 0)
				require.Equal(t, ok, long.MatchString(s, 0), "subject %q", s)
				if !ok {
					continue
				}
				assert.Equal(t, short.End(), long.End(), "subject %q", s)
				assert.Equal(t, short.ResultString(","), long.ResultString(","), "subject %q", s)
			}
		})
	}
}

func TestRepetitionStrategies(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		matched bool
		groups  []string
	}{
		{"(.**)(.)", "abcd", true, []string{"abc", "d"}},
		{"(.*?)(.)", "abcd", true, []string{"", "a"}},
		{"(.*)(.)", "abcd", false, nil},
		{"<(.**)>", "<a><b>", true, []string{"a><b"}},
		{"<(.*?)>", "<a><b>", true, []string{"a"}},
		{"(a+*)(a+)", "aaaa", true, []string{"aaa", "a"}},
		{"(a+?)(a*)", "aaaa", true, []string{"a", "aaa"}},
		{"(a[2,3]*)(a)", "aaa", true, []string{"aa", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			require.Equal(t, tt.matched, p.MatchString(tt.subject, 0))
			if !tt.matched {
				return
			}
			require.Equal(t, len(tt.groups), p.Count())
			for i, want := range tt.groups {
				assert.Equal(t, want, p.Group(i).Elem(0).Value(), "group %d", i)
			}
		})
	}
}

func TestSets(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		want    bool
	}{
		{"{a-c}", "a", true},
		{"{a-c}", "c", true},
		{"{a-c}", "d", false},
		{"{a-c}", "", false},
		{"{!a-c}", "d", true},
		{"{!a-c}", "b", false},
		{"{!a-c}", "", false},
		{"{-a}", "-", true},
		{`{\-x}`, "-", true},
		{`{\-x}`, "x", true},
		{`{\-x}`, "y", false},
		{`{\!}`, "!", true},
		{"{a-cx-z}", "y", true},
		{"{a-cx-z}", "m", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.subject, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			assert.Equal(t, tt.want, p.MatchString(tt.subject, 0))
		})
	}

	p := MustCompile("{a-c}+")
	require.True(t, p.MatchString("abcabcd", 0))
	assert.Equal(t, 6, p.End())
}

func TestGroupRoundTrip(t *testing.T) {
	p := MustCompile("({a-z}+)=({0-9}+)")
	require.True(t, p.MatchString("alpha=123", 0))

	assert.Equal(t, "alpha=123", p.Value())
	assert.Equal(t, 2, p.Count())
	assert.Equal(t, "alpha", p.Group(0).Elem(0).Value())
	assert.Equal(t, "123", p.Group(1).Elem(0).Value())

	value := p.Group(1).Elem(0)
	assert.Equal(t, 6, value.Start())
	assert.Equal(t, 9, value.End())
	assert.Equal(t, []byte("123"), value.Bytes())
	assert.Equal(t, 0, value.Count())

	root := p.Element()
	assert.Equal(t, 0, root.Start())
	assert.Equal(t, 9, root.End())
	assert.Equal(t, 2, root.Count())
}

func TestRepeatedGroups(t *testing.T) {
	p := MustCompile("(ab)*")
	require.True(t, p.MatchString("ababab!", 0))
	g := p.Group(0)
	require.Equal(t, 3, g.Count())
	for i := 0; i < 3; i++ {
		e := g.Elem(i)
		assert.Equal(t, 2*i, e.Start())
		assert.Equal(t, 2*i+2, e.End())
	}

	p = MustCompile("(ab)*c")
	require.True(t, p.MatchString("c", 0))
	assert.Equal(t, 0, p.Group(0).Count())

	p = MustCompile("((a)(b))+")
	require.True(t, p.MatchString("abab", 0))
	outer := p.Group(0)
	require.Equal(t, 2, outer.Count())
	second := outer.Elem(1)
	assert.Equal(t, 2, second.Count())
	assert.Equal(t, 2, second.Group(0).Elem(0).Start())
	assert.Equal(t, 3, second.Group(1).Elem(0).Start())
	assert.Equal(t, "b", outer.Elem(0).Group(1).Elem(0).Value())

	p = MustCompile("(a)|(b)")
	require.True(t, p.MatchString("b", 0))
	assert.Equal(t, 0, p.Group(0).Count())
	assert.Equal(t, 1, p.Group(1).Count())
}

func TestRematch(t *testing.T) {
	p := MustCompile("(a+)(b)")
	require.True(t, p.MatchString("aab", 0))
	first := p.ResultString("|")

	require.True(t, p.MatchString("aab", 0))
	assert.Equal(t, first, p.ResultString("|"))

	require.True(t, p.MatchString("xab", 1))
	assert.Equal(t, `"ab"(["a"]|["b"])`, p.ResultString("|"))

	require.True(t, p.MatchString("aab", 0))
	assert.Equal(t, first, p.ResultString("|"))
	assert.Equal(t, 3, p.End())
}

func TestViewLifetime(t *testing.T) {
	p := MustCompile("(a)(b)")
	assert.PanicsWithValue(t, ErrNoMatch, func() { p.Start() })

	require.True(t, p.MatchString("ab", 0))
	e := p.Group(1).Elem(0)
	g := p.Group(0)
	assert.Equal(t, 1, e.Start())

	p.MatchString("ab", 0)
	assert.PanicsWithValue(t, ErrStale, func() { e.Start() })
	assert.PanicsWithValue(t, ErrStale, func() { g.Count() })

	assert.False(t, p.MatchString("xx", 0))
	assert.PanicsWithValue(t, ErrNoMatch, func() { p.Group(0) })
	assert.PanicsWithValue(t, ErrNoMatch, func() { p.Value() })
}

func TestRangeErrors(t *testing.T) {
	p := MustCompile("(a)(b)*")
	require.True(t, p.MatchString("a", 0))

	assert.PanicsWithError(t, "corepat: group index 2 out of range [0,2)", func() { p.Group(2) })
	assert.PanicsWithError(t, "corepat: group index -1 out of range [0,2)", func() { p.Group(-1) })
	assert.PanicsWithError(t, "corepat: element index 0 out of range [0,0)", func() { p.Group(1).Elem(0) })
	assert.PanicsWithError(t, "corepat: group index 0 out of range [0,0)", func() {
		p.Group(0).Elem(0).Group(0)
	})
}

func TestFind(t *testing.T) {
	p := MustCompile("{0-9}+")
	require.True(t, p.FindString("age: 42", 0))
	assert.Equal(t, 5, p.Start())
	assert.Equal(t, "42", p.Value())
	assert.False(t, p.FindString("age: 42", 7))

	p = MustCompile("key=({a-z}+)")
	require.True(t, p.Find([]byte("x key=value"), 0))
	assert.Equal(t, 2, p.Start())
	assert.Equal(t, "value", p.Group(0).Elem(0).Value())

	assert.Equal(t, meta.UsePrefilter, p.Strategy())
	assert.Equal(t, uint64(1), p.Stats().Finds)
	p.ResetStats()
	assert.Equal(t, meta.Stats{}, p.Stats())
}

func TestResultString(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		sep     string
		want    string
	}{
		{"({a-z}+)=({0-9}+)", "alpha=123", ", ", `"alpha=123"(["alpha"], ["123"])`},
		{"(ab)*", "abab", ",", `"abab"(["ab","ab"])`},
		{"(x)*y", "y", ",", `"y"([])`},
		{"((a)b)+", "abab", " ", `"abab"(["ab"(["a"]) "ab"(["a"])])`},
		{"abc", "abc", ",", `"abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := MustCompile(tt.pattern)
			require.True(t, p.MatchString(tt.subject, 0))
			assert.Equal(t, tt.want, p.ResultString(tt.sep))
		})
	}
}

func TestString(t *testing.T) {
	p := MustCompile("{cba}x[1,]*")
	assert.Equal(t, "{a-c}x+*", p.String())
	assert.Equal(t, "{cba}x[1,]*", p.Source())
	assert.False(t, p.UTF8())
}

func TestMatches(t *testing.T) {
	ok, err := Matches("a+", []byte("aab"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Matches("a+", []byte("baa"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Matches("(abc", []byte("abc"), 0)
	assert.ErrorIs(t, err, syntax.ErrMissingParen)
}

func TestMatchStartOutOfRange(t *testing.T) {
	p := MustCompile("a*")
	assert.False(t, p.MatchString("aa", -1))
	assert.False(t, p.MatchString("aa", 3))
	assert.True(t, p.MatchString("aa", 2))
	assert.Equal(t, 2, p.End())
}

func TestCompileUTF8(t *testing.T) {
	p, err := CompileUTF8("(é+)x")
	require.NoError(t, err)
	assert.True(t, p.UTF8())
	require.True(t, p.MatchString("ééx", 0))
	assert.Equal(t, 5, p.End())
	assert.Equal(t, 4, p.Group(0).Elem(0).End())

	// In byte mode the repetition applies to the last byte of "é".
	p = MustCompile("é+")
	assert.False(t, p.UTF8())
	require.True(t, p.MatchString("éé", 0))
	assert.Equal(t, 2, p.End())
}
