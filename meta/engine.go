package meta

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/corepat/literal"
	"github.com/coregx/corepat/matcher"
	"github.com/coregx/corepat/prefilter"
	"github.com/coregx/corepat/syntax"
)

// Engine is a compiled pattern together with the state of its last match.
//
// An Engine is not safe for concurrent use: the operator tree and the
// result stack are mutated by every Match and Find. Goroutines that search
// concurrently need their own Engine.
//
// Example:
//
//	engine, err := meta.Compile("key=({a-z}+)")
//	if err != nil {
//	    return err
//	}
//	if start, end, ok := engine.Find([]byte("x key=value"), 0); ok {
//	    fmt.Println(start, end) // 2 11
//	}
type Engine struct {
	prog     *matcher.Program
	pattern  string
	config   Config
	strategy Strategy
	pf       prefilter.Prefilter

	// last match
	subject    []byte
	start, end int
	matched    bool
	gen        uint64

	stats Stats
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Matches counts anchored Match calls.
	Matches uint64

	// Finds counts Find calls.
	Finds uint64

	// Attempts counts anchored runs of the matcher, including the ones
	// Find makes at each candidate offset.
	Attempts uint64

	// PrefilterCandidates counts offsets proposed by the prefilter.
	PrefilterCandidates uint64

	// PrefilterMisses counts candidates where the matcher failed.
	PrefilterMisses uint64
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// It returns a *ConfigError for an invalid configuration and a
// *syntax.Error for a malformed pattern.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var flags syntax.Flags
	if config.UTF8 {
		flags |= syntax.UTF8
	}
	re, err := syntax.ParseDepth(pattern, flags, config.MaxNestingDepth)
	if err != nil {
		return nil, err
	}
	prog, err := matcher.Compile(re)
	if err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter {
		pf = buildPrefilter(re, config)
	}

	return &Engine{
		prog:     prog,
		pattern:  pattern,
		config:   config,
		strategy: selectStrategy(re, pf),
		pf:       pf,
	}, nil
}

func buildPrefilter(re *syntax.Regexp, config Config) prefilter.Prefilter {
	extractorConfig := literal.DefaultConfig()
	extractorConfig.MaxLiterals = config.MaxLiterals

	prefixes := literal.New(extractorConfig).ExtractPrefixes(re)
	if prefixes.IsEmpty() || prefixes.MinLen() < config.MinLiteralLen {
		return nil
	}
	return prefilter.NewBuilder(prefixes).Build()
}

// Match reports whether the pattern matches subject at offset start. The
// match is anchored at start but need not extend to the end of subject.
//
// A start outside [0, len(subject)] never matches. Every call invalidates
// the views of the previous match.
func (e *Engine) Match(subject []byte, start int) bool {
	atomic.AddUint64(&e.stats.Matches, 1)
	e.gen++
	e.matched = false
	if start < 0 || start > len(subject) {
		return false
	}
	return e.attempt(subject, start)
}

// Find returns the leftmost match at or after start as [matchStart,
// matchEnd). Among the matches starting at the same offset, the first one
// in backtracking order wins, exactly as with Match.
//
// In UTF-8 mode candidate offsets advance by whole code points.
func (e *Engine) Find(subject []byte, start int) (int, int, bool) {
	atomic.AddUint64(&e.stats.Finds, 1)
	e.gen++
	e.matched = false
	if start < 0 || start > len(subject) {
		return -1, -1, false
	}

	switch e.strategy {
	case UseAnchoredStart:
		if start == 0 && e.attempt(subject, 0) {
			return e.start, e.end, true
		}
		return -1, -1, false

	case UsePrefilter, UseAhoCorasick:
		for pos := e.pf.Find(subject, start); pos >= 0; pos = e.pf.Find(subject, pos+1) {
			atomic.AddUint64(&e.stats.PrefilterCandidates, 1)
			if e.attempt(subject, pos) {
				return e.start, e.end, true
			}
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		}
		return -1, -1, false
	}

	for i := start; i <= len(subject); i = e.next(subject, i) {
		if e.attempt(subject, i) {
			return e.start, e.end, true
		}
	}
	return -1, -1, false
}

// next returns the offset after the character at i.
func (e *Engine) next(subject []byte, i int) int {
	if !e.config.UTF8 || i >= len(subject) || subject[i] < utf8.RuneSelf {
		return i + 1
	}
	_, w := utf8.DecodeRune(subject[i:])
	return i + w
}

func (e *Engine) attempt(subject []byte, i int) bool {
	atomic.AddUint64(&e.stats.Attempts, 1)
	j := e.prog.Match(subject, i)
	if j < 0 {
		return false
	}
	e.subject = subject
	e.start, e.end = i, j
	e.matched = true
	return true
}

// Matched reports whether the last Match or Find succeeded.
func (e *Engine) Matched() bool {
	return e.matched
}

// Bounds returns the offsets of the last successful match.
func (e *Engine) Bounds() (start, end int) {
	return e.start, e.end
}

// Subject returns the subject of the last successful match.
func (e *Engine) Subject() []byte {
	return e.subject
}

// Result returns the element stack of the last match. Its newest entry is
// the whole match.
func (e *Engine) Result() *matcher.Result {
	return e.prog.Result()
}

// Generation identifies the last Match or Find call. Views taken after a
// match compare it to detect that a later call invalidated them.
func (e *Engine) Generation() uint64 {
	return e.gen
}

// NumSub returns the number of top level groups.
func (e *Engine) NumSub() int {
	return e.prog.NumSub()
}

// UTF8 reports whether the pattern was compiled in UTF-8 mode.
func (e *Engine) UTF8() bool {
	return e.config.UTF8
}

// Pattern returns the source text the engine was compiled from.
func (e *Engine) Pattern() string {
	return e.pattern
}

// String returns the canonical text of the compiled pattern.
func (e *Engine) String() string {
	return e.prog.String()
}

// Strategy returns the search strategy selected for this engine.
//
// Example:
//
//	strategy := engine.Strategy()
//	println(strategy.String()) // "UsePrefilter"
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prefilter returns the candidate finder used by Find, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.pf
}

// Stats returns execution statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	e.stats = Stats{}
}
