package matcher

import (
	"strconv"
	"strings"

	"github.com/coregx/corepat/syntax"
)

// frame is one pending match of a repetition: where it started and the end
// offset after each repetition of the body.
type frame struct {
	start int
	ends  []int
}

func (f *frame) end() int {
	if n := len(f.ends); n > 0 {
		return f.ends[n-1]
	}
	return f.start
}

// repeat holds what the three strategies share. Each pending match owns a
// frame, and every entry of frame.ends owns one frame on the body's stacks.
type repeat struct {
	body     Operator
	min, max int // max < 0: unbounded
	frames   []frame
}

func (r *repeat) below(n int) bool {
	return r.max < 0 || n < r.max
}

// open pushes a frame starting at i, reusing the storage of frames popped
// earlier.
func (r *repeat) open(i int) *frame {
	n := len(r.frames)
	if n < cap(r.frames) {
		r.frames = r.frames[:n+1]
	} else {
		r.frames = append(r.frames, frame{})
	}
	f := &r.frames[n]
	f.start = i
	f.ends = f.ends[:0]
	return f
}

func (r *repeat) top() *frame {
	return &r.frames[len(r.frames)-1]
}

func (r *repeat) close() {
	r.frames = r.frames[:len(r.frames)-1]
}

// unwind rolls back every repetition of f, newest first.
func (r *repeat) unwind(f *frame) {
	for range f.ends {
		r.body.Rollback()
	}
	f.ends = f.ends[:0]
}

// iterStart returns the offset where repetition k of f began.
func (f *frame) iterStart(k int) int {
	if k == 0 {
		return f.start
	}
	return f.ends[k-1]
}

// step matches one more repetition at the end of f. Repetitions past min
// must consume input: when the body's first way to match is empty, it is
// retried until it advances or runs out of alternatives.
func (r *repeat) step(s []byte, f *frame) bool {
	i := f.end()
	j := r.body.Match(s, i)
	for j == i && len(f.ends) >= r.min {
		j = r.body.Retry(s)
	}
	if j < 0 {
		return false
	}
	f.ends = append(f.ends, j)
	return true
}

// next replaces the newest repetition of f with the body's next way to
// match it, skipping empty ones past min. It reports false, with the body's
// frame for that repetition gone, when there is none.
func (r *repeat) next(s []byte, f *frame) bool {
	k := len(f.ends) - 1
	i := f.iterStart(k)
	for {
		j := r.body.Retry(s)
		if j < 0 {
			return false
		}
		if j > i || k < r.min {
			f.ends[k] = j
			return true
		}
	}
}

// extend matches further repetitions until the body cannot advance or max
// is reached.
func (r *repeat) extend(s []byte, f *frame) {
	for r.below(len(f.ends)) {
		if !r.step(s, f) {
			return
		}
	}
}

// fill brings f to n repetitions, backtracking into earlier repetitions when
// the body cannot advance. It reports false, with f empty, once every
// alternative is exhausted.
func (r *repeat) fill(s []byte, f *frame, n int) bool {
	for len(f.ends) < n {
		if r.step(s, f) {
			continue
		}
		if !r.backtrack(s, f) {
			return false
		}
	}
	return true
}

// backtrack replaces the newest repetition with its next alternative,
// dropping repetitions that have none left. It reports false, with f empty,
// when no repetition has an alternative.
func (r *repeat) backtrack(s []byte, f *frame) bool {
	for n := len(f.ends); n > 0; n-- {
		if r.next(s, f) {
			return true
		}
		f.ends = f.ends[:n-1]
	}
	return false
}

// Rollback implements Operator.
func (r *repeat) Rollback() {
	r.unwind(r.top())
	r.close()
}

// Reset implements Operator.
func (r *repeat) Reset() {
	r.frames = r.frames[:0]
	r.body.Reset()
}

func (r *repeat) format(b *strings.Builder, suffix string) {
	r.body.format(b)
	switch {
	case r.min == 0 && r.max == 1:
		b.WriteByte('?')
	case r.min == 1 && r.max < 0:
		b.WriteByte('+')
	case r.min == 0 && r.max < 0:
		b.WriteByte('*')
	default:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(r.min))
		if r.max != r.min {
			b.WriteByte(',')
			if r.max >= 0 {
				b.WriteString(strconv.Itoa(r.max))
			}
		}
		b.WriteByte(']')
	}
	b.WriteString(suffix)
}

// Possessive repeats its body as often as possible and never gives a
// repetition back: Retry always fails.
type Possessive struct {
	repeat
}

// Match implements Operator.
func (p *Possessive) Match(s []byte, i int) int {
	f := p.open(i)
	for len(f.ends) < p.min {
		j := p.body.Match(s, f.end())
		if j < 0 {
			p.unwind(f)
			p.close()
			return NoMatch
		}
		f.ends = append(f.ends, j)
	}
	p.extend(s, f)
	return f.end()
}

// Retry implements Operator.
func (p *Possessive) Retry([]byte) int {
	p.Rollback()
	return NoMatch
}

func (p *Possessive) format(b *strings.Builder) {
	p.repeat.format(b, "")
}

// Greedy repeats its body as often as possible. On Retry it first looks for
// another way to match the newest repetition (and extends again from
// there), then gives repetitions back one at a time down to min.
type Greedy struct {
	repeat
}

// Match implements Operator.
func (g *Greedy) Match(s []byte, i int) int {
	f := g.open(i)
	if !g.fill(s, f, g.min) {
		g.close()
		return NoMatch
	}
	g.extend(s, f)
	return f.end()
}

// Retry implements Operator.
func (g *Greedy) Retry(s []byte) int {
	f := g.top()
	for n := len(f.ends); n > 0; n = len(f.ends) {
		if g.next(s, f) {
			if g.fill(s, f, g.min) {
				g.extend(s, f)
				return f.end()
			}
			continue
		}
		f.ends = f.ends[:n-1]
		if n-1 >= g.min {
			return f.end()
		}
	}
	g.close()
	return NoMatch
}

func (g *Greedy) format(b *strings.Builder) {
	g.repeat.format(b, "*")
}

// Reluctant repeats its body min times. On Retry it first takes one more
// repetition (up to max), then looks for other ways to match the
// repetitions it already holds.
type Reluctant struct {
	repeat
}

// Match implements Operator.
func (r *Reluctant) Match(s []byte, i int) int {
	f := r.open(i)
	if !r.fill(s, f, r.min) {
		r.close()
		return NoMatch
	}
	return f.end()
}

// Retry implements Operator.
func (r *Reluctant) Retry(s []byte) int {
	f := r.top()
	if r.below(len(f.ends)) && r.step(s, f) {
		return f.end()
	}
	if r.backtrack(s, f) && r.fill(s, f, r.min) {
		return f.end()
	}
	r.close()
	return NoMatch
}

func (r *Reluctant) format(b *strings.Builder) {
	r.repeat.format(b, "?")
}

// NewRepeat returns the repetition of body between min and max times
// (max < 0 for no upper bound) with the given strategy.
func NewRepeat(body Operator, min, max int, strategy syntax.Strategy) Operator {
	r := repeat{body: body, min: min, max: max}
	switch strategy {
	case syntax.Greedy:
		return &Greedy{r}
	case syntax.Reluctant:
		return &Reluctant{r}
	default:
		return &Possessive{r}
	}
}
