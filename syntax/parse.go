package syntax

import (
	"sort"
	"unicode/utf8"
)

// DefaultMaxDepth is the group nesting limit used by Parse.
const DefaultMaxDepth = 100

// Parse parses pattern into a syntax tree rooted at the level 0 capture.
//
// On failure the returned error is a *Error carrying the byte offset where
// parsing stopped; no partial tree is returned.
func Parse(pattern string, flags Flags) (*Regexp, error) {
	return ParseDepth(pattern, flags, DefaultMaxDepth)
}

// ParseDepth is like Parse but rejects patterns whose groups nest deeper
// than maxDepth. A maxDepth <= 0 selects DefaultMaxDepth.
func ParseDepth(pattern string, flags Flags, maxDepth int) (*Regexp, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	p := &parser{src: pattern, flags: flags, maxDepth: maxDepth}

	root := &Regexp{Op: OpCapture, Flags: flags}
	body, err := p.expression(0, &root.NumSub)
	if err != nil {
		return nil, err
	}
	if p.more() {
		// The top level expression only stops early at a ')'.
		return nil, p.fail(ErrUnexpectedParen, p.pos)
	}
	root.Sub = []*Regexp{body}
	return root, nil
}

type parser struct {
	src      string
	pos      int
	flags    Flags
	depth    int
	maxDepth int
}

func (p *parser) fail(code ErrorCode, offset int) error {
	return &Error{Code: code, Offset: offset, Pattern: p.src}
}

func (p *parser) more() bool {
	return p.pos < len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

// expression parses alternatives until the end of input or a ')'.
// groups counts the captures opened directly inside the enclosing capture.
func (p *parser) expression(level int, groups *int) (*Regexp, error) {
	term, err := p.term(level, groups)
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != '|' {
		return term, nil
	}

	alt := &Regexp{Op: OpAlternate, Flags: p.flags, Sub: []*Regexp{term}}
	for p.more() && p.peek() == '|' {
		p.pos++
		term, err = p.term(level, groups)
		if err != nil {
			return nil, err
		}
		alt.Sub = append(alt.Sub, term)
	}
	return alt, nil
}

// term parses a run of factors, merging adjacent literals.
func (p *parser) term(level int, groups *int) (*Regexp, error) {
	var factors []*Regexp
	for p.more() && p.peek() != '|' && p.peek() != ')' {
		f, err := p.factor(level, groups)
		if err != nil {
			return nil, err
		}
		if n := len(factors); n > 0 && f.Op == OpLiteral && factors[n-1].Op == OpLiteral {
			factors[n-1].Text = append(factors[n-1].Text, f.Text...)
			continue
		}
		factors = append(factors, f)
	}

	switch len(factors) {
	case 0:
		return nil, p.fail(ErrEmptyTerm, p.pos)
	case 1:
		return factors[0], nil
	}
	return &Regexp{Op: OpConcat, Flags: p.flags, Sub: factors}, nil
}

func (p *parser) factor(level int, groups *int) (*Regexp, error) {
	start := p.pos
	var re *Regexp

	switch c := p.peek(); c {
	case '^', '$':
		p.pos++
		op := OpBeginText
		if c == '$' {
			op = OpEndText
		}
		if p.more() && isQuantifier(p.peek()) {
			return nil, p.fail(ErrMissingOperand, p.pos)
		}
		return &Regexp{Op: op, Flags: p.flags}, nil

	case '.':
		p.pos++
		re = &Regexp{Op: OpAnyChar, Flags: p.flags}

	case '(':
		group, err := p.group(level, groups)
		if err != nil {
			return nil, err
		}
		re = group

	case '{':
		set, err := p.set()
		if err != nil {
			return nil, err
		}
		re = set

	case '?', '+', '*', '[':
		return nil, p.fail(ErrMissingOperand, start)

	case ']', '}', ')', '|':
		return nil, p.fail(ErrUnescapedSpecial, start)

	case '\\':
		if p.pos+1 >= len(p.src) {
			return nil, p.fail(ErrTrailingBackslash, start)
		}
		e := p.src[p.pos+1]
		if !IsSpecial(e) {
			return nil, p.fail(ErrInvalidEscape, start)
		}
		p.pos += 2
		re = &Regexp{Op: OpLiteral, Flags: p.flags, Text: []byte{e}}

	default:
		_, w, err := p.next()
		if err != nil {
			return nil, err
		}
		re = &Regexp{Op: OpLiteral, Flags: p.flags, Text: []byte(p.src[p.pos : p.pos+w])}
		p.pos += w
	}

	return p.quantifier(re)
}

// next decodes the character at the cursor without consuming it.
func (p *parser) next() (rune, int, error) {
	if p.flags&UTF8 == 0 {
		return rune(p.src[p.pos]), 1, nil
	}
	r, w := utf8.DecodeRuneInString(p.src[p.pos:])
	if r == utf8.RuneError && w <= 1 {
		return 0, 0, p.fail(ErrInvalidUTF8, p.pos)
	}
	return r, w, nil
}

func (p *parser) group(level int, groups *int) (*Regexp, error) {
	open := p.pos
	if p.depth >= p.maxDepth {
		return nil, p.fail(ErrNestingDepth, open)
	}
	p.depth++
	p.pos++

	re := &Regexp{Op: OpCapture, Flags: p.flags, Level: level + 1, Index: *groups}
	*groups++

	body, err := p.expression(level+1, &re.NumSub)
	if err != nil {
		return nil, err
	}
	if !p.more() {
		return nil, p.fail(ErrMissingParen, p.pos)
	}
	p.pos++ // ')'
	p.depth--

	re.Sub = []*Regexp{body}
	return re, nil
}

func isQuantifier(c byte) bool {
	return c == '?' || c == '+' || c == '*' || c == '['
}

func (p *parser) quantifier(re *Regexp) (*Regexp, error) {
	if !p.more() {
		return re, nil
	}

	var min, max int
	switch p.peek() {
	case '?':
		min, max = 0, 1
		p.pos++
	case '+':
		min, max = 1, Unbounded
		p.pos++
	case '*':
		min, max = 0, Unbounded
		p.pos++
	case '[':
		var err error
		if min, max, err = p.repeatRange(); err != nil {
			return nil, err
		}
	default:
		return re, nil
	}

	strategy := Possessive
	if p.more() {
		switch p.peek() {
		case '*':
			strategy = Greedy
			p.pos++
		case '?':
			strategy = Reluctant
			p.pos++
		}
	}

	return &Regexp{
		Op:       OpRepeat,
		Flags:    p.flags,
		Sub:      []*Regexp{re},
		Min:      min,
		Max:      max,
		Strategy: strategy,
	}, nil
}

// repeatRange parses "[min]", "[min,]" or "[min,max]".
func (p *parser) repeatRange() (min, max int, err error) {
	open := p.pos
	p.pos++ // '['

	if min, err = p.number(); err != nil {
		return 0, 0, err
	}
	max = min
	if p.more() && p.peek() == ',' {
		p.pos++
		max = Unbounded
		if p.more() && isDigit(p.peek()) {
			if max, err = p.number(); err != nil {
				return 0, 0, err
			}
		}
	}
	if !p.more() || p.peek() != ']' {
		return 0, 0, p.fail(ErrMissingBracket, p.pos)
	}
	p.pos++

	if max != Unbounded && (max < 1 || min > max) {
		return 0, 0, p.fail(ErrInvalidRepeat, open)
	}
	return min, max, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (p *parser) number() (int, error) {
	start := p.pos
	n := 0
	for p.more() && isDigit(p.peek()) {
		n = n*10 + int(p.peek()-'0')
		if n > MaxRepeat {
			return 0, p.fail(ErrRepeatTooLarge, start)
		}
		p.pos++
	}
	if p.pos == start {
		return 0, p.fail(ErrInvalidRepeat, start)
	}
	return n, nil
}

// set parses "{" ["!"] members "}".
func (p *parser) set() (*Regexp, error) {
	p.pos++ // '{'
	re := &Regexp{Op: OpCharClass, Flags: p.flags}
	if p.more() && p.peek() == '!' {
		re.Negate = true
		p.pos++
	}

	var ranges []rune
	for {
		if !p.more() {
			return nil, p.fail(ErrMissingBrace, p.pos)
		}
		if p.peek() == '}' {
			p.pos++
			break
		}

		loOffset := p.pos
		lo, err := p.setChar()
		if err != nil {
			return nil, err
		}
		hi := lo
		// A '-' right before the closing brace is a member of its own.
		if p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] != '}' {
			p.pos++
			if hi, err = p.setChar(); err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.fail(ErrInvertedRange, loOffset)
			}
		}
		ranges = append(ranges, lo, hi)
	}

	re.Class = normalizeClass(ranges)
	return re, nil
}

func (p *parser) setChar() (rune, error) {
	if p.peek() == '\\' {
		if p.pos+1 >= len(p.src) {
			return 0, p.fail(ErrTrailingBackslash, p.pos)
		}
		c := p.src[p.pos+1]
		if !IsSetSpecial(c) {
			return 0, p.fail(ErrInvalidEscape, p.pos)
		}
		p.pos += 2
		return rune(c), nil
	}
	r, w, err := p.next()
	if err != nil {
		return 0, err
	}
	p.pos += w
	return r, nil
}

// normalizeClass sorts lo, hi pairs and merges overlapping or adjacent ones.
func normalizeClass(ranges []rune) []rune {
	if len(ranges) == 0 {
		return nil
	}
	pairs := make([][2]rune, 0, len(ranges)/2)
	for i := 0; i+1 < len(ranges); i += 2 {
		pairs = append(pairs, [2]rune{ranges[i], ranges[i+1]})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	out := make([]rune, 0, len(ranges))
	lo, hi := pairs[0][0], pairs[0][1]
	for _, pr := range pairs[1:] {
		if pr[0] <= hi+1 {
			if pr[1] > hi {
				hi = pr[1]
			}
			continue
		}
		out = append(out, lo, hi)
		lo, hi = pr[0], pr[1]
	}
	return append(out, lo, hi)
}
