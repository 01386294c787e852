package literal

import (
	"unicode/utf8"

	"github.com/coregx/corepat/syntax"
)

// ExtractorConfig bounds literal extraction.
type ExtractorConfig struct {
	// MaxLiterals caps the number of alternative literals. Patterns that
	// would produce more yield no literals at all.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen caps the length of each literal; longer literals are
	// truncated and marked incomplete.
	// Default: 64
	MaxLiteralLen int

	// MaxClassSize is the largest set expanded into one literal per member.
	// Default: 10
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor computes the literals every match of a pattern starts with.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns the set of literals one of which starts every
// match of re, minimized. It returns nil when no such set is known: the
// pattern can match the empty string, starts with "." or a large set, or
// would produce too many literals.
//
// Example:
//
//	re, _ := syntax.Parse("(alpha|beta)=.+", 0)
//	seq := literal.New(literal.DefaultConfig()).ExtractPrefixes(re)
//	// seq = ["alpha=" (incomplete), "beta=" (incomplete)]
func (e *Extractor) ExtractPrefixes(re *syntax.Regexp) *Seq {
	seq := e.prefixes(re)
	if seq.IsEmpty() {
		return nil
	}
	seq.Minimize()
	if seq.MinLen() == 0 {
		return nil
	}
	return seq
}

func (e *Extractor) prefixes(re *syntax.Regexp) *Seq {
	switch re.Op {
	case syntax.OpLiteral:
		text := re.Text
		complete := true
		if len(text) > e.config.MaxLiteralLen {
			text, complete = text[:e.config.MaxLiteralLen], false
		}
		return NewSeq(NewLiteral(append([]byte(nil), text...), complete))

	case syntax.OpCharClass:
		return e.expandClass(re)

	case syntax.OpCapture:
		return e.prefixes(re.Sub[0])

	case syntax.OpRepeat:
		if re.Min == 0 {
			return nil
		}
		seq := e.prefixes(re.Sub[0])
		if seq.IsEmpty() {
			return nil
		}
		if re.Min != 1 || re.Max != 1 {
			seq.makeIncomplete()
		}
		return seq

	case syntax.OpConcat:
		return e.concat(re.Sub)

	case syntax.OpAlternate:
		out := NewSeq()
		for _, sub := range re.Sub {
			seq := e.prefixes(sub)
			if seq.IsEmpty() {
				return nil
			}
			out.literals = append(out.literals, seq.literals...)
			if out.Len() > e.config.MaxLiterals {
				return nil
			}
		}
		return out
	}

	// OpAnyChar and the anchors say nothing about the first byte.
	return nil
}

func (e *Extractor) concat(subs []*syntax.Regexp) *Seq {
	seq := e.prefixes(subs[0])
	if seq.IsEmpty() {
		return nil
	}
	for _, sub := range subs[1:] {
		if !seq.AllComplete() {
			break
		}
		next := e.prefixes(sub)
		if next.IsEmpty() {
			seq.makeIncomplete()
			break
		}
		product := seq.cross(next, e.config.MaxLiterals, e.config.MaxLiteralLen)
		if product == nil {
			seq.makeIncomplete()
			break
		}
		seq = product
	}
	return seq
}

// expandClass turns a small, non-negated set into one literal per member.
func (e *Extractor) expandClass(re *syntax.Regexp) *Seq {
	if re.Negate {
		return nil
	}
	size := 0
	for i := 0; i+1 < len(re.Class); i += 2 {
		size += int(re.Class[i+1]-re.Class[i]) + 1
		if size > e.config.MaxClassSize {
			return nil
		}
	}
	if size == 0 {
		return nil
	}

	utf8Mode := re.Flags&syntax.UTF8 != 0
	seq := NewSeq()
	for i := 0; i+1 < len(re.Class); i += 2 {
		for r := re.Class[i]; r <= re.Class[i+1]; r++ {
			var b []byte
			if utf8Mode {
				b = utf8.AppendRune(nil, r)
			} else {
				b = []byte{byte(r)}
			}
			seq.literals = append(seq.literals, NewLiteral(b, true))
		}
	}
	return seq
}
