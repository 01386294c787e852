package meta

import (
	"github.com/coregx/corepat/prefilter"
	"github.com/coregx/corepat/syntax"
)

// Strategy is the way Find looks for the leftmost match.
type Strategy int

const (
	// UseBacktrack runs the matcher at every offset from the start.
	// Selected when no prefix literal is known.
	UseBacktrack Strategy = iota

	// UseAnchoredStart runs the matcher at offset 0 only.
	// Selected when every alternative starts with "^".
	UseAnchoredStart

	// UsePrefilter runs the matcher only where a memchr, memchr2, memchr3
	// or memmem search found a prefix literal.
	UsePrefilter

	// UseAhoCorasick runs the matcher only where an Aho-Corasick automaton
	// found one of several prefix literals, e.g. for /(GET|POST|PUT) /.
	UseAhoCorasick
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "UseBacktrack"
	case UseAnchoredStart:
		return "UseAnchoredStart"
	case UsePrefilter:
		return "UsePrefilter"
	case UseAhoCorasick:
		return "UseAhoCorasick"
	default:
		return "Unknown"
	}
}

// selectStrategy picks the search strategy for a parsed pattern and the
// prefilter built for it (nil if none).
func selectStrategy(re *syntax.Regexp, pf prefilter.Prefilter) Strategy {
	if isStartAnchored(re) {
		return UseAnchoredStart
	}
	switch pf.(type) {
	case nil:
		return UseBacktrack
	case *prefilter.AhoCorasick:
		return UseAhoCorasick
	}
	return UsePrefilter
}

// isStartAnchored reports whether every match of re must begin at offset 0.
func isStartAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpCapture:
		return isStartAnchored(re.Sub[0])
	case syntax.OpConcat:
		return isStartAnchored(re.Sub[0])
	case syntax.OpRepeat:
		return re.Min > 0 && isStartAnchored(re.Sub[0])
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if !isStartAnchored(sub) {
				return false
			}
		}
		return true
	}
	return false
}
