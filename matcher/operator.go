// Package matcher implements the backtracking operator tree that executes a
// compiled pattern.
//
// Every operator follows the same four-step protocol:
//
//   - Match(s, i) tries the first match starting at offset i. On success it
//     returns the end offset and keeps whatever state it needs to look for
//     alternatives later; on failure it returns NoMatch and keeps nothing.
//   - Retry(s) replaces the newest successful match with the next
//     alternative. When no alternative is left it returns NoMatch and its
//     state for that match is already gone.
//   - Rollback() discards the newest successful match unconditionally. An
//     enclosing operator uses it to undo a child before retrying itself.
//   - Reset() clears all state before a new subject is matched.
//
// Operators that can be matched again before an earlier match is undone
// (the body of a repetition, for instance) keep one frame per pending match
// on a private stack; Retry and Rollback always work on the newest frame.
//
// A tree is not safe for concurrent use.
package matcher

import "strings"

// NoMatch is returned by Match and Retry when no (further) match exists.
const NoMatch = -1

// Operator is a node of a compiled pattern. The set of implementations is
// closed: leaves (Literal, ByteSet, RuneSet, AnyByte, AnyRune, Begin, End)
// and composites (And, Or, Element, Possessive, Greedy, Reluctant).
type Operator interface {
	// Match returns the end offset of the first match starting at i, or
	// NoMatch.
	Match(s []byte, i int) int

	// Retry returns the end offset of the next alternative to the newest
	// match, or NoMatch once the alternatives are exhausted.
	Retry(s []byte) int

	// Rollback discards the newest match.
	Rollback()

	// Reset clears all backtracking state.
	Reset()

	// format writes the canonical pattern text of the operator.
	format(b *strings.Builder)
}

// String returns the canonical pattern text of op.
func String(op Operator) string {
	var b strings.Builder
	op.format(&b)
	return b.String()
}
