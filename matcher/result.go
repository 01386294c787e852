package matcher

import (
	"fmt"
	"slices"
)

// Entry records one successful match of a parenthesized element.
type Entry struct {
	// Level is the nesting depth of the element; 0 is the whole pattern.
	Level int

	// Start and End delimit the matched bytes of the subject.
	Start, End int

	// Index is the position of the element among the elements directly
	// inside its enclosing element.
	Index int

	// NumSub is the number of elements directly inside this one.
	NumSub int
}

// Result is the stack of element matches shared by all Element operators of
// a Program.
//
// Entries are pushed when an element completes, so an element's nested
// entries always sit right below it. Retry and Rollback pop entries in exact
// LIFO order.
type Result struct {
	entries []Entry
}

// InvariantError reports a broken stack discipline. It is raised with panic:
// it signals a defect in operator composition, never a malformed pattern or
// subject.
type InvariantError struct {
	Want int // expected level
	Got  int // level found on top of the stack, or -1 if the stack was empty
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Got < 0 {
		return fmt.Sprintf("matcher: pop of level %d from empty result stack", e.Want)
	}
	return fmt.Sprintf("matcher: result stack level mismatch: want %d, got %d", e.Want, e.Got)
}

// Push appends an entry.
func (r *Result) Push(e Entry) {
	r.entries = append(r.entries, e)
}

// Pop removes and returns the newest entry. It panics with *InvariantError if
// the stack is empty or the newest entry has a level other than level.
func (r *Result) Pop(level int) Entry {
	n := len(r.entries)
	if n == 0 {
		panic(&InvariantError{Want: level, Got: -1})
	}
	e := r.entries[n-1]
	if e.Level != level {
		panic(&InvariantError{Want: level, Got: e.Level})
	}
	r.entries = r.entries[:n-1]
	return e
}

// Reset empties the stack, keeping its storage.
func (r *Result) Reset() {
	r.entries = r.entries[:0]
}

// Len returns the number of entries.
func (r *Result) Len() int {
	return len(r.entries)
}

// At returns the entry at stack position i.
func (r *Result) At(i int) Entry {
	return r.entries[i]
}

// Occurrences returns, in match order, the stack positions of the matches of
// the element with the given index nested directly inside the entry at pos.
//
// The nested entries of pos are the contiguous run of deeper entries right
// below it; the walk stops at the first entry that is not deeper.
func (r *Result) Occurrences(pos, index int) []int {
	level := r.entries[pos].Level
	var out []int
	for k := pos - 1; k >= 0; k-- {
		e := r.entries[k]
		if e.Level <= level {
			break
		}
		if e.Level == level+1 && e.Index == index {
			out = append(out, k)
		}
	}
	slices.Reverse(out)
	return out
}
