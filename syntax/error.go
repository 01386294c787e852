package syntax

import "fmt"

// ErrorCode describes a failure to parse a pattern.
//
// ErrorCode implements error so callers can match a failure kind with
// errors.Is without inspecting the offset:
//
//	if errors.Is(err, syntax.ErrInvertedRange) { ... }
type ErrorCode string

// Parse failures.
const (
	ErrMissingParen      ErrorCode = "missing closing )"
	ErrUnexpectedParen   ErrorCode = "unexpected )"
	ErrMissingBrace      ErrorCode = "missing closing }"
	ErrMissingBracket    ErrorCode = "missing closing ] in repetition"
	ErrInvalidRepeat     ErrorCode = "invalid repetition range"
	ErrRepeatTooLarge    ErrorCode = "repetition count too large"
	ErrMissingOperand    ErrorCode = "missing argument to repetition operator"
	ErrEmptyTerm         ErrorCode = "empty alternative"
	ErrInvalidEscape     ErrorCode = "invalid escape sequence"
	ErrTrailingBackslash ErrorCode = "trailing backslash at end of pattern"
	ErrUnescapedSpecial  ErrorCode = "unescaped special character"
	ErrInvertedRange     ErrorCode = "inverted character range"
	ErrInvalidUTF8       ErrorCode = "invalid UTF-8"
	ErrNestingDepth      ErrorCode = "nesting depth exceeded"
)

// Error implements the error interface.
func (c ErrorCode) Error() string {
	return string(c)
}

// Error reports a malformed pattern together with the byte offset where
// parsing stopped.
type Error struct {
	Code    ErrorCode
	Offset  int
	Pattern string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("corepat: %s at offset %d in pattern %q", e.Code, e.Offset, e.Pattern)
}

// Unwrap returns the error code.
func (e *Error) Unwrap() error {
	return e.Code
}
