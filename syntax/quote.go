package syntax

import "strings"

// special lists the characters that must be escaped to stand for themselves.
const special = `\.|()[]{}?*+^$`

// setSpecial lists the characters that are additionally escapable inside a
// set.
const setSpecial = "-!"

// IsSpecial reports whether c must be escaped outside a set.
func IsSpecial(c byte) bool {
	return strings.IndexByte(special, c) >= 0
}

// IsSetSpecial reports whether c must be escaped inside a set.
func IsSetSpecial(c byte) bool {
	return IsSpecial(c) || strings.IndexByte(setSpecial, c) >= 0
}

// QuoteMeta returns a pattern that matches the literal text s.
//
// Example:
//
//	syntax.QuoteMeta("1+1=2?") // `1\+1=2\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if IsSpecial(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if IsSpecial(s[i]) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
