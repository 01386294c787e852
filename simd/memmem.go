package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack, or
// -1 if needle is not present. An empty needle matches at 0.
//
// The search scans for the rarest byte of needle with Memchr and verifies
// each candidate in place.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab")) // 4
func Memmem(haystack, needle []byte) int {
	return NewFinder(needle).Find(haystack)
}

// Finder is a substring searcher with its rare byte chosen once, for
// repeated searches of the same needle.
type Finder struct {
	needle  []byte
	rare    byte
	rareIdx int
}

// NewFinder prepares a search for needle.
func NewFinder(needle []byte) *Finder {
	f := &Finder{needle: needle}
	if len(needle) > 0 {
		f.rare, f.rareIdx = RareByte(needle)
	}
	return f
}

// Needle returns the searched bytes.
func (f *Finder) Needle() []byte {
	return f.needle
}

// Find returns the index of the first instance of the needle in haystack,
// or -1.
func (f *Finder) Find(haystack []byte) int {
	n := len(f.needle)
	switch {
	case n == 0:
		return 0
	case n > len(haystack):
		return -1
	case n == 1:
		return Memchr(haystack, f.needle[0])
	}

	// The rare byte can only sit in [rareIdx, len-n+rareIdx].
	last := len(haystack) - n + f.rareIdx
	for i := f.rareIdx; i <= last; {
		k := Memchr(haystack[i:last+1], f.rare)
		if k < 0 {
			return -1
		}
		start := i + k - f.rareIdx
		if bytes.Equal(haystack[start:start+n], f.needle) {
			return start
		}
		i += k + 1
	}
	return -1
}
