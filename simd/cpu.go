// Package simd provides fast byte searching primitives for the prefilters
// and offset translation of corepat.
//
// Searches use SWAR (SIMD Within A Register) loops that test 8 bytes per
// uint64 operation. On CPUs with wide vector units the runtime's own
// vectorized bytes.IndexByte is faster for long single byte searches, so
// Memchr hands those off to it.
package simd

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// vectorThreshold is the haystack length from which Memchr delegates to the
// vectorized runtime search on capable CPUs.
const vectorThreshold = 32

// hasVector is set when the CPU has a vector unit the runtime uses for
// bytes.IndexByte (AVX2 on x86-64, ASIMD on arm64).
var hasVector = detectVector()

func detectVector() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasAVX2
	case "arm64":
		return cpu.ARM64.HasASIMD
	}
	return false
}

// HasVector reports whether long searches use the vectorized path.
func HasVector() bool {
	return hasVector
}
