// Package matchlen computes the length of the common prefix of two byte
// slices, capped at a caller-supplied maximum. This is the inner loop of the
// hash-chain match finder: for every candidate position the encoder needs to
// know how many bytes back-reference, as cheaply as possible.
package matchlen

import (
	"encoding/binary"
	"math/bits"
)

// MatchLen returns the number of leading bytes a and b have in common, never
// more than max. Callers guarantee len(a) >= max and len(b) >= max.
//
// Compares 8 bytes at a time (the closest a portable implementation gets to
// the SIMD blocks of the reference compressor), locating the first
// mismatching byte via trailing-zero count on the XOR of the two words, then
// finishing the tail with a byte-at-a-time loop.
func MatchLen(a, b []byte, max int) int {
	n := 0
	for n+8 <= max {
		diff := binary.LittleEndian.Uint64(a[n:]) ^ binary.LittleEndian.Uint64(b[n:])
		if diff != 0 {
			return n + bits.TrailingZeros64(diff)>>3
		}
		n += 8
	}
	for n < max && a[n] == b[n] {
		n++
	}
	return n
}
