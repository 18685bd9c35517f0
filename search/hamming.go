package search

import "math/bits"

// Hamming32 returns the number of differing bits between a and b,
// used by the stochastic searcher's cost function: the sum, over a
// fixed test set, of the Hamming distance between candidate output and
// reference output (spec.md 4.5).
func Hamming32(a, b uint32) int {
	return bits.OnesCount32(a ^ b)
}

// Hamming64 is Hamming32's 64-bit counterpart.
func Hamming64(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
