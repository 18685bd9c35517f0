package oracle

import "github.com/strop-go/strop/search"

// QuickU8 returns the "interesting" 8-bit unsigned quick-probe values
// from spec.md 4.8: 0, 1, the max value, and a handful of others likely
// to trip up a wrong candidate (boundary-adjacent and bit-pattern
// values).
func QuickU8() []uint8 {
	return []uint8{0, 1, 2, 0x7F, 0x80, 0xFE, 0xFF}
}

// QuickI8 is QuickU8's signed counterpart: 0, 1, -1, min, max, and a
// couple of boundary-adjacent values.
func QuickI8() []int8 {
	return []int8{0, 1, -1, 2, -2, 127, -128}
}

// QuickU16 is the 16-bit unsigned quick-probe set.
func QuickU16() []uint16 {
	return []uint16{0, 1, 2, 0xFF, 0x100, 0x7FFF, 0x8000, 0xFFFE, 0xFFFF}
}

// QuickI16 is the 16-bit signed quick-probe set.
func QuickI16() []int16 {
	return []int16{0, 1, -1, 2, -2, 0x7FFF, -0x8000}
}

// QuickU32 is the 32-bit unsigned quick-probe set.
func QuickU32() []uint32 {
	return []uint32{0, 1, 2, 0xFFFF, 0x10000, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFE, 0xFFFFFFFF}
}

// QuickI32 is the 32-bit signed quick-probe set.
func QuickI32() []int32 {
	return []int32{0, 1, -1, 2, -2, 0x7FFFFFFF, -0x80000000}
}

// RandomU8 draws a uniform random uint8, for fuzzing.
func RandomU8(rng *search.Lcg) uint8 { return uint8(rng.Uint32()) }

// RandomI8 draws a uniform random int8.
func RandomI8(rng *search.Lcg) int8 { return int8(rng.Uint32()) }

// RandomU16 draws a uniform random uint16.
func RandomU16(rng *search.Lcg) uint16 { return uint16(rng.Uint32()) }

// RandomI16 draws a uniform random int16.
func RandomI16(rng *search.Lcg) int16 { return int16(rng.Uint32()) }

// RandomU32 draws a uniform random uint32.
func RandomU32(rng *search.Lcg) uint32 { return rng.Uint32() }

// RandomI32 draws a uniform random int32.
func RandomI32(rng *search.Lcg) int32 { return int32(rng.Uint32()) }
