// Package bits provides the word-level primitives every other layer is
// built on: logical shifts, bitwise AND, and width arithmetic over
// uint64 words.
//
// Two algebraic laws of these primitives carry the safety story for the
// whole library:
//
//   - AND-bound: And(n, m) <= m for all n, m. Masking can never produce
//     a value above the mask.
//   - Shift round-trip: ShiftRight(ShiftLeft(n, k), k) == n whenever n
//     fits in the word's remaining k bits. Mask-then-shift extraction is
//     lossless.
//
// Both are exercised exhaustively in bits_test.go.
package bits

// WordBits is the widest register word the library supports.
const WordBits = 64

// ShiftLeft returns n shifted left by k bits.
// Shifting by 0 is the identity; shifting by WordBits or more yields 0.
func ShiftLeft(n uint64, k uint) uint64 {
	if k >= WordBits {
		return 0
	}
	return n << k
}

// ShiftRight returns n logically shifted right by k bits.
// Shifting by 0 is the identity; shifting by WordBits or more yields 0.
func ShiftRight(n uint64, k uint) uint64 {
	if k >= WordBits {
		return 0
	}
	return n >> k
}

// And returns the bitwise AND of n and m.
func And(n, m uint64) uint64 {
	return n & m
}

// WidthMax returns the largest value representable in w bits:
// (1<<w)-1. WidthMax(0) is 0; widths of WordBits or more saturate to
// the all-ones word.
func WidthMax(w uint) uint64 {
	if w >= WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// Mask returns the positioned mask for a field of the given width at
// the given offset: WidthMax(width) << offset.
func Mask(width, offset uint) uint64 {
	return ShiftLeft(WidthMax(width), offset)
}

// SatSub returns a-b, clamping at zero instead of wrapping.
// Remaining-capacity bookkeeping depends on this clamping.
func SatSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// Fits reports whether v is representable in w bits.
func Fits(v uint64, w uint) bool {
	return v <= WidthMax(w)
}
