package perm

import "lukechampine.com/uint128"

// Tier instantiations of the generic cursor and decoder.
type (
	Generator8    = Generator[uint16, Tier8]
	Generator16   = Generator[uint64, Tier16]
	Generator32   = Generator[uint128.Uint128, Tier32]
	Permutation8  = Permutation[uint16, Tier8]
	Permutation16 = Permutation[uint64, Tier16]
	Permutation32 = Permutation[uint128.Uint128, Tier32]
)

// New8 creates a Generator for at most 8 elements.
func New8(n uint8) (*Generator8, error) {
	return NewGenerator[uint16, Tier8](n)
}

// New16 creates a Generator for at most 16 elements.
func New16(n uint8) (*Generator16, error) {
	return NewGenerator[uint64, Tier16](n)
}

// New32 creates a Generator for at most 32 elements.
// Remaining and Count can overflow an int for n > 20.
func New32(n uint8) (*Generator32, error) {
	return NewGenerator[uint128.Uint128, Tier32](n)
}

// NthAbsolute8 returns the permutation of n ≤ 8 elements at rank idx.
func NthAbsolute8(n uint8, idx uint16) (*Permutation8, bool, error) {
	return NthAbsolute[uint16, Tier8](n, idx)
}

// NthAbsolute16 returns the permutation of n ≤ 16 elements at rank idx.
func NthAbsolute16(n uint8, idx uint64) (*Permutation16, bool, error) {
	return NthAbsolute[uint64, Tier16](n, idx)
}

// NthAbsolute32 returns the permutation of n ≤ 32 elements at rank idx.
func NthAbsolute32(n uint8, idx uint128.Uint128) (*Permutation32, bool, error) {
	return NthAbsolute[uint128.Uint128, Tier32](n, idx)
}
