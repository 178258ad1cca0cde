package perm

import "lukechampine.com/uint128"

var (
	factorials16  [9]uint16
	factorials64  [17]uint64
	factorials128 [33]uint128.Uint128
)

// Build the factorial lookup tables for every tier.
func init() {
	factorials16[0] = 1
	for i := 1; i < len(factorials16); i++ {
		factorials16[i] = factorials16[i-1] * uint16(i)
	}

	factorials64[0] = 1
	for i := 1; i < len(factorials64); i++ {
		factorials64[i] = factorials64[i-1] * uint64(i)
	}

	factorials128[0] = uint128.From64(1)
	for i := 1; i < len(factorials128); i++ {
		factorials128[i] = factorials128[i-1].Mul64(uint64(i))
	}
}
