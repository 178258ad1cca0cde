package perm

import (
	"fmt"
	"math/bits"
)

// pool is the set of values in [0, n) not yet placed by a decoder, one bit per value.
type pool struct {
	set uint32
}

func newPool(n uint8) pool {
	return pool{set: uint32(uint64(1)<<n - 1)}
}

func (p pool) size() int {
	return bits.OnesCount32(p.set)
}

// take removes and returns the k-th smallest remaining value (k counts from 0).
func (p *pool) take(k uint8) uint8 {
	if int(k) >= p.size() {
		panic(fmt.Errorf("take %d from pool of size %d", k, p.size()))
	}

	// Skip whole bytes by population count, then select inside the byte.
	w := p.set
	var base uint8
	for {
		c := uint8(bits.OnesCount8(uint8(w)))
		if k < c {
			break
		}
		k -= c
		w >>= 8
		base += 8
	}
	b := uint8(w)
	for ; k > 0; k-- {
		b &= b - 1
	}

	v := base + uint8(bits.TrailingZeros8(b))
	p.set &^= 1 << v
	return v
}
