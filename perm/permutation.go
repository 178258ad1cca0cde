package perm

import "iter"

// Permutation lazily decodes a single permutation of {0, ..., n-1}, first position first.
// It owns its element pool and can be drained only once.
type Permutation[R any, W Width[R]] struct {
	elems     pool
	remainder R
	divisor   R
}

// newPermutation decodes rank idx out of nbPerms = n! permutations.
// The caller guarantees idx < nbPerms.
func newPermutation[R any, W Width[R]](n uint8, nbPerms, idx R) *Permutation[R, W] {
	var w W
	divisor := w.FromUint8(1)
	if n > 0 {
		divisor = w.Div(nbPerms, w.FromUint8(n))
	}
	return &Permutation[R, W]{
		elems:     newPool(n),
		remainder: idx,
		divisor:   divisor,
	}
}

// Len returns the number of elements not yet produced.
func (p *Permutation[R, W]) Len() int {
	return p.elems.size()
}

// Next produces the next element, or false once every element has been produced.
func (p *Permutation[R, W]) Next() (uint8, bool) {
	if p.elems.size() == 0 {
		return 0, false
	}
	var w W

	digit := w.Div(p.remainder, p.divisor)
	p.remainder = w.Sub(p.remainder, w.Mul(digit, p.divisor))
	v := p.elems.take(w.Uint8(digit))

	// divisor becomes (size-1)! for the pool that is left.
	p.divisor = w.Div(p.divisor, w.FromUint8(uint8(max(p.elems.size(), 1))))
	return v, true
}

// All returns an iterator over the remaining elements. Iterating drains the permutation.
func (p *Permutation[R, W]) All() iter.Seq[uint8] {
	return func(yield func(uint8) bool) {
		for {
			v, ok := p.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains the permutation into a slice.
func (p *Permutation[R, W]) Collect() []uint8 {
	out := make([]uint8, 0, p.Len())
	for v := range p.All() {
		out = append(out, v)
	}
	return out
}
