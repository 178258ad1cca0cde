package perm

import (
	"fmt"
	"iter"
)

// Generator is a cursor over the permutations of {0, ..., n-1} in lexicographic order.
// Its position only moves forward; once a lookup falls past the last
// permutation the generator is exhausted for good.
//
// A Generator is a plain value. Copying it forks the cursor.
type Generator[R any, W Width[R]] struct {
	nbElems uint8
	nbPerms R
	nextIdx R
}

// NewGenerator creates a Generator for n elements positioned at rank 0.
func NewGenerator[R any, W Width[R]](n uint8) (*Generator[R, W], error) {
	var w W
	if err := checkElements(n, w.MaxElements()); err != nil {
		return nil, err
	}
	return &Generator[R, W]{
		nbElems: n,
		nbPerms: w.Factorial(n),
		nextIdx: w.Zero(),
	}, nil
}

// NthAbsolute returns the permutation of n elements at rank idx without a cursor.
// A rank outside [0, n!) is a miss and reports false with a nil error.
func NthAbsolute[R any, W Width[R]](n uint8, idx R) (*Permutation[R, W], bool, error) {
	var w W
	if err := checkElements(n, w.MaxElements()); err != nil {
		return nil, false, err
	}
	nbPerms := w.Factorial(n)
	if !w.Less(idx, nbPerms) {
		return nil, false, nil
	}
	return newPermutation[R, W](n, nbPerms, idx), true, nil
}

func checkElements(n, maxElems uint8) error {
	if n > maxElems {
		return fmt.Errorf("%d elements, maximum %d: %w", n, maxElems, ErrTooManyElements)
	}
	return nil
}

// Elements returns n.
func (g *Generator[R, W]) Elements() uint8 {
	return g.nbElems
}

// Size returns n!, the number of permutations in the space.
func (g *Generator[R, W]) Size() R {
	return g.nbPerms
}

// Position returns the rank the next call to NextPermutation will produce.
func (g *Generator[R, W]) Position() R {
	return g.nextIdx
}

// Exhausted reports whether every later lookup will miss.
func (g *Generator[R, W]) Exhausted() bool {
	var w W
	return !w.Less(g.nextIdx, g.nbPerms)
}

// NextPermutation returns the permutation at the current position and advances by one.
func (g *Generator[R, W]) NextPermutation() (*Permutation[R, W], bool) {
	var w W
	return g.Nth(w.Zero())
}

// Nth skips step permutations and returns the one after them, so Nth(0) is NextPermutation.
// The position is left just past the requested rank whether or not it existed;
// stepping beyond the end therefore exhausts the generator.
func (g *Generator[R, W]) Nth(step R) (*Permutation[R, W], bool) {
	var w W
	target := w.SaturatingAdd(g.nextIdx, step)
	g.nextIdx = w.SaturatingAdd(target, w.FromUint8(1))
	if !w.Less(target, g.nbPerms) {
		return nil, false
	}
	return newPermutation[R, W](g.nbElems, g.nbPerms, target), true
}

// Remaining returns how many permutations NextPermutation can still produce.
// On the 32-element tier the count may not fit in an int, which is reported as ErrRemainingOverflow.
func (g *Generator[R, W]) Remaining() (int, error) {
	if g.Exhausted() {
		return 0, nil
	}
	var w W
	rem := w.Sub(g.nbPerms, g.nextIdx)
	n, ok := w.Int(rem)
	if !ok {
		return 0, fmt.Errorf("%v permutations of %d elements left: %w", w.Big(rem), g.nbElems, ErrRemainingOverflow)
	}
	return n, nil
}

// Count is Remaining without decoding anything.
func (g *Generator[R, W]) Count() (int, error) {
	return g.Remaining()
}

// All returns an iterator pulling successive permutations with NextPermutation.
// Breaking out of the loop leaves the generator positioned after the last permutation produced.
func (g *Generator[R, W]) All() iter.Seq[*Permutation[R, W]] {
	return func(yield func(*Permutation[R, W]) bool) {
		for {
			p, ok := g.NextPermutation()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
