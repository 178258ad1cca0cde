package perm

import (
	"math"

	"github.com/atgjack/prob"
)

// RandomRank draws a rank uniformly from [0, n!) by drawing each factorial-base
// digit uniformly from its own range. n must not exceed the tier maximum.
func RandomRank[R any, W Width[R]](n uint8) R {
	var w W
	rank := w.Zero()
	for i := uint8(0); i < n; i++ {
		base := n - i
		digit := uniformDigit(base)
		place := w.Factorial(base - 1)
		rank = w.SaturatingAdd(rank, w.Mul(w.FromUint8(digit), place))
	}
	return rank
}

// uniformDigit returns an integer drawn uniformly from [0, base).
func uniformDigit(base uint8) uint8 {
	if base <= 1 {
		return 0
	}
	u := prob.Uniform{Min: 0, Max: float64(base)}
	d := math.Floor(u.Random())
	if d >= float64(base) {
		d = float64(base - 1)
	}
	return uint8(d)
}

// Sample returns a uniformly random permutation of n elements together with its rank.
func Sample[R any, W Width[R]](n uint8) (*Permutation[R, W], R, error) {
	var w W
	if err := checkElements(n, w.MaxElements()); err != nil {
		return nil, w.Zero(), err
	}
	rank := RandomRank[R, W](n)
	p, _, err := NthAbsolute[R, W](n, rank)
	return p, rank, err
}
