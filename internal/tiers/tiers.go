// Package tiers selects a capacity tier at run time and drives the generic
// perm algorithms through it, exchanging ranks as *big.Int.
package tiers

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/reallyasi9/nthperm/perm"
	"lukechampine.com/uint128"
)

// ErrUnknownTier is returned for a tier other than 8, 16 or 32.
var ErrUnknownTier = errors.New("unknown tier")

// Runner is a capacity tier with its rank width hidden behind *big.Int.
type Runner interface {
	Tier() int
	MaxElements() uint8
	// Total returns n!.
	Total(n uint8) (*big.Int, error)
	// Nth returns the permutation at rank, or false if rank is outside [0, n!).
	Nth(n uint8, rank *big.Int) ([]uint8, bool, error)
	// Walk calls fn for each permutation from rank start onward, stopping
	// after limit permutations (nil for no limit), at the end of the space,
	// when fn returns an error, or when ctx is done.
	Walk(ctx context.Context, n uint8, start, limit *big.Int, fn func(rank *big.Int, p []uint8) error) error
	// Remaining returns how many permutations follow rank start, inclusive.
	Remaining(n uint8, start *big.Int) (int, error)
	// Sample returns a uniformly random permutation and its rank.
	Sample(n uint8) ([]uint8, *big.Int, error)
}

// Tiers lists the supported tiers in increasing order.
var Tiers = []int{8, 16, 32}

// For returns the Runner for tier.
func For(tier int) (Runner, error) {
	switch tier {
	case 8:
		return runner[uint16, perm.Tier8]{tier: 8}, nil
	case 16:
		return runner[uint64, perm.Tier16]{tier: 16}, nil
	case 32:
		return runner[uint128.Uint128, perm.Tier32]{tier: 32}, nil
	}
	return nil, fmt.Errorf("tier %d: %w", tier, ErrUnknownTier)
}

// Smallest returns the smallest tier that can hold n elements.
func Smallest(n uint8) (Runner, error) {
	for _, tier := range Tiers {
		r, _ := For(tier)
		if n <= r.MaxElements() {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%d elements, maximum %d: %w", n, Tiers[len(Tiers)-1], perm.ErrTooManyElements)
}

type runner[R any, W perm.Width[R]] struct {
	tier int
}

func (r runner[R, W]) Tier() int {
	return r.tier
}

func (r runner[R, W]) MaxElements() uint8 {
	var w W
	return w.MaxElements()
}

func (r runner[R, W]) Total(n uint8) (*big.Int, error) {
	g, err := perm.NewGenerator[R, W](n)
	if err != nil {
		return nil, err
	}
	var w W
	return w.Big(g.Size()), nil
}

func (r runner[R, W]) Nth(n uint8, rank *big.Int) ([]uint8, bool, error) {
	var w W
	idx, fits := w.FromBig(rank)
	if !fits {
		// Too wide for the tier, so certainly past n!; still validate n.
		_, err := perm.NewGenerator[R, W](n)
		return nil, false, err
	}
	p, ok, err := perm.NthAbsolute[R, W](n, idx)
	if !ok || err != nil {
		return nil, false, err
	}
	return p.Collect(), true, nil
}

// seek returns a generator whose next permutation is at rank start.
func (r runner[R, W]) seek(n uint8, start *big.Int) (*perm.Generator[R, W], error) {
	g, err := perm.NewGenerator[R, W](n)
	if err != nil {
		return nil, err
	}
	if start.Sign() < 0 {
		return nil, fmt.Errorf("negative rank %v", start)
	}
	if start.Sign() == 0 {
		return g, nil
	}
	var w W
	skip, fits := w.FromBig(new(big.Int).Sub(start, big.NewInt(1)))
	if !fits {
		skip = w.SaturatingAdd(w.Factorial(w.MaxElements()), w.FromUint8(1))
	}
	// Landing on start-1 leaves the cursor at start.
	g.Nth(skip)
	return g, nil
}

func (r runner[R, W]) Walk(ctx context.Context, n uint8, start, limit *big.Int, fn func(rank *big.Int, p []uint8) error) error {
	g, err := r.seek(n, start)
	if err != nil {
		return err
	}
	rank := new(big.Int).Set(start)
	count := new(big.Int)
	one := big.NewInt(1)
	for limit == nil || count.Cmp(limit) < 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, ok := g.NextPermutation()
		if !ok {
			break
		}
		if err := fn(new(big.Int).Set(rank), p.Collect()); err != nil {
			return err
		}
		rank.Add(rank, one)
		count.Add(count, one)
	}
	return nil
}

func (r runner[R, W]) Remaining(n uint8, start *big.Int) (int, error) {
	g, err := r.seek(n, start)
	if err != nil {
		return 0, err
	}
	return g.Remaining()
}

func (r runner[R, W]) Sample(n uint8) ([]uint8, *big.Int, error) {
	p, rank, err := perm.Sample[R, W](n)
	if err != nil {
		return nil, nil, err
	}
	var w W
	return p.Collect(), w.Big(rank), nil
}
