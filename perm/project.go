package perm

import "fmt"

// Project reorders items by an index permutation: the i-th result is items[p[i]].
// Items beyond the permutation's length are ignored.
func Project[E any](p []uint8, items []E) ([]E, error) {
	if len(items) < len(p) {
		return nil, fmt.Errorf("%d items for %d elements: %w", len(items), len(p), ErrSliceTooSmall)
	}
	out := make([]E, len(p))
	for i, idx := range p {
		out[i] = items[idx]
	}
	return out, nil
}

// Projector walks a Generator and projects each permutation onto a fixed list of items.
type Projector[R any, W Width[R], E any] struct {
	gen   *Generator[R, W]
	items []E
}

// NewProjector pairs gen with items. There must be at least as many items as elements.
func NewProjector[R any, W Width[R], E any](gen *Generator[R, W], items []E) (*Projector[R, W, E], error) {
	if len(items) < int(gen.Elements()) {
		return nil, fmt.Errorf("%d items for %d elements: %w", len(items), gen.Elements(), ErrSliceTooSmall)
	}
	cp := make([]E, gen.Elements())
	copy(cp, items)
	return &Projector[R, W, E]{gen: gen, items: cp}, nil
}

// Next projects the generator's next permutation.
func (pr *Projector[R, W, E]) Next() ([]E, bool) {
	var w W
	return pr.Nth(w.Zero())
}

// Nth projects the permutation Generator.Nth(step) would produce.
func (pr *Projector[R, W, E]) Nth(step R) ([]E, bool) {
	p, ok := pr.gen.Nth(step)
	if !ok {
		return nil, false
	}
	out := make([]E, 0, len(pr.items))
	for v := range p.All() {
		out = append(out, pr.items[v])
	}
	return out, true
}

// Remaining is the underlying generator's Remaining.
func (pr *Projector[R, W, E]) Remaining() (int, error) {
	return pr.gen.Remaining()
}
