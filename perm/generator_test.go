package perm

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"testing"

	"lukechampine.com/uint128"
)

func testSlice(t *testing.T, want []uint8, p interface{ Collect() []uint8 }, ok bool) {
	t.Helper()
	if !ok {
		t.Fatalf("expected %v, got a miss", want)
	}
	if got := p.Collect(); !check(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewTooManyElements(t *testing.T) {
	tests := []struct {
		name string
		new  func(uint8) error
		max  uint8
	}{
		{"tier 8", func(n uint8) error { _, err := New8(n); return err }, 8},
		{"tier 16", func(n uint8) error { _, err := New16(n); return err }, 16},
		{"tier 32", func(n uint8) error { _, err := New32(n); return err }, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := uint8(0); n <= tt.max; n++ {
				if err := tt.new(n); err != nil {
					t.Errorf("n=%d: unexpected error %v", n, err)
				}
			}
			for _, n := range []uint8{tt.max + 1, tt.max + 2, math.MaxUint8} {
				if err := tt.new(n); !errors.Is(err, ErrTooManyElements) {
					t.Errorf("n=%d: expected %v, got %v", n, ErrTooManyElements, err)
				}
			}
		})
	}
}

func TestNthAbsoluteFourElements(t *testing.T) {
	p, ok, err := NthAbsolute8(4, 0)
	if err != nil {
		t.Fatal(err)
	}
	testSlice(t, []uint8{0, 1, 2, 3}, p, ok)

	p, ok, err = NthAbsolute8(4, 23)
	if err != nil {
		t.Fatal(err)
	}
	testSlice(t, []uint8{3, 2, 1, 0}, p, ok)

	p, ok, err = NthAbsolute8(4, 24)
	if err != nil {
		t.Fatal(err)
	}
	if ok || p != nil {
		t.Errorf("expected rank 24 of 4 elements to miss, got %v", p)
	}

	if _, _, err = NthAbsolute8(9, 0); !errors.Is(err, ErrTooManyElements) {
		t.Errorf("expected %v, got %v", ErrTooManyElements, err)
	}
}

func TestNthAbsoluteLargest(t *testing.T) {
	p, ok, err := NthAbsolute16(16, factorials64[16]-1)
	if err != nil {
		t.Fatal(err)
	}
	testSlice(t, reversed(16), p, ok)

	p32, ok, err := NthAbsolute32(30, factorials128[30].Sub64(1))
	if err != nil {
		t.Fatal(err)
	}
	testSlice(t, reversed(30), p32, ok)

	if _, ok, _ = NthAbsolute32(30, factorials128[30]); ok {
		t.Errorf("expected rank 30! to miss")
	}
	if _, _, err = NthAbsolute32(33, uint128.Zero); !errors.Is(err, ErrTooManyElements) {
		t.Errorf("expected %v, got %v", ErrTooManyElements, err)
	}
}

func TestNextPermutationNine(t *testing.T) {
	g, err := New16(9)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.NextPermutation()
	testSlice(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8}, p, ok)
	p, ok = g.NextPermutation()
	testSlice(t, []uint8{0, 1, 2, 3, 4, 5, 6, 8, 7}, p, ok)
}

func TestNextPermutationEighteen(t *testing.T) {
	g, err := New32(18)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.NextPermutation()
	testSlice(t, seq(18), p, ok)

	p, ok = g.Nth(factorials128[18].Sub64(2))
	testSlice(t, reversed(18), p, ok)

	if _, ok = g.NextPermutation(); ok {
		t.Errorf("expected generator to be exhausted")
	}
}

func TestGeneratorSweep(t *testing.T) {
	const n = 5
	g, err := New8(n)
	if err != nil {
		t.Fatal(err)
	}

	k := 0
	var prev []uint8
	for {
		rem, err := g.Remaining()
		if err != nil {
			t.Fatal(err)
		}
		if rem != 120-k {
			t.Fatalf("after %d steps: expected %v remaining, got %v", k, 120-k, rem)
		}
		want, _, _ := NthAbsolute8(n, uint16(k))
		p, ok := g.NextPermutation()
		if !ok {
			break
		}
		got := p.Collect()
		if !check(want.Collect(), got) {
			t.Fatalf("step %d: got %v", k, got)
		}
		if prev != nil && slices.Compare(prev, got) >= 0 {
			t.Fatalf("step %d: %v does not follow %v", k, got, prev)
		}
		prev = got
		k++
	}
	if k != 120 {
		t.Errorf("expected %v permutations, got %v", 120, k)
	}
	if !g.Exhausted() {
		t.Errorf("expected generator to be exhausted")
	}
	for i := 0; i < 3; i++ {
		if _, ok := g.NextPermutation(); ok {
			t.Errorf("expected exhausted generator to keep missing")
		}
	}
	if rem, _ := g.Remaining(); rem != 0 {
		t.Errorf("expected %v, got %v", 0, rem)
	}
}

func TestGeneratorNoElements(t *testing.T) {
	g, err := New8(0)
	if err != nil {
		t.Fatal(err)
	}
	if rem, _ := g.Remaining(); rem != 1 {
		t.Errorf("expected %v, got %v", 1, rem)
	}
	p, ok := g.NextPermutation()
	testSlice(t, []uint8{}, p, ok)
	if _, ok = g.NextPermutation(); ok {
		t.Errorf("expected generator to be exhausted")
	}
}

func TestNthZeroIsNext(t *testing.T) {
	g, err := New16(7)
	if err != nil {
		t.Fatal(err)
	}
	g.Nth(100)
	fork := *g

	a, okA := g.Nth(0)
	b, okB := fork.NextPermutation()
	if okA != okB {
		t.Fatalf("expected both lookups to agree, got %v and %v", okA, okB)
	}
	if x, y := a.Collect(), b.Collect(); !check(x, y) {
		t.Errorf("expected %v, got %v", x, y)
	}
	if g.Position() != fork.Position() {
		t.Errorf("expected position %v, got %v", fork.Position(), g.Position())
	}
}

func TestNthStep(t *testing.T) {
	g, err := New8(4)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.Nth(6)
	testSlice(t, []uint8{1, 0, 2, 3}, p, ok)
	p, ok = g.Nth(5)
	testSlice(t, []uint8{2, 0, 1, 3}, p, ok)
	if g.Position() != 13 {
		t.Errorf("expected %v, got %v", 13, g.Position())
	}
	if rem, _ := g.Remaining(); rem != 11 {
		t.Errorf("expected %v, got %v", 11, rem)
	}

	// Missing past the end exhausts the generator even though earlier ranks remain unvisited.
	if _, ok = g.Nth(100); ok {
		t.Errorf("expected a miss")
	}
	if _, ok = g.NextPermutation(); ok {
		t.Errorf("expected exhausted generator to keep missing")
	}
}

func TestNthSaturates(t *testing.T) {
	g8, _ := New8(8)
	g8.Nth(10)
	if _, ok := g8.Nth(math.MaxUint16); ok {
		t.Errorf("expected a miss")
	}
	if g8.Position() != math.MaxUint16 {
		t.Errorf("expected %v, got %v", math.MaxUint16, g8.Position())
	}
	if _, ok := g8.Nth(math.MaxUint16); ok {
		t.Errorf("expected a miss")
	}

	g16, _ := New16(16)
	if _, ok := g16.Nth(math.MaxUint64); ok {
		t.Errorf("expected a miss")
	}
	if g16.Position() != math.MaxUint64 {
		t.Errorf("expected %v, got %v", uint64(math.MaxUint64), g16.Position())
	}

	g32, _ := New32(32)
	g32.NextPermutation()
	if _, ok := g32.Nth(uint128.Max); ok {
		t.Errorf("expected a miss")
	}
	if !g32.Position().Equals(uint128.Max) {
		t.Errorf("expected %v, got %v", uint128.Max, g32.Position())
	}
	if rem, err := g32.Remaining(); err != nil || rem != 0 {
		t.Errorf("expected 0 remaining, got %v (%v)", rem, err)
	}
}

func TestRemainingOverflow(t *testing.T) {
	g, err := New32(21)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = g.Remaining(); !errors.Is(err, ErrRemainingOverflow) {
		t.Errorf("expected %v, got %v", ErrRemainingOverflow, err)
	}
	if _, err = g.Count(); !errors.Is(err, ErrRemainingOverflow) {
		t.Errorf("expected %v, got %v", ErrRemainingOverflow, err)
	}

	// Stepping close to the end brings the count back into range.
	g.Nth(factorials128[21].Sub64(11))
	rem, err := g.Remaining()
	if err != nil {
		t.Fatal(err)
	}
	if rem != 10 {
		t.Errorf("expected %v, got %v", 10, rem)
	}

	if strconv.IntSize == 64 {
		g20, _ := New32(20)
		rem, err := g20.Remaining()
		if err != nil || uint64(rem) != factorials64[16]*17*18*19*20 {
			t.Errorf("expected 20!, got %v (%v)", rem, err)
		}
	}
}

func TestGeneratorAll(t *testing.T) {
	g, err := New8(4)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for p := range g.All() {
		if p.Len() != 4 {
			t.Errorf("expected %v, got %v", 4, p.Len())
		}
		n++
		if n == 10 {
			break
		}
	}
	if rem, _ := g.Count(); rem != 14 {
		t.Errorf("expected %v, got %v", 14, rem)
	}
	for range g.All() {
		n++
	}
	if n != 24 {
		t.Errorf("expected %v, got %v", 24, n)
	}
}

func BenchmarkPermuteAll10(b *testing.B) {
	for i := 0; i < b.N; i++ {
		g, _ := New16(10)
		for p := range g.All() {
			p.Collect()
		}
	}
}
