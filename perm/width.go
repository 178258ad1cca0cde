package perm

import (
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// Width is the integer policy a tier runs its ranks through.
// Implementations are stateless; the zero value is ready to use.
type Width[R any] interface {
	// MaxElements is the largest n for which n! fits in R.
	MaxElements() uint8
	// Factorial returns n! for n <= MaxElements.
	Factorial(n uint8) R

	Zero() R
	FromUint8(v uint8) R
	// Uint8 truncates v, which the caller guarantees is below 256.
	Uint8(v R) uint8

	Less(a, b R) bool
	// SaturatingAdd returns a+b, clamped to the largest value of R.
	SaturatingAdd(a, b R) R
	Sub(a, b R) R
	Mul(a, b R) R
	Div(a, b R) R

	// Int converts v to an int, reporting false if it does not fit.
	Int(v R) (int, bool)
	Big(v R) *big.Int
	// FromBig converts b to R, reporting false if b is negative or too large.
	FromBig(b *big.Int) (R, bool)
}

// Tier8 handles up to 8 elements with uint16 ranks (8! = 40320).
type Tier8 struct{}

func (Tier8) MaxElements() uint8       { return 8 }
func (Tier8) Factorial(n uint8) uint16 { return factorials16[n] }
func (Tier8) Zero() uint16             { return 0 }
func (Tier8) FromUint8(v uint8) uint16 { return uint16(v) }
func (Tier8) Uint8(v uint16) uint8     { return uint8(v) }
func (Tier8) Less(a, b uint16) bool    { return a < b }
func (Tier8) Sub(a, b uint16) uint16   { return a - b }
func (Tier8) Mul(a, b uint16) uint16   { return a * b }
func (Tier8) Div(a, b uint16) uint16   { return a / b }
func (Tier8) Int(v uint16) (int, bool) { return int(v), true }
func (Tier8) Big(v uint16) *big.Int    { return new(big.Int).SetUint64(uint64(v)) }
func (Tier8) SaturatingAdd(a, b uint16) uint16 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint16
}

func (Tier8) FromBig(b *big.Int) (uint16, bool) {
	if b.Sign() < 0 || !b.IsUint64() || b.Uint64() > math.MaxUint16 {
		return 0, false
	}
	return uint16(b.Uint64()), true
}

// Tier16 handles up to 16 elements with uint64 ranks (16! ≈ 2.1e13).
type Tier16 struct{}

func (Tier16) MaxElements() uint8       { return 16 }
func (Tier16) Factorial(n uint8) uint64 { return factorials64[n] }
func (Tier16) Zero() uint64             { return 0 }
func (Tier16) FromUint8(v uint8) uint64 { return uint64(v) }
func (Tier16) Uint8(v uint64) uint8     { return uint8(v) }
func (Tier16) Less(a, b uint64) bool    { return a < b }
func (Tier16) Sub(a, b uint64) uint64   { return a - b }
func (Tier16) Mul(a, b uint64) uint64   { return a * b }
func (Tier16) Div(a, b uint64) uint64   { return a / b }
func (Tier16) Big(v uint64) *big.Int    { return new(big.Int).SetUint64(v) }
func (Tier16) SaturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxUint64
}

func (Tier16) Int(v uint64) (int, bool) {
	if v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

func (Tier16) FromBig(b *big.Int) (uint64, bool) {
	if b.Sign() < 0 || !b.IsUint64() {
		return 0, false
	}
	return b.Uint64(), true
}

// Tier32 handles up to 32 elements with 128-bit ranks (32! ≈ 2.6e35).
type Tier32 struct{}

func (Tier32) MaxElements() uint8                       { return 32 }
func (Tier32) Factorial(n uint8) uint128.Uint128        { return factorials128[n] }
func (Tier32) Zero() uint128.Uint128                    { return uint128.Zero }
func (Tier32) FromUint8(v uint8) uint128.Uint128        { return uint128.From64(uint64(v)) }
func (Tier32) Uint8(v uint128.Uint128) uint8            { return uint8(v.Lo) }
func (Tier32) Less(a, b uint128.Uint128) bool           { return a.Cmp(b) < 0 }
func (Tier32) Sub(a, b uint128.Uint128) uint128.Uint128 { return a.Sub(b) }
func (Tier32) Mul(a, b uint128.Uint128) uint128.Uint128 { return a.Mul(b) }
func (Tier32) Div(a, b uint128.Uint128) uint128.Uint128 { return a.Div(b) }
func (Tier32) Big(v uint128.Uint128) *big.Int           { return v.Big() }
func (Tier32) SaturatingAdd(a, b uint128.Uint128) uint128.Uint128 {
	if s := a.AddWrap(b); s.Cmp(a) >= 0 {
		return s
	}
	return uint128.Max
}

func (Tier32) Int(v uint128.Uint128) (int, bool) {
	if v.Hi != 0 || v.Lo > math.MaxInt {
		return 0, false
	}
	return int(v.Lo), true
}

func (Tier32) FromBig(b *big.Int) (uint128.Uint128, bool) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return uint128.Zero, false
	}
	// uint128.FromBig shifts its argument in place.
	return uint128.FromBig(new(big.Int).Set(b)), true
}
