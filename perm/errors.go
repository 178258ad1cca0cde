package perm

import "errors"

var (
	// ErrTooManyElements is returned when the requested element count exceeds the tier maximum.
	ErrTooManyElements = errors.New("too many elements for tier")

	// ErrSliceTooSmall is returned when a projection is given fewer items than there are elements.
	ErrSliceTooSmall = errors.New("slice too small for permutation")

	// ErrRemainingOverflow is returned when the number of remaining permutations does not fit in an int.
	ErrRemainingOverflow = errors.New("remaining permutation count overflows int")
)
