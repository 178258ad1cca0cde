// Package perm unranks permutations of the index set {0, ..., n-1}.
//
// The permutation at a given rank in lexicographic order is decoded directly
// through the factorial number system, so the k-th permutation costs O(n)
// regardless of k. A Generator walks the permutation space as a cursor and can
// jump forward by arbitrary strides; NthAbsolute looks up any rank without a
// cursor, which makes it straightforward to split the space into rank ranges
// and hand each range to a separate worker.
//
// Three capacity tiers are provided. Each pairs a maximum element count with
// an integer width wide enough to hold n! for every n up to that maximum:
//
//	Tier8   up to  8 elements, uint16 ranks
//	Tier16  up to 16 elements, uint64 ranks
//	Tier32  up to 32 elements, uint128.Uint128 ranks
package perm
