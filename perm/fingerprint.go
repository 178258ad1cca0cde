package perm

import "github.com/segmentio/fasthash/jody"

// Fingerprint hashes a permutation. Equal permutations always share a
// fingerprint; distinct ones collide with small but nonzero probability.
func Fingerprint(p []uint8) uint64 {
	h := jody.HashUint64(uint64(len(p)))
	for _, x := range p {
		h = jody.AddUint64(h, uint64(x))
	}
	return h
}

// Digest accumulates fingerprints with wrapping addition, so the digest of a
// rank range is the sum of the digests of any split of that range.
type Digest struct {
	Sum   uint64
	Count uint64
}

// Add folds p into the digest.
func (d *Digest) Add(p []uint8) {
	d.Sum += Fingerprint(p)
	d.Count++
}

// Merge folds another digest into d.
func (d *Digest) Merge(o Digest) {
	d.Sum += o.Sum
	d.Count += o.Count
}
