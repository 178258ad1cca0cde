// Package plan splits a permutation space into contiguous rank ranges so
// independent workers can each enumerate one range.
package plan

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/google/uuid"
	"github.com/reallyasi9/nthperm/internal/tiers"
	yaml "gopkg.in/yaml.v2"
)

// ErrTooManyShards is returned when there are fewer permutations than requested shards.
var ErrTooManyShards = errors.New("more shards than permutations")

// Plan is the on-disk description of a partitioned permutation space.
// Ranks are decimal strings because the 32-element tier exceeds 64 bits.
type Plan struct {
	ID       string  `yaml:"id"`
	Tier     int     `yaml:"tier"`
	Elements uint8   `yaml:"elements"`
	Total    string  `yaml:"total"`
	Shards   []Shard `yaml:"shards"`
}

// Shard is the half-open rank range [Start, End).
type Shard struct {
	Index int    `yaml:"index"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// New splits the n! permutations of the given tier into the given number of shards.
// Sizes differ by at most one, the larger shards first.
func New(tier int, n uint8, shards int) (*Plan, error) {
	r, err := tiers.For(tier)
	if err != nil {
		return nil, err
	}
	total, err := r.Total(n)
	if err != nil {
		return nil, err
	}
	if shards < 1 {
		return nil, fmt.Errorf("invalid shard count %d", shards)
	}
	bigShards := big.NewInt(int64(shards))
	if total.Cmp(bigShards) < 0 {
		return nil, fmt.Errorf("%d shards for %v permutations: %w", shards, total, ErrTooManyShards)
	}

	size, extra := new(big.Int).QuoRem(total, bigShards, new(big.Int))
	p := &Plan{
		ID:       uuid.NewString(),
		Tier:     tier,
		Elements: n,
		Total:    total.String(),
		Shards:   make([]Shard, shards),
	}
	start := new(big.Int)
	for i := range p.Shards {
		end := new(big.Int).Add(start, size)
		if big.NewInt(int64(i)).Cmp(extra) < 0 {
			end.Add(end, big.NewInt(1))
		}
		p.Shards[i] = Shard{Index: i, Start: start.String(), End: end.String()}
		start = end
	}
	return p, nil
}

// Bounds parses the shard's rank range.
func (s Shard) Bounds() (start, end *big.Int, err error) {
	start, ok := new(big.Int).SetString(s.Start, 10)
	if !ok {
		return nil, nil, fmt.Errorf("shard %d: invalid start rank %q", s.Index, s.Start)
	}
	end, ok = new(big.Int).SetString(s.End, 10)
	if !ok {
		return nil, nil, fmt.Errorf("shard %d: invalid end rank %q", s.Index, s.End)
	}
	if start.Sign() < 0 || end.Cmp(start) < 0 {
		return nil, nil, fmt.Errorf("shard %d: invalid range [%v, %v)", s.Index, start, end)
	}
	return start, end, nil
}

// Size returns the number of ranks in the shard.
func (s Shard) Size() (*big.Int, error) {
	start, end, err := s.Bounds()
	if err != nil {
		return nil, err
	}
	return end.Sub(end, start), nil
}

// Shard returns the shard with the given index.
func (p *Plan) Shard(index int) (Shard, error) {
	if index < 0 || index >= len(p.Shards) {
		return Shard{}, fmt.Errorf("shard %d out of range [0,%d)", index, len(p.Shards))
	}
	return p.Shards[index], nil
}

// Validate checks that the shards tile [0, n!) in order without gaps or overlaps.
func (p *Plan) Validate() error {
	r, err := tiers.For(p.Tier)
	if err != nil {
		return err
	}
	total, err := r.Total(p.Elements)
	if err != nil {
		return err
	}
	if total.String() != p.Total {
		return fmt.Errorf("plan %s: total %s, expected %v", p.ID, p.Total, total)
	}
	next := new(big.Int)
	for i, s := range p.Shards {
		if s.Index != i {
			return fmt.Errorf("plan %s: shard %d has index %d", p.ID, i, s.Index)
		}
		start, end, err := s.Bounds()
		if err != nil {
			return err
		}
		if start.Cmp(next) != 0 {
			return fmt.Errorf("plan %s: shard %d starts at %v, expected %v", p.ID, i, start, next)
		}
		next = end
	}
	if next.Cmp(total) != 0 {
		return fmt.Errorf("plan %s: shards end at %v, expected %v", p.ID, next, total)
	}
	return nil
}

// Write encodes the plan as YAML.
func (p *Plan) Write(w io.Writer) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Read decodes and validates a YAML plan.
func Read(r io.Reader) (*Plan, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &Plan{}
	if err = yaml.Unmarshal(b, p); err != nil {
		return nil, err
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads a plan from a YAML file.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading plan file \"%s\": %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
