package perm

import (
	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Swap mutates a candidate by exchanging two random genes with
// probability pm.
type Swap struct {
	pm float64
}

// NewSwap returns a swap mutation with the given rate.
func NewSwap(pm float64) (*Swap, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Swap{pm: pm}, nil
}

// Mutate implements evolve.Mutation.
func (m *Swap) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > m.pm || len(c.Chromosome) < 2 {
		return
	}
	idx := rng.SampleUnique(r, 0, len(c.Chromosome), 2)
	c.Chromosome[idx[0]], c.Chromosome[idx[1]] = c.Chromosome[idx[1]], c.Chromosome[idx[0]]
	c.Evaluated = false
}

// Inversion mutates a candidate by reversing a random segment with
// probability pm.
type Inversion struct {
	pm float64
}

// NewInversion returns an inversion mutation with the given rate.
func NewInversion(pm float64) (*Inversion, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Inversion{pm: pm}, nil
}

// Mutate implements evolve.Mutation.
func (m *Inversion) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > m.pm || len(c.Chromosome) < 2 {
		return
	}
	left, right := RandSlice(len(c.Chromosome))
	if right-left < 2 {
		return
	}
	Reverse(c.Chromosome[left:right])
	c.Evaluated = false
}
