// Package binary implements the binary encoding: chromosomes of 0/1
// genes, with the matching crossover and mutation operators.
package binary

import (
	"fmt"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Gene is the gene type of the binary encoding. Values are 0 or 1.
type Gene = uint8

// Encoding generates chromosomes of fair-coin bits.
type Encoding struct {
	n int
}

// NewEncoding returns a binary encoding of the given chromosome length.
func NewEncoding(n int) (*Encoding, error) {
	if n < 1 {
		return nil, fmt.Errorf("binary: chromosome length %d: %w", n, evolve.ErrInvalidArgument)
	}
	return &Encoding{n: n}, nil
}

// ChromLen implements evolve.Encoding.
func (e *Encoding) ChromLen() int { return e.n }

// Generate implements evolve.Encoding.
func (e *Encoding) Generate() evolve.Chromosome[Gene] {
	chrom := make(evolve.Chromosome[Gene], e.n)
	r := rng.Global()
	for i := range chrom {
		if r.Bool() {
			chrom[i] = 1
		}
	}
	return chrom
}

// Flip mutates a candidate by flipping each bit with probability pm.
// The number of flipped bits is drawn from the matching binomial
// distribution.
type Flip struct {
	pm float64
}

// NewFlip returns a bit-flip mutation with the given rate.
func NewFlip(pm float64) (*Flip, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Flip{pm: pm}, nil
}

// Mutate implements evolve.Mutation.
func (m *Flip) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	count := r.Binomial(len(c.Chromosome), m.pm)
	if count == 0 {
		return
	}
	for _, idx := range rng.SampleUnique(r, 0, len(c.Chromosome), count) {
		c.Chromosome[idx] ^= 1
	}
	c.Evaluated = false
}
