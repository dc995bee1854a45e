// Package integer implements the bounded integer encoding: chromosomes of
// int genes drawn from a base-sized alphabet shifted by an offset, with
// the matching crossover and mutation operators.
package integer

import (
	"fmt"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Gene is the gene type of the integer encoding.
type Gene = int

// Encoding generates chromosomes of integers in [offset, offset+base).
type Encoding struct {
	n      int
	base   Gene
	offset Gene
}

// NewEncoding returns an integer encoding of the given chromosome length
// over a base-sized alphabet starting at offset. The base must be at
// least 2.
func NewEncoding(n int, base, offset Gene) (*Encoding, error) {
	if n < 1 {
		return nil, fmt.Errorf("integer: chromosome length %d: %w", n, evolve.ErrInvalidArgument)
	}
	if base < 2 {
		return nil, fmt.Errorf("integer: base %d below 2: %w", base, evolve.ErrInvalidArgument)
	}
	return &Encoding{n: n, base: base, offset: offset}, nil
}

// ChromLen implements evolve.Encoding.
func (e *Encoding) ChromLen() int { return e.n }

// Bounds implements evolve.BoundedEncoding: every gene position carries
// the bounds [offset, offset+base-1].
func (e *Encoding) Bounds() []evolve.GeneBounds[Gene] {
	bounds, _ := evolve.UniformBounds(e.n, e.offset, e.offset+e.base-1)
	return bounds
}

// Generate implements evolve.Encoding.
func (e *Encoding) Generate() evolve.Chromosome[Gene] {
	chrom := make(evolve.Chromosome[Gene], e.n)
	r := rng.Global()
	for i := range chrom {
		chrom[i] = rng.IntRange(r, e.offset, e.offset+e.base-1)
	}
	return chrom
}

// Uniform mutates a candidate by redrawing genes uniformly from the
// encoding's alphabet.
type Uniform struct {
	pm     float64
	bounds []evolve.GeneBounds[Gene]
}

// NewUniform returns a uniform reset mutation with the given rate over
// the encoding's bounds.
func NewUniform(pm float64, bounds []evolve.GeneBounds[Gene]) (*Uniform, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Uniform{pm: pm, bounds: bounds}, nil
}

// Mutate implements evolve.Mutation.
func (m *Uniform) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	count := r.Binomial(len(c.Chromosome), m.pm)
	if count == 0 {
		return
	}
	changed := false
	for _, idx := range rng.SampleUnique(r, 0, len(c.Chromosome), count) {
		b := m.bounds[idx]
		v := rng.IntRange(r, b.Lower(), b.Upper())
		changed = changed || v != c.Chromosome[idx]
		c.Chromosome[idx] = v
	}
	if changed {
		c.Evaluated = false
	}
}
