package real

import (
	"fmt"
	"math"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// mutationSites draws how many genes to perturb and which ones.
func mutationSites(chromLen int, pm float64) []int {
	r := rng.Global()
	count := r.Binomial(chromLen, pm)
	if count == 0 {
		return nil
	}
	return rng.SampleUnique(r, 0, chromLen, count)
}

// Uniform redraws mutated genes uniformly from their bounds.
type Uniform struct {
	pm     float64
	bounds []evolve.GeneBounds[Gene]
}

// NewUniform returns a uniform-reset mutation with the given rate.
func NewUniform(pm float64, bounds []evolve.GeneBounds[Gene]) (*Uniform, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Uniform{pm: pm, bounds: bounds}, nil
}

// Mutate implements evolve.Mutation.
func (m *Uniform) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	changed := false
	for _, idx := range mutationSites(len(c.Chromosome), m.pm) {
		b := m.bounds[idx]
		v := r.Float64Range(b.Lower(), b.Upper())
		changed = changed || v != c.Chromosome[idx]
		c.Chromosome[idx] = v
	}
	if changed {
		c.Evaluated = false
	}
}

// Gauss perturbs mutated genes with zero-mean normal noise whose
// deviation is the gene's bound width divided by the sigmas parameter.
type Gauss struct {
	pm     float64
	sigmas float64
	bounds []evolve.GeneBounds[Gene]
}

// NewGauss returns a Gaussian mutation with the given rate and width
// divisor (sigmas > 0; 6 is the usual choice).
func NewGauss(pm, sigmas float64, bounds []evolve.GeneBounds[Gene]) (*Gauss, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	if !(sigmas > 0) || math.IsInf(sigmas, 0) {
		return nil, fmt.Errorf("real: gauss sigmas %v: %w", sigmas, evolve.ErrInvalidArgument)
	}
	return &Gauss{pm: pm, sigmas: sigmas, bounds: bounds}, nil
}

// Mutate implements evolve.Mutation.
func (m *Gauss) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	changed := false
	for _, idx := range mutationSites(len(c.Chromosome), m.pm) {
		b := m.bounds[idx]
		sd := (b.Upper() - b.Lower()) / m.sigmas
		v := clamp(c.Chromosome[idx]+r.Normal(0, sd), b.Lower(), b.Upper())
		changed = changed || v != c.Chromosome[idx]
		c.Chromosome[idx] = v
	}
	if changed {
		c.Evaluated = false
	}
}

// NonUniform moves mutated genes towards a random bound by an amount that
// shrinks over the course of the run, so the search turns from
// exploration to fine-tuning.
type NonUniform struct {
	pm     float64
	beta   float64
	bounds []evolve.GeneBounds[Gene]
}

// NewNonUniform returns a non-uniform mutation with the given rate and
// shrinking exponent (beta >= 0).
func NewNonUniform(pm, beta float64, bounds []evolve.GeneBounds[Gene]) (*NonUniform, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	if beta < 0 || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("real: non-uniform beta %v: %w", beta, evolve.ErrInvalidArgument)
	}
	return &NonUniform{pm: pm, beta: beta, bounds: bounds}, nil
}

// Mutate implements evolve.Mutation.
func (m *NonUniform) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	changed := false
	for _, idx := range mutationSites(len(c.Chromosome), m.pm) {
		exponent := math.Pow(1-float64(ri.Generation)/float64(ri.MaxGenerations), m.beta)
		multiplier := 1 - math.Pow(r.Float64(), exponent)

		b := m.bounds[idx]
		bound := b.Lower()
		if r.Bool() {
			bound = b.Upper()
		}
		v := c.Chromosome[idx] + (bound-c.Chromosome[idx])*multiplier
		v = clamp(v, b.Lower(), b.Upper())
		changed = changed || v != c.Chromosome[idx]
		c.Chromosome[idx] = v
	}
	if changed {
		c.Evaluated = false
	}
}

// Boundary snaps mutated genes to one of their bounds.
type Boundary struct {
	pm     float64
	bounds []evolve.GeneBounds[Gene]
}

// NewBoundary returns a boundary mutation with the given rate.
func NewBoundary(pm float64, bounds []evolve.GeneBounds[Gene]) (*Boundary, error) {
	if err := evolve.CheckRate("mutation", pm); err != nil {
		return nil, err
	}
	return &Boundary{pm: pm, bounds: bounds}, nil
}

// Mutate implements evolve.Mutation.
func (m *Boundary) Mutate(ri *evolve.RunInfo, c *evolve.Candidate[Gene]) {
	r := rng.Global()
	changed := false
	for _, idx := range mutationSites(len(c.Chromosome), m.pm) {
		b := m.bounds[idx]
		v := b.Lower()
		if r.Bool() {
			v = b.Upper()
		}
		changed = changed || v != c.Chromosome[idx]
		c.Chromosome[idx] = v
	}
	if changed {
		c.Evaluated = false
	}
}
