// Package real implements the real-valued encoding: chromosomes of
// float64 genes bounded per position, with the matching crossover and
// mutation operators. All operators keep the genes inside their bounds.
package real

import (
	"fmt"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Gene is the gene type of the real encoding.
type Gene = float64

// Encoding generates chromosomes sampled uniformly from per-gene bounds.
type Encoding struct {
	bounds []evolve.GeneBounds[Gene]
}

// NewEncoding returns a real encoding over the given bounds vector, one
// entry per gene position.
func NewEncoding(bounds []evolve.GeneBounds[Gene]) (*Encoding, error) {
	if len(bounds) < 1 {
		return nil, fmt.Errorf("real: empty bounds vector: %w", evolve.ErrInvalidArgument)
	}
	return &Encoding{bounds: bounds}, nil
}

// ChromLen implements evolve.Encoding.
func (e *Encoding) ChromLen() int { return len(e.bounds) }

// Bounds implements evolve.BoundedEncoding.
func (e *Encoding) Bounds() []evolve.GeneBounds[Gene] { return e.bounds }

// Generate implements evolve.Encoding.
func (e *Encoding) Generate() evolve.Chromosome[Gene] {
	chrom := make(evolve.Chromosome[Gene], len(e.bounds))
	r := rng.Global()
	for i, b := range e.bounds {
		chrom[i] = r.Float64Range(b.Lower(), b.Upper())
	}
	return chrom
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
