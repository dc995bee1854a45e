package real

import (
	"fmt"
	"math"
	"slices"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Arithmetic mixes the parents linearly: with a single random weight a,
// the children are a*p1 + (1-a)*p2 and its mirror.
type Arithmetic struct {
	pc float64
}

// NewArithmetic returns an arithmetic crossover with the given rate.
func NewArithmetic(pc float64) (*Arithmetic, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &Arithmetic{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *Arithmetic) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	alpha := r.Float64()
	c1 := make(evolve.Chromosome[Gene], len(p1.Chromosome))
	c2 := make(evolve.Chromosome[Gene], len(p1.Chromosome))
	for i := range c1 {
		a, b := p1.Chromosome[i], p2.Chromosome[i]
		c1[i] = alpha*a + (1-alpha)*b
		c2[i] = (1-alpha)*a + alpha*b
	}
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// BLXAlpha is the blend crossover: each child gene is drawn uniformly
// from the parents' interval extended by alpha times its width on both
// sides, then clamped to the gene bounds.
type BLXAlpha struct {
	pc     float64
	alpha  float64
	bounds []evolve.GeneBounds[Gene]
}

// NewBLXAlpha returns a blend crossover with the given rate and extension
// factor (alpha >= 0, usually 0.5).
func NewBLXAlpha(pc, alpha float64, bounds []evolve.GeneBounds[Gene]) (*BLXAlpha, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	if alpha < 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("real: blend alpha %v: %w", alpha, evolve.ErrInvalidArgument)
	}
	return &BLXAlpha{pc: pc, alpha: alpha, bounds: bounds}, nil
}

// Cross implements evolve.Crossover.
func (x *BLXAlpha) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	c1 := make(evolve.Chromosome[Gene], len(p1.Chromosome))
	c2 := make(evolve.Chromosome[Gene], len(p1.Chromosome))
	for i := range c1 {
		lo := math.Min(p1.Chromosome[i], p2.Chromosome[i])
		hi := math.Max(p1.Chromosome[i], p2.Chromosome[i])
		ext := x.alpha * (hi - lo)
		b := x.bounds[i]
		c1[i] = clamp(r.Float64Range(lo-ext, hi+ext), b.Lower(), b.Upper())
		c2[i] = clamp(r.Float64Range(lo-ext, hi+ext), b.Lower(), b.Upper())
	}
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// SimulatedBinary mimics the spread of the binary single-point crossover
// on real genes. Larger eta concentrates the children near the parents.
type SimulatedBinary struct {
	pc     float64
	eta    float64
	bounds []evolve.GeneBounds[Gene]
}

// NewSimulatedBinary returns an SBX crossover with the given rate and
// distribution index (eta >= 0).
func NewSimulatedBinary(pc, eta float64, bounds []evolve.GeneBounds[Gene]) (*SimulatedBinary, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	if eta < 0 || math.IsNaN(eta) || math.IsInf(eta, 0) {
		return nil, fmt.Errorf("real: SBX eta %v: %w", eta, evolve.ErrInvalidArgument)
	}
	return &SimulatedBinary{pc: pc, eta: eta, bounds: bounds}, nil
}

// Cross implements evolve.Crossover.
func (x *SimulatedBinary) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	c1 := slices.Clone(p1.Chromosome)
	c2 := slices.Clone(p2.Chromosome)
	for i := range c1 {
		u := r.Float64()
		for u == 1 {
			u = r.Float64()
		}
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(x.eta+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(x.eta+1))
		}
		a, b := p1.Chromosome[i], p2.Chromosome[i]
		bd := x.bounds[i]
		c1[i] = clamp(0.5*((1+beta)*a+(1-beta)*b), bd.Lower(), bd.Upper())
		c2[i] = clamp(0.5*((1-beta)*a+(1+beta)*b), bd.Lower(), bd.Upper())
	}
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}
