package integer

import (
	"slices"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// nPointCross exchanges the parent genes across n randomly chosen
// crossover points.
func nPointCross(p1, p2 evolve.Chromosome[Gene], n int) (evolve.Chromosome[Gene], evolve.Chromosome[Gene]) {
	if n > len(p1) {
		n = len(p1)
	}
	isPoint := make([]bool, len(p1))
	for _, idx := range rng.SampleUnique(rng.Global(), 0, len(p1), n) {
		isPoint[idx] = true
	}

	c1 := slices.Clone(p1)
	c2 := slices.Clone(p2)
	remaining := n
	for i := range c1 {
		if isPoint[i] {
			remaining--
		}
		if remaining%2 == 1 {
			c1[i], c2[i] = c2[i], c1[i]
		}
	}
	return c1, c2
}

// SinglePoint is the classic one-point crossover.
type SinglePoint struct {
	pc float64
}

// NewSinglePoint returns a single-point crossover with the given rate.
func NewSinglePoint(pc float64) (*SinglePoint, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &SinglePoint{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *SinglePoint) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	if rng.Global().Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	c1, c2 := nPointCross(p1.Chromosome, p2.Chromosome, 1)
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// TwoPoint exchanges the segment between two crossover points.
type TwoPoint struct {
	pc float64
}

// NewTwoPoint returns a two-point crossover with the given rate.
func NewTwoPoint(pc float64) (*TwoPoint, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &TwoPoint{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *TwoPoint) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	if rng.Global().Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	c1, c2 := nPointCross(p1.Chromosome, p2.Chromosome, 2)
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// UniformCross swaps the genes of the parents at each position
// independently with probability 1/2.
type UniformCross struct {
	pc float64
}

// NewUniformCross returns a uniform crossover with the given rate.
func NewUniformCross(pc float64) (*UniformCross, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &UniformCross{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *UniformCross) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	r := rng.Global()
	if r.Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	c1 := slices.Clone(p1.Chromosome)
	c2 := slices.Clone(p2.Chromosome)
	for i := range c1 {
		if r.Bool() {
			c1[i], c2[i] = c2[i], c1[i]
		}
	}
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}
