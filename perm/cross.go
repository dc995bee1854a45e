package perm

import (
	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// PMX is the partially matched crossover: a random segment is copied
// directly from one parent and the displaced genes are relocated through
// the segment's mapping, keeping the rest in the other parent's order.
type PMX struct {
	pc float64
}

// NewPMX returns a partially matched crossover with the given rate.
func NewPMX(pc float64) (*PMX, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &PMX{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *PMX) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	if rng.Global().Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	left, right := RandSlice(len(p1.Chromosome))
	c1 := pmx(p1.Chromosome, p2.Chromosome, left, right)
	c2 := pmx(p2.Chromosome, p1.Chromosome, left, right)
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// pmx builds one child keeping p1's genes on [left, right).
func pmx(p1, p2 evolve.Chromosome[Gene], left, right int) evolve.Chromosome[Gene] {
	child := make(evolve.Chromosome[Gene], len(p1))
	for i := range child {
		child[i] = -1
	}
	copy(child[left:right], p1[left:right])

	for i := left; i < right; i++ {
		if Search(child, p2[i]) != -1 {
			continue
		}
		// Follow the mapping chain out of the copied segment.
		j := i
		for left <= j && j < right {
			j = Search(p2, p1[j])
		}
		child[j] = p2[i]
	}
	for i := range child {
		if child[i] == -1 {
			child[i] = p2[i]
		}
	}
	return child
}

// Order1 is the order crossover OX1: a random segment is copied from one
// parent and the remaining positions are filled with the other parent's
// genes in their original rotation order.
type Order1 struct {
	pc float64
}

// NewOrder1 returns an order crossover with the given rate.
func NewOrder1(pc float64) (*Order1, error) {
	if err := evolve.CheckRate("crossover", pc); err != nil {
		return nil, err
	}
	return &Order1{pc: pc}, nil
}

// Cross implements evolve.Crossover.
func (x *Order1) Cross(ri *evolve.RunInfo, p1, p2 *evolve.Candidate[Gene]) (evolve.Candidate[Gene], evolve.Candidate[Gene]) {
	if rng.Global().Float64() > x.pc {
		return p1.Clone(), p2.Clone()
	}
	left, right := RandSlice(len(p1.Chromosome))
	c1 := order1(p1.Chromosome, p2.Chromosome, left, right)
	c2 := order1(p2.Chromosome, p1.Chromosome, left, right)
	return evolve.NewCandidate(c1), evolve.NewCandidate(c2)
}

// order1 builds one child keeping p1's genes on [left, right).
func order1(p1, p2 evolve.Chromosome[Gene], left, right int) evolve.Chromosome[Gene] {
	n := len(p1)
	direct := make([]bool, n)
	for i := left; i < right; i++ {
		direct[p1[i]] = true
	}

	child := make(evolve.Chromosome[Gene], n)
	copy(child[left:right], p1[left:right])

	childPos := right % n
	for i := 0; i < n; i++ {
		g := p2[(right+i)%n]
		if direct[g] {
			continue
		}
		child[childPos] = g
		childPos = (childPos + 1) % n
		if childPos == left {
			childPos = right % n
		}
	}
	return child
}
