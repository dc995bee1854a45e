package sel

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/evolvelib/evolve"
)

// KeepChildren replaces the whole population with the children of the
// generation.
type KeepChildren struct{}

// Survivors implements Replacement.
func (KeepChildren) Survivors(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	n := ri.PopSize
	survivors := make([]int, n)
	for i := range survivors {
		survivors[i] = n + i
	}
	return survivors
}

// KeepBest keeps the N fittest candidates of the parent+child union,
// parents winning ties.
type KeepBest struct{}

// Survivors implements Replacement.
func (KeepBest) Survivors(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	fvec := firstObjective(union)
	order := make([]int, len(fvec))
	for i := range order {
		order[i] = i
	}
	// Stable descending sort: among equal fitness values the lower index,
	// a parent, comes first.
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(fvec[b], fvec[a]) })
	return order[:ri.PopSize]
}

// Elitism keeps the k best parents and fills the rest of the population
// with the first N-k children.
type Elitism struct {
	elites int
}

// NewElitism returns an elitist replacement preserving n parents per
// generation (n >= 0).
func NewElitism(n int) (*Elitism, error) {
	if n < 0 {
		return nil, fmt.Errorf("sel: elite count %d: %w", n, evolve.ErrInvalidArgument)
	}
	return &Elitism{elites: n}, nil
}

// Survivors implements Replacement.
func (e *Elitism) Survivors(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	n := ri.PopSize
	k := e.elites
	if k > n {
		k = n
	}

	parents := argsort(firstObjective(union[:n]))
	survivors := make([]int, 0, n)
	for i := 0; i < k; i++ {
		survivors = append(survivors, parents[len(parents)-1-i])
	}
	for i := 0; len(survivors) < n; i++ {
		survivors = append(survivors, n+i)
	}
	return survivors
}
