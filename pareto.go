package evolve

import (
	"slices"

	"github.com/evolvelib/evolve/vmath"
)

// ParetoFronts partitions the rows of a fitness matrix into successive
// non-dominated fronts. Front 0 is the global non-dominated set; each
// later front is the non-dominated set once earlier fronts are removed.
// Indices within a front keep their original relative order.
func ParetoFronts(fmat FitnessMatrix) [][]int {
	n := len(fmat)

	// Count the dominators of each row and remember who it dominates.
	domCount := make([]int, n)
	domList := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			switch vmath.ParetoCompare(fmat[i], fmat[j]) {
			case 1:
				domCount[j]++
				domList[i] = append(domList[i], j)
			case -1:
				domCount[i]++
				domList[j] = append(domList[j], i)
			}
		}
	}

	var current []int
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	// Peel fronts by releasing the rows each front dominates.
	var fronts [][]int
	for len(current) > 0 {
		var next []int
		for _, i := range current {
			for _, j := range domList[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		slices.Sort(next)
		fronts = append(fronts, current)
		current = next
	}
	return fronts
}

// ParetoRanks returns the front index of every row of the fitness matrix.
func ParetoRanks(fmat FitnessMatrix) []int {
	ranks := make([]int, len(fmat))
	for rank, front := range ParetoFronts(fmat) {
		for _, i := range front {
			ranks[i] = rank
		}
	}
	return ranks
}

// ParetoFront1D returns the indices of the rows maximizing a scalar
// fitness, under the tolerant comparator.
func ParetoFront1D(fmat FitnessMatrix) []int {
	if len(fmat) == 0 {
		return nil
	}
	best := fmat[0][0]
	for _, f := range fmat[1:] {
		if f[0] > best {
			best = f[0]
		}
	}
	var front []int
	for i, f := range fmat {
		if vmath.FloatEqual(f[0], best) {
			front = append(front, i)
		}
	}
	return front
}

// ParetoFrontKung returns the indices of the non-dominated rows of the
// fitness matrix using Kung's divide-and-conquer algorithm.
func ParetoFrontKung(fmat FitnessMatrix) []int {
	if len(fmat) == 0 {
		return nil
	}

	// Sort indices lexicographically descending, so a row can only be
	// dominated by rows appearing before it.
	sorted := make([]int, len(fmat))
	for i := range sorted {
		sorted[i] = i
	}
	slices.SortStableFunc(sorted, func(a, b int) int {
		return slices.Compare(fmat[b], fmat[a])
	})

	var kung func(idxs []int) []int
	kung = func(idxs []int) []int {
		if len(idxs) <= 1 {
			return idxs
		}
		top := kung(idxs[:len(idxs)/2])
		bottom := kung(idxs[len(idxs)/2:])

		merged := slices.Clone(top)
		for _, b := range bottom {
			dominated := false
			for _, t := range top {
				if vmath.ParetoCompare(fmat[t], fmat[b]) == 1 {
					dominated = true
					break
				}
			}
			if !dominated {
				merged = append(merged, b)
			}
		}
		return merged
	}

	front := kung(sorted)
	slices.Sort(front)
	return front
}
