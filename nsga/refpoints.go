package nsga

import (
	"math"

	"github.com/evolvelib/evolve/rng"
	"github.com/evolvelib/evolve/vmath"
)

// generateRefPoints returns n well-dispersed points on the (dim-1)
// simplex. A pool of random simplex points is pruned greedily: starting
// from one random accepted point, the candidate farthest from its nearest
// accepted point is accepted until n points are chosen.
func generateRefPoints(n, dim int) [][]float64 {
	r := rng.Global()

	poolSize := max(10, 2*dim)*n - 1
	candidates := make([][]float64, poolSize)
	for i := range candidates {
		candidates[i] = r.SimplexPoint(dim)
	}

	refs := make([][]float64, 0, n)
	refs = append(refs, r.SimplexPoint(dim))

	// minDists[i] tracks the distance from candidate i to its nearest
	// accepted point; accepting a point only requires folding in the
	// distances to the newest ref.
	minDists := make([]float64, len(candidates))
	for i := range minDists {
		minDists[i] = math.Inf(1)
	}

	for len(refs) < n {
		newest := refs[len(refs)-1]
		argmax := 0
		for i, c := range candidates {
			d := vmath.EuclideanSq(c, newest)
			if d < minDists[i] {
				minDists[i] = d
			}
			if minDists[i] > minDists[argmax] {
				argmax = i
			}
		}

		refs = append(refs, candidates[argmax])

		// Swap-pop the accepted candidate and its running minimum.
		last := len(candidates) - 1
		candidates[argmax] = candidates[last]
		candidates = candidates[:last]
		minDists[argmax] = minDists[last]
		minDists = minDists[:last]
	}
	return refs
}
