package problems

import (
	"math"

	"github.com/evolvelib/evolve"
)

// DTLZ1 returns the m-objective DTLZ1 benchmark, negated for
// maximization. Chromosomes have m-1 position variables followed by any
// number of distance variables, all on [0, 1]. The Pareto-optimal
// objective vectors sum to 0.5.
func DTLZ1(m int) evolve.FitnessFunc[float64] {
	return func(x evolve.Chromosome[float64]) evolve.FitnessVector {
		g := 0.0
		for _, v := range x[m-1:] {
			g += (v-0.5)*(v-0.5) - math.Cos(20.0*math.Pi*(v-0.5))
		}
		g = 100.0 * (float64(len(x)-m+1) + g)

		fx := make(evolve.FitnessVector, m)
		for i := range fx {
			f := 0.5 * (1.0 + g)
			for j := 0; j < m-1-i; j++ {
				f *= x[j]
			}
			if i > 0 {
				f *= 1.0 - x[m-1-i]
			}
			fx[i] = -f
		}
		return fx
	}
}

// DTLZ2 returns the m-objective DTLZ2 benchmark, negated for
// maximization. The Pareto-optimal objective vectors lie on the unit
// sphere: sum f_i^2 = 1.
func DTLZ2(m int) evolve.FitnessFunc[float64] {
	return func(x evolve.Chromosome[float64]) evolve.FitnessVector {
		g := 0.0
		for _, v := range x[m-1:] {
			g += (v - 0.5) * (v - 0.5)
		}

		fx := make(evolve.FitnessVector, m)
		for i := range fx {
			f := 1.0 + g
			for j := 0; j < m-1-i; j++ {
				f *= math.Cos(x[j] * math.Pi / 2.0)
			}
			if i > 0 {
				f *= math.Sin(x[m-1-i] * math.Pi / 2.0)
			}
			fx[i] = -f
		}
		return fx
	}
}

// DTLZBounds returns the standard [0, 1] bounds for n variables.
func DTLZBounds(n int) []evolve.GeneBounds[float64] {
	bounds, _ := evolve.UniformBounds(n, 0.0, 1.0)
	return bounds
}
