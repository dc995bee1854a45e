package problems

import (
	"math"

	"github.com/evolvelib/evolve"
)

// Kursawe is the two-objective Kursawe benchmark, negated for
// maximization. The usual domain is [-5, 5] per variable.
func Kursawe(x evolve.Chromosome[float64]) evolve.FitnessVector {
	f1 := 0.0
	f2 := 0.0
	for i := 0; i < len(x)-1; i++ {
		f1 += -10.0 * math.Exp(-0.2*math.Sqrt(x[i]*x[i]+x[i+1]*x[i+1]))
		f2 += math.Pow(math.Abs(x[i]), 0.8) + 5.0*math.Sin(x[i]*x[i]*x[i])
	}
	last := x[len(x)-1]
	f2 += math.Pow(math.Abs(last), 0.8) + 5.0*math.Sin(last*last*last)

	return evolve.FitnessVector{-f1, -f2}
}

// KursaweBounds returns the standard [-5, 5] bounds for n variables.
func KursaweBounds(n int) []evolve.GeneBounds[float64] {
	bounds, _ := evolve.UniformBounds(n, -5.0, 5.0)
	return bounds
}

func zdtG(x evolve.Chromosome[float64]) float64 {
	g := 0.0
	for _, v := range x[1:] {
		g += v
	}
	return 1.0 + 9.0*g/float64(len(x)-1)
}

// ZDT1 is the two-objective ZDT1 benchmark on [0, 1] variables, negated
// for maximization. Its Pareto front is the convex curve f2 = 1-sqrt(f1).
func ZDT1(x evolve.Chromosome[float64]) evolve.FitnessVector {
	f1 := x[0]
	g := zdtG(x)
	f2 := g - g*math.Sqrt(f1/g)
	return evolve.FitnessVector{-f1, -f2}
}

// ZDT2 is the two-objective ZDT2 benchmark with a concave Pareto front.
func ZDT2(x evolve.Chromosome[float64]) evolve.FitnessVector {
	f1 := x[0]
	g := zdtG(x)
	f2 := g - f1*f1/g
	return evolve.FitnessVector{-f1, -f2}
}

// ZDT3 is the two-objective ZDT3 benchmark with a disconnected Pareto
// front.
func ZDT3(x evolve.Chromosome[float64]) evolve.FitnessVector {
	f1 := x[0]
	g := zdtG(x)
	f2 := g - g*math.Sqrt(f1/g) - f1*math.Sin(10.0*math.Pi*f1)
	return evolve.FitnessVector{-f1, -f2}
}

// ZDTBounds returns the standard [0, 1] bounds for n variables.
func ZDTBounds(n int) []evolve.GeneBounds[float64] {
	bounds, _ := evolve.UniformBounds(n, 0.0, 1.0)
	return bounds
}
