// Command dtlz2 runs NSGA-III on the three-objective DTLZ2 benchmark and
// reports how close the returned front is to the optimal unit sphere.
package main

import (
	"fmt"
	"os"

	progressbar "github.com/schollz/progressbar/v3"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/nsga"
	"github.com/evolvelib/evolve/problems"
	"github.com/evolvelib/evolve/real"
)

const (
	objectives  = 3
	variables   = 12
	generations = 1000
)

func main() {
	bounds := problems.DTLZBounds(variables)

	enc, err := real.NewEncoding(bounds)
	check(err)
	crossover, err := real.NewSimulatedBinary(0.9, 15, bounds)
	check(err)
	mutation, err := real.NewUniform(1.0/float64(variables), bounds)
	check(err)

	bar := progressbar.Default(generations, "evolving")

	ga := evolve.New(enc, problems.DTLZ2(objectives), nsga.NewNSGA3(),
		crossover, mutation, evolve.Config[float64]{
			PopulationSize:   100,
			MaxGenerations:   generations,
			ArchiveSolutions: true,
			OnGeneration: func(ri *evolve.RunInfo) {
				bar.Add(1)
			},
		})

	front, err := ga.Solve()
	check(err)
	bar.Finish()

	fmt.Printf("archive size: %d\n", len(front))
	for _, c := range front[:min(5, len(front))] {
		norm := 0.0
		for _, f := range c.Fitness {
			norm += f * f
		}
		fmt.Printf("f = %7.4f  |f|^2 = %.4f\n", c.Fitness, norm)
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
