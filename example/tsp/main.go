// Command tsp solves the Berlin52 travelling salesman instance with a
// permutation GA and prints the best tour found.
package main

import (
	"fmt"
	"os"

	progressbar "github.com/schollz/progressbar/v3"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/perm"
	"github.com/evolvelib/evolve/problems"
	"github.com/evolvelib/evolve/sel"
)

const generations = 1250

func main() {
	tsp := problems.TSP52()

	enc, err := perm.NewEncoding(tsp.Len())
	check(err)
	crossover, err := perm.NewOrder1(0.9)
	check(err)
	mutation, err := perm.NewInversion(0.6)
	check(err)
	tournament, err := sel.NewTournament(3)
	check(err)
	elitism, err := sel.NewElitism(5)
	check(err)

	bar := progressbar.Default(generations, "evolving")

	ga := evolve.New(enc, tsp.Tour, sel.New(tournament, elitism),
		crossover, mutation, evolve.Config[int]{
			PopulationSize: 500,
			MaxGenerations: generations,
			OnGeneration: func(ri *evolve.RunInfo) {
				bar.Add(1)
			},
		})

	solutions, err := ga.Solve()
	check(err)
	bar.Finish()

	best := solutions[0]
	for i := range solutions {
		if solutions[i].Fitness[0] > best.Fitness[0] {
			best = solutions[i]
		}
	}

	fmt.Printf("best tour length: %.1f (optimum %.1f)\n", -best.Fitness[0], problems.Berlin52Optimum)
	fmt.Printf("tour: %v\n", best.Chromosome)
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
