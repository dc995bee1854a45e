// Package evolve is a framework for evolutionary optimization in Go.
//
// The library searches for maxima of a user-supplied fitness function over
// populations of candidate solutions. A solution is a Chromosome of genes;
// four encodings are provided as subpackages (binary, real, integer and
// perm), each with matching crossover and mutation operators. The fitness
// function may return one value or several: the same generational driver
// runs single-objective algorithms (package sel) and the multi-objective
// NSGA-II and NSGA-III algorithms (package nsga).
//
// A run is assembled from five pluggable parts handed to the GA driver:
// the fitness function, a selection (which also picks the survivors of
// each generation), a crossover, a mutation, and an optional stop
// condition (package stop). The driver owns the population, evaluates
// candidates in parallel, caches fitness values of previously seen
// chromosomes, and can maintain an archive of all non-dominated solutions
// encountered during the run.
package evolve
