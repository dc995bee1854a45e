package problems

import "github.com/evolvelib/evolve"

// StringFinderBase and StringFinderOffset describe the 96-symbol
// printable alphabet the string matching problem runs on: integer genes
// in [32, 127].
const (
	StringFinderBase   = 96
	StringFinderOffset = 32
)

// StringFinder returns the fitness function of the string matching
// problem: genes are character codes and the fitness is the number of
// positions matching the target, so a perfect match scores len(target).
func StringFinder(target string) evolve.FitnessFunc[int] {
	return func(chrom evolve.Chromosome[int]) evolve.FitnessVector {
		matches := 0
		for i, g := range chrom {
			if i < len(target) && byte(g) == target[i] {
				matches++
			}
		}
		return evolve.FitnessVector{float64(matches)}
	}
}
