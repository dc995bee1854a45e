// Package nsga implements the multi-objective algorithms NSGA-II and
// NSGA-III. Both plug into the driver as its Selection: parents are
// picked with binary tournaments on dominance rank (broken by crowding
// distance or niche pressure), and the survivors of each generation are
// filled front by front from the parent+child union.
package nsga

import (
	"fmt"
	"math"
	"slices"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// crowdingFloor bounds the denominator of the crowding increments when a
// front has no spread along an objective.
const crowdingFloor = 1e-6

// NSGA2 is the elitist non-dominated sorting genetic algorithm
// (Deb et al., 2002).
type NSGA2 struct {
	ranks []int
	dists []float64
}

// NewNSGA2 returns an NSGA-II selection.
func NewNSGA2() *NSGA2 { return &NSGA2{} }

// Init implements evolve.Selection. NSGA-II needs at least two
// objectives.
func (s *NSGA2) Init(ri *evolve.RunInfo) error {
	if ri.NumObjectives < 2 {
		return fmt.Errorf("nsga: NSGA-II needs at least 2 objectives, got %d: %w",
			ri.NumObjectives, evolve.ErrInvalidArgument)
	}
	fronts := evolve.ParetoFronts(ri.Fitness)
	s.ranks = ranksOf(len(ri.Fitness), fronts)
	s.dists = crowdingDistances(ri.Fitness, fronts)
	return nil
}

// Prepare implements evolve.Selection. The ranks and distances are
// maintained by Init and NextPopulation, so there is nothing to do per
// generation.
func (s *NSGA2) Prepare(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) {}

// Select implements evolve.Selection with a binary crowded tournament:
// the lower rank wins, ties go to the larger crowding distance.
func (s *NSGA2) Select(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) int {
	i := rng.Global().Index(len(fmat))
	j := rng.Global().Index(len(fmat))
	if s.crowdedLess(i, j) {
		return i
	}
	return j
}

func (s *NSGA2) crowdedLess(i, j int) bool {
	if s.ranks[i] != s.ranks[j] {
		return s.ranks[i] < s.ranks[j]
	}
	return s.dists[i] > s.dists[j]
}

// NextPopulation implements evolve.Selection. Whole fronts of the union
// are kept while they fit; the front that would overflow is truncated by
// crowding distance, with the distances of the kept part recomputed on
// the reduced set.
func (s *NSGA2) NextPopulation(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	n := ri.PopSize
	fronts := evolve.ParetoFronts(union)
	ranks := ranksOf(len(union), fronts)
	dists := crowdingDistances(union, fronts)

	next := make([]int, 0, n)
	newRanks := make([]int, 0, n)
	newDists := make([]float64, 0, n)

	f := 0
	for ; f < len(fronts) && len(next)+len(fronts[f]) <= n; f++ {
		for _, idx := range fronts[f] {
			next = append(next, idx)
			newRanks = append(newRanks, ranks[idx])
			newDists = append(newDists, dists[idx])
		}
	}

	if len(next) < n {
		// Truncate the splitting front by descending crowding distance.
		partial := slices.Clone(fronts[f])
		slices.SortStableFunc(partial, func(a, b int) int {
			switch {
			case dists[a] > dists[b]:
				return -1
			case dists[a] < dists[b]:
				return 1
			default:
				return 0
			}
		})
		kept := partial[:n-len(next)]

		// The crowding distances of the kept prefix reflect the reduced
		// front, not the full one.
		keptDists := crowdingDistances(union, [][]int{kept})
		for _, idx := range kept {
			next = append(next, idx)
			newRanks = append(newRanks, ranks[idx])
			newDists = append(newDists, keptDists[idx])
		}
	}

	s.ranks = newRanks
	s.dists = newDists
	return next
}

// ranksOf flattens a front partition into a rank per row.
func ranksOf(n int, fronts [][]int) []int {
	ranks := make([]int, n)
	for rank, front := range fronts {
		for _, idx := range front {
			ranks[idx] = rank
		}
	}
	return ranks
}

// crowdingDistances computes the crowding distance of every row covered
// by the given fronts. Each front is handled independently: along every
// objective the extremes of the front get an infinite distance and the
// interior accumulates normalized gaps between its neighbours.
func crowdingDistances(fmat evolve.FitnessMatrix, fronts [][]int) []float64 {
	dists := make([]float64, len(fmat))
	if len(fmat) == 0 {
		return dists
	}

	for _, front := range fronts {
		front := slices.Clone(front)
		for d := 0; d < len(fmat[0]); d++ {
			slices.SortFunc(front, func(a, b int) int {
				switch {
				case fmat[a][d] < fmat[b][d]:
					return -1
				case fmat[a][d] > fmat[b][d]:
					return 1
				default:
					return 0
				}
			})

			interval := fmat[front[len(front)-1]][d] - fmat[front[0]][d]
			interval = math.Max(interval, crowdingFloor)

			dists[front[0]] = math.Inf(1)
			dists[front[len(front)-1]] = math.Inf(1)
			for i := 1; i < len(front)-1; i++ {
				gap := fmat[front[i+1]][d] - fmat[front[i-1]][d]
				dists[front[i]] += gap / interval
			}
		}
	}
	return dists
}
