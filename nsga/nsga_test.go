package nsga

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
	"github.com/evolvelib/evolve/vmath"
)

func runInfo(fmat evolve.FitnessMatrix, popSize int) *evolve.RunInfo {
	return &evolve.RunInfo{
		PopSize:        popSize,
		MaxGenerations: 100,
		NumObjectives:  len(fmat[0]),
		Fitness:        fmat,
		Objectives:     evolve.ObjectiveStats(fmat),
	}
}

func randomMatrix(r *rng.Rand, n, m int) evolve.FitnessMatrix {
	fmat := make(evolve.FitnessMatrix, n)
	for i := range fmat {
		fmat[i] = make(evolve.FitnessVector, m)
		for j := range fmat[i] {
			fmat[i][j] = r.Float64()
		}
	}
	return fmat
}

func TestSingleObjectiveRefused(t *testing.T) {
	fmat := evolve.FitnessMatrix{{1}, {2}}
	ri := runInfo(fmat, 2)

	if err := NewNSGA2().Init(ri); !errors.Is(err, evolve.ErrInvalidArgument) {
		t.Errorf("NSGA2 with M=1: err = %v", err)
	}
	if err := NewNSGA3().Init(ri); !errors.Is(err, evolve.ErrInvalidArgument) {
		t.Errorf("NSGA3 with M=1: err = %v", err)
	}
}

func TestCrowdingDistances(t *testing.T) {
	fmat := evolve.FitnessMatrix{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 0},
	}
	front := []int{0, 1, 2, 3}
	dists := crowdingDistances(fmat, [][]int{front})

	if !math.IsInf(dists[0], 1) || !math.IsInf(dists[3], 1) {
		t.Error("the extremes must have infinite distance")
	}
	// Interior candidates of an evenly spaced front share the same
	// crowding distance.
	if math.Abs(dists[1]-dists[2]) > 1e-12 {
		t.Errorf("interior distances %v and %v differ", dists[1], dists[2])
	}
	if math.IsInf(dists[1], 0) || dists[1] <= 0 {
		t.Errorf("interior distance %v", dists[1])
	}
}

func TestCrowdingExtremeDuplicates(t *testing.T) {
	// Duplicating the extremes must keep them at infinity.
	fmat := evolve.FitnessMatrix{
		{0, 3}, {0, 3},
		{1, 2},
		{3, 0}, {3, 0},
	}
	front := []int{0, 1, 2, 3, 4}
	dists := crowdingDistances(fmat, [][]int{front})

	inf := 0
	for _, d := range dists {
		if math.IsInf(d, 1) {
			inf++
		}
	}
	if inf < 2 {
		t.Errorf("only %d extreme distances are infinite", inf)
	}
	if math.IsInf(dists[2], 0) {
		t.Error("the interior candidate leaked to infinity")
	}
}

func TestNSGA2NextPopulation(t *testing.T) {
	r := rng.NewRand(11)
	n := 20
	union := randomMatrix(r, 2*n, 2)
	ri := runInfo(union[:n], n)

	s := NewNSGA2()
	if err := s.Init(ri); err != nil {
		t.Fatal(err)
	}
	next := s.NextPopulation(ri, union)

	if len(next) != n {
		t.Fatalf("got %d survivors, want %d", len(next), n)
	}
	seen := make(map[int]bool)
	for _, idx := range next {
		if idx < 0 || idx >= 2*n || seen[idx] {
			t.Fatalf("bad survivor index %d", idx)
		}
		seen[idx] = true
	}

	// No discarded candidate may dominate a surviving one of a better
	// front: survivors must be exactly the best ranks.
	ranks := evolve.ParetoRanks(union)
	maxKept := 0
	for _, idx := range next {
		maxKept = max(maxKept, ranks[idx])
	}
	for idx := range union {
		if !seen[idx] && ranks[idx] < maxKept {
			t.Fatalf("discarded candidate %d has rank %d, kept up to %d", idx, ranks[idx], maxKept)
		}
	}
}

func TestNSGA2Select(t *testing.T) {
	r := rng.NewRand(12)
	fmat := randomMatrix(r, 30, 2)
	ri := runInfo(fmat, 30)

	s := NewNSGA2()
	if err := s.Init(ri); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		idx := s.Select(ri, fmat)
		if idx < 0 || idx >= len(fmat) {
			t.Fatalf("selected index %d", idx)
		}
	}

	// Rank-0 candidates must be selected more often than the worst rank.
	ranks := evolve.ParetoRanks(fmat)
	counts := make(map[int]int)
	for i := 0; i < 30000; i++ {
		counts[ranks[s.Select(ri, fmat)]]++
	}
	worst := slices.Max(ranks)
	if worst > 0 && counts[0] <= counts[worst] {
		t.Errorf("rank 0 selected %d times, rank %d %d times", counts[0], worst, counts[worst])
	}
}

func TestReferencePointsOnSimplex(t *testing.T) {
	refs := generateRefPoints(50, 3)
	if len(refs) != 50 {
		t.Fatalf("got %d reference points", len(refs))
	}
	for _, ref := range refs {
		sum := 0.0
		for _, c := range ref {
			if c < 0 {
				t.Fatalf("negative coordinate in %v", ref)
			}
			sum += c
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("coordinates of %v sum to %v", ref, sum)
		}
	}

	// Dispersion: no two reference points coincide.
	for i := range refs {
		for j := i + 1; j < len(refs); j++ {
			if vmath.EuclideanSq(refs[i], refs[j]) < 1e-12 {
				t.Fatalf("reference points %d and %d coincide", i, j)
			}
		}
	}
}

func TestNSGA3NextPopulation(t *testing.T) {
	r := rng.NewRand(13)
	n := 24
	union := randomMatrix(r, 2*n, 3)
	ri := runInfo(union[:n], n)

	s := NewNSGA3()
	if err := s.Init(ri); err != nil {
		t.Fatal(err)
	}
	next := s.NextPopulation(ri, union)

	if len(next) != n {
		t.Fatalf("got %d survivors, want %d", len(next), n)
	}
	seen := make(map[int]bool)
	for _, idx := range next {
		if idx < 0 || idx >= 2*n || seen[idx] {
			t.Fatalf("bad survivor index %d", idx)
		}
		seen[idx] = true
	}

	// Niche counts must account exactly for the selected candidates.
	total := 0
	for _, c := range s.niche {
		if c < 0 {
			t.Fatalf("negative niche count %d", c)
		}
		total += c
	}
	if total != n {
		t.Errorf("niche counts sum to %d, want %d", total, n)
	}

	// Front ordering is respected, as for NSGA-II.
	ranks := evolve.ParetoRanks(union)
	maxKept := 0
	for _, idx := range next {
		maxKept = max(maxKept, ranks[idx])
	}
	for idx := range union {
		if !seen[idx] && ranks[idx] < maxKept {
			t.Fatalf("discarded candidate %d has rank %d, kept up to %d", idx, ranks[idx], maxKept)
		}
	}
}

func TestNSGA3Select(t *testing.T) {
	r := rng.NewRand(14)
	fmat := randomMatrix(r, 30, 3)
	ri := runInfo(fmat, 30)

	s := NewNSGA3()
	if err := s.Init(ri); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		idx := s.Select(ri, fmat)
		if idx < 0 || idx >= len(fmat) {
			t.Fatalf("selected index %d", idx)
		}
	}
}

func TestNSGA3AssociationMatchesBruteForce(t *testing.T) {
	r := rng.NewRand(15)
	fmat := randomMatrix(r, 40, 3)
	ri := runInfo(fmat, 40)

	s := NewNSGA3()
	if err := s.Init(ri); err != nil {
		t.Fatal(err)
	}

	// Recompute the nearest reference ray for each candidate the slow
	// way and compare distances (several rays can tie).
	for i, fvec := range fmat {
		fnorm := s.normalize(fvec)

		best := math.Inf(1)
		for _, ref := range s.refs {
			best = math.Min(best, vmath.PerpendicularDistanceSq(ref, fnorm))
		}
		got := vmath.PerpendicularDistanceSq(s.refs[s.info[i].ref], fnorm)
		if math.Abs(got-best) > 1e-9 {
			t.Fatalf("candidate %d associated at distance %v, nearest is %v", i, got, best)
		}
	}
}
