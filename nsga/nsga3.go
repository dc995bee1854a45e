package nsga

import (
	"fmt"
	"math"
	"slices"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/conetree"
	"github.com/evolvelib/evolve/rng"
	"github.com/evolvelib/evolve/vmath"
)

// normFloor bounds the denominator of the fitness normalization when the
// ideal and nadir points collapse along an axis.
const normFloor = 1e-6

// asfEps is the weight of the off-axis objectives in the achievement
// scalarizing function used to pick the extreme points.
const asfEps = 1e-6

// candInfo is the per-candidate bookkeeping of NSGA-III: the dominance
// rank, the associated reference point, and the perpendicular distance to
// its ray.
type candInfo struct {
	rank    int
	ref     int
	refDist float64
}

// NSGA3 is the reference-point based many-objective algorithm
// (Deb and Jain, 2014). A fixed set of well-spread directions on the
// fitness simplex is generated up front; survivor selection then keeps
// the population spread across those directions by filling the least
// crowded reference niches first.
type NSGA3 struct {
	refs  [][]float64 // reference points on the unit simplex
	tree  *conetree.Tree
	niche []int // candidates of the current population per reference point

	ideal    []float64
	nadir    []float64
	extremes [][]float64

	info []candInfo
}

// NewNSGA3 returns an NSGA-III selection.
func NewNSGA3() *NSGA3 { return &NSGA3{} }

// Init implements evolve.Selection. NSGA-III does not support
// single-objective runs.
func (s *NSGA3) Init(ri *evolve.RunInfo) error {
	if ri.NumObjectives < 2 {
		return fmt.Errorf("nsga: NSGA-III needs at least 2 objectives, got %d: %w",
			ri.NumObjectives, evolve.ErrInvalidArgument)
	}

	s.refs = generateRefPoints(ri.PopSize, ri.NumObjectives)
	s.niche = make([]int, len(s.refs))

	// The tree searches over the unit directions of the reference rays:
	// the nearest ray by perpendicular distance is the direction with
	// the largest inner product, since normalized fitness vectors are
	// non-negative.
	dirs := make([][]float64, len(s.refs))
	for i, ref := range s.refs {
		dirs[i] = vmath.Normalize(ref)
	}
	s.tree = conetree.New(dirs)

	s.ideal = columnMax(ri.Fitness)
	s.extremes = nil

	s.info = make([]candInfo, len(ri.Fitness))
	for rank, front := range evolve.ParetoFronts(ri.Fitness) {
		for _, idx := range front {
			s.info[idx].rank = rank
		}
	}
	s.associate(ri.Fitness)
	s.updateNicheCounts(s.info)
	return nil
}

// Prepare implements evolve.Selection. All state is maintained by Init
// and NextPopulation.
func (s *NSGA3) Prepare(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) {}

// Select implements evolve.Selection with a binary niched tournament:
// lower rank wins, ties go to the emptier reference niche, then to the
// smaller distance from the reference ray.
func (s *NSGA3) Select(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) int {
	i := rng.Global().Index(len(fmat))
	j := rng.Global().Index(len(fmat))
	if s.nichedLess(i, j) {
		return i
	}
	return j
}

func (s *NSGA3) nichedLess(i, j int) bool {
	a, b := &s.info[i], &s.info[j]
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if s.niche[a.ref] != s.niche[b.ref] {
		return s.niche[a.ref] < s.niche[b.ref]
	}
	return a.refDist < b.refDist
}

// ReferencePoints returns the fixed reference-point set. It is only
// populated after Init.
func (s *NSGA3) ReferencePoints() [][]float64 { return s.refs }

// NextPopulation implements evolve.Selection. Whole fronts are kept while
// they fit; the splitting front is consumed by repeatedly picking a
// minimal-occupancy reference point and taking its closest remaining
// associate.
func (s *NSGA3) NextPopulation(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	n := ri.PopSize
	fronts := evolve.ParetoFronts(union)

	s.info = make([]candInfo, len(union))
	for rank, front := range fronts {
		for _, idx := range front {
			s.info[idx].rank = rank
		}
	}
	s.associate(union)

	next := make([]int, 0, n)
	newInfo := make([]candInfo, 0, n)

	f := 0
	for ; f < len(fronts) && len(next)+len(fronts[f]) <= n; f++ {
		for _, idx := range fronts[f] {
			next = append(next, idx)
			newInfo = append(newInfo, s.info[idx])
		}
	}
	s.updateNicheCounts(newInfo)

	if len(next) < n {
		partial := slices.Clone(fronts[f])
		for len(next) < n {
			ref := s.pickNicheRef(partial)

			// Take the associate of this reference point closest to its
			// ray.
			chosen := -1
			dmin := math.Inf(1)
			for _, idx := range partial {
				if s.info[idx].ref == ref && s.info[idx].refDist < dmin {
					chosen = idx
					dmin = s.info[idx].refDist
				}
			}

			next = append(next, chosen)
			newInfo = append(newInfo, s.info[chosen])
			s.niche[ref]++

			at := slices.Index(partial, chosen)
			partial[at] = partial[len(partial)-1]
			partial = partial[:len(partial)-1]
		}
	}

	s.info = newInfo
	return next
}

// pickNicheRef returns a uniformly random reference point among those
// with minimal niche count that still have an unchosen associate in the
// partial front.
func (s *NSGA3) pickNicheRef(partial []int) int {
	minCount := math.MaxInt
	for _, idx := range partial {
		if c := s.niche[s.info[idx].ref]; c < minCount {
			minCount = c
		}
	}

	var refs []int
	for _, idx := range partial {
		ref := s.info[idx].ref
		if s.niche[ref] == minCount && !slices.Contains(refs, ref) {
			refs = append(refs, ref)
		}
	}
	return rng.Element(rng.Global(), refs)
}

// associate refreshes the normalization state from the fitness matrix and
// assigns every row to its nearest reference ray.
func (s *NSGA3) associate(fmat evolve.FitnessMatrix) {
	s.updateIdealPoint(fmat)
	s.updateExtremePoints(fmat)
	s.nadir = nadirOf(s.extremes)

	for i, fvec := range fmat {
		fnorm := s.normalize(fvec)
		m := s.tree.FindBestMatch(fnorm)
		pp := 0.0
		for _, v := range fnorm {
			pp += v * v
		}
		s.info[i].ref = m.Index
		s.info[i].refDist = math.Max(pp-m.Prod*m.Prod, 0)
	}
}

// normalize maps the ideal point to the origin and scales each axis by
// the ideal-nadir spread, so worse fitness moves away from the origin.
func (s *NSGA3) normalize(fvec []float64) []float64 {
	fnorm := make([]float64, len(fvec))
	for i := range fvec {
		fnorm[i] = (s.ideal[i] - fvec[i]) / math.Max(s.ideal[i]-s.nadir[i], normFloor)
	}
	return fnorm
}

// updateIdealPoint folds the elementwise maximum of the fitness matrix
// into the running ideal point.
func (s *NSGA3) updateIdealPoint(fmat evolve.FitnessMatrix) {
	fmax := columnMax(fmat)
	for i := range s.ideal {
		s.ideal[i] = math.Max(s.ideal[i], fmax[i])
	}
}

// updateExtremePoints recomputes the M extreme points. The extreme point
// of axis j minimizes the achievement scalarizing function weighted
// towards j, over the population and the current extremes.
func (s *NSGA3) updateExtremePoints(fmat evolve.FitnessMatrix) {
	dim := len(s.ideal)
	newExtremes := make([][]float64, 0, dim)

	for j := 0; j < dim; j++ {
		bestVal := math.Inf(1)
		var best []float64
		for _, fvec := range fmat {
			if v := s.asf(fvec, j); v < bestVal {
				bestVal = v
				best = fvec
			}
		}
		for _, evec := range s.extremes {
			if v := s.asf(evec, j); v < bestVal {
				bestVal = v
				best = evec
			}
		}
		newExtremes = append(newExtremes, slices.Clone(best))
	}
	s.extremes = newExtremes
}

// asf is the weighted Chebyshev distance from the ideal point, with the
// axis objective weighted 1 and every other objective 1/asfEps.
func (s *NSGA3) asf(fvec []float64, axis int) float64 {
	dmax := math.Inf(-1)
	for k := range fvec {
		d := math.Abs(fvec[k] - s.ideal[k])
		if k != axis {
			d /= asfEps
		}
		dmax = math.Max(dmax, d)
	}
	return dmax
}

// nadirOf estimates the nadir point as the elementwise minimum of the
// extreme points.
func nadirOf(extremes [][]float64) []float64 {
	nadir := slices.Clone(extremes[0])
	for _, evec := range extremes[1:] {
		for i := range nadir {
			nadir[i] = math.Min(nadir[i], evec[i])
		}
	}
	return nadir
}

func (s *NSGA3) updateNicheCounts(infos []candInfo) {
	for i := range s.niche {
		s.niche[i] = 0
	}
	for i := range infos {
		s.niche[infos[i].ref]++
	}
}

func columnMax(fmat evolve.FitnessMatrix) []float64 {
	fmax := slices.Clone(fmat[0])
	for _, fvec := range fmat[1:] {
		for i := range fmax {
			fmax[i] = math.Max(fmax[i], fvec[i])
		}
	}
	return fmax
}
