// Package sel implements the single-objective selection algorithms: the
// classic fitness-proportional sampling schemes and the replacement
// policies that decide which candidates survive a generation. A scheme
// and a policy compose into an Algorithm that plugs into the driver as
// its Selection.
package sel

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// sigmaFloor keeps the sigma-scaled weights finite on a converged
// population.
const sigmaFloor = 1e-6

// A Scheme samples parent indices from a scalar fitness vector. Prepare
// is called once per generation with the first objective of the current
// population; Select is then called repeatedly and may run concurrently.
type Scheme interface {
	Prepare(ri *evolve.RunInfo, fvec []float64)
	Select(ri *evolve.RunInfo) int
}

// A Replacement picks the N survivors from the union of parents and
// children. The union matrix holds the N parents first.
type Replacement interface {
	Survivors(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int
}

// Algorithm composes a sampling scheme and a replacement policy into a
// Selection. A nil replacement keeps the first Pareto front, padded by
// rank in stable order.
type Algorithm struct {
	scheme      Scheme
	replacement Replacement
}

// New returns the selection algorithm combining scheme and replacement.
func New(scheme Scheme, replacement Replacement) *Algorithm {
	return &Algorithm{scheme: scheme, replacement: replacement}
}

// Init implements evolve.Selection.
func (a *Algorithm) Init(ri *evolve.RunInfo) error {
	if a.scheme == nil {
		return fmt.Errorf("sel: nil scheme: %w", evolve.ErrInvalidArgument)
	}
	return nil
}

// Prepare implements evolve.Selection.
func (a *Algorithm) Prepare(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) {
	a.scheme.Prepare(ri, firstObjective(fmat))
}

// Select implements evolve.Selection.
func (a *Algorithm) Select(ri *evolve.RunInfo, fmat evolve.FitnessMatrix) int {
	return a.scheme.Select(ri)
}

// NextPopulation implements evolve.Selection.
func (a *Algorithm) NextPopulation(ri *evolve.RunInfo, union evolve.FitnessMatrix) []int {
	if a.replacement != nil {
		return a.replacement.Survivors(ri, union)
	}
	return byParetoRank(ri.PopSize, union)
}

// byParetoRank keeps the best N of the union ordered by Pareto rank,
// stable within ranks.
func byParetoRank(n int, union evolve.FitnessMatrix) []int {
	survivors := make([]int, 0, n)
	for _, front := range evolve.ParetoFronts(union) {
		for _, idx := range front {
			if len(survivors) == n {
				return survivors
			}
			survivors = append(survivors, idx)
		}
	}
	return survivors
}

func firstObjective(fmat evolve.FitnessMatrix) []float64 {
	fvec := make([]float64, len(fmat))
	for i, f := range fmat {
		fvec[i] = f[0]
	}
	return fvec
}

// WeightsToCdf normalizes selection weights into a non-decreasing CDF
// whose final entry is approximately 1. The weights must be non-negative;
// when their sum is not positive the CDF is uniform.
func WeightsToCdf(weights []float64) []float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		// Degenerate weights select uniformly.
		sum = float64(len(weights))
		cdf := make([]float64, len(weights))
		for i := range cdf {
			cdf[i] = float64(i+1) / sum
		}
		return cdf
	}
	cdf := make([]float64, len(weights))
	acc := 0.0
	for i, w := range weights {
		acc += w / sum
		cdf[i] = acc
	}
	return cdf
}

// Roulette is fitness-proportional selection. Negative fitness values are
// handled by shifting every weight so the worst candidate keeps a
// non-zero selection probability.
type Roulette struct {
	cdf []float64
}

// NewRoulette returns a roulette-wheel sampling scheme.
func NewRoulette() *Roulette { return &Roulette{} }

// Prepare implements Scheme.
func (s *Roulette) Prepare(ri *evolve.RunInfo, fvec []float64) {
	low := fvec[0]
	for _, f := range fvec {
		low = math.Min(low, f)
	}
	offset := math.Min(0, 2*low)

	weights := make([]float64, len(fvec))
	for i, f := range fvec {
		weights[i] = f - offset
	}
	s.cdf = WeightsToCdf(weights)
}

// Select implements Scheme.
func (s *Roulette) Select(ri *evolve.RunInfo) int {
	return rng.Global().SampleCdf(s.cdf)
}

// Rank selects on fitness order instead of fitness value: candidate
// weights interpolate linearly from wmin for the worst to wmax for the
// best.
type Rank struct {
	wmin, wmax float64
	cdf        []float64
}

// NewRank returns a rank-based sampling scheme. It requires
// 0 <= wmin <= wmax.
func NewRank(wmin, wmax float64) (*Rank, error) {
	if !(0 <= wmin && wmin <= wmax && wmax < math.Inf(1)) {
		return nil, fmt.Errorf("sel: rank weights [%v, %v]: %w", wmin, wmax, evolve.ErrInvalidArgument)
	}
	return &Rank{wmin: wmin, wmax: wmax}, nil
}

// Prepare implements Scheme.
func (s *Rank) Prepare(ri *evolve.RunInfo, fvec []float64) {
	order := argsort(fvec)
	weights := make([]float64, len(fvec))
	for i, idx := range order {
		t := 1.0
		if len(fvec) > 1 {
			t = float64(i) / float64(len(fvec)-1)
		}
		weights[idx] = s.wmin + t*(s.wmax-s.wmin)
	}
	s.cdf = WeightsToCdf(weights)
}

// Select implements Scheme.
func (s *Rank) Select(ri *evolve.RunInfo) int {
	return rng.Global().SampleCdf(s.cdf)
}

// Tournament samples k candidates uniformly without replacement and
// selects the fittest of them.
type Tournament struct {
	size int
	fvec []float64
}

// NewTournament returns a tournament scheme of the given size (k >= 2).
func NewTournament(size int) (*Tournament, error) {
	if size < 2 {
		return nil, fmt.Errorf("sel: tournament size %d: %w", size, evolve.ErrInvalidArgument)
	}
	return &Tournament{size: size}, nil
}

// Prepare implements Scheme.
func (s *Tournament) Prepare(ri *evolve.RunInfo, fvec []float64) {
	s.fvec = fvec
}

// Select implements Scheme.
func (s *Tournament) Select(ri *evolve.RunInfo) int {
	k := s.size
	if k > len(s.fvec) {
		k = len(s.fvec)
	}
	entrants := rng.SampleUnique(rng.Global(), 0, len(s.fvec), k)
	best := entrants[0]
	for _, idx := range entrants[1:] {
		if s.fvec[idx] > s.fvec[best] {
			best = idx
		}
	}
	return best
}

// Sigma scales weights by the deviation of fitness from the population
// mean, which keeps the selection pressure roughly constant as the
// population converges.
type Sigma struct {
	scale float64
	cdf   []float64
}

// NewSigma returns a sigma-scaled sampling scheme (scale >= 1).
func NewSigma(scale float64) (*Sigma, error) {
	if !(scale >= 1 && scale < math.Inf(1)) {
		return nil, fmt.Errorf("sel: sigma scale %v: %w", scale, evolve.ErrInvalidArgument)
	}
	return &Sigma{scale: scale}, nil
}

// Prepare implements Scheme.
func (s *Sigma) Prepare(ri *evolve.RunInfo, fvec []float64) {
	mean := stat.Mean(fvec, nil)
	dev := math.Max(stat.PopStdDev(fvec, nil), sigmaFloor)

	weights := make([]float64, len(fvec))
	for i, f := range fvec {
		weights[i] = math.Max(0, 1+(f-mean)/(s.scale*dev))
	}
	s.cdf = WeightsToCdf(weights)
}

// Select implements Scheme.
func (s *Sigma) Select(ri *evolve.RunInfo) int {
	return rng.Global().SampleCdf(s.cdf)
}

// TemperatureFunc maps (generation, max generations) to a Boltzmann
// temperature.
type TemperatureFunc func(gen, maxGen int) float64

// DefaultTemperature is a logistic ramp from about 0.25 in the first
// generations to about 4.25 near the end of the run, moving the selection
// from strongly fitness-biased to nearly uniform.
func DefaultTemperature(gen, maxGen int) float64 {
	t := float64(gen) / float64(maxGen)
	return 4.25 - 4.0/(1.0+math.Exp(10.0*t-7.0))
}

// Boltzmann weighs candidates by an exponential of their normalized
// fitness, with a temperature schedule controlling the pressure.
type Boltzmann struct {
	temperature TemperatureFunc
	cdf         []float64
}

// NewBoltzmann returns a Boltzmann sampling scheme. A nil temperature
// function selects DefaultTemperature.
func NewBoltzmann(temperature TemperatureFunc) *Boltzmann {
	if temperature == nil {
		temperature = DefaultTemperature
	}
	return &Boltzmann{temperature: temperature}
}

// Prepare implements Scheme.
func (s *Boltzmann) Prepare(ri *evolve.RunInfo, fvec []float64) {
	low, high := fvec[0], fvec[0]
	for _, f := range fvec {
		low = math.Min(low, f)
		high = math.Max(high, f)
	}
	df := math.Max(high-low, sigmaFloor)
	temp := s.temperature(ri.Generation, ri.MaxGenerations)

	weights := make([]float64, len(fvec))
	for i, f := range fvec {
		weights[i] = math.Exp((f - low) / df / temp)
	}
	s.cdf = WeightsToCdf(weights)
}

// Select implements Scheme.
func (s *Boltzmann) Select(ri *evolve.RunInfo) int {
	return rng.Global().SampleCdf(s.cdf)
}

// argsort returns the indices of fvec in ascending fitness order, stable
// for equal values.
func argsort(fvec []float64) []int {
	order := make([]int, len(fvec))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(fvec[a], fvec[b])
	})
	return order
}
