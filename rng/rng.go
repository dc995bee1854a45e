// Package rng provides the pseudo-random number service used by every
// stochastic operator in the library.
//
// The package-level functions draw from a single process-wide generator
// that is safe for concurrent use: its 64-bit splitmix state advances with
// one atomic add per draw, so parallel passes over a population can sample
// without locks. Deterministic per-worker streams can be created with New,
// seeded from the run seed and the worker ordinal.
package rng

import (
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed seeds the global generator at startup.
const DefaultSeed = 0x3da99432ab975d26

const (
	gamma = 0x9e3779b97f4a7c15
	mix1  = 0xbf58476d1ce4e5b9
	mix2  = 0x94d049bb133111eb
)

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * mix1
	z = (z ^ (z >> 27)) * mix2
	return z ^ (z >> 31)
}

// Generator is a splitmix64 generator. The zero value is valid but every
// zero-valued Generator produces the same sequence; use New to derive
// distinct streams. It implements rand.Source, so gonum's distributions
// can be driven by it directly.
type Generator struct {
	state uint64
}

// New returns a generator seeded with the given value.
func New(seed uint64) *Generator {
	return &Generator{state: seed}
}

// Uint64 returns the next value of the sequence.
func (g *Generator) Uint64() uint64 {
	g.state += gamma
	return mix64(g.state)
}

// Seed resets the generator state.
func (g *Generator) Seed(seed uint64) {
	g.state = seed
}

// atomicSource is the process-wide generator. Each draw is a single atomic
// add followed by the stateless output mix, so it never blocks.
type atomicSource struct {
	state atomic.Uint64
}

func (s *atomicSource) Uint64() uint64 {
	return mix64(s.state.Add(gamma))
}

func (s *atomicSource) Seed(seed uint64) {
	s.state.Store(seed)
}

// Source is the minimal generator interface the samplers draw from.
// Both *Generator and the global generator satisfy it, as does anything
// implementing rand.Source.
type Source interface {
	Uint64() uint64
	Seed(uint64)
}

// Rand wraps a Source with the sampling methods used by the operators.
type Rand struct {
	src Source
}

// NewRand returns a sampler over a private splitmix64 stream.
func NewRand(seed uint64) *Rand {
	return &Rand{src: New(seed)}
}

// Wrap returns a sampler drawing from src.
func Wrap(src Source) *Rand {
	return &Rand{src: src}
}

// global is the shared sampler behind the package-level functions.
var global = func() *Rand {
	src := &atomicSource{}
	src.Seed(DefaultSeed)
	return &Rand{src: src}
}()

// Seed reseeds the process-wide generator. Calling it mid-run makes the
// run non-reproducible; the driver calls it once before a solve.
func Seed(seed uint64) { global.src.Seed(seed) }

// Global returns the process-wide sampler.
func Global() *Rand { return global }

// Uint64 returns the next raw 64-bit value.
func (r *Rand) Uint64() uint64 { return r.src.Uint64() }

// uint64n returns a uniform value in [0, n) using Lemire reduction.
func (r *Rand) uint64n(n uint64) uint64 {
	if n == 0 {
		panic("rng: zero range")
	}
	hi, lo := bits.Mul64(r.src.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.src.Uint64(), n)
		}
	}
	return hi
}

// Bool returns a uniformly random boolean from the top bit of one draw.
func (r *Rand) Bool() bool {
	return r.src.Uint64()>>63 == 1
}

// Intn returns a uniform int in [0, n). It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(r.uint64n(uint64(n)))
}

// Index returns a uniform index for a sequence of length n.
func (r *Rand) Index(n int) int { return r.Intn(n) }

// IntRange returns a uniform integer on the closed interval [lo, hi].
// It panics if lo > hi. It works for any integer gene type, including
// signed and 8-bit ones.
func IntRange[T constraints.Integer](r *Rand, lo, hi T) T {
	if lo > hi {
		panic(fmt.Sprintf("rng: invalid range [%v, %v]", lo, hi))
	}
	span := uint64(hi) - uint64(lo) + 1
	if span == 0 { // full 64-bit range
		return T(r.src.Uint64())
	}
	return lo + T(r.uint64n(span))
}

// Float64 returns a uniform value on the closed interval [0, 1].
func (r *Rand) Float64() float64 {
	return float64(r.src.Uint64()>>11) / ((1 << 53) - 1)
}

// Float64Range returns a uniform value on the closed interval [lo, hi].
// It panics if lo > hi.
func (r *Rand) Float64Range(lo, hi float64) float64 {
	if lo > hi {
		panic(fmt.Sprintf("rng: invalid range [%v, %v]", lo, hi))
	}
	return lo + (hi-lo)*r.Float64()
}

// Normal returns a normally distributed value with the given mean and
// standard deviation. sd = 0 returns the mean. It panics for sd < 0.
func (r *Rand) Normal(mean, sd float64) float64 {
	if sd < 0 {
		panic("rng: negative standard deviation")
	}
	if sd == 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: sd, Src: sourceAdapter{r.src}}.Rand()
}

// Binomial returns a binomially distributed value with parameters n and p.
// An exact sampler is used when n*p < 2; larger means use a truncated
// normal approximation rejected outside (-0.5, n+0.5) and rounded.
// It panics if n < 0 or p is outside [0, 1].
func (r *Rand) Binomial(n int, p float64) int {
	if n < 0 {
		panic("rng: negative binomial count")
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		panic(fmt.Sprintf("rng: binomial probability %v outside [0, 1]", p))
	}
	if p == 0 || n == 0 {
		return 0
	}
	if p == 1 {
		return n
	}
	mean := float64(n) * p
	if mean < 2.0 {
		return int(distuv.Binomial{N: float64(n), P: p, Src: sourceAdapter{r.src}}.Rand())
	}
	sd := math.Sqrt(mean * (1.0 - p))
	v := r.Normal(mean, sd)
	for !(-0.5 < v && v < float64(n)+0.5) {
		v = r.Normal(mean, sd)
	}
	return int(math.Round(v))
}

// Element returns a uniformly random element of s. It panics on an empty
// slice.
func Element[E any](r *Rand, s []E) E {
	if len(s) == 0 {
		panic("rng: Element of empty slice")
	}
	return s[r.Intn(len(s))]
}

// SampleCdf returns the index of the first entry of cdf that is >= u*back,
// where u is uniform on [0, 1] and back is the last entry. The cdf must be
// non-decreasing; it panics when empty.
func (r *Rand) SampleCdf(cdf []float64) int {
	if len(cdf) == 0 {
		panic("rng: SampleCdf with empty cdf")
	}
	limit := r.Float64Range(0, cdf[len(cdf)-1]) // use the actual back in case it isn't exactly 1
	lo, hi := 0, len(cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cdf[mid] < limit {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// SimplexPoint returns a uniformly random point on the (d-1)-simplex:
// d non-negative coordinates summing to 1. It panics if d < 1.
func (r *Rand) SimplexPoint(d int) []float64 {
	if d < 1 {
		panic("rng: SimplexPoint with d < 1")
	}
	p := make([]float64, d)
	sum := 0.0
	for i := range p {
		u := r.Float64()
		for u == 0 {
			u = r.Float64()
		}
		p[i] = -math.Log(u)
		sum += p[i]
	}
	for i := range p {
		p[i] /= sum
	}
	return p
}

// Perm returns a random permutation of [0, n).
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := 1; i < n; i++ {
		j := r.Intn(i + 1)
		p[i] = p[j]
		p[j] = i
	}
	return p
}

// Shuffle permutes s in place.
func Shuffle[E any](r *Rand, s []E) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// sourceAdapter lets the gonum distributions draw from a Source.
type sourceAdapter struct {
	src Source
}

func (a sourceAdapter) Uint64() uint64 { return a.src.Uint64() }
func (a sourceAdapter) Seed(s uint64)  { a.src.Seed(s) }

var _ rand.Source = sourceAdapter{}
