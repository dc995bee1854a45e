package evolve

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/evolvelib/evolve/vmath"
)

// Gene is the constraint satisfied by every gene type: binary genes are
// uint8, real genes float64, integer and permutation genes int.
type Gene interface {
	constraints.Integer | constraints.Float
}

// Chromosome is an ordered sequence of genes. Its length is fixed for the
// duration of a run.
type Chromosome[T Gene] []T

// FitnessVector holds one finite value per objective. Larger is better on
// every objective.
type FitnessVector = []float64

// FitnessMatrix stacks one fitness vector per candidate.
type FitnessMatrix = [][]float64

// GeneBounds is a closed [lower, upper] interval for one gene position.
type GeneBounds[T Gene] struct {
	lower, upper T
}

// Bounds returns the closed interval [lo, hi]. It fails when lo > hi.
func Bounds[T Gene](lo, hi T) (GeneBounds[T], error) {
	if lo > hi {
		return GeneBounds[T]{}, fmt.Errorf("gene bounds [%v, %v]: lower bound above upper: %w", lo, hi, ErrInvalidArgument)
	}
	return GeneBounds[T]{lower: lo, upper: hi}, nil
}

// UniformBounds returns a bounds vector of n copies of [lo, hi].
func UniformBounds[T Gene](n int, lo, hi T) ([]GeneBounds[T], error) {
	b, err := Bounds(lo, hi)
	if err != nil {
		return nil, err
	}
	bounds := make([]GeneBounds[T], n)
	for i := range bounds {
		bounds[i] = b
	}
	return bounds, nil
}

// Lower returns the lower bound.
func (b GeneBounds[T]) Lower() T { return b.lower }

// Upper returns the upper bound.
func (b GeneBounds[T]) Upper() T { return b.upper }

// Candidate is one solution: a chromosome together with its fitness.
// Fitness is meaningful only while Evaluated is true, in which case its
// length equals the run's objective count.
type Candidate[T Gene] struct {
	Chromosome Chromosome[T]
	Fitness    FitnessVector
	Evaluated  bool
}

// NewCandidate wraps a chromosome in an unevaluated candidate.
func NewCandidate[T Gene](chrom Chromosome[T]) Candidate[T] {
	return Candidate[T]{Chromosome: chrom}
}

// Clone returns a deep copy of the candidate.
func (c *Candidate[T]) Clone() Candidate[T] {
	return Candidate[T]{
		Chromosome: slices.Clone(c.Chromosome),
		Fitness:    slices.Clone(c.Fitness),
		Evaluated:  c.Evaluated,
	}
}

// Equal reports whether two candidates encode the same solution. Only the
// chromosomes are compared; float genes compare with the vmath tolerance.
func (c *Candidate[T]) Equal(other *Candidate[T]) bool {
	switch a := any(c.Chromosome).(type) {
	case []float64:
		return vmath.VecEqual(a, any(other.Chromosome).([]float64))
	default:
		return slices.Equal(c.Chromosome, other.Chromosome)
	}
}

// Fingerprint returns a compact bitwise key for the chromosome, used for
// hashing and as the fitness-cache key. Float genes are keyed by their
// bit patterns, so two chromosomes equal within tolerance may still have
// different fingerprints; the cache simply misses on such near-duplicates.
func (c *Candidate[T]) Fingerprint() string {
	buf := make([]byte, 0, 8*len(c.Chromosome))
	for _, g := range c.Chromosome {
		buf = binary.LittleEndian.AppendUint64(buf, geneBits(g))
	}
	return string(buf)
}

// Hash returns a 64-bit hash of the chromosome. Chromosome equality for
// non-float genes implies hash equality.
func (c *Candidate[T]) Hash() uint64 {
	h := fnv.New64a()
	var word [8]byte
	for _, g := range c.Chromosome {
		binary.LittleEndian.PutUint64(word[:], geneBits(g))
		h.Write(word[:])
	}
	return h.Sum64()
}

func geneBits[T Gene](g T) uint64 {
	switch v := any(g).(type) {
	case float64:
		return math.Float64bits(v)
	case float32:
		return uint64(math.Float32bits(v))
	case int:
		return uint64(v)
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case uintptr:
		return uint64(v)
	default:
		panic(fmt.Sprintf("evolve: unsupported gene type %T", g))
	}
}

// ToFitnessMatrix collects the fitness vectors of a population. The rows
// alias the candidates' fitness slices.
func ToFitnessMatrix[T Gene](pop []Candidate[T]) FitnessMatrix {
	fmat := make(FitnessMatrix, len(pop))
	for i := range pop {
		fmat[i] = pop[i].Fitness
	}
	return fmat
}
