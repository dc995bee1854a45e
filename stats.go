package evolve

import (
	"fmt"
	"math"
)

// A Stats object accumulates summary statistics of one fitness objective
// over a population: extremes, mean, and variance, maintained online so a
// population can be folded in one pass.
type Stats struct {
	max, min float64
	mean     float64
	sumsq    float64 // sum of squares of deviation from the mean
	len      float64
}

// Insert folds a value into the statistics.
func (s Stats) Insert(x float64) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}

	delta := x - s.mean
	newlen := s.len + 1

	s.max = math.Max(s.max, x)
	s.min = math.Min(s.min, x)
	s.mean += delta / newlen
	s.sumsq += delta * delta * (s.len / newlen)
	s.len = newlen

	return s
}

// Merge combines two statistics objects as if every value inserted into
// either had been inserted into one.
func (s Stats) Merge(t Stats) Stats {
	if s.len == 0 {
		s.max = math.Inf(-1)
		s.min = math.Inf(+1)
	}
	if t.len == 0 {
		return s
	}

	delta := t.mean - s.mean
	newlen := t.len + s.len

	s.max = math.Max(s.max, t.max)
	s.min = math.Min(s.min, t.min)
	s.mean += delta * (t.len / newlen)
	s.sumsq += t.sumsq
	s.sumsq += delta * delta * (t.len * s.len / newlen)
	s.len = newlen

	return s
}

// Max returns the largest inserted value.
func (s Stats) Max() float64 {
	return s.max
}

// Min returns the smallest inserted value.
func (s Stats) Min() float64 {
	return s.min
}

// Range returns the difference between the largest and smallest values.
func (s Stats) Range() float64 {
	return s.max - s.min
}

// Mean returns the average of the inserted values.
func (s Stats) Mean() float64 {
	return s.mean
}

// Variance returns the population variance of the inserted values.
func (s Stats) Variance() float64 {
	return s.sumsq / s.len
}

// StdDeviation returns the population standard deviation.
func (s Stats) StdDeviation() float64 {
	return math.Sqrt(s.sumsq / s.len)
}

// Len returns the number of inserted values.
func (s Stats) Len() int {
	return int(s.len)
}

// String returns a short summary of the statistics.
func (s Stats) String() string {
	return fmt.Sprintf("Max: %f | Min: %f | SD: %f",
		s.Max(),
		s.Min(),
		s.StdDeviation())
}

// ObjectiveStats computes one Stats per objective column of the fitness
// matrix.
func ObjectiveStats(fmat FitnessMatrix) []Stats {
	if len(fmat) == 0 {
		return nil
	}
	stats := make([]Stats, len(fmat[0]))
	for _, fvec := range fmat {
		for d, f := range fvec {
			stats[d] = stats[d].Insert(f)
		}
	}
	return stats
}
