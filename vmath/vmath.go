// Package vmath implements the floating-point comparisons and the small
// vector kernel the algorithms are built on: tolerant equality, Pareto
// dominance, and the distance measures used for reference-point
// association.
//
// Every dominance decision in the library routes through the tolerant
// comparator so that float noise cannot introduce cycles into the
// dominance relation.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default tolerances. Both scale factors follow the source convention of
// ten machine epsilons.
const (
	DefaultAbsTol = 10 * 0x1p-52
	DefaultRelTol = 10 * 0x1p-52
)

// Process-wide comparison tolerances. They are read on every comparison
// and must not be changed while a solve is running.
var (
	absTol = DefaultAbsTol
	relTol = DefaultRelTol
)

// SetTolerances configures the process-wide comparison tolerances.
// Negative or NaN values are ignored and leave the previous setting.
func SetTolerances(abs, rel float64) {
	if abs >= 0 && !math.IsNaN(abs) {
		absTol = abs
	}
	if rel >= 0 && !math.IsNaN(rel) {
		relTol = rel
	}
}

// Tolerances returns the current absolute and relative tolerances.
func Tolerances() (abs, rel float64) {
	return absTol, relTol
}

// FloatEqual reports whether a and b are equal within the joint
// tolerance max(absTol, relTol*max(|a|, |b|)). NaN is never equal to
// anything, and infinities are equal only to themselves.
func FloatEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return floats.EqualWithinAbsOrRel(a, b, absTol, relTol)
}

// FloatLess reports whether a is less than b by more than the joint
// tolerance.
func FloatLess(a, b float64) bool {
	return a < b && !FloatEqual(a, b)
}

// VecEqual reports elementwise tolerant equality of two vectors.
func VecEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !FloatEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Dominates reports whether a Pareto-dominates b: a >= b on every
// coordinate and a > b on at least one, under the tolerant comparator.
// Maximization is assumed. The vectors must have equal length.
func Dominates(a, b []float64) bool {
	better := false
	for i := range a {
		if FloatLess(a[i], b[i]) {
			return false
		}
		if FloatLess(b[i], a[i]) {
			better = true
		}
	}
	return better
}

// ParetoCompare returns +1 if a dominates b, -1 if b dominates a, and 0
// when the vectors are incomparable or equal.
func ParetoCompare(a, b []float64) int {
	aBetter, bBetter := false, false
	for i := range a {
		if FloatLess(b[i], a[i]) {
			aBetter = true
		} else if FloatLess(a[i], b[i]) {
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return 1
	case bBetter && !aBetter:
		return -1
	default:
		return 0
	}
}

// EuclideanSq returns the squared Euclidean distance between a and b.
func EuclideanSq(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		di := a[i] - b[i]
		d += di * di
	}
	return d
}

// EuclideanNorm returns the Euclidean norm of v.
func EuclideanNorm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// PerpendicularDistanceSq returns the squared distance from point to the
// line through the origin spanned by line. A zero direction vector makes
// the distance the squared norm of the point.
func PerpendicularDistanceSq(line, point []float64) float64 {
	ll := floats.Dot(line, line)
	pp := floats.Dot(point, point)
	if ll == 0 {
		return pp
	}
	pl := floats.Dot(point, line)
	// Rounding can leave a tiny negative residue.
	return math.Max(pp-pl*pl/ll, 0)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return out
	}
	for i := range v {
		out[i] = v[i] / norm
	}
	return out
}
