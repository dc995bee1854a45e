// Package perm implements the permutation encoding: chromosomes that are
// permutations of the integers [0, n), with order-preserving crossover
// and mutation operators.
package perm

import (
	"fmt"

	"github.com/evolvelib/evolve"
	"github.com/evolvelib/evolve/rng"
)

// Gene is the gene type of the permutation encoding.
type Gene = int

// Encoding generates random permutations of [0, n).
type Encoding struct {
	n int
}

// NewEncoding returns a permutation encoding of the given length.
func NewEncoding(n int) (*Encoding, error) {
	if n < 1 {
		return nil, fmt.Errorf("perm: chromosome length %d: %w", n, evolve.ErrInvalidArgument)
	}
	return &Encoding{n: n}, nil
}

// ChromLen implements evolve.Encoding.
func (e *Encoding) ChromLen() int { return e.n }

// Generate implements evolve.Encoding.
func (e *Encoding) Generate() evolve.Chromosome[Gene] {
	return rng.Global().Perm(e.n)
}

// RandSlice returns the boundaries of a random non-empty subslice:
// 0 <= left < right <= n. The whole slice [0, n) is one of the outcomes.
func RandSlice(n int) (left, right int) {
	r := rng.Global()
	left = r.Intn(n)
	right = left
	for right == left {
		right = r.Intn(n + 1)
	}
	if right < left {
		left, right = right, left
	}
	return left, right
}

// Search returns the index of val in slice, or -1.
func Search(slice []Gene, val Gene) int {
	for idx := range slice {
		if slice[idx] == val {
			return idx
		}
	}
	return -1
}

// Reverse reverses a gene slice in place.
func Reverse(slice []Gene) {
	i := 0
	j := len(slice) - 1
	for i < j {
		slice[i], slice[j] = slice[j], slice[i]
		i++
		j--
	}
}

// Validate reports whether the chromosome is a permutation of [0, n).
// It is useful when testing custom operators.
func Validate(slice []Gene) bool {
	seen := make([]bool, len(slice))
	for _, v := range slice {
		if v < 0 || v >= len(slice) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
