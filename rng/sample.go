package rng

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// The dense-bitset path of SampleUnique is only worth its memory below
// this range length; larger ranges fall back to hash-set rejection.
const denseRangeLimit = 1 << 20

// SampleUnique returns count distinct integers drawn uniformly from the
// half-open range [lo, hi). The result is not sorted. It panics if
// lo > hi or count exceeds the range length.
//
// Three strategies are used depending on the range: Floyd's sampling
// algorithm over a dense bit set for small ranges, hash-set rejection
// for large ones, and selecting the complement when most of the range is
// requested.
func SampleUnique[T constraints.Integer](r *Rand, lo, hi T, count int) []T {
	if lo > hi {
		panic(fmt.Sprintf("rng: invalid range [%v, %v)", lo, hi))
	}
	rangeLen := uint64(hi) - uint64(lo)
	if uint64(count) > rangeLen {
		panic(fmt.Sprintf("rng: cannot sample %d unique values from a range of %d", count, rangeLen))
	}

	if rangeLen >= denseRangeLimit {
		return sampleUniqueSet(r, lo, hi, count)
	}

	selectMany := float64(count) > 0.6*float64(rangeLen)
	numbers := make([]T, 0, count)

	selected := make([]bool, rangeLen)
	if !selectMany {
		// Floyd's variant: draw from a growing prefix, remapping repeats
		// onto the current limit.
		for limit := hi - T(count); limit < hi; limit++ {
			n := IntRange(r, lo, limit)
			if selected[n-lo] {
				n = limit
			}
			selected[n-lo] = true
			numbers = append(numbers, n)
		}
		return numbers
	}

	// Select-complement: mark everything selected, then un-select
	// rangeLen-count values with the same scheme.
	for i := range selected {
		selected[i] = true
	}
	rcount := T(rangeLen) - T(count)
	for limit := hi - rcount; limit < hi; limit++ {
		n := IntRange(r, lo, limit)
		if !selected[n-lo] {
			n = limit
		}
		selected[n-lo] = false
	}
	for i, sel := range selected {
		if sel {
			numbers = append(numbers, lo+T(i))
		}
	}
	return numbers
}

func sampleUniqueSet[T constraints.Integer](r *Rand, lo, hi T, count int) []T {
	selected := make(map[T]struct{}, count)
	numbers := make([]T, 0, count)

	for limit := hi - T(count); limit < hi; limit++ {
		n := IntRange(r, lo, limit)
		if _, ok := selected[n]; ok {
			n = limit
		}
		selected[n] = struct{}{}
		numbers = append(numbers, n)
	}
	return numbers
}
