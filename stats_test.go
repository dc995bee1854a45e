package evolve_test

import (
	"testing"

	"github.com/evolvelib/evolve"
)

// data returns statistics over a small fixed sample.
func data() evolve.Stats {
	var stats evolve.Stats
	for _, x := range []float64{
		810, 820, 760, 855, 795, 825, 790, 800, 850,
		785, 805, 815, 830, 790, 820, 810, 800, 822.5,
	} {
		stats = stats.Insert(x)
	}
	return stats
}

func TestMerge(t *testing.T) {
	var a, b evolve.Stats
	for i := float64(0); i < 5; i++ {
		a = a.Insert(i)
	}
	for i := float64(5); i < 10; i++ {
		b = b.Insert(i)
	}
	stats := a.Merge(b)
	if stats.Mean() != 4.5 {
		t.Fail()
	}
	if stats.Variance() != 8.25 {
		t.Fail()
	}
	if stats.Len() != 10 {
		t.Fail()
	}
}

func TestMergeEmpty(t *testing.T) {
	var empty evolve.Stats
	stats := data().Merge(empty)
	if stats.Mean() != data().Mean() || stats.Len() != data().Len() {
		t.Error("merging an empty Stats changed the result")
	}
}

func TestMax(t *testing.T) {
	if data().Max() != 855 {
		t.Fail()
	}
}

func TestMin(t *testing.T) {
	if data().Min() != 760 {
		t.Fail()
	}
}

func TestRange(t *testing.T) {
	if data().Range() != 95 {
		t.Fail()
	}
}

func TestMean(t *testing.T) {
	mean := data().Mean()
	if mean < 810.1388888 || 810.1388890 < mean {
		t.Fail()
	}
}

func TestVariance(t *testing.T) {
	v := data().Variance()
	if v < 500.3278 || 500.3281 < v {
		t.Errorf("Variance() = %v", v)
	}
}

func TestObjectiveStats(t *testing.T) {
	fmat := evolve.FitnessMatrix{
		{1, -10},
		{2, -20},
		{3, -30},
	}
	stats := evolve.ObjectiveStats(fmat)
	if len(stats) != 2 {
		t.Fatalf("got %d objectives", len(stats))
	}
	if stats[0].Mean() != 2 || stats[0].Max() != 3 || stats[0].Min() != 1 {
		t.Errorf("objective 0: %v", stats[0])
	}
	if stats[1].Mean() != -20 || stats[1].Max() != -10 || stats[1].Min() != -30 {
		t.Errorf("objective 1: %v", stats[1])
	}

	if evolve.ObjectiveStats(nil) != nil {
		t.Error("empty matrix should yield nil stats")
	}
}
