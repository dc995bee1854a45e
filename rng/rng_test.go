package rng

import (
	"math"
	"testing"
)

func TestGeneratorDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("equal seeds must produce equal streams")
		}
	}

	a.Seed(42)
	c := New(43)
	if a.Uint64() == c.Uint64() {
		t.Error("different seeds should diverge immediately")
	}
}

func TestFloat64Range(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		v := r.Float64Range(-2.5, 7.5)
		if v < -2.5 || v > 7.5 {
			t.Fatalf("Float64Range returned %v", v)
		}
	}
	if v := r.Float64Range(3, 3); v != 3 {
		t.Errorf("degenerate range returned %v", v)
	}
}

func TestIntRange(t *testing.T) {
	r := NewRand(2)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := IntRange(r, -3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("IntRange returned %v", v)
		}
		seen[v] = true
	}
	if len(seen) != 7 {
		t.Errorf("closed range [-3, 3] produced %d distinct values, want 7", len(seen))
	}

	if v := IntRange(r, int8(-5), int8(-5)); v != -5 {
		t.Errorf("degenerate 8-bit range returned %v", v)
	}
}

func TestNormal(t *testing.T) {
	r := NewRand(3)
	if v := r.Normal(1.5, 0); v != 1.5 {
		t.Errorf("zero deviation should return the mean, got %v", v)
	}

	sum := 0.0
	n := 10000
	for i := 0; i < n; i++ {
		sum += r.Normal(2, 1)
	}
	if mean := sum / float64(n); math.Abs(mean-2) > 0.1 {
		t.Errorf("sample mean %v too far from 2", mean)
	}
}

func TestBinomial(t *testing.T) {
	r := NewRand(4)

	if v := r.Binomial(10, 0); v != 0 {
		t.Errorf("p=0 must give 0, got %v", v)
	}
	if v := r.Binomial(10, 1); v != 10 {
		t.Errorf("p=1 must give n, got %v", v)
	}
	if v := r.Binomial(0, 0.5); v != 0 {
		t.Errorf("n=0 must give 0, got %v", v)
	}

	// Both the exact and the approximate branch stay within [0, n].
	for _, p := range []float64{0.01, 0.5, 0.99} {
		for i := 0; i < 1000; i++ {
			v := r.Binomial(100, p)
			if v < 0 || v > 100 {
				t.Fatalf("Binomial(100, %v) = %v", p, v)
			}
		}
	}
}

func TestSampleCdfUniform(t *testing.T) {
	r := NewRand(5)
	cdf := []float64{0.25, 0.5, 0.75, 1.0}

	counts := make([]int, len(cdf))
	n := 40000
	for i := 0; i < n; i++ {
		counts[r.SampleCdf(cdf)]++
	}
	for idx, c := range counts {
		freq := float64(c) / float64(n)
		if math.Abs(freq-0.25) > 0.02 {
			t.Errorf("index %d drawn with frequency %v, want 0.25", idx, freq)
		}
	}
}

func TestSampleCdfSkewed(t *testing.T) {
	r := NewRand(6)
	cdf := []float64{0, 0, 1} // all mass on the last index
	for i := 0; i < 100; i++ {
		if idx := r.SampleCdf(cdf); idx != 2 && cdf[idx] != 0 {
			t.Fatalf("drew index %d from a degenerate cdf", idx)
		}
	}
}

func TestSampleUnique(t *testing.T) {
	r := NewRand(7)

	check := func(lo, hi int, count int) {
		t.Helper()
		got := SampleUnique(r, lo, hi, count)
		if len(got) != count {
			t.Fatalf("got %d values, want %d", len(got), count)
		}
		seen := make(map[int]bool)
		for _, v := range got {
			if v < lo || v >= hi {
				t.Fatalf("value %d outside [%d, %d)", v, lo, hi)
			}
			if seen[v] {
				t.Fatalf("duplicate value %d", v)
			}
			seen[v] = true
		}
	}

	check(0, 100, 10)      // sparse, dense bitset branch
	check(-50, 50, 90)     // select-complement branch
	check(0, 1<<21, 100)   // hash-set branch
	check(0, 10, 10)       // whole range
	check(5, 5, 0)         // empty range
	check(1<<21, 1<<22, 0) // empty sample from a huge range
}

func TestSimplexPoint(t *testing.T) {
	r := NewRand(8)
	for _, d := range []int{1, 2, 3, 10} {
		p := r.SimplexPoint(d)
		if len(p) != d {
			t.Fatalf("dimension %d: got %d coordinates", d, len(p))
		}
		sum := 0.0
		for _, v := range p {
			if v < 0 {
				t.Fatalf("negative coordinate %v", v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("coordinates sum to %v, want 1", sum)
		}
	}
}

func TestPerm(t *testing.T) {
	r := NewRand(9)
	p := r.Perm(20)
	seen := make([]bool, 20)
	for _, v := range p {
		if v < 0 || v >= 20 || seen[v] {
			t.Fatalf("not a permutation: %v", p)
		}
		seen[v] = true
	}
}

func TestBoolBalance(t *testing.T) {
	r := NewRand(10)
	trues := 0
	n := 10000
	for i := 0; i < n; i++ {
		if r.Bool() {
			trues++
		}
	}
	if freq := float64(trues) / float64(n); math.Abs(freq-0.5) > 0.03 {
		t.Errorf("Bool frequency %v too far from 0.5", freq)
	}
}

func TestPanics(t *testing.T) {
	r := NewRand(11)
	mustPanic(t, func() { r.Intn(0) })
	mustPanic(t, func() { IntRange(r, 3, 2) })
	mustPanic(t, func() { r.Float64Range(1, 0) })
	mustPanic(t, func() { r.Binomial(10, 1.5) })
	mustPanic(t, func() { r.Binomial(-1, 0.5) })
	mustPanic(t, func() { r.SampleCdf(nil) })
	mustPanic(t, func() { SampleUnique(r, 0, 3, 4) })
}

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	f()
}
