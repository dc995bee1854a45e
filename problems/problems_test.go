package problems

import (
	"math"
	"testing"

	"github.com/evolvelib/evolve"
)

func almost(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestSin(t *testing.T) {
	if f := Sin(evolve.Chromosome[float64]{math.Pi / 2}); !almost(f[0], 1, 1e-12) {
		t.Errorf("sin(pi/2) fitness = %v", f[0])
	}
}

func TestSingleObjectiveOptima(t *testing.T) {
	zeros := evolve.Chromosome[float64]{0, 0, 0}
	ones := evolve.Chromosome[float64]{1, 1, 1}

	if f := Sphere(zeros); f[0] != 0 {
		t.Errorf("sphere optimum = %v", f[0])
	}
	if f := Rastrigin(zeros); !almost(f[0], 0, 1e-9) {
		t.Errorf("rastrigin optimum = %v", f[0])
	}
	if f := Rosenbrock(ones); f[0] != 0 {
		t.Errorf("rosenbrock optimum = %v", f[0])
	}
	if f := Ackley(zeros); !almost(f[0], 0, 1e-9) {
		t.Errorf("ackley optimum = %v", f[0])
	}
	opt := evolve.Chromosome[float64]{420.9687, 420.9687}
	if f := Schwefel(opt); !almost(f[0], 0, 1e-3) {
		t.Errorf("schwefel optimum = %v", f[0])
	}

	// Away from the optimum the fitness is worse (more negative).
	if Rastrigin(ones)[0] >= Rastrigin(zeros)[0] {
		t.Error("rastrigin must fall away from the origin")
	}
}

func TestRastriginBinary(t *testing.T) {
	zeros := make(evolve.Chromosome[uint8], 100)
	if f := RastriginBinary(zeros); !almost(f[0], 0, 1e-9) {
		t.Errorf("all-zero fitness = %v", f[0])
	}

	ones := make(evolve.Chromosome[uint8], 100)
	for i := range ones {
		ones[i] = 1
	}
	if RastriginBinary(ones)[0] >= -1 {
		t.Error("the all-one chromosome must be clearly suboptimal")
	}
}

func TestKursawe(t *testing.T) {
	f := Kursawe(evolve.Chromosome[float64]{0, 0, 0})
	if len(f) != 2 {
		t.Fatalf("got %d objectives", len(f))
	}
	// f1 = -20 at the origin for 3 variables, so the negated value is 20.
	if !almost(f[0], 20, 1e-9) {
		t.Errorf("f1 at origin = %v", f[0])
	}
	if !almost(f[1], 0, 1e-9) {
		t.Errorf("f2 at origin = %v", f[1])
	}
}

func TestZDT(t *testing.T) {
	x := evolve.Chromosome[float64]{0.5, 0, 0, 0}

	// On the Pareto front (tail variables zero) g = 1.
	f1 := ZDT1(x)
	if !almost(f1[0], -0.5, 1e-12) || !almost(f1[1], -(1-math.Sqrt(0.5)), 1e-12) {
		t.Errorf("ZDT1 front point = %v", f1)
	}

	f2 := ZDT2(x)
	if !almost(f2[1], -(1-0.25), 1e-12) {
		t.Errorf("ZDT2 front point = %v", f2)
	}

	// Off the front the second objective degrades.
	off := evolve.Chromosome[float64]{0.5, 1, 1, 1}
	if ZDT1(off)[1] >= f1[1] {
		t.Error("ZDT1 g must penalize nonzero tail variables")
	}
}

func TestDTLZ2UnitSphere(t *testing.T) {
	fn := DTLZ2(3)

	// With distance variables at 0.5 (g = 0) the objective vector lies
	// exactly on the unit sphere.
	x := evolve.Chromosome[float64]{0.3, 0.7, 0.5, 0.5, 0.5, 0.5}
	f := fn(x)
	if len(f) != 3 {
		t.Fatalf("got %d objectives", len(f))
	}
	norm := 0.0
	for _, v := range f {
		if v > 0 {
			t.Fatalf("objectives must be negated: %v", f)
		}
		norm += v * v
	}
	if !almost(norm, 1, 1e-9) {
		t.Errorf("front point norm^2 = %v", norm)
	}
}

func TestDTLZ1Plane(t *testing.T) {
	fn := DTLZ1(3)
	x := evolve.Chromosome[float64]{0.2, 0.8, 0.5, 0.5, 0.5}
	f := fn(x)
	sum := 0.0
	for _, v := range f {
		sum += -v
	}
	if !almost(sum, 0.5, 1e-9) {
		t.Errorf("front point sums to %v, want 0.5", sum)
	}
}

func TestTSP(t *testing.T) {
	square := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tsp := NewTSP(square)
	if tsp.Len() != 4 {
		t.Fatalf("Len() = %d", tsp.Len())
	}

	if f := tsp.Tour(evolve.Chromosome[int]{0, 1, 2, 3}); !almost(f[0], -4, 1e-12) {
		t.Errorf("perimeter tour = %v", f[0])
	}
	// The crossing tour is longer.
	if f := tsp.Tour(evolve.Chromosome[int]{0, 2, 1, 3}); f[0] >= -4 {
		t.Errorf("crossing tour = %v", f[0])
	}
}

func TestBerlin52(t *testing.T) {
	tsp := TSP52()
	if tsp.Len() != 52 {
		t.Fatalf("berlin52 has %d cities", tsp.Len())
	}

	// The identity tour is far from optimal but must be finite and
	// longer than the known optimum.
	tour := make(evolve.Chromosome[int], 52)
	for i := range tour {
		tour[i] = i
	}
	f := tsp.Tour(tour)
	if -f[0] < Berlin52Optimum {
		t.Errorf("identity tour length %v beats the optimum", -f[0])
	}
}

func TestStringFinder(t *testing.T) {
	fn := StringFinder("GO")
	exact := evolve.Chromosome[int]{'G', 'O'}
	if f := fn(exact); f[0] != 2 {
		t.Errorf("exact match fitness = %v", f[0])
	}
	half := evolve.Chromosome[int]{'G', 'X'}
	if f := fn(half); f[0] != 1 {
		t.Errorf("half match fitness = %v", f[0])
	}
}
