package perm

import (
	"errors"
	"slices"
	"testing"

	"github.com/evolvelib/evolve"
)

func TestEncoding(t *testing.T) {
	enc, err := NewEncoding(30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		chrom := enc.Generate()
		if !Validate(chrom) {
			t.Fatalf("generated chromosome is not a permutation: %v", chrom)
		}
	}

	if _, err := NewEncoding(0); !errors.Is(err, evolve.ErrInvalidArgument) {
		t.Errorf("zero length: err = %v", err)
	}
}

func TestRandSlice(t *testing.T) {
	for i := 0; i < 1000; i++ {
		left, right := RandSlice(10)
		if !(0 <= left && left < right && right <= 10) {
			t.Fatalf("bad slice [%d, %d)", left, right)
		}
	}
}

func TestSearchReverse(t *testing.T) {
	s := []Gene{3, 1, 4, 1, 5}
	if Search(s, 4) != 2 {
		t.Error("Search missed an element")
	}
	if Search(s, 9) != -1 {
		t.Error("Search found a missing element")
	}

	r := []Gene{1, 2, 3, 4}
	Reverse(r)
	if r[0] != 4 || r[3] != 1 {
		t.Errorf("Reverse gave %v", r)
	}
}

func TestCrossoversPreservePermutation(t *testing.T) {
	enc, _ := NewEncoding(50)

	pmx, err := NewPMX(1)
	if err != nil {
		t.Fatal(err)
	}
	ox1, err := NewOrder1(1)
	if err != nil {
		t.Fatal(err)
	}

	for _, op := range []evolve.Crossover[Gene]{pmx, ox1} {
		for i := 0; i < 100; i++ {
			p1 := evolve.NewCandidate(enc.Generate())
			p2 := evolve.NewCandidate(enc.Generate())
			c1, c2 := op.Cross(nil, &p1, &p2)
			if !Validate(c1.Chromosome) || !Validate(c2.Chromosome) {
				t.Fatalf("crossover %T broke the permutation", op)
			}
		}
	}
}

func TestPMXKeepsSegment(t *testing.T) {
	// The child's copied segment always comes from the first parent; the
	// rest is a valid completion. Run many trials so all segment
	// positions are exercised.
	enc, _ := NewEncoding(12)
	op, _ := NewPMX(1)
	for i := 0; i < 200; i++ {
		p1 := evolve.NewCandidate(enc.Generate())
		p2 := evolve.NewCandidate(enc.Generate())
		c1, c2 := op.Cross(nil, &p1, &p2)
		if !Validate(c1.Chromosome) || !Validate(c2.Chromosome) {
			t.Fatal("PMX broke the permutation")
		}

		left, right := RandSlice(12)
		child := pmx(p1.Chromosome, p2.Chromosome, left, right)
		if !slices.Equal(child[left:right], p1.Chromosome[left:right]) {
			t.Fatalf("PMX child lost the first parent's segment [%d, %d)", left, right)
		}
		if !Validate(child) {
			t.Fatal("PMX broke the permutation")
		}
	}
}

func TestMutationsPreservePermutation(t *testing.T) {
	enc, _ := NewEncoding(25)

	swap, err := NewSwap(1)
	if err != nil {
		t.Fatal(err)
	}
	inv, err := NewInversion(1)
	if err != nil {
		t.Fatal(err)
	}

	for _, op := range []evolve.Mutation[Gene]{swap, inv} {
		for i := 0; i < 100; i++ {
			c := evolve.NewCandidate(enc.Generate())
			c.Evaluated = true
			op.Mutate(nil, &c)
			if !Validate(c.Chromosome) {
				t.Fatalf("mutation %T broke the permutation", op)
			}
		}
	}
}

func TestSwapChangesTwoPositions(t *testing.T) {
	c := evolve.NewCandidate(evolve.Chromosome[Gene]{0, 1, 2, 3, 4})
	c.Evaluated = true
	orig := append(evolve.Chromosome[Gene](nil), c.Chromosome...)

	m, _ := NewSwap(1)
	m.Mutate(nil, &c)

	diff := 0
	for i := range orig {
		if orig[i] != c.Chromosome[i] {
			diff++
		}
	}
	if diff != 2 {
		t.Errorf("swap changed %d positions", diff)
	}
	if c.Evaluated {
		t.Error("swap must clear the evaluated flag")
	}
}

func TestMutationRateZero(t *testing.T) {
	c := evolve.NewCandidate(evolve.Chromosome[Gene]{0, 1, 2, 3})
	c.Evaluated = true

	m, _ := NewSwap(0)
	m.Mutate(nil, &c)
	if !c.Evaluated {
		t.Error("rate-0 mutation must not touch the candidate")
	}
}
