package integer

import (
	"errors"
	"testing"

	"github.com/evolvelib/evolve"
)

func TestEncoding(t *testing.T) {
	enc, err := NewEncoding(12, 96, 32)
	if err != nil {
		t.Fatal(err)
	}
	if enc.ChromLen() != 12 {
		t.Errorf("ChromLen() = %d", enc.ChromLen())
	}

	bounds := enc.Bounds()
	if len(bounds) != 12 || bounds[0].Lower() != 32 || bounds[0].Upper() != 127 {
		t.Errorf("bounds = [%v, %v]", bounds[0].Lower(), bounds[0].Upper())
	}

	for i := 0; i < 200; i++ {
		for _, g := range enc.Generate() {
			if g < 32 || g > 127 {
				t.Fatalf("gene %d outside the alphabet", g)
			}
		}
	}
}

func TestEncodingValidation(t *testing.T) {
	if _, err := NewEncoding(0, 96, 32); !errors.Is(err, evolve.ErrInvalidArgument) {
		t.Errorf("zero length: err = %v", err)
	}
	if _, err := NewEncoding(5, 1, 0); !errors.Is(err, evolve.ErrInvalidArgument) {
		t.Errorf("base 1: err = %v", err)
	}
	// Negative offsets are fine.
	if _, err := NewEncoding(5, 10, -5); err != nil {
		t.Errorf("negative offset: err = %v", err)
	}
}

func TestCrossoverGenesConserved(t *testing.T) {
	enc, _ := NewEncoding(20, 10, 0)
	p1 := evolve.NewCandidate(enc.Generate())
	p2 := evolve.NewCandidate(enc.Generate())

	sp, _ := NewSinglePoint(1)
	tp, _ := NewTwoPoint(1)
	un, _ := NewUniformCross(1)

	for _, op := range []evolve.Crossover[Gene]{sp, tp, un} {
		c1, c2 := op.Cross(nil, &p1, &p2)
		for i := range c1.Chromosome {
			a, b := c1.Chromosome[i], c2.Chromosome[i]
			x, y := p1.Chromosome[i], p2.Chromosome[i]
			// The uniform crossover swaps gene-wise, the point
			// crossovers segment-wise; either way each position holds
			// the two parent genes in some order.
			if !(a == x && b == y || a == y && b == x) {
				t.Fatalf("%T: position %d lost the parent genes", op, i)
			}
		}
	}
}

func TestSinglePointStructure(t *testing.T) {
	n := 30
	p1c := make(evolve.Chromosome[Gene], n)
	p2c := make(evolve.Chromosome[Gene], n)
	for i := range p1c {
		p1c[i] = 0
		p2c[i] = 1
	}
	p1 := evolve.NewCandidate(p1c)
	p2 := evolve.NewCandidate(p2c)

	op, _ := NewSinglePoint(1)
	c1, _ := op.Cross(nil, &p1, &p2)

	// A single crossover point means at most one switch between gene
	// sources along the chromosome.
	switches := 0
	for i := 1; i < n; i++ {
		if c1.Chromosome[i] != c1.Chromosome[i-1] {
			switches++
		}
	}
	if switches > 1 {
		t.Errorf("single-point crossover produced %d switches", switches)
	}
}

func TestUniformMutation(t *testing.T) {
	enc, _ := NewEncoding(50, 4, 10)
	m, err := NewUniform(1, enc.Bounds())
	if err != nil {
		t.Fatal(err)
	}

	c := evolve.NewCandidate(enc.Generate())
	c.Evaluated = true
	m.Mutate(nil, &c)
	for _, g := range c.Chromosome {
		if g < 10 || g > 13 {
			t.Fatalf("mutated gene %d outside the alphabet", g)
		}
	}
	if c.Evaluated {
		t.Error("mutation must clear the evaluated flag")
	}
}
