package problems

import (
	"math"

	"github.com/evolvelib/evolve"
)

// TSP is a travelling salesman instance over a fixed set of city
// coordinates. Tours are closed; the fitness of a tour is its negated
// length, so shorter tours have larger fitness.
type TSP struct {
	dist [][]float64
}

// NewTSP returns a TSP instance over the given city coordinates.
func NewTSP(cities [][2]float64) *TSP {
	n := len(cities)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = math.Hypot(cities[i][0]-cities[j][0], cities[i][1]-cities[j][1])
		}
	}
	return &TSP{dist: dist}
}

// Len returns the number of cities.
func (t *TSP) Len() int { return len(t.dist) }

// Tour is the fitness function: the negated length of the closed tour
// visiting the cities in chromosome order.
func (t *TSP) Tour(chrom evolve.Chromosome[int]) evolve.FitnessVector {
	d := 0.0
	for i := 0; i < len(chrom)-1; i++ {
		d += t.dist[chrom[i]][chrom[i+1]]
	}
	d += t.dist[chrom[len(chrom)-1]][chrom[0]]
	return evolve.FitnessVector{-d}
}

// Berlin52Optimum is the length of the optimal Berlin52 tour.
const Berlin52Optimum = 7542.0

// Berlin52 holds the city coordinates of the TSPLIB berlin52 instance.
var Berlin52 = [][2]float64{
	{565, 575}, {25, 185}, {345, 750}, {945, 685}, {845, 655},
	{880, 660}, {25, 230}, {525, 1000}, {580, 1175}, {650, 1130},
	{1605, 620}, {1220, 580}, {1465, 200}, {1530, 5}, {845, 680},
	{725, 370}, {145, 665}, {415, 635}, {510, 875}, {560, 365},
	{300, 465}, {520, 585}, {480, 415}, {835, 625}, {975, 580},
	{1215, 245}, {1320, 315}, {1250, 400}, {660, 180}, {410, 250},
	{420, 555}, {575, 665}, {1150, 1160}, {700, 580}, {685, 595},
	{685, 610}, {770, 610}, {795, 645}, {720, 635}, {760, 650},
	{475, 960}, {95, 260}, {875, 920}, {700, 500}, {555, 815},
	{830, 485}, {1170, 65}, {830, 610}, {605, 625}, {595, 360},
	{1340, 725}, {1740, 245},
}

// TSP52 returns the Berlin52 instance.
func TSP52() *TSP {
	return NewTSP(Berlin52)
}
