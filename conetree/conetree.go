// Package conetree implements a ball tree over a fixed set of points that
// answers maximum-inner-product queries. It is used by NSGA-III to find
// the reference point closest to a candidate without scanning the whole
// reference set.
//
// The structure follows Ram and Gray, "Maximum inner-product search using
// cone trees" (2012): nodes store a centroid and covering radius, and a
// query prunes subtrees whose Cauchy-Schwarz upper bound cannot beat the
// best inner product found so far.
package conetree

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// maxLeafSize is the largest number of points kept in a leaf node.
const maxLeafSize = 22

type node struct {
	center []float64
	radius float64
	first  int // index range [first, last) into the reordered point set
	last   int
	left   int // child node indices, 0 for leaves (the root is never a child)
	right  int
}

// Tree is an immutable max-inner-product index over a point set.
// It is safe for concurrent queries.
type Tree struct {
	points [][]float64 // reordered during the build
	index  []int       // position in points -> index in the input slice
	nodes  []node
}

// Match is the result of a query: the index of the winning point in the
// input slice and its inner product with the query.
type Match struct {
	Index int
	Prod  float64
}

// New builds a tree over the given points. The points are copied; they
// must all have the same dimension. An empty input yields an empty tree
// whose queries return Match{Index: -1}.
func New(points [][]float64) *Tree {
	t := &Tree{
		points: make([][]float64, len(points)),
		index:  make([]int, len(points)),
	}
	for i, p := range points {
		t.points[i] = append([]float64(nil), p...)
		t.index[i] = i
	}
	if len(points) == 0 {
		return t
	}

	t.nodes = make([]node, 1, 4*len(points)/maxLeafSize+1)
	t.nodes[0] = node{first: 0, last: len(points)}
	t.build()
	return t
}

// Len returns the number of stored points.
func (t *Tree) Len() int { return len(t.points) }

// build expands the tree from the root, appending child nodes as it goes.
func (t *Tree) build() {
	for i := 0; i < len(t.nodes); i++ {
		n := &t.nodes[i]

		n.center = t.centroid(n.first, n.last)
		n.radius = t.radius(n.first, n.last, n.center)

		if n.last-n.first <= maxLeafSize {
			continue
		}

		// Split by the two seeds found with the double farthest-point
		// heuristic, assigning each point to its nearest seed.
		seedA := t.farthest(n.first, n.last, t.points[n.first])
		seedB := t.farthest(n.first, n.last, t.points[seedA])
		a := append([]float64(nil), t.points[seedA]...)
		b := append([]float64(nil), t.points[seedB]...)

		mid := t.partition(n.first, n.last, a, b)
		if mid == n.first {
			// All points coincide; keep both child ranges non-empty.
			mid++
		}

		left := node{first: n.first, last: mid}
		right := node{first: mid, last: n.last}
		t.nodes = append(t.nodes, left, right)
		// Re-take the pointer: the append may have moved the slice.
		t.nodes[i].left = len(t.nodes) - 2
		t.nodes[i].right = len(t.nodes) - 1
	}
}

func (t *Tree) centroid(first, last int) []float64 {
	c := append([]float64(nil), t.points[first]...)
	for i := first + 1; i < last; i++ {
		floats.Add(c, t.points[i])
	}
	floats.Scale(1/float64(last-first), c)
	return c
}

func (t *Tree) radius(first, last int, center []float64) float64 {
	maxSq := 0.0
	for i := first; i < last; i++ {
		maxSq = math.Max(maxSq, distSq(center, t.points[i]))
	}
	return math.Sqrt(maxSq)
}

func (t *Tree) farthest(first, last int, from []float64) int {
	best, bestSq := first, math.Inf(-1)
	for i := first; i < last; i++ {
		if d := distSq(from, t.points[i]); d > bestSq {
			best, bestSq = i, d
		}
	}
	return best
}

// partition reorders [first, last) so points nearer seed a precede points
// nearer seed b, returning the boundary.
func (t *Tree) partition(first, last int, a, b []float64) int {
	mid := first
	for i := first; i < last; i++ {
		if distSq(a, t.points[i]) < distSq(b, t.points[i]) {
			t.swap(mid, i)
			mid++
		}
	}
	return mid
}

func (t *Tree) swap(i, j int) {
	t.points[i], t.points[j] = t.points[j], t.points[i]
	t.index[i], t.index[j] = t.index[j], t.index[i]
}

func distSq(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		di := a[i] - b[i]
		d += di * di
	}
	return d
}

// upperBound is the largest inner product any point inside the node can
// have with the query (Cauchy-Schwarz).
func upperBound(n *node, query []float64, queryNorm float64) float64 {
	return floats.Dot(query, n.center) + queryNorm*n.radius
}

// stackPool keeps reusable DFS stacks so queries allocate nothing in the
// steady state.
var stackPool = sync.Pool{
	New: func() any { s := make([]int, 0, 64); return &s },
}

// FindBestMatch returns the stored point with the maximum inner product
// with the query, and that inner product.
func (t *Tree) FindBestMatch(query []float64) Match {
	best := Match{Index: -1, Prod: math.Inf(-1)}
	if len(t.points) == 0 {
		return best
	}

	queryNorm := floats.Norm(query, 2)

	stackp := stackPool.Get().(*[]int)
	stack := (*stackp)[:0]
	stack = append(stack, 0)

	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if best.Prod >= upperBound(n, query, queryNorm) {
			continue
		}

		if n.left == 0 && n.right == 0 {
			for i := n.first; i < n.last; i++ {
				if prod := floats.Dot(query, t.points[i]); prod > best.Prod {
					best = Match{Index: t.index[i], Prod: prod}
				}
			}
			continue
		}

		// Descend into the more promising child first.
		lb := upperBound(&t.nodes[n.left], query, queryNorm)
		rb := upperBound(&t.nodes[n.right], query, queryNorm)
		if lb < rb {
			stack = append(stack, n.left, n.right)
		} else {
			stack = append(stack, n.right, n.left)
		}
	}

	*stackp = stack
	stackPool.Put(stackp)
	return best
}
