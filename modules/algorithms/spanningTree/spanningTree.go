// Package spanningTree computes minimum spanning trees and 1-tree lower
// bounds on symmetric weight matrices.
package spanningTree

import (
	"cmp"
	"math"

	"aco_tsp/modules/models"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// FindMST returns the edges of a minimum spanning tree over all vertices,
// sorted by (From, To), and its total weight.
func FindMST(distances mat.Symmetric) ([]models.Edge, float64) {
	return minimumSpanningTree(distances, -1)
}

// OneTree returns the minimum 1-tree for the given special vertex: a minimum
// spanning tree over the other vertices plus the two lightest edges incident
// to special. Its weight never exceeds the length of any tour.
func OneTree(distances mat.Symmetric, special int) ([]models.Edge, float64) {
	n := distances.SymmetricDim()
	if n < 3 || special < 0 || special >= n {
		return nil, 0
	}

	edges, weight := minimumSpanningTree(distances, special)

	first, second := -1, -1
	for v := 0; v < n; v++ {
		if v == special {
			continue
		}

		d := distances.At(special, v)
		switch {
		case first == -1 || d < distances.At(special, first):
			first, second = v, first
		case second == -1 || d < distances.At(special, second):
			second = v
		}
	}

	edges = append(edges, models.NewEdge(special, first), models.NewEdge(special, second))
	weight += distances.At(special, first) + distances.At(special, second)

	return edges, weight
}

// LowerBound is the heaviest 1-tree over every choice of special vertex.
func LowerBound(distances mat.Symmetric) float64 {
	bound := 0.0
	for special := 0; special < distances.SymmetricDim(); special++ {
		if _, weight := OneTree(distances, special); weight > bound {
			bound = weight
		}
	}

	return bound
}

// completeGraph is the complete weighted graph of distances without the
// vertex skip; skip < 0 keeps every vertex. Node IDs are matrix indices.
func completeGraph(distances mat.Symmetric, skip int) *simple.WeightedUndirectedGraph {
	n := distances.SymmetricDim()
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))

	for i := 0; i < n; i++ {
		if i != skip {
			g.AddNode(simple.Node(i))
		}
	}

	for i := 0; i < n; i++ {
		if i == skip {
			continue
		}

		for j := i + 1; j < n; j++ {
			if j == skip {
				continue
			}

			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), distances.At(i, j)))
		}
	}

	return g
}

func minimumSpanningTree(distances mat.Symmetric, skip int) ([]models.Edge, float64) {
	g := completeGraph(distances, skip)
	if g.Nodes().Len() < 2 {
		return nil, 0
	}

	tree := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	weight := path.Prim(tree, g)

	edges := make([]models.Edge, 0, g.Nodes().Len()-1)
	treeEdges := tree.Edges()
	for treeEdges.Next() {
		e := treeEdges.Edge()
		edges = append(edges, models.NewEdge(int(e.From().ID()), int(e.To().ID())))
	}

	slices.SortFunc(edges, func(a, b models.Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})

	return edges, weight
}
