package aco

import (
	"math"
	"math/rand"

	"aco_tsp/modules/utilities"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Keeps the heuristic finite for coincident points.
const minDistance = 1e-5

// constructTour builds one closed tour. It only reads distances and
// pheromones, so any number of ants may run it at once on their own rng and
// weights buffer (len >= n).
func constructTour(distances, pheromones mat.Symmetric, alpha, beta float64, rng *rand.Rand, weights []float64) []int {
	n := distances.SymmetricDim()

	unvisited := rng.Perm(n)
	start := unvisited[n-1]
	unvisited = unvisited[:n-1]

	tour := make([]int, 1, n+1)
	tour[0] = start

	for len(unvisited) > 0 {
		current := tour[len(tour)-1]
		selection := weights[:len(unvisited)]

		for idx, next := range unvisited {
			pheromone := pheromones.At(current, next)
			attractiveness := 1 / math.Max(distances.At(current, next), minDistance)
			selection[idx] = utilities.FastPow(pheromone, alpha) * utilities.FastPow(attractiveness, beta)
		}

		selected := selectIndex(selection, rng)
		tour = append(tour, unvisited[selected])
		unvisited = slices.Delete(unvisited, selected, selected+1)
	}

	return append(tour, start)
}

// selectIndex draws an index with probability proportional to its weight.
// All-zero weights, and any floating point shortfall in the cumulative walk,
// select the last index.
func selectIndex(selection []float64, rng *rand.Rand) int {
	last := len(selection) - 1

	total := floats.Sum(selection)
	if total == 0 {
		return last
	}

	q := rng.Float64()
	cumulativeProbability := 0.0
	for i, weight := range selection {
		cumulativeProbability += weight / total
		if cumulativeProbability >= q {
			return i
		}
	}

	return last
}
