package threeOpt

import (
	"aco_tsp/modules/algorithms/nearestNeighbors"

	"gonum.org/v1/gonum/mat"
)

// Moves must shorten the tour by more than this to be applied.
const minGain = 1e-10

type ReducedThreeOpt struct {
	distances      mat.Symmetric
	neighborsLists [][]int
}

func NewReducedThreeOpt(distances mat.Symmetric, k int) *ReducedThreeOpt {
	return &ReducedThreeOpt{
		distances:      distances,
		neighborsLists: nearestNeighbors.BuildNearestNeighborsLists(distances, k),
	}
}

// Reduced 3-opt optimization that doesn't use segment reversal.
// The only 3-opt move that keeps orientation swaps two adjacent segments:
// a|b..c|d..e|f becomes a|d..e|b..c|f. Candidate moves come from the
// nearest-neighbor lists, so d is close to a and f is close to c.
//
// Input `tour` is a closed tour and is changed in-place; its first (and last)
// city stays where it is. Safe for concurrent use on different tours.
func (threeOpt *ReducedThreeOpt) Run(tour []int) {
	n := len(tour) - 1
	if n < 4 {
		return
	}

	open := tour[:n]
	positions := make([]int, n)
	setPositions(positions, open)

	dontLookBits := make([]bool, n)
	scratch := make([]int, 0, n)

	improves := true
	for improves {
		improves = false

	loops:
		for i := 0; i <= n-3; i++ {
			a, b := open[i], open[i+1]

			if dontLookBits[a] {
				continue
			}

			for _, d := range threeOpt.neighborsLists[a] {
				j := positions[d] - 1
				if j <= i {
					continue
				}
				c := open[j]

				for _, f := range threeOpt.neighborsLists[c] {
					k := positions[f] - 1
					if positions[f] == 0 {
						k = n - 1
					}

					// Second segment d..e must be non-empty.
					if k <= j {
						continue
					}
					e := open[k]

					costRemoved := threeOpt.distances.At(a, b) + threeOpt.distances.At(c, d) + threeOpt.distances.At(e, f)
					costAdded := threeOpt.distances.At(a, d) + threeOpt.distances.At(e, b) + threeOpt.distances.At(c, f)

					if costAdded-costRemoved >= -minGain {
						continue
					}

					scratch = append(scratch[:0], open[:i+1]...)
					scratch = append(scratch, open[j+1:k+1]...)
					scratch = append(scratch, open[i+1:j+1]...)
					scratch = append(scratch, open[k+1:]...)
					copy(open, scratch)

					setPositions(positions, open)

					for _, city := range [...]int{a, b, c, d, e, f} {
						dontLookBits[city] = false
					}

					improves = true
					break loops // Exit after applying a move
				}
			}

			dontLookBits[a] = true
		}
	}

	tour[n] = tour[0]
}

func setPositions(positions, tour []int) {
	for i, v := range tour {
		positions[v] = i
	}
}
