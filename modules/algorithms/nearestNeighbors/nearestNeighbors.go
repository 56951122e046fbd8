package nearestNeighbors

import (
	"cmp"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Build the nearest k neighbors list for each city, closest first.
// A city is never its own neighbor; ties keep index order.
func BuildNearestNeighborsLists(distances mat.Symmetric, k int) [][]int {
	n := distances.SymmetricDim()
	neighborsLists := make([][]int, n)
	k = max(0, min(k, n-1))

	type nodeDist struct {
		id       int
		distance float64
	}

	cityDistances := make([]nodeDist, 0, n)
	for i := 0; i < n; i++ {
		cityDistances = cityDistances[:0]
		for j := 0; j < n; j++ {
			if j != i {
				cityDistances = append(cityDistances, nodeDist{id: j, distance: distances.At(i, j)})
			}
		}

		slices.SortStableFunc(cityDistances, func(x, y nodeDist) int {
			return cmp.Compare(x.distance, y.distance)
		})

		neighborsLists[i] = make([]int, k)
		for j := 0; j < k; j++ {
			neighborsLists[i][j] = cityDistances[j].id
		}
	}

	return neighborsLists
}
