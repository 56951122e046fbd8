package threeOpt

import (
	"math"
	"math/rand"
	"testing"

	"aco_tsp/modules/models"
	"aco_tsp/modules/utilities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func lineDistances(n int) *mat.SymDense {
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, float64(j-i))
		}
	}

	return d
}

func TestRunSwapsSegments(t *testing.T) {
	d := lineDistances(6)
	tour := []int{0, 3, 4, 1, 2, 5, 0}
	require.Equal(t, 16.0, utilities.TourLength(tour, d))

	NewReducedThreeOpt(d, 5).Run(tour)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 0}, tour)
	assert.Equal(t, 10.0, utilities.TourLength(tour, d))
}

func TestRunLeavesTinyToursAlone(t *testing.T) {
	d := lineDistances(3)
	tour := []int{2, 0, 1, 2}

	NewReducedThreeOpt(d, 2).Run(tour)

	assert.Equal(t, []int{2, 0, 1, 2}, tour)
}

func TestRunNeverLengthensTour(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		n := 5 + rng.Intn(25)
		d := mat.NewSymDense(n, nil)
		points := make([]models.Point, n)
		for i := range points {
			points[i] = models.Point{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d.SetSym(i, j, math.Hypot(points[i].X-points[j].X, points[i].Y-points[j].Y))
			}
		}

		perm := rng.Perm(n)
		tour := append(perm, perm[0])
		before := utilities.TourLength(tour, d)

		NewReducedThreeOpt(d, 8).Run(tour)

		require.NoError(t, models.ValidateTour(tour, n))
		assert.Equal(t, perm[0], tour[0])
		assert.LessOrEqual(t, utilities.TourLength(tour, d), before+1e-9)
	}
}
