package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestCalculateMatrixStats(t *testing.T) {
	m := mat.NewSymDense(3, []float64{
		0, 3, 4,
		3, 0, 5,
		4, 5, 0,
	})

	s := CalculateMatrixStats(m)

	assert.Equal(t, 3.0, s.MinWeight)
	assert.Equal(t, 5.0, s.MaxWeight)
	assert.InDelta(t, 4.0, s.AvgWeight, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), s.StdDevWeight, 1e-12)
	assert.InDelta(t, 0.0, s.Skewness, 1e-12)
	assert.InDelta(t, -1.5, s.Kurtosis, 1e-12)
}

func TestCalculateMatrixStatsTooSmall(t *testing.T) {
	assert.Equal(t, GraphStats{}, CalculateMatrixStats(mat.NewSymDense(1, nil)))
}

func TestCalculateRunStats(t *testing.T) {
	s := CalculateRunStats([]float64{4, 4.5, 4, 5}, 4)

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 4.0, s.Best)
	assert.Equal(t, 5.0, s.Worst)
	assert.InDelta(t, 4.375, s.Mean, 1e-12)
	assert.InDelta(t, 4.25, s.Median, 1e-12)
	assert.InDelta(t, 0.478713554, s.Std, 1e-9)
	assert.InDelta(t, 9.375, s.AvgDeviation, 1e-9)
	assert.Equal(t, 50.0, s.SuccessRate)
}

func TestCalculateRunStatsWithoutOptimum(t *testing.T) {
	s := CalculateRunStats([]float64{7}, 0)

	assert.Equal(t, 7.0, s.Median)
	assert.Zero(t, s.Std)
	assert.Zero(t, s.AvgDeviation)
	assert.Zero(t, s.SuccessRate)
	assert.Equal(t, RunStats{}, CalculateRunStats(nil, 10))
}

func TestMedian(t *testing.T) {
	values := []float64{5, 1, 3}

	assert.Equal(t, 3.0, Median(values))
	assert.Equal(t, []float64{5, 1, 3}, values)
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	assert.True(t, math.IsNaN(Median(nil)))
}
