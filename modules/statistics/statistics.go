package statistics

import (
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GraphStats describes the distribution of edge weights of an instance.
type GraphStats struct {
	MinWeight, MaxWeight, AvgWeight, StdDevWeight, Skewness, Kurtosis float64
}

// CalculateMatrixStats summarises the off-diagonal weights of a symmetric
// matrix, counting each unordered pair once. Population moments are used.
func CalculateMatrixStats(matrix mat.Symmetric) GraphStats {
	n := matrix.SymmetricDim()
	weights := make([]float64, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			weights = append(weights, matrix.At(i, j))
		}
	}

	if len(weights) == 0 {
		return GraphStats{}
	}

	avgWeight, variance := stat.PopMeanVariance(weights, nil)
	stdDevWeight := math.Sqrt(variance)

	var sumOfCubes, sumOfFourthPowers float64
	for _, weight := range weights {
		diff := weight - avgWeight
		square := diff * diff
		sumOfCubes += square * diff
		sumOfFourthPowers += square * square
	}

	count := float64(len(weights))

	return GraphStats{
		MinWeight:    floats.Min(weights),
		MaxWeight:    floats.Max(weights),
		AvgWeight:    avgWeight,
		StdDevWeight: stdDevWeight,
		Skewness:     (sumOfCubes / count) / math.Pow(stdDevWeight, 3),
		Kurtosis:     (sumOfFourthPowers/count)/math.Pow(stdDevWeight, 4) - 3,
	}
}

// RunStats summarises the best lengths of repeated runs on one instance.
type RunStats struct {
	Runs   int
	Best   float64
	Worst  float64
	Mean   float64
	Median float64
	Std    float64

	// Deviation from the known optimum in percent; zero when it's unknown.
	AvgDeviation float64
	// Share of runs that hit the known optimum, in percent.
	SuccessRate float64
}

func CalculateRunStats(lengths []float64, knownOptimal float64) RunStats {
	s := RunStats{Runs: len(lengths)}
	if s.Runs == 0 {
		return s
	}

	s.Best = floats.Min(lengths)
	s.Worst = floats.Max(lengths)
	s.Mean = stat.Mean(lengths, nil)
	s.Median = Median(lengths)
	if s.Runs >= 2 {
		s.Std = stat.StdDev(lengths, nil)
	}

	if knownOptimal > 0 {
		successCounter := 0.0
		for _, length := range lengths {
			deviation := 100 * (length - knownOptimal) / knownOptimal
			s.AvgDeviation += deviation

			if length <= knownOptimal+1e-9 {
				successCounter++
			}
		}

		s.AvgDeviation /= float64(s.Runs)
		s.SuccessRate = 100 * successCounter / float64(s.Runs)
	}

	return s
}

// Median of values, averaging the middle pair for even counts. NaN when empty.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return (sorted[mid-1] + sorted[mid]) / 2
}
