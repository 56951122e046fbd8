// Package distance builds the symmetric weight matrices the solvers work on.
package distance

import (
	"errors"
	"fmt"
	"math"

	"aco_tsp/modules/models"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidPoint    = errors.New("distance: point coordinates must be finite")
	ErrInvalidOverride = errors.New("distance: invalid override weight")
	ErrInvalidMatrix   = errors.New("distance: invalid distance matrix")
)

func Euclidean(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Build returns the N×N symmetric distance matrix of points. An override for
// the unordered pair {i,j} replaces the Euclidean distance of that pair only.
// N may be anything from 0 up; an empty input yields an empty matrix.
func Build(points []models.Point, overrides map[models.Edge]float64) (*mat.SymDense, error) {
	n := len(points)

	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, fmt.Errorf("%w: point %d is (%v, %v)", ErrInvalidPoint, i, p.X, p.Y)
		}
	}

	// NewSymDense panics on a zero size; the zero value is the empty matrix.
	distances := &mat.SymDense{}
	if n > 0 {
		distances = mat.NewSymDense(n, nil)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distances.SetSym(i, j, Euclidean(points[i], points[j]))
		}
	}

	if err := ApplyOverrides(distances, overrides); err != nil {
		return nil, err
	}

	return distances, nil
}

// ApplyOverrides sets the weight of each given pair in place. Keys may use
// either orientation; the matrix is untouched when any override is invalid.
func ApplyOverrides(distances *mat.SymDense, overrides map[models.Edge]float64) error {
	weights, err := normalizeOverrides(distances.SymmetricDim(), overrides)
	if err != nil {
		return err
	}

	for edge, weight := range weights {
		distances.SetSym(edge.From, edge.To, weight)
	}

	return nil
}

// normalizeOverrides folds both orientations of each key onto the canonical
// edge and rejects weights the solver cannot use.
func normalizeOverrides(n int, overrides map[models.Edge]float64) (map[models.Edge]float64, error) {
	weights := make(map[models.Edge]float64, len(overrides))

	for edge, weight := range overrides {
		if edge.From < 0 || edge.From >= n || edge.To < 0 || edge.To >= n {
			return nil, fmt.Errorf("%w: edge %v out of range for %d points", ErrInvalidOverride, edge, n)
		}

		if edge.From == edge.To {
			return nil, fmt.Errorf("%w: edge %v is a self loop", ErrInvalidOverride, edge)
		}

		if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
			return nil, fmt.Errorf("%w: edge %v has weight %v", ErrInvalidOverride, edge, weight)
		}

		key := models.NewEdge(edge.From, edge.To)
		if previous, ok := weights[key]; ok && previous != weight {
			return nil, fmt.Errorf("%w: edge %v given as both %v and %v", ErrInvalidOverride, key, previous, weight)
		}

		weights[key] = weight
	}

	return weights, nil
}

// FromMatrix copies an explicit square weight matrix, as read from a TSPLIB
// EDGE_WEIGHT_SECTION, into a symmetric matrix.
func FromMatrix(matrix [][]float64) (*mat.SymDense, error) {
	n := len(matrix)
	if n == 0 {
		return &mat.SymDense{}, nil
	}

	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidMatrix, i, len(row), n)
		}
	}

	distances := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if matrix[i][i] != 0 {
			return nil, fmt.Errorf("%w: diagonal entry %d is %v", ErrInvalidMatrix, i, matrix[i][i])
		}

		for j := i + 1; j < n; j++ {
			weight := matrix[i][j]

			if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
				return nil, fmt.Errorf("%w: entry (%d,%d) is %v", ErrInvalidMatrix, i, j, weight)
			}

			if weight != matrix[j][i] {
				return nil, fmt.Errorf("%w: entry (%d,%d)=%v differs from (%d,%d)=%v", ErrInvalidMatrix, i, j, weight, j, i, matrix[j][i])
			}

			distances.SetSym(i, j, weight)
		}
	}

	return distances, nil
}
