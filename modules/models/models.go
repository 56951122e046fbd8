package models

import (
	"errors"
	"fmt"
)

const SolutionName = "ACO Solution"

var ErrInvalidTour = errors.New("tour is not a closed Hamiltonian cycle")

type Point struct {
	X, Y float64
}

// Edge is an unordered pair of point indices. Use NewEdge to get the
// canonical orientation (From < To).
type Edge struct {
	From, To int
}

func NewEdge(i, j int) Edge {
	if i > j {
		i, j = j, i
	}

	return Edge{From: i, To: j}
}

type Solution struct {
	Tour            []int
	Length          float64
	Name            string
	BestAtIteration int
	// Best length known after each iteration.
	Convergence []float64
}

func (s Solution) String() string {
	return fmt.Sprintf("%s: %.2f units", s.Name, s.Length)
}

// ConvertTourToEdges returns the canonical edges of a closed tour.
func ConvertTourToEdges(tour []int) []Edge {
	if len(tour) < 2 {
		return nil
	}

	tourEdges := make([]Edge, len(tour)-1)
	for i := 0; i < len(tour)-1; i++ {
		tourEdges[i] = NewEdge(tour[i], tour[i+1])
	}

	return tourEdges
}

// ValidateTour checks that tour starts and ends at the same index and visits
// each of 0..n-1 exactly once in between.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("%w: length %d for %d points", ErrInvalidTour, len(tour), n)
	}

	if tour[0] != tour[n] {
		return fmt.Errorf("%w: starts at %d, ends at %d", ErrInvalidTour, tour[0], tour[n])
	}

	seen := make([]bool, n)
	for _, v := range tour[:n] {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidTour, v)
		}

		if seen[v] {
			return fmt.Errorf("%w: index %d visited twice", ErrInvalidTour, v)
		}

		seen[v] = true
	}

	return nil
}
