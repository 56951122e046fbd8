package aco

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

func newPheromones(n int) *mat.SymDense {
	pheromones := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			pheromones.SetSym(i, j, 1.0)
		}
	}

	return pheromones
}

// updatePheromones evaporates every trail, then lets each ant deposit
// q/length on the edges of its tour. Storage is symmetric, so one SetSym
// covers both (i,j) and (j,i).
func updatePheromones(pheromones *mat.SymDense, tours [][]int, lengths []float64, rho, q float64) error {
	pheromones.ScaleSym(1-rho, pheromones)

	for k, tour := range tours {
		if lengths[k] == 0 {
			return fmt.Errorf("%w: ant %d", ErrZeroLengthTour, k)
		}

		delta := q / lengths[k]
		for idx := 0; idx < len(tour)-1; idx++ {
			i, j := tour[idx], tour[idx+1]
			pheromones.SetSym(i, j, pheromones.At(i, j)+delta)
		}
	}

	return nil
}
