// Package aco solves the symmetric travelling salesman problem with an Ant
// System: every iteration each ant builds a closed tour edge by edge, biased
// by pheromone and inverse distance, and all tours then reinforce their
// edges in proportion to their quality.
package aco

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"aco_tsp/modules/algorithms/threeOpt"
	"aco_tsp/modules/distance"
	"aco_tsp/modules/models"
	"aco_tsp/modules/utilities"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInsufficientPoints = errors.New("aco: need at least 3 points")
	ErrZeroLengthTour     = errors.New("aco: tour of zero length")
	ErrNonFiniteLength    = errors.New("aco: tour length is not finite")
)

// ACO holds a validated configuration and a random source. Each Solve call
// is an independent run; an ACO must not be shared by concurrent Solve calls
// because the random source isn't goroutine safe.
type ACO struct {
	cfg Config
	rng *rand.Rand
}

// New validates cfg up front. A nil rng falls back to a time-seeded source;
// pass a seeded one for reproducible runs.
func New(cfg Config, rng *rand.Rand) (*ACO, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &ACO{cfg: cfg, rng: rng}, nil
}

func (aco *ACO) Config() Config {
	return aco.cfg
}

// Solve builds the distance matrix of points (with optional per-pair
// overrides) and runs the colony on it.
func (aco *ACO) Solve(points []models.Point, overrides map[models.Edge]float64) (models.Solution, error) {
	if len(points) < 3 {
		return models.Solution{}, ErrInsufficientPoints
	}

	distances, err := distance.Build(points, overrides)
	if err != nil {
		return models.Solution{}, err
	}

	return aco.SolveMatrix(distances)
}

// SolveMatrix runs the colony on an explicit symmetric distance matrix.
func (aco *ACO) SolveMatrix(distances mat.Symmetric) (models.Solution, error) {
	dimension := distances.SymmetricDim()
	if dimension < 3 {
		return models.Solution{}, ErrInsufficientPoints
	}

	ants := aco.cfg.Ants
	streams := antStreams(aco.rng, ants)
	pheromones := newPheromones(dimension)

	var reducedThreeOpt *threeOpt.ReducedThreeOpt
	if aco.cfg.LocalSearch {
		reducedThreeOpt = threeOpt.NewReducedThreeOpt(distances, aco.cfg.NeighborsK)
	}

	weights := make([][]float64, ants)
	for k := range weights {
		weights[k] = make([]float64, dimension)
	}

	tours := make([][]int, ants)
	lengths := make([]float64, ants)

	solution := models.Solution{
		Length:      math.Inf(1),
		Name:        models.SolutionName,
		Convergence: make([]float64, aco.cfg.Iterations),
	}

	// Matrices handed to SolveMatrix directly may hold NaN or Inf entries.
	buildTour := func(k int) error {
		tour := constructTour(distances, pheromones, aco.cfg.Alpha, aco.cfg.Beta, streams[k], weights[k])
		if reducedThreeOpt != nil {
			reducedThreeOpt.Run(tour)
		}

		length := utilities.TourLength(tour, distances)
		if math.IsNaN(length) || math.IsInf(length, 0) {
			return fmt.Errorf("%w: ant %d got %v", ErrNonFiniteLength, k, length)
		}

		tours[k] = tour
		lengths[k] = length
		return nil
	}

	for iteration := 0; iteration < aco.cfg.Iterations; iteration++ {
		if aco.cfg.Workers > 1 {
			var g errgroup.Group
			g.SetLimit(aco.cfg.Workers)

			for k := 0; k < ants; k++ {
				g.Go(func() error {
					return buildTour(k)
				})
			}

			if err := g.Wait(); err != nil {
				return models.Solution{}, err
			}
		} else {
			for k := 0; k < ants; k++ {
				if err := buildTour(k); err != nil {
					return models.Solution{}, err
				}
			}
		}

		// Ant order, not finishing order, decides ties.
		for k := 0; k < ants; k++ {
			if lengths[k] < solution.Length {
				solution.Length = lengths[k]
				solution.Tour = slices.Clone(tours[k])
				solution.BestAtIteration = iteration
			}
		}

		solution.Convergence[iteration] = solution.Length

		if err := updatePheromones(pheromones, tours, lengths, aco.cfg.Rho, aco.cfg.Q); err != nil {
			return models.Solution{}, err
		}
	}

	return solution, nil
}
