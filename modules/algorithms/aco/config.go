package aco

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("aco: invalid configuration")

type Config struct {
	Ants       int
	Iterations int

	Alpha float64 // Pheromone importance
	Beta  float64 // Inverse distance importance

	Rho float64 // Evaporation rate

	Q float64 // Pheromone deposited per tour, divided by its length

	// Workers > 1 builds the ants' tours of one iteration concurrently.
	Workers int

	LocalSearch bool
	NeighborsK  int
}

func DefaultConfig() Config {
	return Config{
		Ants:       100,
		Iterations: 20,

		Alpha: 1.5,
		Beta:  1.2,

		Rho: 0.6,
		Q:   10.0,

		Workers: 1,

		LocalSearch: false,
		NeighborsK:  25,
	}
}

func (c Config) Validate() error {
	if c.Ants <= 0 {
		return fmt.Errorf("%w: ants must be > 0 (got %d)", ErrInvalidConfig, c.Ants)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be > 0 (got %d)", ErrInvalidConfig, c.Iterations)
	}
	// Negated comparisons also reject NaN.
	if !(c.Alpha >= 0) || math.IsInf(c.Alpha, 0) {
		return fmt.Errorf("%w: alpha must be >= 0 (got %f)", ErrInvalidConfig, c.Alpha)
	}
	if !(c.Beta >= 0) || math.IsInf(c.Beta, 0) {
		return fmt.Errorf("%w: beta must be >= 0 (got %f)", ErrInvalidConfig, c.Beta)
	}
	if !(c.Rho >= 0 && c.Rho <= 1) {
		return fmt.Errorf("%w: rho must lie in [0,1] (got %f)", ErrInvalidConfig, c.Rho)
	}
	if !(c.Q > 0) || math.IsInf(c.Q, 0) {
		return fmt.Errorf("%w: Q must be > 0 (got %f)", ErrInvalidConfig, c.Q)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrInvalidConfig, c.Workers)
	}
	if c.NeighborsK < 0 {
		return fmt.Errorf("%w: neighbors k must be >= 0 (got %d)", ErrInvalidConfig, c.NeighborsK)
	}
	return nil
}
