package aco

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Ants)
	assert.Equal(t, 20, cfg.Iterations)
	assert.Equal(t, 1.5, cfg.Alpha)
	assert.Equal(t, 1.2, cfg.Beta)
	assert.Equal(t, 0.6, cfg.Rho)
	assert.Equal(t, 10.0, cfg.Q)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"zero ants", func(c *Config) { c.Ants = 0 }, false},
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, false},
		{"negative alpha", func(c *Config) { c.Alpha = -0.1 }, false},
		{"nan beta", func(c *Config) { c.Beta = math.NaN() }, false},
		{"rho above one", func(c *Config) { c.Rho = 1.1 }, false},
		{"negative rho", func(c *Config) { c.Rho = -0.5 }, false},
		{"zero q", func(c *Config) { c.Q = 0 }, false},
		{"infinite q", func(c *Config) { c.Q = math.Inf(1) }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, false},
		{"negative neighbors", func(c *Config) { c.NeighborsK = -3 }, false},
		{"zero alpha and beta", func(c *Config) { c.Alpha, c.Beta = 0, 0 }, true},
		{"rho bounds", func(c *Config) { c.Rho = 1 }, true},
		{"no evaporation", func(c *Config) { c.Rho = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestAntStreamsAreDistinctAndReproducible(t *testing.T) {
	first := antStreams(rand.New(rand.NewSource(1)), 3)
	second := antStreams(rand.New(rand.NewSource(1)), 3)

	draws := make(map[int64]struct{})
	for k := range first {
		a, b := first[k].Int63(), second[k].Int63()
		assert.Equal(t, a, b)
		draws[a] = struct{}{}
	}
	assert.Len(t, draws, 3)
}
