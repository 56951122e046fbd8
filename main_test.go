package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aco_tsp/modules/algorithms/aco"
	"aco_tsp/modules/distance"
	"aco_tsp/modules/models"
	"aco_tsp/modules/parsing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParameters(t *testing.T) {
	base := aco.DefaultConfig()

	assert.Equal(t, []aco.Config{base}, generateParameters(base, 17, false))

	swept := generateParameters(base, 17, true)
	require.Len(t, swept, 10)
	assert.Equal(t, 2, swept[0].Ants)
	assert.Equal(t, 17, swept[9].Ants)
	for _, cfg := range swept {
		assert.Equal(t, base.Iterations, cfg.Iterations)
		assert.NoError(t, cfg.Validate())
	}
}

func TestRunExperimentsAndStatistics(t *testing.T) {
	square := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	distances, err := distance.Build(square, nil)
	require.NoError(t, err)

	cfg := aco.DefaultConfig()
	cfg.Ants = 10
	cfg.Iterations = 10

	results, err := runExperiments(3, cfg, 1, distances)
	require.NoError(t, err)
	require.Len(t, results, 3)

	statisticsList := calculateStatistics([]ExperimentsData{{cfg, results}}, 4)
	require.Len(t, statisticsList, 1)

	stats := statisticsList[0]
	assert.Equal(t, 3, stats.Runs)
	assert.InDelta(t, 4.0, stats.Best, 1e-9)
	assert.InDelta(t, stats.Best, stats.bestSolution.Length, 1e-12)
	assert.Equal(t, cfg.Ants, stats.Ants)

	path := filepath.Join(t.TempDir(), "square.csv")
	require.NoError(t, saveStatistics(path, statisticsList))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alpha", records[0][0])
	assert.Equal(t, "10", records[1][4])
}

func TestRunExperimentsRejectsInvalidConfig(t *testing.T) {
	distances, err := distance.Build([]models.Point{{X: 0}, {X: 1}, {X: 2}}, nil)
	require.NoError(t, err)

	cfg := aco.DefaultConfig()
	cfg.Ants = 0

	_, err = runExperiments(1, cfg, 1, distances)
	assert.ErrorIs(t, err, aco.ErrInvalidConfig)
}

func TestCalculateStatisticsSortsByMean(t *testing.T) {
	slow := aco.DefaultConfig()
	fast := aco.DefaultConfig()
	fast.Ants = 5

	data := []ExperimentsData{
		{slow, []ExperimentResult{{models.Solution{Length: 10}, time.Millisecond}}},
		{fast, []ExperimentResult{{models.Solution{Length: 8}, 3 * time.Millisecond}}},
	}

	statisticsList := calculateStatistics(data, 0)

	assert.Equal(t, 5, statisticsList[0].Ants)
	assert.Equal(t, 3*time.Millisecond, statisticsList[0].averageComputationTime)
}

func TestInstancePathsAndLoading(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri3.csv"), []byte("x,y\n0,0\n3,0\n0,4\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big100.csv"), []byte("0,0\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	paths, err := instancePaths(dir, 0)
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	paths, err = instancePaths(dir, 50)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	instance, err := loadInstance(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "tri3", instance.Name)
	assert.Equal(t, 3, instance.Dimension)

	single, err := instancePaths(paths[0], 0)
	require.NoError(t, err)
	assert.Equal(t, paths, single)

	_, err = instancePaths(filepath.Join(dir, "missing"), 0)
	assert.Error(t, err)
}

func TestRunWritesStatistics(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "results")
	input := filepath.Join(dir, "square4.csv")
	require.NoError(t, os.WriteFile(input, []byte("0,0\n1,0\n1,1\n0,1\n"), 0o644))

	err := run([]string{"-input", input, "-out", outDir, "-runs", "2", "-ants", "5", "-iterations", "5"})
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(outDir, "square4.csv"))
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRunRejectsBadArguments(t *testing.T) {
	assert.ErrorIs(t, run([]string{"-ants", "0"}), aco.ErrInvalidConfig)
	assert.Error(t, run([]string{"-runs", "0"}))
	assert.Error(t, run([]string{"-nosuchflag"}))
}

func TestRunFlushesProfileOnError(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "cpu.prof")
	overrides := filepath.Join(dir, "overrides.csv")
	require.NoError(t, os.WriteFile(overrides, []byte("0,1,x\n"), 0o644))

	err := run([]string{"-cpuprofile", profile, "-overrides", overrides})
	assert.ErrorIs(t, err, parsing.ErrMalformed)

	info, err := os.Stat(profile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = run([]string{"-cpuprofile", profile, "-input", filepath.Join(dir, "missing")})
	assert.Error(t, err)

	info, err = os.Stat(profile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
