package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"aco_tsp/modules/algorithms/aco"
	"aco_tsp/modules/algorithms/spanningTree"
	"aco_tsp/modules/models"
	"aco_tsp/modules/parsing"
	"aco_tsp/modules/statistics"
	"aco_tsp/modules/utilities"

	"gonum.org/v1/gonum/mat"
)

// Computing the 1-tree bound over every special vertex is cubic in the dimension.
const maxBoundDimension = 150

type ExperimentsData struct {
	aco.Config
	results []ExperimentResult
}

type ExperimentResult struct {
	solution        models.Solution
	computationTime time.Duration
}

type ExperimentsDataStatistics struct {
	aco.Config
	statistics.RunStats
	averageBestAtIteration float64
	averageComputationTime time.Duration
	bestSolution           models.Solution
}

func saveStatistics(resultCsvPath string, statistics []ExperimentsDataStatistics) error {
	header := []string{
		"Alpha",
		"Beta",
		"Rho",
		"Q",
		"Ants number",
		"Iterations",
		"Local search",
		"Best",
		"Mean",
		"Median",
		"Std",
		"Avg best at iteration",
		"Avg deviation [%]",
		"Success rate [%]",
		"Avg computation time [ms]",
		"Best tour",
	}

	file, err := os.Create(resultCsvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return err
	}

	floatFormat := "%.2f"
	for _, statistic := range statistics {
		tour := make([]string, len(statistic.bestSolution.Tour))
		for i, city := range statistic.bestSolution.Tour {
			tour[i] = strconv.Itoa(city)
		}

		record := []string{
			fmt.Sprintf(floatFormat, statistic.Alpha),
			fmt.Sprintf(floatFormat, statistic.Beta),
			fmt.Sprintf(floatFormat, statistic.Rho),
			fmt.Sprintf(floatFormat, statistic.Q),
			strconv.Itoa(statistic.Ants),
			strconv.Itoa(statistic.Iterations),
			strconv.FormatBool(statistic.LocalSearch),
			fmt.Sprintf(floatFormat, statistic.Best),
			fmt.Sprintf(floatFormat, statistic.Mean),
			fmt.Sprintf(floatFormat, statistic.Median),
			fmt.Sprintf(floatFormat, statistic.Std),
			fmt.Sprintf(floatFormat, statistic.averageBestAtIteration),
			fmt.Sprintf(floatFormat, statistic.AvgDeviation),
			fmt.Sprintf(floatFormat, statistic.SuccessRate),
			strconv.FormatInt(statistic.averageComputationTime.Milliseconds(), 10),
			strings.Join(tour, " "),
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func calculateStatistics(experimentsData []ExperimentsData, knownOptimal float64) []ExperimentsDataStatistics {
	statisticsList := make([]ExperimentsDataStatistics, len(experimentsData))
	for i, data := range experimentsData {
		lengths := make([]float64, len(data.results))
		averageBestAtIteration := 0.0
		var averageComputationTime time.Duration
		best := data.results[0].solution

		for k, result := range data.results {
			lengths[k] = result.solution.Length
			averageBestAtIteration += float64(result.solution.BestAtIteration)
			averageComputationTime += result.computationTime

			if result.solution.Length < best.Length {
				best = result.solution
			}
		}

		resultsLen := len(data.results)

		statisticsList[i] = ExperimentsDataStatistics{
			Config:                 data.Config,
			RunStats:               statistics.CalculateRunStats(lengths, knownOptimal),
			averageBestAtIteration: averageBestAtIteration / float64(resultsLen),
			averageComputationTime: averageComputationTime / time.Duration(resultsLen),
			bestSolution:           best,
		}
	}

	sort.SliceStable(statisticsList, func(i, j int) bool {
		return statisticsList[i].Mean < statisticsList[j].Mean
	})

	return statisticsList
}

func runExperiments(numberOfRuns int, cfg aco.Config, seed int64, distances mat.Symmetric) ([]ExperimentResult, error) {
	results := make([]ExperimentResult, numberOfRuns)

	for i := 0; i < numberOfRuns; i++ {
		solver, err := aco.New(cfg, rand.New(rand.NewSource(seed+int64(i))))
		if err != nil {
			return nil, err
		}

		start := time.Now()
		solution, err := solver.SolveMatrix(distances)
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		results[i] = ExperimentResult{solution, elapsed}
	}

	return results, nil
}

// generateParameters sweeps the colony size as a share of the dimension;
// without a sweep it returns base unchanged.
func generateParameters(base aco.Config, dimension int, sweep bool) []aco.Config {
	if !sweep {
		return []aco.Config{base}
	}

	parameters := make([]aco.Config, 0)
	for _, antsPercentage := range utilities.GenerateRange(0.1, 1.0, 0.1) {
		cfg := base
		cfg.Ants = int(math.Ceil(float64(dimension) * antsPercentage))
		parameters = append(parameters, cfg)
	}

	return parameters
}

func loadInstance(path string) (parsing.Instance, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		points, err := parsing.ReadPointsCsvFile(path)
		if err != nil {
			return parsing.Instance{}, err
		}

		return parsing.Instance{
			Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Dimension: len(points),
			Points:    points,
		}, nil
	}

	return parsing.ParseTSPLIBFile(path)
}

func instancePaths(input string, maxSize int) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{input}, nil
	}

	tspPaths, err := filepath.Glob(filepath.Join(input, "*.tsp"))
	if err != nil {
		return nil, err
	}
	csvPaths, err := filepath.Glob(filepath.Join(input, "*.csv"))
	if err != nil {
		return nil, err
	}
	paths := append(tspPaths, csvPaths...)

	if maxSize > 0 {
		paths = utilities.FilterStrings(
			paths,
			func(file string) bool {
				var problemSize, err = utilities.ExtractNumber(filepath.Base(file))
				return err == nil && problemSize < maxSize
			})
	}

	sort.Strings(paths)
	return paths, nil
}

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred cleanup, such as flushing the
// CPU profile, happens on every path.
func run(args []string) error {
	defaults := aco.DefaultConfig()
	flags := flag.NewFlagSet("aco_tsp", flag.ContinueOnError)

	var (
		input         = flags.String("input", "tsp_files", "TSPLIB (.tsp) or points (.csv) file, or a directory of them")
		maxSize       = flags.Int("maxsize", 0, "in directory mode, skip files whose name number is >= maxsize (0 keeps all)")
		overridesPath = flags.String("overrides", "", "CSV of i,j,weight rows overriding single distances")
		outDir        = flags.String("out", "results", "directory for per-instance statistics CSV files")
		runs          = flags.Int("runs", 10, "runs per parameter set, seeded seed, seed+1, ...")
		seed          = flags.Int64("seed", 1, "base seed")
		sweep         = flags.Bool("sweep", false, "sweep the number of ants from 10% to 100% of the dimension")
		verbose       = flags.Bool("v", false, "print the distance matrix of small instances")
		cpuProfile    = flags.String("cpuprofile", "", "write a CPU profile to this file")

		ants        = flags.Int("ants", defaults.Ants, "ants per iteration")
		iterations  = flags.Int("iterations", defaults.Iterations, "iterations")
		alpha       = flags.Float64("alpha", defaults.Alpha, "pheromone exponent")
		beta        = flags.Float64("beta", defaults.Beta, "inverse distance exponent")
		rho         = flags.Float64("rho", defaults.Rho, "evaporation rate in [0,1]")
		q           = flags.Float64("q", defaults.Q, "pheromone deposited per tour")
		workers     = flags.Int("workers", defaults.Workers, "goroutines building tours (<=1 is sequential)")
		localSearch = flags.Bool("localsearch", defaults.LocalSearch, "apply reduced 3-opt to every tour")
		neighborsK  = flags.Int("neighbors", defaults.NeighborsK, "candidate list size for the local search")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := aco.Config{
		Ants:        *ants,
		Iterations:  *iterations,
		Alpha:       *alpha,
		Beta:        *beta,
		Rho:         *rho,
		Q:           *q,
		Workers:     *workers,
		LocalSearch: *localSearch,
		NeighborsK:  *neighborsK,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *runs <= 0 {
		return fmt.Errorf("runs must be > 0 (got %d)", *runs)
	}

	if *cpuProfile != "" {
		stop, err := utilities.StartProfiling(*cpuProfile)
		if err != nil {
			return err
		}
		defer stop()
	}

	var overrides map[models.Edge]float64
	if *overridesPath != "" {
		var err error
		overrides, err = parsing.ReadOverridesCsvFile(*overridesPath)
		if err != nil {
			return fmt.Errorf("reading overrides: %w", err)
		}
	}

	paths, err := instancePaths(*input, *maxSize)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, os.ModePerm); err != nil {
		return err
	}

	for _, path := range paths {
		instance, err := loadInstance(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		log.Println("Started processing " + instance.Name)

		distances, err := instance.Distances(overrides)
		if err != nil {
			log.Printf("Skipping %s: %v", instance.Name, err)
			continue
		}

		graphStats := statistics.CalculateMatrixStats(distances)
		log.Printf("\t%d cities, weights min %.2f max %.2f avg %.2f std %.2f",
			distances.SymmetricDim(), graphStats.MinWeight, graphStats.MaxWeight, graphStats.AvgWeight, graphStats.StdDevWeight)

		lowerBound := 0.0
		if distances.SymmetricDim() <= maxBoundDimension {
			lowerBound = spanningTree.LowerBound(distances)
			log.Printf("\t1-tree lower bound %.2f", lowerBound)
		}

		if *verbose && distances.SymmetricDim() <= 12 {
			fmt.Printf("%v\n", mat.Formatted(distances, mat.Prefix(""), mat.Squeeze()))
		}

		experimentData := make([]ExperimentsData, 0)

		start := time.Now()
		failed := false
		for _, parameters := range generateParameters(cfg, distances.SymmetricDim(), *sweep) {
			results, err := runExperiments(*runs, parameters, *seed, distances)
			if err != nil {
				log.Printf("\t%s failed: %v", instance.Name, err)
				failed = true
				break
			}

			experimentData = append(experimentData, ExperimentsData{parameters, results})
		}
		if failed {
			continue
		}
		log.Printf("\tExperiments took %dms", time.Since(start).Milliseconds())

		statisticsList := calculateStatistics(experimentData, instance.KnownOptimal)

		resultFilePath := filepath.Join(*outDir, instance.Name) + ".csv"
		if err := saveStatistics(resultFilePath, statisticsList); err != nil {
			log.Printf("\tError saving statistics to %s: %v", resultFilePath, err)
			continue
		}

		best := statisticsList[0].bestSolution
		log.Printf("\t%s, mean %.2f over %d runs", best, statisticsList[0].Mean, statisticsList[0].Runs)
		if lowerBound > 0 {
			log.Printf("\tBest is %.2f%% above the lower bound", 100*(best.Length-lowerBound)/lowerBound)
		}
		log.Printf("\tRoute: %v", best.Tour)
	}

	return nil
}
