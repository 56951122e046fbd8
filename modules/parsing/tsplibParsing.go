package parsing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"aco_tsp/modules/distance"
	"aco_tsp/modules/models"

	"gonum.org/v1/gonum/mat"
)

var ErrMalformed = errors.New("parsing: malformed input")

// Explicit matrices may put a whole row on one line.
const maxLineLength = 16 << 20

// Optimal tour lengths of symmetric TSPLIB instances with explicit weights.
var optimalSolutions = map[string]float64{
	"gr17":      2085,
	"gr21":      2707,
	"gr24":      1272,
	"fri26":     937,
	"bays29":    2020,
	"dantzig42": 699,
	"swiss42":   1273,
	"gr48":      5046,
	"hk48":      11461,
	"brazil58":  25395,
}

// Instance is a TSPLIB problem given either as coordinates or as an explicit
// weight matrix; exactly one of Points and Matrix is set.
type Instance struct {
	Name         string
	Dimension    int
	Points       []models.Point
	Matrix       [][]float64
	KnownOptimal float64
}

// Distances returns the instance's distance matrix with overrides applied.
func (instance Instance) Distances(overrides map[models.Edge]float64) (*mat.SymDense, error) {
	if instance.Points != nil {
		return distance.Build(instance.Points, overrides)
	}

	distances, err := distance.FromMatrix(instance.Matrix)
	if err != nil {
		return nil, err
	}

	if err := distance.ApplyOverrides(distances, overrides); err != nil {
		return nil, err
	}

	return distances, nil
}

func ParseTSPLIBFile(path string) (Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return Instance{}, err
	}

	defer file.Close()

	return ParseTSPLIB(file)
}

// ParseTSPLIB reads a symmetric TSPLIB problem with EUC_2D coordinates or
// EXPLICIT weights in one of the FULL_MATRIX, UPPER_ROW, LOWER_ROW,
// UPPER_DIAG_ROW or LOWER_DIAG_ROW formats.
func ParseTSPLIB(r io.Reader) (Instance, error) {
	var (
		instance       Instance
		weightType     string
		weightFormat   = "FULL_MATRIX"
		section        string
		valuesInMatrix []float64
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		if key, value, ok := strings.Cut(line, ":"); ok {
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)

			switch key {
			case "NAME":
				instance.Name = value
			case "TYPE":
				if value != "TSP" {
					return Instance{}, fmt.Errorf("%w: unsupported problem type %q", ErrMalformed, value)
				}
			case "DIMENSION":
				dimension, err := strconv.Atoi(value)
				if err != nil || dimension <= 0 {
					return Instance{}, fmt.Errorf("%w: dimension %q", ErrMalformed, value)
				}
				instance.Dimension = dimension
			case "EDGE_WEIGHT_TYPE":
				weightType = value
			case "EDGE_WEIGHT_FORMAT":
				weightFormat = value
			}

			section = ""
			continue
		}

		if strings.HasSuffix(line, "_SECTION") {
			section = line
			continue
		}

		switch section {
		case "NODE_COORD_SECTION":
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return Instance{}, fmt.Errorf("%w: coordinate line %q", ErrMalformed, line)
			}

			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return Instance{}, fmt.Errorf("%w: coordinate line %q", ErrMalformed, line)
			}

			instance.Points = append(instance.Points, models.Point{X: x, Y: y})
		case "EDGE_WEIGHT_SECTION":
			// Add to a continuous list of values
			for _, val := range strings.Fields(line) {
				num, err := strconv.ParseFloat(val, 64)
				if err != nil {
					return Instance{}, fmt.Errorf("%w: weight %q", ErrMalformed, val)
				}

				valuesInMatrix = append(valuesInMatrix, num)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return Instance{}, err
	}

	switch weightType {
	case "EUC_2D":
		if len(instance.Points) != instance.Dimension {
			return Instance{}, fmt.Errorf("%w: %d coordinates for dimension %d", ErrMalformed, len(instance.Points), instance.Dimension)
		}
	case "EXPLICIT":
		matrix, err := fillMatrix(weightFormat, instance.Dimension, valuesInMatrix)
		if err != nil {
			return Instance{}, err
		}
		instance.Matrix = matrix
	default:
		return Instance{}, fmt.Errorf("%w: unsupported edge weight type %q", ErrMalformed, weightType)
	}

	instance.KnownOptimal = optimalSolutions[instance.Name]

	return instance, nil
}

func fillMatrix(format string, dimension int, values []float64) ([][]float64, error) {
	var include func(i, j int) bool
	switch format {
	case "FULL_MATRIX":
		include = func(i, j int) bool { return true }
	case "UPPER_ROW":
		include = func(i, j int) bool { return j > i }
	case "LOWER_ROW":
		include = func(i, j int) bool { return j < i }
	case "UPPER_DIAG_ROW":
		include = func(i, j int) bool { return j >= i }
	case "LOWER_DIAG_ROW":
		include = func(i, j int) bool { return j <= i }
	default:
		return nil, fmt.Errorf("%w: unsupported edge weight format %q", ErrMalformed, format)
	}

	matrix := make([][]float64, dimension)
	for i := range matrix {
		matrix[i] = make([]float64, dimension)
	}

	next := 0
	for i := 0; i < dimension; i++ {
		for j := 0; j < dimension; j++ {
			if !include(i, j) {
				continue
			}

			if next >= len(values) {
				return nil, fmt.Errorf("%w: too few weights for %s of dimension %d", ErrMalformed, format, dimension)
			}

			matrix[i][j] = values[next]
			if format != "FULL_MATRIX" {
				matrix[j][i] = values[next]
			}
			next++
		}
	}

	if next != len(values) {
		return nil, fmt.Errorf("%w: %d weights for %s of dimension %d, expected %d", ErrMalformed, len(values), format, dimension, next)
	}

	return matrix, nil
}
