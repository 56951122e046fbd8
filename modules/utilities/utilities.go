package utilities

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"runtime/pprof"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var numberPattern = regexp.MustCompile(`\d+`)

// FastPow avoids math.Pow for exponents in [0, 5] that are multiples of 0.25,
// which covers the usual alpha/beta settings.
func FastPow(base, exp float64) float64 {
	if exp < 0 || exp > 5 || base < 0 {
		return math.Pow(base, exp)
	}

	whole := math.Floor(exp)

	var result float64
	switch exp - whole {
	case 0:
		result = 1
	case 0.25:
		result = math.Sqrt(math.Sqrt(base))
	case 0.5:
		result = math.Sqrt(base)
	case 0.75:
		root := math.Sqrt(base)
		result = root * math.Sqrt(root)
	default:
		return math.Pow(base, exp)
	}

	for i := 0; i < int(whole); i++ {
		result *= base
	}

	return result
}

func ExtractNumber(input string) (int, error) {
	match := numberPattern.FindString(input)

	if match == "" {
		return 0, fmt.Errorf("no number found in %q", input)
	}

	return strconv.Atoi(match)
}

func FilterStrings(strings []string, condition func(string) bool) []string {
	result := []string{}

	for _, str := range strings {
		if condition(str) {
			result = append(result, str)
		}
	}

	return result
}

func GenerateRange(start, end, step float64) []float64 {
	if step <= 0 {
		return []float64{start}
	}

	var rangeSlice []float64

	// Half a step of slack so accumulated drift doesn't drop the end value.
	for i := start; i <= end+step/2; i += step {
		rangeSlice = append(rangeSlice, i)
	}

	return rangeSlice
}

// TourLength sums the weights of consecutive pairs of a closed tour.
func TourLength(tour []int, distances mat.Symmetric) float64 {
	sum := 0.0

	for i := 0; i < len(tour)-1; i++ {
		start, end := tour[i], tour[i+1]
		sum += distances.At(start, end)
	}

	return sum
}

// StartProfiling writes a CPU profile to path until the returned stop func is called.
func StartProfiling(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
