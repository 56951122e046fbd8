package parsing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"aco_tsp/modules/models"
)

// ReadPointsCsv reads "x,y" rows. A first row that doesn't parse as numbers
// is treated as a header.
func ReadPointsCsv(r io.Reader) ([]models.Point, error) {
	rows, err := readRows(r, 2)
	if err != nil {
		return nil, err
	}

	points := make([]models.Point, len(rows))
	for i, row := range rows {
		points[i] = models.Point{X: row[0], Y: row[1]}
	}

	return points, nil
}

// ReadOverridesCsv reads "i,j,weight" rows into per-pair overrides.
func ReadOverridesCsv(r io.Reader) (map[models.Edge]float64, error) {
	rows, err := readRows(r, 3)
	if err != nil {
		return nil, err
	}

	overrides := make(map[models.Edge]float64, len(rows))
	for _, row := range rows {
		i, j := int(row[0]), int(row[1])
		if float64(i) != row[0] || float64(j) != row[1] {
			return nil, fmt.Errorf("%w: indices %v,%v are not integers", ErrMalformed, row[0], row[1])
		}

		overrides[models.Edge{From: i, To: j}] = row[2]
	}

	return overrides, nil
}

func ReadPointsCsvFile(path string) ([]models.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPointsCsv(file)
}

func ReadOverridesCsvFile(path string) (map[models.Edge]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadOverridesCsv(file)
}

// readRows parses every record as numbers. Only a first row with no numeric
// field at all counts as a header; any other unparsable field is an error.
func readRows(r io.Reader, columns int) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	data := make([][]float64, 0, len(records))
	for i, record := range records {
		row, parsed, err := parseRow(record)

		if i == 0 && parsed == 0 {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, i+1, err)
		}

		data = append(data, row)
	}

	return data, nil
}

// parseRow returns the parsed fields, how many of them parsed, and the first
// parse error.
func parseRow(record []string) ([]float64, int, error) {
	row := make([]float64, len(record))
	parsed := 0

	var firstErr error
	for j, value := range record {
		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		row[j] = number
		parsed++
	}

	return row, parsed, firstErr
}
