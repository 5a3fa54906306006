// Package ingest reads the path coordinates and the terrain threshold table from CSV.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/latlong-terrain/internal/models"
)

// Column names of the input files
const (
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
	ColumnTerrain   = "terrain"
	ColumnDistance  = "distance (in km)"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrEmptyValue    = errors.New("empty value")
	ErrNotFinite     = errors.New("not a finite number")
)

// ReadPointsFile reads the ordered path coordinates from a CSV file
func ReadPointsFile(path string) ([]models.RawPoint, error) {
	f, err := openLogged(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPoints(f, path)
}

// ReadPoints reads latitude/longitude rows in order. Any malformed row fails the whole read,
// since a skipped row would shift every later index.
func ReadPoints(r io.Reader, source string) ([]models.RawPoint, error) {
	var points []models.RawPoint
	err := readTable(r, source, []string{ColumnLatitude, ColumnLongitude}, func(line int, fields map[string]string) error {
		lat, err := parseFloat(source, line, ColumnLatitude, fields[ColumnLatitude])
		if err != nil {
			return err
		}
		lon, err := parseFloat(source, line, ColumnLongitude, fields[ColumnLongitude])
		if err != nil {
			return err
		}
		points = append(points, models.RawPoint{Latitude: lat, Longitude: lon})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Read %s points from %s", humanize.Comma(int64(len(points))), source)
	return points, nil
}

// ReadThresholdsFile reads the terrain staircase from a CSV file
func ReadThresholdsFile(path string) ([]models.TerrainThreshold, error) {
	f, err := openLogged(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadThresholds(f, path)
}

// ReadThresholds reads terrain / "distance (in km)" rows
func ReadThresholds(r io.Reader, source string) ([]models.TerrainThreshold, error) {
	var thresholds []models.TerrainThreshold
	err := readTable(r, source, []string{ColumnTerrain, ColumnDistance}, func(line int, fields map[string]string) error {
		label := fields[ColumnTerrain]
		if label == "" {
			return &FormatError{Source: source, Line: line, Column: ColumnTerrain, Err: ErrEmptyValue}
		}
		km, err := parseFloat(source, line, ColumnDistance, fields[ColumnDistance])
		if err != nil {
			return err
		}
		thresholds = append(thresholds, models.TerrainThreshold{Threshold: km, Label: label})
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Read %d terrain thresholds from %s", len(thresholds), source)
	return thresholds, nil
}

// readTable resolves the required columns from the header and hands each row to fn
func readTable(r io.Reader, source string, required []string, fn func(line int, fields map[string]string) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &FormatError{Source: source, Err: errors.New("empty file, header expected")}
	}
	if err != nil {
		return &FormatError{Source: source, Line: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}
	columns := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := index[name]
		if !ok {
			return &FormatError{Source: source, Line: 1, Column: name, Err: ErrMissingColumn}
		}
		columns[name] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return &FormatError{Source: source, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)

		fields := make(map[string]string, len(columns))
		for name, i := range columns {
			fields[name] = strings.TrimSpace(record[i])
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

func parseFloat(source string, line int, column, value string) (float64, error) {
	if value == "" {
		return 0, &FormatError{Source: source, Line: line, Column: column, Err: ErrEmptyValue}
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &FormatError{Source: source, Line: line, Column: column, Err: fmt.Errorf("not a number: %q", value)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Source: source, Line: line, Column: column, Err: fmt.Errorf("%w: %q", ErrNotFinite, value)}
	}
	return v, nil
}

func openLogged(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if fi, err := f.Stat(); err == nil {
		log.Printf("Reading %s (%s)", path, humanize.Bytes(uint64(fi.Size())))
	}
	return f, nil
}
