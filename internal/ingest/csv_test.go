package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPoints(t *testing.T) {
	input := "id,Longitude , latitude\n" +
		"1,0.0,0.0\n" +
		"2, 0.001 ,0\n" +
		"3,0.005,-0.25\n"

	points, err := ReadPoints(strings.NewReader(input), "points.csv")
	if err != nil {
		t.Fatalf("ReadPoints failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[1].Longitude != 0.001 || points[1].Latitude != 0 {
		t.Errorf("unexpected point 1: %+v", points[1])
	}
	if points[2].Latitude != -0.25 {
		t.Errorf("unexpected point 2: %+v", points[2])
	}
}

func TestReadPointsHeaderOnly(t *testing.T) {
	points, err := ReadPoints(strings.NewReader("latitude,longitude\n"), "points.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %d", len(points))
	}
}

func TestReadPointsErrors(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		line   int
		column string
	}{
		{"empty", "", 0, ""},
		{"missing column", "latitude,lon\n1,2\n", 1, ColumnLongitude},
		{"not a number", "latitude,longitude\n1,2\n3,abc\n", 3, ColumnLongitude},
		{"empty value", "latitude,longitude\n,2\n", 2, ColumnLatitude},
		{"wrong arity", "latitude,longitude\n1,2,3\n", 2, ""},
		{"nan latitude", "latitude,longitude\n1,2\nNaN,2\n", 3, ColumnLatitude},
		{"infinite longitude", "latitude,longitude\n1,+Inf\n", 2, ColumnLongitude},
		{"negative infinity", "latitude,longitude\n1,2\n3,4\n-inf,4\n", 4, ColumnLatitude},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadPoints(strings.NewReader(c.input), "points.csv")
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if formatErr.Line != c.line || formatErr.Column != c.column {
				t.Errorf("expected line %d column %q, got %+v", c.line, c.column, formatErr)
			}
			if formatErr.Source != "points.csv" {
				t.Errorf("expected source in error, got %q", formatErr.Source)
			}
		})
	}
}

func TestReadThresholds(t *testing.T) {
	input := "terrain,distance (in km)\n" +
		"road,100\n" +
		"start,0\n" +
		"\"boundary wall, road\",12.5\n"

	thresholds, err := ReadThresholds(strings.NewReader(input), "terrain.csv")
	if err != nil {
		t.Fatalf("ReadThresholds failed: %v", err)
	}
	if len(thresholds) != 3 {
		t.Fatalf("expected 3 thresholds, got %d", len(thresholds))
	}
	if thresholds[2].Label != "boundary wall, road" || thresholds[2].Threshold != 12.5 {
		t.Errorf("unexpected threshold: %+v", thresholds[2])
	}
}

func TestReadThresholdsErrors(t *testing.T) {
	_, err := ReadThresholds(strings.NewReader("terrain,distance\nroad,1\n"), "terrain.csv")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected missing column, got %v", err)
	}

	_, err = ReadThresholds(strings.NewReader("terrain,distance (in km)\n,1\n"), "terrain.csv")
	if !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected empty label error, got %v", err)
	}

	for _, value := range []string{"NaN", "Inf", "-Inf", "nan"} {
		input := "terrain,distance (in km)\nstart,0\nbad," + value + "\nroad,100\nmidfield,10\n"
		_, err := ReadThresholds(strings.NewReader(input), "terrain.csv")
		var formatErr *FormatError
		if !errors.As(err, &formatErr) || !errors.Is(err, ErrNotFinite) {
			t.Fatalf("%s: expected non-finite FormatError, got %v", value, err)
		}
		if formatErr.Line != 3 || formatErr.Column != ColumnDistance {
			t.Errorf("%s: expected line 3 column %q, got %+v", value, ColumnDistance, formatErr)
		}
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	if err := os.WriteFile(path, []byte("latitude,longitude\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	points, err := ReadPointsFile(path)
	if err != nil || len(points) != 1 {
		t.Fatalf("ReadPointsFile: %v, %v", points, err)
	}

	if _, err := ReadThresholdsFile(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
