// Package plot renders the raw input path as GeoJSON for inspection in any map viewer.
package plot

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/latlong-terrain/internal/models"
)

// FeatureCollection builds one Point feature per input (with its index) and,
// for two or more points, a LineString of the whole path
func FeatureCollection(points []models.RawPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	path := make(orb.LineString, 0, len(points))
	for i, p := range points {
		pt := orb.Point{p.Longitude, p.Latitude}
		path = append(path, pt)

		f := geojson.NewFeature(pt)
		f.Properties["index"] = i
		fc.Append(f)
	}

	if len(path) > 1 {
		f := geojson.NewFeature(path)
		f.Properties["name"] = "path"
		f.Properties["points"] = len(path)
		fc.Append(f)
	}

	return fc
}

// WriteGeoJSON writes the points as a GeoJSON FeatureCollection
func WriteGeoJSON(w io.Writer, points []models.RawPoint) (int, error) {
	data, err := FeatureCollection(points).MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("failed to encode geojson: %w", err)
	}
	return w.Write(data)
}

// WriteGeoJSONFile writes the points to path, creating parent directories
func WriteGeoJSONFile(path string, points []models.RawPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer f.Close()

	n, err := WriteGeoJSON(f, points)
	if err != nil {
		return err
	}

	log.Printf("Plotted %d points to %s (%s)", len(points), path, humanize.Bytes(uint64(n)))
	return nil
}
