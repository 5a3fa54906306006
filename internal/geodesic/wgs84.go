package geodesic

import (
	"math"

	"github.com/tidwall/geodesic"

	"github.com/jengzang/latlong-terrain/internal/models"
	"github.com/jengzang/latlong-terrain/internal/spatial"
)

// WGS84 solves geodesics on the WGS84 ellipsoid (Karney's algorithms)
type WGS84 struct {
	ellipsoid *geodesic.Ellipsoid
}

// NewWGS84 creates a WGS84 geodesic provider
func NewWGS84() *WGS84 {
	return &WGS84{ellipsoid: geodesic.WGS84}
}

// Inverse returns the distance in meters and the initial azimuth from point 1 to point 2
func (g *WGS84) Inverse(lat1, lon1, lat2, lon2 float64) (Inverse, error) {
	args := [4]float64{lat1, lon1, lat2, lon2}
	if !spatial.ValidLatLng(lat1, lon1) || !spatial.ValidLatLng(lat2, lon2) {
		return Inverse{}, &Error{Op: "inverse", Args: args, Reason: "coordinate out of range"}
	}

	var s12, azi1, azi2 float64
	g.ellipsoid.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, &azi2)
	if !finite(s12) || !finite(azi1) {
		return Inverse{}, &Error{Op: "inverse", Args: args, Reason: "no convergence"}
	}

	return Inverse{DistanceMeters: s12, InitialAzimuth: azi1}, nil
}

// Direct returns the point reached by travelling distanceMeters from point 1 along azimuth
func (g *WGS84) Direct(lat1, lon1, azimuth, distanceMeters float64) (models.RawPoint, error) {
	args := [4]float64{lat1, lon1, azimuth, distanceMeters}
	if !spatial.ValidLatLng(lat1, lon1) {
		return models.RawPoint{}, &Error{Op: "direct", Args: args, Reason: "coordinate out of range"}
	}
	if !finite(azimuth) || !finite(distanceMeters) {
		return models.RawPoint{}, &Error{Op: "direct", Args: args, Reason: "non-finite azimuth or distance"}
	}

	var lat2, lon2, azi2 float64
	g.ellipsoid.Direct(lat1, lon1, azimuth, distanceMeters, &lat2, &lon2, &azi2)
	if !finite(lat2) || !finite(lon2) {
		return models.RawPoint{}, &Error{Op: "direct", Args: args, Reason: "no convergence"}
	}

	return models.RawPoint{Latitude: lat2, Longitude: lon2}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
