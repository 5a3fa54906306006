// Package geodesic solves the inverse and direct geodesic problems on the WGS84 ellipsoid.
package geodesic

import (
	"fmt"

	"github.com/jengzang/latlong-terrain/internal/models"
)

// Inverse is the solution of the inverse problem between two points
type Inverse struct {
	DistanceMeters float64
	InitialAzimuth float64 // degrees clockwise from north at the first point
}

// Provider exposes the two geodesic primitives the path corrector needs
type Provider interface {
	Inverse(lat1, lon1, lat2, lon2 float64) (Inverse, error)
	Direct(lat1, lon1, azimuth, distanceMeters float64) (models.RawPoint, error)
}

// Error reports invalid input to, or a non-finite result from, a geodesic computation
type Error struct {
	Op     string // "inverse" or "direct"
	Args   [4]float64
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("geodesic %s(%g, %g, %g, %g): %s", e.Op, e.Args[0], e.Args[1], e.Args[2], e.Args[3], e.Reason)
}
