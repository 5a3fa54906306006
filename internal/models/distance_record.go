package models

// RawPoint is one input coordinate; its position in the input sequence is its only identity
type RawPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceRecord represents a row of the lat_long table
type DistanceRecord struct {
	ID                 int64   `json:"id" db:"pk_id"`
	Latitude           float64 `json:"latitude" db:"latitude"`
	Longitude          float64 `json:"longitude" db:"longitude"`
	Distance           float64 `json:"distance" db:"distance"`                      // km from the previous record
	CumulativeDistance float64 `json:"cumulativeDistance" db:"cumulative_distance"` // km running total

	// Terrain is nil until the classification pass assigns a label
	Terrain *string `json:"terrain,omitempty" db:"terrain"`
}

// Point returns the record's coordinates
func (r DistanceRecord) Point() RawPoint {
	return RawPoint{Latitude: r.Latitude, Longitude: r.Longitude}
}

// TerrainLabel returns the assigned label, or "" when unset
func (r DistanceRecord) TerrainLabel() string {
	if r.Terrain == nil {
		return ""
	}
	return *r.Terrain
}

// PointSummary aggregates the stored table for reporting
type PointSummary struct {
	Records       int64   `json:"records"`
	Labelled      int64   `json:"labelled"`
	TotalDistance float64 `json:"totalDistanceKm"`
}
