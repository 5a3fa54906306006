package models

// TerrainThreshold is one step of the terrain staircase: records whose cumulative
// distance reaches Threshold (km) are labelled with Label, unless a higher step also qualifies
type TerrainThreshold struct {
	Threshold float64 `json:"threshold"`
	Label     string  `json:"label"`
}
