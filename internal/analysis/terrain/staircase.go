// Package terrain labels stored records by the highest distance milestone they have passed.
package terrain

import (
	"sort"

	"github.com/jengzang/latlong-terrain/internal/models"
)

// Sort returns a copy of thresholds ordered by threshold descending.
// Equal thresholds are ordered by label descending.
func Sort(thresholds []models.TerrainThreshold) []models.TerrainThreshold {
	sorted := make([]models.TerrainThreshold, len(thresholds))
	copy(sorted, thresholds)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Threshold != sorted[j].Threshold {
			return sorted[i].Threshold > sorted[j].Threshold
		}
		return sorted[i].Label > sorted[j].Label
	})
	return sorted
}

// Staircase is a descending list of distance milestones
type Staircase struct {
	steps []models.TerrainThreshold
}

// NewStaircase sorts thresholds into a staircase
func NewStaircase(thresholds []models.TerrainThreshold) *Staircase {
	return &Staircase{steps: Sort(thresholds)}
}

// Steps returns the milestones, highest first
func (s *Staircase) Steps() []models.TerrainThreshold {
	return s.steps
}

// Label returns the label of the first milestone (highest first) that cumulative has reached.
// ok is false when cumulative is below every milestone.
func (s *Staircase) Label(cumulative float64) (label string, ok bool) {
	for _, step := range s.steps {
		if cumulative >= step.Threshold {
			return step.Label, true
		}
	}
	return "", false
}
