package terrain

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/latlong-terrain/internal/analysis"
	"github.com/jengzang/latlong-terrain/internal/models"
)

const logPrefix = "TerrainClassifier"

// ErrNoThresholds is returned when classification is attempted without a staircase
var ErrNoThresholds = errors.New("no terrain thresholds")

// Store reads stored records and writes terrain labels back
type Store interface {
	ListRecords(ctx context.Context) ([]models.DistanceRecord, error)
	UpdateTerrain(ctx context.Context, id int64, terrain string) error
}

// Summary tallies one classification pass
type Summary struct {
	Records    int `json:"records"`
	Labelled   int `json:"labelled"`
	Unlabelled int `json:"unlabelled"`
	Failed     int `json:"failed"`
}

// Classifier implements the terrain classification pass
type Classifier struct {
	store    Store
	LogEvery int
}

// NewClassifier creates a classifier over store
func NewClassifier(store Store) *Classifier {
	return &Classifier{
		store:    store,
		LogEvery: analysis.DefaultLogEvery,
	}
}

// Run labels every stored record. A missing staircase or a failed full read is fatal;
// a failed update is logged and the pass continues.
func (c *Classifier) Run(ctx context.Context, thresholds []models.TerrainThreshold) (*Summary, error) {
	if len(thresholds) == 0 {
		return nil, ErrNoThresholds
	}
	staircase := NewStaircase(thresholds)

	records, err := c.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	log.Printf("[%s] Classifying %s records against %d thresholds",
		logPrefix, humanize.Comma(int64(len(records))), len(staircase.Steps()))

	summary := &Summary{Records: len(records)}
	progress := analysis.NewProgress(logPrefix, len(records), c.LogEvery)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		label, ok := staircase.Label(rec.CumulativeDistance)
		if !ok {
			summary.Unlabelled++
			progress.Tick(false)
			continue
		}

		if err := c.store.UpdateTerrain(ctx, rec.ID, label); err != nil {
			log.Printf("[%s] Failed to label record %d (cumulative %.6f km) as %q: %v",
				logPrefix, rec.ID, rec.CumulativeDistance, label, err)
			summary.Failed++
			progress.Tick(true)
			continue
		}

		summary.Labelled++
		progress.Tick(false)
	}

	progress.Done()
	log.Printf("[%s] Labelled %d, unlabelled %d, failed %d", logPrefix, summary.Labelled, summary.Unlabelled, summary.Failed)
	return summary, nil
}
