// Package correction walks an ordered path, replaces jumps that exceed a
// self-calibrating baseline with a point on the same bearing at the baseline
// distance, and persists one distance record per input point.
package correction

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/latlong-terrain/internal/analysis"
	"github.com/jengzang/latlong-terrain/internal/geodesic"
	"github.com/jengzang/latlong-terrain/internal/models"
	"github.com/jengzang/latlong-terrain/internal/stats"
)

const logPrefix = "PathCorrector"

// WarmupIndex is the last 0-based index whose threshold is its own measured distance
const WarmupIndex = 2

// Sink persists emitted records and returns the assigned identity
type Sink interface {
	InsertRecord(ctx context.Context, rec *models.DistanceRecord) (int64, error)
}

// Step is the outcome of one point of the walk
type Step struct {
	Index     int
	Input     models.RawPoint
	Record    models.DistanceRecord // emitted record; ID is set when persisted
	Measured  float64               // km from the previous emitted point, 6 decimals
	Threshold float64               // km baseline in force for this step
	Corrected bool
	Persisted bool
	Err       error // geodesic or storage error that degraded this step
}

// Summary tallies one run
type Summary struct {
	Points           int           `json:"points"`
	Corrected        int           `json:"corrected"`
	GeodesicFailures int           `json:"geodesicFailures"`
	StorageFailures  int           `json:"storageFailures"`
	TotalDistance    float64       `json:"totalDistanceKm"`
	StepDistances    stats.Summary `json:"stepDistances"`
}

// Result holds every step of a run, in input order, and its summary
type Result struct {
	Steps   []Step
	Summary Summary
}

// Threshold returns the baseline distance for the step at index.
// Indices 0..2 use the measured distance itself; later steps use the running
// total divided by (index - 1), with cumulative taken before this step is added.
func Threshold(index int, measured, cumulative float64) float64 {
	if index <= WarmupIndex {
		return measured
	}
	return cumulative / float64(index-1)
}

// RoundKm converts meters to kilometers rounded to 6 decimal places
func RoundKm(meters float64) float64 {
	return math.Round(meters/1000*1e6) / 1e6
}

// baseline is the fold accumulator of one run
type baseline struct {
	previous   models.RawPoint
	cumulative float64
}

// Corrector implements the path correction pass
type Corrector struct {
	provider geodesic.Provider
	sink     Sink
	LogEvery int
}

// NewCorrector creates a corrector writing to sink
func NewCorrector(provider geodesic.Provider, sink Sink) *Corrector {
	return &Corrector{
		provider: provider,
		sink:     sink,
		LogEvery: analysis.DefaultLogEvery,
	}
}

// Correct returns the point thresholdKm away from origin along azimuth
func (c *Corrector) Correct(origin models.RawPoint, azimuth, thresholdKm float64) (models.RawPoint, error) {
	return c.provider.Direct(origin.Latitude, origin.Longitude, azimuth, thresholdKm*1000)
}

// Run walks points once in order, persisting one record per point.
// Per-point geodesic and storage failures are logged and degrade that step only;
// the returned error is non-nil only when ctx is cancelled.
func (c *Corrector) Run(ctx context.Context, points []models.RawPoint) (*Result, error) {
	result := &Result{Steps: make([]Step, 0, len(points))}
	if len(points) == 0 {
		log.Printf("[%s] No points to process", logPrefix)
		return result, nil
	}

	log.Printf("[%s] Processing %s points", logPrefix, humanize.Comma(int64(len(points))))

	state := baseline{previous: points[0]}
	progress := analysis.NewProgress(logPrefix, len(points), c.LogEvery)
	emitted := make([]float64, 0, len(points))

	for i, p := range points {
		if err := ctx.Err(); err != nil {
			result.Summary = c.summarize(result.Steps, emitted)
			return result, err
		}

		step := c.step(i, p, &state)

		rec := step.Record
		id, err := c.sink.InsertRecord(ctx, &rec)
		if err != nil {
			log.Printf("[%s] Failed to store point %d (%f, %f): %v", logPrefix, i, rec.Latitude, rec.Longitude, err)
			if step.Err == nil {
				step.Err = err
			}
		} else {
			step.Record.ID = id
			step.Persisted = true
		}

		emitted = append(emitted, step.Record.Distance)
		result.Steps = append(result.Steps, step)
		progress.Tick(step.Err != nil)
	}

	progress.Done()
	result.Summary = c.summarize(result.Steps, emitted)

	log.Printf("[%s] Corrected %d of %s points, total %.6f km (mean step %.6f km, p95 %.6f km)",
		logPrefix, result.Summary.Corrected, humanize.Comma(int64(result.Summary.Points)),
		result.Summary.TotalDistance, result.Summary.StepDistances.Mean, result.Summary.StepDistances.P95)
	return result, nil
}

// step measures p against the previous emitted point and advances the baseline
func (c *Corrector) step(i int, p models.RawPoint, state *baseline) Step {
	step := Step{Index: i, Input: p}
	prev := state.previous

	inv, err := c.provider.Inverse(prev.Latitude, prev.Longitude, p.Latitude, p.Longitude)
	if err != nil {
		// Unmeasurable: keep the raw point with zero distance and do not let it become the origin
		log.Printf("[%s] Point %d (%f, %f) unmeasurable, stored uncorrected: %v", logPrefix, i, p.Latitude, p.Longitude, err)
		step.Err = err
		step.Record = models.DistanceRecord{
			Latitude:           p.Latitude,
			Longitude:          p.Longitude,
			CumulativeDistance: state.cumulative,
		}
		return step
	}

	measured := RoundKm(inv.DistanceMeters)
	threshold := Threshold(i, measured, state.cumulative)
	step.Measured = measured
	step.Threshold = threshold

	point, distance := p, measured
	if measured > threshold {
		corrected, err := c.Correct(prev, inv.InitialAzimuth, threshold)
		if err != nil {
			log.Printf("[%s] Point %d (%f, %f) correction failed, keeping original (%.6f km > %.6f km): %v",
				logPrefix, i, p.Latitude, p.Longitude, measured, threshold, err)
			step.Err = err
		} else {
			point, distance = corrected, threshold
			step.Corrected = true
		}
	}

	state.cumulative += distance
	state.previous = point

	step.Record = models.DistanceRecord{
		Latitude:           point.Latitude,
		Longitude:          point.Longitude,
		Distance:           distance,
		CumulativeDistance: state.cumulative,
	}
	return step
}

func (c *Corrector) summarize(steps []Step, emitted []float64) Summary {
	s := Summary{Points: len(steps), StepDistances: stats.Describe(emitted)}
	for _, step := range steps {
		if step.Corrected {
			s.Corrected++
		}
		if step.Err == nil {
			continue
		}
		var geoErr *geodesic.Error
		if errors.As(step.Err, &geoErr) {
			s.GeodesicFailures++
		}
		if !step.Persisted {
			s.StorageFailures++
		}
	}
	if len(steps) > 0 {
		s.TotalDistance = steps[len(steps)-1].Record.CumulativeDistance
	}
	return s
}
