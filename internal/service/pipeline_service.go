package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/latlong-terrain/internal/analysis/correction"
	"github.com/jengzang/latlong-terrain/internal/analysis/terrain"
	"github.com/jengzang/latlong-terrain/internal/config"
	"github.com/jengzang/latlong-terrain/internal/database"
	"github.com/jengzang/latlong-terrain/internal/geodesic"
	"github.com/jengzang/latlong-terrain/internal/ingest"
	"github.com/jengzang/latlong-terrain/internal/plot"
	"github.com/jengzang/latlong-terrain/internal/repository"
)

// RunSummary reports one full pipeline run
type RunSummary struct {
	Points         int                `json:"points"`
	Correction     correction.Summary `json:"correction"`
	Classification terrain.Summary    `json:"classification"`
	RoadPoints     int                `json:"roadPoints"`
	Elapsed        time.Duration      `json:"elapsed"`
}

// PipelineService runs read → plot → reset → correct → classify → report
type PipelineService struct {
	db       *sql.DB
	cfg      *config.Config
	provider geodesic.Provider
	out      io.Writer
}

// NewPipelineService creates a pipeline over an open database; the report is written to out
func NewPipelineService(db *sql.DB, cfg *config.Config, provider geodesic.Provider, out io.Writer) *PipelineService {
	return &PipelineService{
		db:       db,
		cfg:      cfg,
		provider: provider,
		out:      out,
	}
}

// Run executes one full run. Input, reset, full-read, threshold and report failures are fatal;
// per-point failures are logged by the components and the run continues.
func (s *PipelineService) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	log.Printf("[Pipeline] Starting run: points=%s terrain=%s db=%s", s.cfg.PointsCSV, s.cfg.TerrainCSV, s.cfg.DBPath)

	points, err := ingest.ReadPointsFile(s.cfg.PointsCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}

	if s.cfg.PlotPath != "" {
		if err := plot.WriteGeoJSONFile(s.cfg.PlotPath, points); err != nil {
			log.Printf("[Pipeline] Plot skipped: %v", err)
		}
	}

	if err := database.ResetSchema(ctx, s.db); err != nil {
		return nil, fmt.Errorf("failed to reset storage: %w", err)
	}

	repo := repository.NewLatLongRepository(s.db)

	corrected, err := correction.NewCorrector(s.provider, repo).Run(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("coordinate correction aborted: %w", err)
	}

	thresholds, err := ingest.ReadThresholdsFile(s.cfg.TerrainCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to read terrain thresholds: %w", err)
	}

	classified, err := terrain.NewClassifier(repo).Run(ctx, thresholds)
	if err != nil {
		return nil, fmt.Errorf("terrain classification failed: %w", err)
	}

	report := NewReportService(repo, s.cfg.ReportInclude, s.cfg.ReportExclude)
	roads, err := report.RoadPoints(ctx)
	if err != nil {
		return nil, err
	}
	if err := report.Print(s.out, roads); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		Points:         len(points),
		Correction:     corrected.Summary,
		Classification: *classified,
		RoadPoints:     len(roads),
		Elapsed:        time.Since(start),
	}

	log.Printf("[Pipeline] Done: %s points, %d corrected, %d labelled, %d road points in %v",
		humanize.Comma(int64(summary.Points)), summary.Correction.Corrected,
		summary.Classification.Labelled, summary.RoadPoints, summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}
