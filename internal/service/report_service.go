package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jengzang/latlong-terrain/internal/models"
	"github.com/jengzang/latlong-terrain/internal/repository"
)

// ErrPointNotFound is returned when no record has the requested id
var ErrPointNotFound = errors.New("point not found")

// ReportService runs the road terrain report
type ReportService struct {
	repo    *repository.LatLongRepository
	include string
	exclude string
}

// NewReportService creates a report over terrain labels matching include and not exclude (LIKE patterns)
func NewReportService(repo *repository.LatLongRepository, include, exclude string) *ReportService {
	return &ReportService{
		repo:    repo,
		include: include,
		exclude: exclude,
	}
}

// RoadPoints returns records labelled with a road terrain outside civil stations
func (s *ReportService) RoadPoints(ctx context.Context) ([]models.DistanceRecord, error) {
	points, err := s.repo.ListByTerrainPattern(ctx, s.include, s.exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to query road terrain: %w", err)
	}
	if points == nil {
		points = []models.DistanceRecord{}
	}
	return points, nil
}

// Print writes one line per record
func (s *ReportService) Print(w io.Writer, points []models.DistanceRecord) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "latitude: %v,\t longitude: %v,\t terrain: %s\n", p.Latitude, p.Longitude, p.TerrainLabel()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
