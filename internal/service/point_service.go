package service

import (
	"context"
	"fmt"

	"github.com/jengzang/latlong-terrain/internal/models"
	"github.com/jengzang/latlong-terrain/internal/repository"
)

// PointService handles read access to stored distance records
type PointService struct {
	repo *repository.LatLongRepository
}

// NewPointService creates a new point service
func NewPointService(repo *repository.LatLongRepository) *PointService {
	return &PointService{
		repo: repo,
	}
}

// ListPoints retrieves every stored record in insertion order
func (s *PointService) ListPoints(ctx context.Context) ([]models.DistanceRecord, error) {
	points, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}
	if points == nil {
		points = []models.DistanceRecord{}
	}
	return points, nil
}

// GetPointByID retrieves a single record by pk_id
func (s *PointService) GetPointByID(ctx context.Context, id int64) (*models.DistanceRecord, error) {
	point, err := s.repo.GetRecordByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	if point == nil {
		return nil, ErrPointNotFound
	}
	return point, nil
}

// Summary returns table totals
func (s *PointService) Summary(ctx context.Context) (*models.PointSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize points: %w", err)
	}
	return summary, nil
}
