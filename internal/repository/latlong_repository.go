package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jengzang/latlong-terrain/internal/models"
)

const selectColumns = `SELECT pk_id, latitude, longitude, distance, cumulative_distance, terrain FROM lat_long`

// LatLongRepository handles database operations for the lat_long table
type LatLongRepository struct {
	db *sql.DB
}

// NewLatLongRepository creates a new lat_long repository
func NewLatLongRepository(db *sql.DB) *LatLongRepository {
	return &LatLongRepository{db: db}
}

// InsertRecord stores a distance record and returns its pk_id
func (r *LatLongRepository) InsertRecord(ctx context.Context, rec *models.DistanceRecord) (int64, error) {
	query := `INSERT INTO lat_long (latitude, longitude, distance, cumulative_distance)
		VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, rec.Latitude, rec.Longitude, rec.Distance, rec.CumulativeDistance)
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert", Err: fmt.Errorf("failed to read pk_id: %w", err)}
	}
	return id, nil
}

// UpdateTerrain sets the terrain label of one record
func (r *LatLongRepository) UpdateTerrain(ctx context.Context, id int64, terrain string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE lat_long SET terrain = ? WHERE pk_id = ?`, terrain, id)
	if err != nil {
		return &StorageError{Op: "update_terrain", ID: id, Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "update_terrain", ID: id, Err: err}
	}
	if n == 0 {
		return &StorageError{Op: "update_terrain", ID: id, Err: sql.ErrNoRows}
	}
	return nil
}

// ListRecords reads the whole table in pk_id order
func (r *LatLongRepository) ListRecords(ctx context.Context) ([]models.DistanceRecord, error) {
	return r.query(ctx, "list", selectColumns+` ORDER BY pk_id`)
}

// GetRecordByID retrieves a single record by pk_id; nil when absent
func (r *LatLongRepository) GetRecordByID(ctx context.Context, id int64) (*models.DistanceRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE pk_id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get", ID: id, Err: err}
	}
	return rec, nil
}

// ListByTerrainPattern returns records whose terrain matches include and does not match exclude
// (SQL LIKE patterns). An empty exclude disables the exclusion.
func (r *LatLongRepository) ListByTerrainPattern(ctx context.Context, include, exclude string) ([]models.DistanceRecord, error) {
	if exclude == "" {
		return r.query(ctx, "list_terrain", selectColumns+` WHERE terrain LIKE ? ORDER BY pk_id`, include)
	}
	return r.query(ctx, "list_terrain",
		selectColumns+` WHERE terrain LIKE ? AND terrain NOT LIKE ? ORDER BY pk_id`, include, exclude)
}

// Summary returns record counts and the final cumulative distance
func (r *LatLongRepository) Summary(ctx context.Context) (*models.PointSummary, error) {
	query := `SELECT COUNT(*), COUNT(terrain), COALESCE(MAX(cumulative_distance), 0) FROM lat_long`

	var s models.PointSummary
	if err := r.db.QueryRowContext(ctx, query).Scan(&s.Records, &s.Labelled, &s.TotalDistance); err != nil {
		return nil, &StorageError{Op: "summary", Err: err}
	}
	return &s, nil
}

func (r *LatLongRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]models.DistanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	var records []models.DistanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &StorageError{Op: op, Err: fmt.Errorf("failed to scan record: %w", err)}
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*models.DistanceRecord, error) {
	var rec models.DistanceRecord
	var distance, cumulative sql.NullFloat64
	var terrain sql.NullString

	if err := s.Scan(&rec.ID, &rec.Latitude, &rec.Longitude, &distance, &cumulative, &terrain); err != nil {
		return nil, err
	}

	if distance.Valid {
		rec.Distance = distance.Float64
	}
	if cumulative.Valid {
		rec.CumulativeDistance = cumulative.Float64
	}
	if terrain.Valid {
		label := terrain.String
		rec.Terrain = &label
	}
	return &rec, nil
}
