package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// TableLatLong is the table holding corrected points and their terrain labels
const TableLatLong = "lat_long"

// TerrainMaxLength mirrors the varchar(50) terrain column
const TerrainMaxLength = 50

// Statement is one named DDL step of the schema reset
type Statement struct {
	Name string
	SQL  string
}

// LatLongSchema drops and recreates lat_long. Every run starts from an empty table.
var LatLongSchema = []Statement{
	{
		Name: "drop_lat_long",
		SQL:  `DROP TABLE IF EXISTS lat_long`,
	},
	{
		Name: "create_lat_long",
		SQL: `
		CREATE TABLE IF NOT EXISTS lat_long (
			pk_id INTEGER PRIMARY KEY AUTOINCREMENT,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			distance REAL,
			cumulative_distance REAL,
			terrain VARCHAR(50) CHECK (terrain IS NULL OR length(terrain) <= 50)
		)
	`,
	},
}

// ResetSchema drops and recreates the lat_long table in a single transaction.
// It is idempotent and meant to be called once at the start of a run.
func ResetSchema(ctx context.Context, db *sql.DB) error {
	return ApplyStatements(ctx, db, LatLongSchema)
}

// ApplyStatements executes the statements in order inside one transaction
func ApplyStatements(ctx context.Context, db *sql.DB, statements []Statement) error {
	err := Transaction(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt.SQL); err != nil {
				return fmt.Errorf("failed to execute %s: %w", stmt.Name, err)
			}
			log.Printf("Applied schema step: %s", stmt.Name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Schema reset: %s", TableLatLong)
	return nil
}

// TableExists reports whether the named table is present
func TableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return count > 0, nil
}
