package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite cache schema.
func InitSchema(db *sql.DB) error {
	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        route_key TEXT PRIMARY KEY,
        payload TEXT NOT NULL
    );
	`

	return runSchema(db, []string{
		createGeocodeCacheQuery,
		createRouteCacheQuery,
	})
}

// Initialize the Postgres cache schema. Route payloads use JSONB so the
// cache stays queryable from psql when debugging.
func InitPostgresSchema(db *sql.DB) error {
	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        route_key TEXT PRIMARY KEY,
        payload JSONB NOT NULL
    );
	`

	return runSchema(db, []string{
		createGeocodeCacheQuery,
		createRouteCacheQuery,
	})
}

func runSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
