// Package postgres persists arrival history and subscriber records.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// RunMigrations creates the tables this service needs if they do not exist.
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS arrival_records (
			id BIGSERIAL PRIMARY KEY,
			location TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			days_to_arrival INTEGER,
			excerpt TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS arrival_records_location_idx
			ON arrival_records (location, recorded_at DESC)`,
		`CREATE TABLE IF NOT EXISTS subscribers (
			contact TEXT PRIMARY KEY,
			location TEXT NOT NULL,
			contact_type TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
