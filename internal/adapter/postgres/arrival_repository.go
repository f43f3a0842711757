package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
)

// ArrivalRepository appends and reads arrival history rows.
// It implements analyzer.ArrivalStore.
type ArrivalRepository struct {
	db *sqlx.DB
}

// NewArrivalRepository wraps a database handle.
func NewArrivalRepository(db *sqlx.DB) *ArrivalRepository {
	return &ArrivalRepository{db: db}
}

// AppendArrival inserts one history row. Rows are never updated or deleted.
func (r *ArrivalRepository) AppendArrival(ctx context.Context, rec domain.ArrivalRecord) error {
	const q = `INSERT INTO arrival_records (location, recorded_at, days_to_arrival, excerpt)
		VALUES (:location, :recorded_at, :days_to_arrival, :excerpt)`
	if _, err := r.db.NamedExecContext(ctx, q, rec); err != nil {
		return fmt.Errorf("insert arrival record: %w", err)
	}
	return nil
}

// RecentArrivals returns up to limit rows for a location, newest first.
func (r *ArrivalRepository) RecentArrivals(ctx context.Context, location string, limit int) ([]domain.ArrivalRecord, error) {
	const q = `SELECT location, recorded_at, days_to_arrival, excerpt
		FROM arrival_records
		WHERE location = $1
		ORDER BY recorded_at DESC
		LIMIT $2`
	var recs []domain.ArrivalRecord
	if err := r.db.SelectContext(ctx, &recs, q, location, limit); err != nil {
		return nil, fmt.Errorf("select arrival records: %w", err)
	}
	return recs, nil
}
