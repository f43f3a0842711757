package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
	"github.com/hurricanecontrol/bulletin-notifier/internal/registry"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// SubscriberRepository stores subscriber records keyed by contact.
// It implements registry.SubscriberStore.
type SubscriberRepository struct {
	db *sqlx.DB
}

// NewSubscriberRepository wraps a database handle.
func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// GetSubscriber looks a subscriber up by contact. An unknown contact returns
// registry.ErrContactNotFound.
func (r *SubscriberRepository) GetSubscriber(ctx context.Context, contact string) (domain.Subscriber, error) {
	const q = `SELECT contact, location, contact_type, created_at
		FROM subscribers WHERE contact = $1`
	var sub domain.Subscriber
	if err := r.db.GetContext(ctx, &sub, q, contact); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subscriber{}, registry.ErrContactNotFound
		}
		return domain.Subscriber{}, fmt.Errorf("select subscriber: %w", err)
	}
	return sub, nil
}

// CreateSubscriber inserts a new record. A contact already present returns
// registry.ErrDuplicateContact.
func (r *SubscriberRepository) CreateSubscriber(ctx context.Context, sub domain.Subscriber) error {
	const q = `INSERT INTO subscribers (contact, location, contact_type, created_at)
		VALUES (:contact, :location, :contact_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, q, sub); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return registry.ErrDuplicateContact
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// DeleteSubscriber removes a record. Deleting an absent contact is not an
// error.
func (r *SubscriberRepository) DeleteSubscriber(ctx context.Context, contact string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE contact = $1`, contact); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}
