// Package postgres implements the event and booking repositories on PostgreSQL.
// Record ids are ObjectId hex strings so both stores accept the same references.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventbooking/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id          CHAR(24) PRIMARY KEY,
		title       TEXT NOT NULL,
		slug        TEXT NOT NULL,
		description TEXT NOT NULL,
		overview    TEXT NOT NULL,
		image       TEXT NOT NULL,
		venue       TEXT NOT NULL,
		location    TEXT NOT NULL,
		date        TEXT NOT NULL,
		time        TEXT NOT NULL,
		mode        TEXT NOT NULL DEFAULT '',
		audience    TEXT NOT NULL DEFAULT '',
		organizer   TEXT NOT NULL DEFAULT '',
		agenda      TEXT[] NOT NULL,
		tags        TEXT[] NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		CONSTRAINT events_slug_key UNIQUE (slug)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         CHAR(24) PRIMARY KEY,
		event_id   CHAR(24) NOT NULL,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT bookings_event_id_email_key UNIQUE (event_id, email)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_event_id_idx ON bookings (event_id)`,
}

// EnsureSchema creates the tables and unique constraints if they are missing.
// bookings.event_id carries no foreign key; the event is checked when a
// booking is written.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// mapWriteError converts a unique_violation into a UniqueConstraintError.
func mapWriteError(table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &domain.UniqueConstraintError{Collection: table, Index: pqErr.Constraint, Err: err}
	}
	return err
}
