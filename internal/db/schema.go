package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements run in order by Migrate. Uniqueness of emails, skill
// and role names, and (volunteer_id, event_id) pairs is enforced here, at
// the database, not in application code: the application-level checks exist
// only to produce friendlier error messages. Deleting an event cascades to
// its signups and skill requirements.
var schema = []string{
	`CREATE SCHEMA IF NOT EXISTS communityconnect`,

	`CREATE TABLE IF NOT EXISTS volunteers (
		id                TEXT PRIMARY KEY,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		email             TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		phone             TEXT,
		address           TEXT,
		date_of_birth     DATE,
		availability      BOOLEAN NOT NULL DEFAULT TRUE,
		emergency_contact TEXT,
		photo_ref         TEXT,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS organisations (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		email          TEXT NOT NULL UNIQUE,
		password_hash  TEXT NOT NULL,
		contact_person TEXT,
		phone          TEXT,
		address        TEXT,
		website        TEXT,
		description    TEXT,
		logo_ref       TEXT,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS events (
		id              TEXT PRIMARY KEY,
		organisation_id TEXT NOT NULL REFERENCES organisations (id),
		name            TEXT NOT NULL,
		description     TEXT,
		date            DATE NOT NULL,
		start_time      TEXT,
		end_time        TEXT,
		location        TEXT,
		status          TEXT NOT NULL DEFAULT 'Open',
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS skills (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS signups (
		id           TEXT PRIMARY KEY,
		volunteer_id TEXT NOT NULL REFERENCES volunteers (id),
		event_id     TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		status       TEXT NOT NULL DEFAULT 'Pending',
		role_id      TEXT REFERENCES roles (id),
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		UNIQUE (volunteer_id, event_id)
	)`,

	`CREATE TABLE IF NOT EXISTS volunteer_skills (
		volunteer_id TEXT NOT NULL REFERENCES volunteers (id) ON DELETE CASCADE,
		skill_id     TEXT NOT NULL REFERENCES skills (id) ON DELETE CASCADE,
		PRIMARY KEY (volunteer_id, skill_id)
	)`,

	`CREATE TABLE IF NOT EXISTS event_skills (
		event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		skill_id TEXT NOT NULL REFERENCES skills (id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, skill_id)
	)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
