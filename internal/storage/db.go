package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgxpool.Pool and provides repository methods.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB with a connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// schema is idempotent DDL applied at startup. Daily rows are unique per
// (participant, date); absence rows are unique per (participant, week) with
// a null date.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS participants (
		id              SERIAL PRIMARY KEY,
		code            TEXT NOT NULL UNIQUE,
		age             INTEGER,
		target_achieved BOOLEAN NOT NULL DEFAULT FALSE,
		last_heart_rate INTEGER,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS activity_records (
		id                     BIGSERIAL PRIMARY KEY,
		participant_id         INTEGER NOT NULL REFERENCES participants(id),
		participant_code       TEXT NOT NULL,
		date                   DATE,
		week_number            INTEGER,
		week_description       TEXT,
		hr_fat_burn            DOUBLE PRECISION,
		hr_cardio              DOUBLE PRECISION,
		hr_intense             DOUBLE PRECISION,
		total_mins_per_session DOUBLE PRECISION,
		total_weekly           DOUBLE PRECISION,
		boosted                TEXT,
		notes                  TEXT,
		source_file            TEXT,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS activity_records_daily_key
		ON activity_records (participant_id, date) WHERE date IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS activity_records_weekly_key
		ON activity_records (participant_id, week_number) NULLS NOT DISTINCT
		WHERE date IS NULL`,
	`CREATE TABLE IF NOT EXISTS import_runs (
		id               TEXT PRIMARY KEY,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		source           TEXT NOT NULL,
		status           TEXT NOT NULL,
		files_processed  INTEGER NOT NULL DEFAULT 0,
		files_skipped    INTEGER NOT NULL DEFAULT 0,
		files_errored    INTEGER NOT NULL DEFAULT 0,
		records_inserted BIGINT NOT NULL DEFAULT 0,
		records_updated  BIGINT NOT NULL DEFAULT 0,
		placeholders     INTEGER NOT NULL DEFAULT 0,
		duration_ms      INTEGER,
		error_message    TEXT
	)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}
