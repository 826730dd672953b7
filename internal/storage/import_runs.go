package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportRun records a single import operation's outcome.
type ImportRun struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	FilesProcessed  int       `json:"files_processed"`
	FilesSkipped    int       `json:"files_skipped"`
	FilesErrored    int       `json:"files_errored"`
	RecordsInserted int64     `json:"records_inserted"`
	RecordsUpdated  int64     `json:"records_updated"`
	Placeholders    int       `json:"placeholders"`
	DurationMs      *int      `json:"duration_ms"`
	ErrorMessage    *string   `json:"error_message"`
}

// InsertImportRun creates a new import run entry, typically with status
// "running" before the walk starts.
func (db *DB) InsertImportRun(ctx context.Context, run ImportRun) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO import_runs (id, source, status, files_processed, files_skipped,
		 files_errored, records_inserted, records_updated, placeholders, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		run.ID, run.Source, run.Status, run.FilesProcessed, run.FilesSkipped,
		run.FilesErrored, run.RecordsInserted, run.RecordsUpdated,
		run.Placeholders, run.DurationMs, run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("inserting import run: %w", err)
	}
	return nil
}

// UpdateImportRun updates an existing run (typically from "running" to
// "success" or "error").
func (db *DB) UpdateImportRun(ctx context.Context, run ImportRun) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_runs SET
		 status = $2, files_processed = $3, files_skipped = $4, files_errored = $5,
		 records_inserted = $6, records_updated = $7, placeholders = $8,
		 duration_ms = $9, error_message = $10
		 WHERE id = $1`,
		run.ID, run.Status, run.FilesProcessed, run.FilesSkipped, run.FilesErrored,
		run.RecordsInserted, run.RecordsUpdated, run.Placeholders,
		run.DurationMs, run.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("updating import run %s: %w", run.ID, err)
	}
	return nil
}

// QueryImportRuns returns the most recent import runs.
func (db *DB) QueryImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, files_processed, files_skipped,
		 files_errored, records_inserted, records_updated, placeholders, duration_ms, error_message
		 FROM import_runs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	var result []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Status,
			&r.FilesProcessed, &r.FilesSkipped, &r.FilesErrored,
			&r.RecordsInserted, &r.RecordsUpdated, &r.Placeholders,
			&r.DurationMs, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
