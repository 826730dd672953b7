package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claude/heartlog/internal/extract"
	"github.com/claude/heartlog/internal/ingest/report"
	"github.com/claude/heartlog/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ParticipantsFound  int
	RecordsParsed      int
	PlaceholdersParsed int
	RecordsInserted    int64
	RecordsUpdated     int64
	FieldsDegraded     int
}

// Importer reads activity report files from a directory and upserts their
// records into the database.
type Importer struct {
	db       *storage.DB
	log      *slog.Logger
	dryRun   bool
	stateDir string
	stats    Stats
}

// New creates a new Importer. In dry-run mode nothing is written: no
// database rows, no import run, no seen-file state.
func New(db *storage.DB, log *slog.Logger, dryRun bool, stateDir string) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun, stateDir: stateDir}
}

// Import processes all report files directly under dir. Per-file extraction
// and storage errors are logged and counted, never fatal; only state or
// bookkeeping failures abort the run.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	files, err := discoverReports(dir)
	if err != nil {
		return &imp.stats, err
	}

	state, err := OpenStateDB(imp.stateDir)
	if err != nil {
		return &imp.stats, fmt.Errorf("opening import state: %w", err)
	}
	defer state.Close()

	runID := uuid.NewString()
	started := time.Now()
	if !imp.dryRun {
		err := imp.db.InsertImportRun(ctx, storage.ImportRun{
			ID: runID, Source: dir, Status: "running",
		})
		if err != nil {
			return &imp.stats, fmt.Errorf("recording import run: %w", err)
		}
	}

	for _, path := range files {
		if err := imp.importFile(ctx, state, path); err != nil {
			imp.log.Warn("skipping report file", "file", path, "error", err)
			imp.stats.FilesErrored++
		}
	}

	if !imp.dryRun {
		if err := imp.finishRun(ctx, runID, dir, started); err != nil {
			return &imp.stats, err
		}
	}

	return &imp.stats, nil
}

// discoverReports lists .docx and .txt files directly under dir, sorted so
// runs are deterministic.
func discoverReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".docx", ".txt":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// importFile extracts, parses, and stores one report file, then marks it
// seen. Already-seen files count as skipped.
func (imp *Importer) importFile(ctx context.Context, state *StateDB, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	seen, err := state.IsImported(path, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state: %w", err)
	}
	if seen {
		imp.log.Info("already imported, skipping", "file", path)
		imp.stats.FilesSkipped++
		return nil
	}

	text, err := extract.File(path)
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}

	if imp.dryRun {
		imp.countOnly(text)
		imp.stats.FilesProcessed++
		return nil
	}

	provider := report.NewProvider(imp.db, imp.log)
	result, err := provider.Ingest(ctx, text, path)
	if err != nil {
		return fmt.Errorf("ingesting: %w", err)
	}

	imp.stats.ParticipantsFound += result.ParticipantsFound
	imp.stats.RecordsParsed += result.RecordsParsed
	imp.stats.PlaceholdersParsed += result.PlaceholdersParsed
	imp.stats.RecordsInserted += result.RecordsInserted
	imp.stats.RecordsUpdated += result.RecordsUpdated
	imp.stats.FieldsDegraded += result.FieldsDegraded

	if err := state.MarkImported(path, info.Size(), hash); err != nil {
		return fmt.Errorf("marking state: %w", err)
	}
	imp.stats.FilesProcessed++
	return nil
}

// countOnly parses without touching the database, for dry runs.
func (imp *Importer) countOnly(text string) {
	for _, block := range report.Segment(text) {
		imp.stats.ParticipantsFound++
		for _, rec := range report.ExtractBlock(block) {
			if rec.IsPlaceholder() {
				imp.stats.PlaceholdersParsed++
			} else {
				imp.stats.RecordsParsed++
			}
		}
	}
}

// finishRun closes out the import run row with final counters.
func (imp *Importer) finishRun(ctx context.Context, runID, dir string, started time.Time) error {
	durationMs := int(time.Since(started).Milliseconds())
	run := storage.ImportRun{
		ID:              runID,
		Source:          dir,
		Status:          "success",
		FilesProcessed:  imp.stats.FilesProcessed,
		FilesSkipped:    imp.stats.FilesSkipped,
		FilesErrored:    imp.stats.FilesErrored,
		RecordsInserted: imp.stats.RecordsInserted,
		RecordsUpdated:  imp.stats.RecordsUpdated,
		Placeholders:    imp.stats.PlaceholdersParsed,
		DurationMs:      &durationMs,
	}
	if imp.stats.FilesErrored > 0 {
		msg := fmt.Sprintf("%d file(s) failed to import", imp.stats.FilesErrored)
		run.ErrorMessage = &msg
	}
	if err := imp.db.UpdateImportRun(ctx, run); err != nil {
		return fmt.Errorf("finalizing import run: %w", err)
	}
	return nil
}
