package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/heartlog/internal/config"
	"github.com/claude/heartlog/internal/importer"
	"github.com/claude/heartlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	reportsPath := flag.String("path", "", "path to report directory (required)")
	dryRun := flag.Bool("dry-run", false, "parse and count without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *reportsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: heartlog-import -config config.yaml -path /path/to/reports [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*reportsPath)
	if err != nil || !info.IsDir() {
		log.Error("report path does not exist or is not a directory", "path", *reportsPath)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written")

		imp := importer.New(nil, log, true, cfg.Import.StateDir)
		stats, err := imp.Import(ctx, *reportsPath)
		if err != nil {
			log.Error("import failed", "error", err)
			os.Exit(1)
		}
		printStats(log, stats)
		return
	}

	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	if err := db.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	imp := importer.New(db, log, false, cfg.Import.StateDir)
	stats, err := imp.Import(ctx, *reportsPath)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"participants_found", stats.ParticipantsFound,
		"records_parsed", stats.RecordsParsed,
		"placeholders_parsed", stats.PlaceholdersParsed,
		"records_inserted", stats.RecordsInserted,
		"records_updated", stats.RecordsUpdated,
		"fields_degraded", stats.FieldsDegraded,
	)
}
