package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/claude/heartlog/internal/config"
	"github.com/claude/heartlog/internal/exporter"
	"github.com/claude/heartlog/internal/extract"
	"github.com/claude/heartlog/internal/ingest/report"
	"github.com/claude/heartlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "export straight from one report file, no database")
	participant := flag.String("participant", "", "export a participant's stored records")
	outPath := flag.String("out", "", "output file (default stdout)")
	bom := flag.Bool("bom", false, "prepend a UTF-8 byte order mark for spreadsheet tools")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*filePath == "") == (*participant == "") {
		fmt.Fprintf(os.Stderr, "Usage: heartlog-export (-file report.docx | -participant ABC123) [-out records.csv] [-bom]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	opts := exporter.Options{BOM: *bom}

	if *filePath != "" {
		exportFile(log, *filePath, out, opts)
		return
	}
	exportParticipant(log, *configPath, *participant, out, opts)
}

// exportFile parses one report document and writes its records directly,
// raw degraded fields and all.
func exportFile(log *slog.Logger, path string, out io.Writer, opts exporter.Options) {
	text, err := extract.File(path)
	if err != nil {
		log.Error("extraction failed", "file", path, "error", err)
		os.Exit(1)
	}

	records := report.Parse(text)
	if err := exporter.WriteRecords(out, records, opts); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	log.Info("exported", "file", path, "records", len(records))
}

// exportParticipant writes a participant's stored rows from the database.
func exportParticipant(log *slog.Logger, configPath, code string, out io.Writer, opts exporter.Options) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := db.QueryRecords(ctx, code, nil)
	if err != nil {
		log.Error("query failed", "participant", code, "error", err)
		os.Exit(1)
	}

	if err := exporter.WriteRows(out, rows, opts); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	log.Info("exported", "participant", code, "rows", len(rows))
}
