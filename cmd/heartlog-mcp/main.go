package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/heartlog/internal/config"
	"github.com/claude/heartlog/internal/mcp"
	"github.com/claude/heartlog/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
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

	if err := db.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	s := mcp.New(db, version, log)
	log.Info("heartlog MCP server listening on stdio", "version", version)
	if err := server.ServeStdio(s); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
