package mcp

import (
	"context"

	"github.com/claude/heartlog/internal/models"
	"github.com/claude/heartlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools so handlers are
// testable against a stub.
type DataSource interface {
	ListParticipants(ctx context.Context) ([]storage.Participant, error)
	QueryRecords(ctx context.Context, code string, week *int) ([]models.RecordRow, error)
	GetCohortStats(ctx context.Context) (*storage.CohortStats, error)
	GetHeartRateSummary(ctx context.Context) ([]storage.HeartRateSummary, error)
	GetAgeDistribution(ctx context.Context) ([]storage.AgeBucketCount, error)
	QueryImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
