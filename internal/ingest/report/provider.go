package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/heartlog/internal/ingest"
	"github.com/claude/heartlog/internal/storage"
)

// Provider persists parsed activity reports.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new activity report ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses report text and upserts every record, data and placeholder
// alike. Parsing never fails on malformed text; only storage errors abort.
func (p *Provider) Ingest(ctx context.Context, text, sourceFile string) (*ingest.Result, error) {
	result := &ingest.Result{}

	for _, block := range Segment(text) {
		participantRef, err := p.db.GetOrCreateParticipant(ctx, block.ParticipantID)
		if err != nil {
			return result, fmt.Errorf("resolving participant %s: %w", block.ParticipantID, err)
		}
		result.ParticipantsFound++

		for _, rec := range ExtractBlock(block) {
			if rec.IsPlaceholder() {
				result.PlaceholdersParsed++
			} else {
				result.RecordsParsed++
			}

			row, degraded := rowFromRecord(rec, participantRef, sourceFile, p.log)
			result.FieldsDegraded += degraded

			inserted, err := p.db.UpsertRecord(ctx, row)
			if err != nil {
				return result, fmt.Errorf("storing record for %s: %w", block.ParticipantID, err)
			}
			if inserted {
				result.RecordsInserted++
			} else {
				result.RecordsUpdated++
			}
		}

		if err := p.db.RefreshTargetAchieved(ctx, participantRef); err != nil {
			return result, fmt.Errorf("refreshing target for %s: %w", block.ParticipantID, err)
		}
	}

	return result, nil
}
