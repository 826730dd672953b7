package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) overview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.ds.GetCohortStats(ctx)
	if err != nil {
		return nil, err
	}

	runs, err := h.ds.QueryImportRuns(ctx, 5)
	if err != nil {
		h.log.Warn("overview: import runs query failed", "error", err)
	}

	overview := map[string]any{
		"cohort_stats":       stats,
		"recent_import_runs": runs,
	}

	data, err := json.Marshal(overview)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) participantCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	participants, err := h.ds.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(participants)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
