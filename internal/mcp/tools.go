package mcp

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListParticipants = mcp.NewTool("list_participants",
	mcp.WithDescription("List all participants with their report code, age, weekly-target status, and last known heart rate."),
)

var toolGetParticipantRecords = mcp.NewTool("get_participant_records",
	mcp.WithDescription("Retrieve a participant's activity records, newest first. Daily rows carry heart-rate zones and totals; rows without a date are weekly placeholders for weeks with no daily data."),
	mcp.WithString("participant", mcp.Required(), mcp.Description("Participant report code (e.g. ABC123)")),
	mcp.WithString("week", mcp.Description("Filter to one week number")),
)

var toolGetCohortStats = mcp.NewTool("get_cohort_stats",
	mcp.WithDescription("Cohort totals: participant count, how many achieved the 150-minute weekly activity target, and the percentage."),
)

var toolGetHeartRateSummary = mcp.NewTool("get_heart_rate_summary",
	mcp.WithDescription("Latest moderate (fat burn) and intense heart rates for up to seven participants, with fallbacks for participants without recorded zone data."),
)

var toolGetAgeDistribution = mcp.NewTool("get_age_distribution",
	mcp.WithDescription("Participant counts bucketed by age: 0-20, 21-40, 41-60, 61-80, 80+."),
)

var toolListImportRuns = mcp.NewTool("list_import_runs",
	mcp.WithDescription("Recent report import runs with file and record counters."),
	mcp.WithString("limit", mcp.Description("Maximum runs to return. Defaults to 20.")),
)

// --- Tool handlers ---

func (h *handlers) listParticipants(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	participants, err := h.ds.ListParticipants(ctx)
	if err != nil {
		h.log.Error("mcp list_participants", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(participants)
}

func (h *handlers) getParticipantRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("participant")
	if err != nil {
		return mcp.NewToolResultError("participant parameter is required"), nil
	}

	var week *int
	if w := req.GetString("week", ""); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return mcp.NewToolResultError("week must be a number"), nil
		}
		week = &n
	}

	records, err := h.ds.QueryRecords(ctx, code, week)
	if err != nil {
		h.log.Error("mcp get_participant_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(records)
}

func (h *handlers) getCohortStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetCohortStats(ctx)
	if err != nil {
		h.log.Error("mcp get_cohort_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) getHeartRateSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.GetHeartRateSummary(ctx)
	if err != nil {
		h.log.Error("mcp get_heart_rate_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(summary)
}

func (h *handlers) getAgeDistribution(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buckets, err := h.ds.GetAgeDistribution(ctx)
	if err != nil {
		h.log.Error("mcp get_age_distribution", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(buckets)
}

func (h *handlers) listImportRuns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 20
	if l := req.GetString("limit", ""); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			return mcp.NewToolResultError("limit must be a positive number"), nil
		}
		limit = n
	}

	runs, err := h.ds.QueryImportRuns(ctx, limit)
	if err != nil {
		h.log.Error("mcp list_import_runs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(runs)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
