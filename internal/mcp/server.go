package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Heartlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Heartlog activity report server. Query participants, their daily heart-rate and activity records, weekly placeholder rows for weeks without data, cohort statistics, and import history."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListParticipants, Handler: h.listParticipants},
		server.ServerTool{Tool: toolGetParticipantRecords, Handler: h.getParticipantRecords},
		server.ServerTool{Tool: toolGetCohortStats, Handler: h.getCohortStats},
		server.ServerTool{Tool: toolGetHeartRateSummary, Handler: h.getHeartRateSummary},
		server.ServerTool{Tool: toolGetAgeDistribution, Handler: h.getAgeDistribution},
		server.ServerTool{Tool: toolListImportRuns, Handler: h.listImportRuns},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resOverview, Handler: h.overview},
		server.ServerResource{Resource: resParticipants, Handler: h.participantCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resOverview = mcp.NewResource(
	"heartlog://overview",
	"Cohort Overview",
	mcp.WithResourceDescription("Cohort statistics against the weekly activity target plus recent import runs"),
	mcp.WithMIMEType("application/json"),
)

var resParticipants = mcp.NewResource(
	"heartlog://participants",
	"Participant Catalog",
	mcp.WithResourceDescription("All participants with age, target status, and last known heart rate"),
	mcp.WithMIMEType("application/json"),
)
