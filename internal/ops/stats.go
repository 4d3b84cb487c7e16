package ops

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsOp handles kb_stats: aggregate counts over the loaded
// knowledge base, useful for smoke checks and dashboards.
type StatsOp struct {
	ctx *session.Context
}

// NewStatsOp creates a StatsOp.
func NewStatsOp(ctx *session.Context) *StatsOp {
	return &StatsOp{ctx: ctx}
}

// Definition returns the MCP tool definition for kb_stats.
func (o *StatsOp) Definition() mcp.Tool {
	return mcp.NewTool("kb_stats",
		mcp.WithDescription(
			"Get knowledge base statistics: module, keyword, and catalog counts "+
				"plus the estimated total token size of all modules.",
		),
	)
}

// Handle processes the kb_stats call.
func (o *StatsOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(o.ctx.Stats(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding stats: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
