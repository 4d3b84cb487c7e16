package ops

import (
	"context"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchUnitsOp handles search_units over the ResearchUnit catalog.
type SearchUnitsOp struct {
	ctx *session.Context
}

// NewSearchUnitsOp creates a SearchUnitsOp.
func NewSearchUnitsOp(ctx *session.Context) *SearchUnitsOp {
	return &SearchUnitsOp{ctx: ctx}
}

// Definition returns the MCP tool definition for search_units.
func (o *SearchUnitsOp) Definition() mcp.Tool {
	return mcp.NewTool("search_units",
		mcp.WithDescription(
			"Search research groups and organizational units by name, category, or faculty.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the search_units call.
func (o *SearchUnitsOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	results := o.ctx.Catalogs.Units.Search(query, intArg(req, "limit", 0))
	return mcp.NewToolResultText(formatRecords("Unidades de investigación", results)), nil
}
