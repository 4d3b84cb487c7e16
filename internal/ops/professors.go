package ops

import (
	"context"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchProfessorsOp handles search_professors over the Person catalog.
type SearchProfessorsOp struct {
	ctx *session.Context
}

// NewSearchProfessorsOp creates a SearchProfessorsOp.
func NewSearchProfessorsOp(ctx *session.Context) *SearchProfessorsOp {
	return &SearchProfessorsOp{ctx: ctx}
}

// Definition returns the MCP tool definition for search_professors.
func (o *SearchProfessorsOp) Definition() mcp.Tool {
	return mcp.NewTool("search_professors",
		mcp.WithDescription(
			"Search faculty members by name, title, category, or research group. "+
				"Partial names work in both directions: 'Gloria' finds the full name record.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term — a name fragment, area, or group"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the search_professors call.
func (o *SearchProfessorsOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	results := o.ctx.Catalogs.Professors.Search(query, intArg(req, "limit", 0))
	return mcp.NewToolResultText(formatRecords("Profesores", results)), nil
}
