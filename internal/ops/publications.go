package ops

import (
	"context"

	"github.com/convergencelab/sabius/internal/catalog"
	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchPublicationsOp handles search_publications over the
// Publication catalog, with an optional exact-unit pre-filter.
type SearchPublicationsOp struct {
	ctx *session.Context
}

// NewSearchPublicationsOp creates a SearchPublicationsOp.
func NewSearchPublicationsOp(ctx *session.Context) *SearchPublicationsOp {
	return &SearchPublicationsOp{ctx: ctx}
}

// Definition returns the MCP tool definition for search_publications.
func (o *SearchPublicationsOp) Definition() mcp.Tool {
	return mcp.NewTool("search_publications",
		mcp.WithDescription(
			"Search research publications by topic, journal, group, or unit. "+
				"Pass 'unit' to restrict the search to one organizational unit.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term"),
		),
		mcp.WithString("unit",
			mcp.Description("Exact organizational unit name to search within"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the search_publications call.
func (o *SearchPublicationsOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	limit := intArg(req, "limit", 0)

	pubs := o.ctx.Catalogs.Publications
	var results []catalog.Publication
	if unit := req.GetString("unit", ""); unit != "" {
		results = catalog.New(pubs.ByGroup(unit)).Search(query, limit)
	} else {
		results = pubs.Search(query, limit)
	}

	return mcp.NewToolResultText(formatRecords("Publicaciones", results)), nil
}

// PublicationsByUnitOp handles publications_by_unit: grouped access
// without a search term.
type PublicationsByUnitOp struct {
	ctx *session.Context
}

// NewPublicationsByUnitOp creates a PublicationsByUnitOp.
func NewPublicationsByUnitOp(ctx *session.Context) *PublicationsByUnitOp {
	return &PublicationsByUnitOp{ctx: ctx}
}

// Definition returns the MCP tool definition for publications_by_unit.
func (o *PublicationsByUnitOp) Definition() mcp.Tool {
	return mcp.NewTool("publications_by_unit",
		mcp.WithDescription(
			"List every publication of one organizational unit, in catalog order. "+
				"The unit name must match exactly; use search_publications for fuzzy lookups.",
		),
		mcp.WithString("unit",
			mcp.Required(),
			mcp.Description("Exact organizational unit name"),
		),
	)
}

// Handle processes the publications_by_unit call.
func (o *PublicationsByUnitOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	unit := req.GetString("unit", "")
	if unit == "" {
		return mcp.NewToolResultError("'unit' is required"), nil
	}

	results := o.ctx.Catalogs.Publications.ByGroup(unit)
	return mcp.NewToolResultText(formatRecords("Publicaciones de "+unit, results)), nil
}
