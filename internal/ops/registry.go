package ops

import (
	"context"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Operation is one named entry of the operation table.
type Operation interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Table returns the full, statically declared operation table. This
// is the only place operations are enumerated; the server registers
// exactly this list.
func Table(kctx *session.Context, sessions *session.Manager) []Operation {
	return []Operation{
		NewContextBuildOp(sessions),
		NewConversationRecordOp(sessions),
		NewConversationHistoryOp(sessions),
		NewSearchProfessorsOp(kctx),
		NewSearchPublicationsOp(kctx),
		NewPublicationsByUnitOp(kctx),
		NewSearchUnitsOp(kctx),
		NewStatsOp(kctx),
	}
}
