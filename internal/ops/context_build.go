package ops

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ContextBuildOp handles the context_build operation: per user turn,
// the dialogue engine hands over the raw query and receives the
// assembled instruction text to generate against.
type ContextBuildOp struct {
	sessions *session.Manager
}

// NewContextBuildOp creates a ContextBuildOp.
func NewContextBuildOp(sessions *session.Manager) *ContextBuildOp {
	return &ContextBuildOp{sessions: sessions}
}

// Definition returns the MCP tool definition for context_build.
func (o *ContextBuildOp) Definition() mcp.Tool {
	return mcp.NewTool("context_build",
		mcp.WithDescription(
			"Build the instruction text for the next assistant reply: the fixed base "+
				"instructions plus the knowledge modules relevant to the user's query, "+
				"selected under the context budget. An empty query yields the base "+
				"instructions with the core module only.",
		),
		mcp.WithString("query",
			mcp.Description("The raw user query for this turn (may be empty at conversation start)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Dialogue session id; a new session is created when omitted or unknown"),
		),
	)
}

// Handle processes the context_build call. The result is a JSON
// payload with the instruction text, its size estimate, the selected
// module ids, and the session id to use on subsequent calls.
func (o *ContextBuildOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	sess := o.sessions.GetOrCreate(req.GetString("session_id", ""))

	instructions := sess.BuildInstructions(query)

	payload := struct {
		SessionID string `json:"session_id"`
		session.Instructions
	}{sess.ID, instructions}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding instructions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
