package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/convergencelab/sabius/internal/conversation"
	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ConversationRecordOp handles conversation_record: the engine
// appends each completed turn so the transcript window stays current.
type ConversationRecordOp struct {
	sessions *session.Manager
}

// NewConversationRecordOp creates a ConversationRecordOp.
func NewConversationRecordOp(sessions *session.Manager) *ConversationRecordOp {
	return &ConversationRecordOp{sessions: sessions}
}

// Definition returns the MCP tool definition for conversation_record.
func (o *ConversationRecordOp) Definition() mcp.Tool {
	return mcp.NewTool("conversation_record",
		mcp.WithDescription(
			"Append a dialogue turn to the session transcript. The window is bounded: "+
				"when full, the oldest turns are evicted to make room.",
		),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Dialogue session id from context_build"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Who produced the turn: 'user' or 'assistant'"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The turn's text content"),
		),
	)
}

// Handle processes the conversation_record call.
func (o *ConversationRecordOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	sess, ok := o.sessions.Get(sessionID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown session %q", sessionID)), nil
	}

	length, err := sess.Record(conversation.Role(req.GetString("role", "")), text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Recorded. Transcript holds %d turn(s).", length)), nil
}

// ConversationHistoryOp handles conversation_history: the ordered
// transcript the engine feeds back for history-aware generation.
type ConversationHistoryOp struct {
	sessions *session.Manager
}

// NewConversationHistoryOp creates a ConversationHistoryOp.
func NewConversationHistoryOp(sessions *session.Manager) *ConversationHistoryOp {
	return &ConversationHistoryOp{sessions: sessions}
}

// Definition returns the MCP tool definition for conversation_history.
func (o *ConversationHistoryOp) Definition() mcp.Tool {
	return mcp.NewTool("conversation_history",
		mcp.WithDescription("Get the session transcript, oldest turn first."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Dialogue session id from context_build"),
		),
	)
}

// Handle processes the conversation_history call.
func (o *ConversationHistoryOp) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	if sessionID == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}

	sess, ok := o.sessions.Get(sessionID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown session %q", sessionID)), nil
	}

	turns := sess.History()
	if len(turns) == 0 {
		return mcp.NewToolResultText("The transcript is empty."), nil
	}

	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%d. [%s] %s\n", t.Seq, t.Role, t.Content)
	}
	return mcp.NewToolResultText(b.String()), nil
}
