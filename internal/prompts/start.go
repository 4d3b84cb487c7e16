// Package prompts implements the MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands).
// Unlike tools (which the engine calls), prompts are initiated by the
// user to set a flow in motion.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the sabius-start MCP prompt. It tells the
// dialogue engine how to drive the context core over a conversation.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("sabius-start",
		mcp.WithPromptDescription(
			"Start a Sabius conversation. Explains the per-turn loop: build the "+
				"instruction context for each user query, generate, then record both turns.",
		),
		mcp.WithArgument("session_id",
			mcp.ArgumentDescription("Reuse an existing session id (optional; a new session is created otherwise)"),
		),
	)
}

// Handle processes the sabius-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	sessionHint := "omitting session_id so a new session is created"
	if args := req.Params.Arguments; args != nil {
		if id, ok := args["session_id"]; ok && id != "" {
			sessionHint = fmt.Sprintf("passing session_id=%q", id)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Drive a Sabius dialogue session",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to talk to Sabius, the Convergence Lab assistant.\n\n"+
						"For every turn of this conversation:\n"+
						"1. Call `context_build` with my query, %s. Use the returned text as your system instructions — answer only from that context.\n"+
						"2. Call `conversation_record` twice after replying: once with role='user' and my query, once with role='assistant' and your reply.\n"+
						"3. Use `search_professors`, `search_publications`, or `search_units` when I ask about specific people, research, or groups.\n\n"+
						"Start by greeting me and asking what I'd like to know about the Convergence Lab.",
					sessionHint,
				)),
			},
		},
	}, nil
}
