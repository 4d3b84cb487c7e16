// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it performs the synchronous startup
// load, creates the shared immutable context, and registers the
// operation table, prompts, and resources. No business logic lives
// here — only wiring.
package server

import (
	"fmt"

	"github.com/convergencelab/sabius/internal/config"
	"github.com/convergencelab/sabius/internal/ops"
	"github.com/convergencelab/sabius/internal/prompts"
	"github.com/convergencelab/sabius/internal/resources"
	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server. The whole knowledge base
// is loaded here, before any request is served; a load or
// configuration failure aborts startup — there is no degraded mode
// with a partial knowledge base.
func New(cfg config.Config) (*server.MCPServer, error) {
	kctx, err := session.NewContext(cfg)
	if err != nil {
		return nil, fmt.Errorf("building knowledge context: %w", err)
	}

	sessions := session.NewManager(kctx)

	s := server.NewMCPServer(
		"sabius",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register the operation table ---

	for _, op := range ops.Table(kctx, sessions) {
		s.AddTool(op.Definition(), op.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(kctx)
	s.AddResource(resourceHandler.ModulesResource(), resourceHandler.HandleModules)
	s.AddResourceTemplate(resourceHandler.ModuleTemplate(), resourceHandler.HandleModule)

	return s, nil
}

// serverInstructions describes the per-turn contract to the host.
func serverInstructions() string {
	return `Sabius context core: retrieval and prompt assembly for the Convergence Lab assistant.

Per user turn, call context_build with the raw query and use the returned text as the
system instructions for generation. After replying, record both turns with
conversation_record so the bounded transcript stays current. The catalog operations
(search_professors, search_publications, publications_by_unit, search_units) answer
questions about specific people, research products, and organizational units.`
}
