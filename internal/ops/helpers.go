// Package ops declares the operation table of the context core: every
// operation the external dialogue engine can invoke by name, each a
// struct pairing an MCP tool definition with a pure handler over the
// shared context and the session manager.
//
// The table in registry.go is the single, static declaration of the
// surface — nothing is registered through reflection or runtime
// discovery.
package ops

import (
	"strings"

	"github.com/convergencelab/sabius/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are
// float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// formatRecords renders search results as a markdown list under a
// heading, or a friendly no-results line. An empty result is an
// expected outcome, never an error.
func formatRecords[T catalog.Record](heading string, records []T) string {
	if len(records) == 0 {
		return "No se encontraron resultados."
	}

	var b strings.Builder
	b.WriteString("### " + heading + "\n\n")
	for _, r := range records {
		b.WriteString(r.Markdown())
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
