// Package resources implements the MCP resource endpoints over the
// knowledge base.
//
// Resources are read-only data the host can pull for context. They
// use URI-based addressing (knowledge://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/convergencelab/sabius/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler serves the knowledge resource endpoints.
type Handler struct {
	ctx *session.Context
}

// NewHandler creates a resource Handler over the shared context.
func NewHandler(ctx *session.Context) *Handler {
	return &Handler{ctx: ctx}
}

// ModulesResource returns the resource definition for the module listing.
func (h *Handler) ModulesResource() mcp.Resource {
	return mcp.NewResource(
		"knowledge://modules",
		"Knowledge Modules",
		mcp.WithResourceDescription("Listing of every loaded knowledge module: id, title, keywords, size estimate"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleModules returns the module listing as JSON.
func (h *Handler) HandleModules(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type entry struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		Keywords     []string `json:"keywords"`
		SizeEstimate int      `json:"size_estimate"`
	}

	modules := h.ctx.Store.All()
	listing := make([]entry, len(modules))
	for i, m := range modules {
		listing[i] = entry{ID: m.ID, Title: m.Title, Keywords: m.Keywords, SizeEstimate: m.SizeEstimate}
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling module listing: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// ModuleTemplate returns the resource template for individual modules.
func (h *Handler) ModuleTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"knowledge://modules/{id}",
		"Knowledge Module",
		mcp.WithTemplateDescription("The full content of one knowledge module"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)
}

// HandleModule serves one module's content by id.
func (h *Handler) HandleModule(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := moduleID(req.Params.URI)
	m := h.ctx.Store.Get(id)
	if m == nil {
		return errorResource(req.Params.URI, fmt.Sprintf("unknown module %q", id)), nil
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     fmt.Sprintf("## %s\n\n%s", m.Title, m.Content),
		},
	}, nil
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
