package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() {
	// ── pagebuilder://page ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		PageURI,
		"Current Page",
		mcp.WithResourceDescription("The page tree being edited"),
		mcp.WithMIMEType("application/json"),
	), s.handlePageResource)

	// ── pagebuilder://session ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		SessionURI,
		"Editing Session",
		mcp.WithResourceDescription("Page key, version, save status, undo availability and selection"),
		mcp.WithMIMEType("application/json"),
	), s.handleSessionResource)
}

func (s *Server) handlePageResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(PageURI, s.pages.Page())
}

func (s *Server) handleSessionResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(SessionURI, s.pages.State())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
