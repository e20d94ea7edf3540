package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"pagebuilder/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Resource URIs.
const (
	PageURI    = "pagebuilder://page"
	SessionURI = "pagebuilder://session"
)

// Server is the MCP server for the page builder.
// It exposes the editing session as tools, resources and prompts so agents
// can build pages.
type Server struct {
	mcp   *server.MCPServer
	pages *service.PageService

	// Used by load_page when slug or lang are omitted.
	defaultSlug string
	defaultLang string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Pages       *service.PageService
	DefaultSlug string
	DefaultLang string
	Version     string
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	version := deps.Version
	if version == "" {
		version = "1.0.0"
	}
	s := &Server{
		pages:       deps.Pages,
		defaultSlug: deps.DefaultSlug,
		defaultLang: deps.DefaultLang,
	}

	s.mcp = server.NewMCPServer(
		"pagebuilder-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerSessionTools()
	s.registerStructureTools()
	s.registerPropertyTools()
	s.registerSelectionTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// Emit implements service.EventEmitter by telling clients which resources
// changed.
func (s *Server) Emit(_ context.Context, event string, _ any) {
	uris := []string{SessionURI}
	if event != service.EventPageSaved {
		uris = append(uris, PageURI)
	}
	for _, uri := range uris {
		s.mcp.SendNotificationToAllClients("notifications/resources/updated", map[string]any{"uri": uri})
	}
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// editResult reports whether an edit changed the document, plus the session
// state after it.
type editResult struct {
	Changed bool                 `json:"changed"`
	ID      string               `json:"id,omitempty"`
	State   service.SessionState `json:"state"`
}

func (s *Server) changeResult(changed bool, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return nil, err
	}
	return jsonResult(editResult{Changed: changed, State: s.pages.State()})
}
