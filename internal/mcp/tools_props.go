package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"pagebuilder/internal/editor"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPropertyTools() {
	// ── update_component_props ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_component_props",
		mcp.WithDescription("Merge properties into a component. Keys present overwrite, others are kept, null clears optional fields. "+
			"text: text, fontSize, lineHeight, fontWeight, color. button: label, href. image: src, alt, mediaId. "+
			"gallery: items [{id,url,alt,title}], columns, gap, borderRadius. spacer: height."),
		mcp.WithString("componentId", mcp.Description("Component ID"), mcp.Required()),
		mcp.WithString("props", mcp.Description(`JSON object with the properties to change, e.g. {"label":"Buy now"}`), mcp.Required()),
	), s.handleUpdateComponentProps)

	// ── update_column_span ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_column_span",
		mcp.WithDescription("Set a column's width in grid units. Values outside 1-12 are clamped."),
		mcp.WithString("columnId", mcp.Description("Column ID"), mcp.Required()),
		mcp.WithNumber("span", mcp.Description("Width, 1-12"), mcp.Required()),
	), s.handleUpdateColumnSpan)

	// ── update_page_meta ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_page_meta",
		mcp.WithDescription("Set the page title"),
		mcp.WithString("title", mcp.Description("New title"), mcp.Required()),
	), s.handleUpdatePageMeta)
}

func (s *Server) handleUpdateComponentProps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "componentId")
	if err != nil {
		return nil, err
	}
	patch, err := propsPatch(args["props"])
	if err != nil {
		return nil, err
	}
	return s.changeResult(s.pages.Edit(ctx, func(h *editor.History) (bool, error) {
		return h.UpdateComponentProps(id, patch)
	}))
}

// propsPatch accepts the patch either as a JSON string or as an object.
func propsPatch(v any) ([]byte, error) {
	switch p := v.(type) {
	case string:
		if p == "" {
			return nil, fmt.Errorf("props is required")
		}
		return []byte(p), nil
	case map[string]any:
		return json.Marshal(p)
	case nil:
		return nil, fmt.Errorf("props is required")
	}
	return nil, fmt.Errorf("props must be a JSON object")
}

func (s *Server) handleUpdateColumnSpan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "columnId")
	if err != nil {
		return nil, err
	}
	if _, ok := args["span"].(float64); !ok {
		return nil, fmt.Errorf("span is required")
	}
	span := getInt(args, "span", 0)
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.UpdateColumnSpan(id, span)
	}))
}

func (s *Server) handleUpdatePageMeta(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, ok := req.GetArguments()["title"].(string)
	if !ok {
		return nil, fmt.Errorf("title is required")
	}
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.UpdatePageMeta(title)
	}))
}
