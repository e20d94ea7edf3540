package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSelectionTools() {
	s.mcp.AddTool(mcp.NewTool("select",
		mcp.WithDescription("Select an entity. Selection is view state and is not part of undo history."),
		mcp.WithString("entityId", mcp.Description("Entity ID"), mcp.Required()),
		mcp.WithString("entityType", mcp.Description("section, row, column or component"), mcp.Required()),
	), s.handleSelect)

	s.mcp.AddTool(mcp.NewTool("clear_selection",
		mcp.WithDescription("Clear the current selection"),
	), s.handleClearSelection)

	s.mcp.AddTool(mcp.NewTool("toggle_section_collapse",
		mcp.WithDescription("Collapse or expand a section in the outline"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
	), s.handleToggleSectionCollapse)
}

func (s *Server) handleSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "entityId")
	if err != nil {
		return nil, err
	}
	kind, err := requireEntityType(args, "entityType")
	if err != nil {
		return nil, err
	}
	if !s.pages.Select(id, kind) {
		return nil, fmt.Errorf("%s %s not found", kind, id)
	}
	return jsonResult(s.pages.State().Selection)
}

func (s *Server) handleClearSelection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.pages.ClearSelection()
	return textResult("Selection cleared"), nil
}

func (s *Server) handleToggleSectionCollapse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireString(req.GetArguments(), "sectionId")
	if err != nil {
		return nil, err
	}
	if s.pages.ToggleSectionCollapse(id) {
		return textResult(fmt.Sprintf("Section %s collapsed", id)), nil
	}
	return textResult(fmt.Sprintf("Section %s expanded", id)), nil
}
