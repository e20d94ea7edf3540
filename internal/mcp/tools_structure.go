package mcpserver

import (
	"context"
	"fmt"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/editor"

	"github.com/mark3labs/mcp-go/mcp"
)

const indexHelp = "Insert position (optional, appends when omitted; clamped to the container)"

func (s *Server) registerStructureTools() {
	// ── add_* ──────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Add a section with one two-column row"),
		mcp.WithNumber("index", mcp.Description(indexHelp)),
	), s.handleAddSection)

	s.mcp.AddTool(mcp.NewTool("add_row",
		mcp.WithDescription("Add a row with two half-width columns to a section"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithNumber("index", mcp.Description(indexHelp)),
	), s.handleAddRow)

	s.mcp.AddTool(mcp.NewTool("add_column",
		mcp.WithDescription("Add an empty column to a row"),
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithNumber("span", mcp.Description("Width in grid units, 1-12 (optional, default 6)")),
		mcp.WithNumber("index", mcp.Description(indexHelp)),
	), s.handleAddColumn)

	s.mcp.AddTool(mcp.NewTool("add_component",
		mcp.WithDescription("Add a component with default properties to a column. Returns the new component id."),
		mcp.WithString("columnId", mcp.Description("Column ID"), mcp.Required()),
		mcp.WithString("type",
			mcp.Description("Component type: text, button, image, gallery, spacer"),
			mcp.Required(),
		),
		mcp.WithNumber("index", mcp.Description(indexHelp)),
	), s.handleAddComponent)

	// ── move_* ─────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_section",
		mcp.WithDescription("Move a section to a new position, or copy it when duplicate is true"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Destination index"), mcp.Required()),
		mcp.WithBoolean("duplicate", mcp.Description("Insert a copy with fresh ids instead of moving")),
	), s.handleMoveSection)

	s.mcp.AddTool(mcp.NewTool("move_row",
		mcp.WithDescription("Move a row into a section. An emptied source section gets a fresh default row."),
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithString("fromSectionId", mcp.Description("Source section (optional, looked up when omitted)")),
		mcp.WithString("toSectionId", mcp.Description("Destination section"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Destination index"), mcp.Required()),
		mcp.WithBoolean("duplicate", mcp.Description("Insert a copy with fresh ids instead of moving")),
	), s.handleMoveRow)

	s.mcp.AddTool(mcp.NewTool("move_column",
		mcp.WithDescription("Move a column into a row. An emptied source row gets a fresh full-width column."),
		mcp.WithString("columnId", mcp.Description("Column ID"), mcp.Required()),
		mcp.WithString("fromRowId", mcp.Description("Source row (optional, looked up when omitted)")),
		mcp.WithString("toRowId", mcp.Description("Destination row"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Destination index"), mcp.Required()),
		mcp.WithBoolean("duplicate", mcp.Description("Insert a copy with fresh ids instead of moving")),
	), s.handleMoveColumn)

	s.mcp.AddTool(mcp.NewTool("move_component",
		mcp.WithDescription("Move a component into a column"),
		mcp.WithString("componentId", mcp.Description("Component ID"), mcp.Required()),
		mcp.WithString("fromColumnId", mcp.Description("Source column (optional, looked up when omitted)")),
		mcp.WithString("toColumnId", mcp.Description("Destination column"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Destination index"), mcp.Required()),
		mcp.WithBoolean("duplicate", mcp.Description("Insert a copy with fresh ids instead of moving")),
	), s.handleMoveComponent)

	// ── drop ───────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("drop",
		mcp.WithDescription("Apply a drag and drop gesture: move or copy any entity into a container"),
		mcp.WithString("entityId", mcp.Description("ID of the dragged entity"), mcp.Required()),
		mcp.WithString("entityType", mcp.Description("section, row, column or component"), mcp.Required()),
		mcp.WithString("from", mcp.Description("Source container ID (optional)")),
		mcp.WithString("to", mcp.Description("Destination container ID (ignored for sections)")),
		mcp.WithNumber("index", mcp.Description("Destination index"), mcp.Required()),
		mcp.WithBoolean("duplicate", mcp.Description("Copy instead of move")),
	), s.handleDrop)

	// ── duplicate ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate",
		mcp.WithDescription("Insert a copy of an entity, with fresh ids, right after it"),
		mcp.WithString("entityId", mcp.Description("Entity ID"), mcp.Required()),
		mcp.WithString("entityType", mcp.Description("section, row, column or component"), mcp.Required()),
	), s.handleDuplicate)

	// ── delete_* ───────────────────────────────────────
	for _, t := range []struct {
		tool, param string
		kind        domain.EntityType
		desc        string
	}{
		{"delete_section", "sectionId", domain.EntitySection, "Delete a section. The page always keeps at least one."},
		{"delete_row", "rowId", domain.EntityRow, "Delete a row. A section always keeps at least one."},
		{"delete_column", "columnId", domain.EntityColumn, "Delete a column. A row always keeps at least one."},
		{"delete_component", "componentId", domain.EntityComponent, "Delete a component"},
	} {
		s.mcp.AddTool(mcp.NewTool(t.tool,
			mcp.WithDescription(t.desc+" Can be undone."),
			mcp.WithString(t.param, mcp.Description("ID to delete"), mcp.Required()),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
		), s.deleteHandler(t.param, t.kind))
	}
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index := getInt(req.GetArguments(), "index", -1)
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.AddSection(index)
	}))
}

func (s *Server) handleAddRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, err := requireString(args, "sectionId")
	if err != nil {
		return nil, err
	}
	index := getInt(args, "index", -1)
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.AddRow(sectionID, index)
	}))
}

func (s *Server) handleAddColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rowID, err := requireString(args, "rowId")
	if err != nil {
		return nil, err
	}
	span := getInt(args, "span", 0)
	index := getInt(args, "index", -1)
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.AddColumn(rowID, span, index)
	}))
}

func (s *Server) handleAddComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	columnID, err := requireString(args, "columnId")
	if err != nil {
		return nil, err
	}
	typ, err := requireString(args, "type")
	if err != nil {
		return nil, err
	}
	index := getInt(args, "index", -1)

	var id string
	changed, err := s.pages.Edit(ctx, func(h *editor.History) (bool, error) {
		var (
			ok   bool
			aerr error
		)
		id, ok, aerr = h.AddComponent(columnID, domain.ComponentType(typ), index)
		return ok, aerr
	})
	if err != nil {
		return nil, fmt.Errorf("add component: %w", err)
	}
	return jsonResult(editResult{Changed: changed, ID: id, State: s.pages.State()})
}

func (s *Server) handleMoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "sectionId")
	if err != nil {
		return nil, err
	}
	return s.applyDrop(ctx, editor.Drop{
		EntityID:   id,
		EntityType: domain.EntitySection,
		Index:      getInt(args, "toIndex", 0),
		Duplicate:  getBool(args, "duplicate", false),
	})
}

func (s *Server) handleMoveRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleMove(ctx, req, domain.EntityRow, "rowId", "fromSectionId", "toSectionId")
}

func (s *Server) handleMoveColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleMove(ctx, req, domain.EntityColumn, "columnId", "fromRowId", "toRowId")
}

func (s *Server) handleMoveComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleMove(ctx, req, domain.EntityComponent, "componentId", "fromColumnId", "toColumnId")
}

func (s *Server) handleMove(ctx context.Context, req mcp.CallToolRequest, kind domain.EntityType, idKey, fromKey, toKey string) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, idKey)
	if err != nil {
		return nil, err
	}
	to, err := requireString(args, toKey)
	if err != nil {
		return nil, err
	}
	return s.applyDrop(ctx, editor.Drop{
		EntityID:   id,
		EntityType: kind,
		From:       getString(args, fromKey, ""),
		To:         to,
		Index:      getInt(args, "toIndex", 0),
		Duplicate:  getBool(args, "duplicate", false),
	})
}

func (s *Server) handleDrop(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "entityId")
	if err != nil {
		return nil, err
	}
	kind, err := requireEntityType(args, "entityType")
	if err != nil {
		return nil, err
	}
	return s.applyDrop(ctx, editor.Drop{
		EntityID:   id,
		EntityType: kind,
		From:       getString(args, "from", ""),
		To:         getString(args, "to", ""),
		Index:      getInt(args, "index", 0),
		Duplicate:  getBool(args, "duplicate", false),
	})
}

func (s *Server) applyDrop(ctx context.Context, d editor.Drop) (*mcp.CallToolResult, error) {
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.ApplyDrop(d)
	}))
}

func (s *Server) handleDuplicate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "entityId")
	if err != nil {
		return nil, err
	}
	kind, err := requireEntityType(args, "entityType")
	if err != nil {
		return nil, err
	}
	return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
		return h.Duplicate(kind, id)
	}))
}

func (s *Server) deleteHandler(param string, kind domain.EntityType) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireString(req.GetArguments(), param)
		if err != nil {
			return nil, err
		}
		return s.changeResult(s.pages.Apply(ctx, func(h *editor.History) bool {
			return h.Delete(kind, id)
		}))
	}
}
