package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"pagebuilder/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSessionTools() {
	// ── get_page ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_page",
		mcp.WithDescription("Return the current page tree: sections, rows, columns and components with their ids"),
	), s.handleGetPage)

	// ── load_page ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("load_page",
		mcp.WithDescription("Load a page for editing. Clears undo history and selection. A page that was never saved starts empty."),
		mcp.WithString("slug", mcp.Description("Page slug (optional, defaults to the configured page)")),
		mcp.WithString("lang", mcp.Description("BCP 47 language tag (optional)")),
	), s.handleLoadPage)

	// ── list_pages ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_pages",
		mcp.WithDescription("List stored pages (slug, lang, title, version). Use load_page to open one."),
		mcp.WithString("keyword", mcp.Description("Only pages whose slug or title contains this text, ignoring case (optional)")),
	), s.handleListPages)

	// ── save_page ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_page",
		mcp.WithDescription("Persist the current page. Returns the stored version."),
	), s.handleSavePage)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last edit"),
	), s.handleUndo)
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone edit"),
	), s.handleRedo)

	// ── history ────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("history",
		mcp.WithDescription("List the edits that undo and redo would apply"),
	), s.handleHistory)

	// ── list_revisions ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_revisions",
		mcp.WithDescription("List previously saved versions of the current page"),
	), s.handleListRevisions)

	// ── restore_revision ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("restore_revision",
		mcp.WithDescription("Replace the page with a saved version. The restore can be undone and still needs save_page."),
		mcp.WithNumber("version", mcp.Description("Version number from list_revisions"), mcp.Required()),
	), s.handleRestoreRevision)
}

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.pages.Page())
}

func (s *Server) handleLoadPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slug := getString(args, "slug", s.defaultSlug)
	lang := getString(args, "lang", s.defaultLang)
	st, err := s.pages.Load(ctx, slug, lang)
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	return jsonResult(st)
}

func (s *Server) handleListPages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pages, err := s.pages.ListPages(ctx, getString(req.GetArguments(), "keyword", ""))
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return textResult("No pages found"), nil
	}
	return jsonResult(pages)
}

func (s *Server) handleSavePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := s.pages.Save(ctx)
	if errors.Is(err, service.ErrSaveInProgress) {
		return textResult("A save is already in progress"), nil
	}
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Saved %s (%s) as version %d", rec.Slug, rec.Lang, rec.Version)), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.changeResult(s.pages.Undo(ctx))
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.changeResult(s.pages.Redo(ctx))
}

func (s *Server) handleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.pages.History())
}

func (s *Server) handleListRevisions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	revs, err := s.pages.Revisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	return jsonResult(revs)
}

func (s *Server) handleRestoreRevision(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version := getInt(req.GetArguments(), "version", 0)
	if version <= 0 {
		return nil, fmt.Errorf("version is required")
	}
	return s.changeResult(s.pages.RestoreRevision(ctx, version))
}
