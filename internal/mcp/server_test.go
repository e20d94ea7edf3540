package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/service"
	"pagebuilder/internal/storage"

	"github.com/mark3labs/mcp-go/mcp"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := storage.NewJSONFileStore(filepath.Join(t.TempDir(), "pages.json"))
	pages := service.NewPageService(store, 0, nil)
	s := New(Deps{Pages: pages, DefaultSlug: "home", DefaultLang: "en"})
	pages.SetEmitter(s)
	if _, err := call(t, s.handleLoadPage, nil); err != nil {
		t.Fatalf("load_page: %v", err)
	}
	return s
}

func call(t *testing.T, h handler, args map[string]any) (string, error) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		return "", err
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return text.Text, nil
}

func decodeEdit(t *testing.T, text string) editResult {
	t.Helper()
	var r editResult
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		t.Fatalf("decode edit result: %v\n%s", err, text)
	}
	return r
}

func TestTools_AddComponentAndUpdateProps(t *testing.T) {
	s := newTestServer(t)
	col := s.pages.Page().Sections[0].Rows[0].Columns[0].ID

	out, err := call(t, s.handleAddComponent, map[string]any{"columnId": col, "type": "button"})
	if err != nil {
		t.Fatalf("add_component: %v", err)
	}
	added := decodeEdit(t, out)
	if !added.Changed || added.ID == "" || added.State.Stats.Components != 1 {
		t.Fatalf("add result = %+v", added)
	}

	out, err = call(t, s.handleUpdateComponentProps, map[string]any{
		"componentId": added.ID,
		"props":       map[string]any{"label": "Buy now"},
	})
	if err != nil {
		t.Fatalf("update_component_props: %v", err)
	}
	if !decodeEdit(t, out).Changed {
		t.Fatal("props update reported no change")
	}
	cmp, _, _ := s.pages.Page().FindComponent(added.ID)
	if got := cmp.Props.(domain.ButtonProps); got.Label != "Buy now" || got.Href != "#" {
		t.Errorf("props = %+v", got)
	}

	if _, err := call(t, s.handleUpdateComponentProps, map[string]any{
		"componentId": added.ID,
		"props":       `{"label": 5}`,
	}); err == nil {
		t.Error("expected mistyped patch to fail")
	}

	if _, err := call(t, s.handleAddComponent, map[string]any{"columnId": col, "type": "video"}); err == nil {
		t.Error("expected unknown component type to fail")
	}
}

func TestTools_MissingIDIsUnchanged(t *testing.T) {
	s := newTestServer(t)
	out, err := call(t, s.deleteHandler("rowId", domain.EntityRow), map[string]any{"rowId": "row-missing"})
	if err != nil {
		t.Fatalf("delete_row: %v", err)
	}
	if r := decodeEdit(t, out); r.Changed || r.State.CanUndo {
		t.Errorf("result = %+v", r)
	}

	if _, err := call(t, s.deleteHandler("rowId", domain.EntityRow), nil); err == nil {
		t.Error("expected missing argument error")
	}
}

func TestTools_DropAndUndo(t *testing.T) {
	s := newTestServer(t)
	row := s.pages.Page().Sections[0].Rows[0]
	a, b := row.Columns[0].ID, row.Columns[1].ID

	out, err := call(t, s.handleDrop, map[string]any{
		"entityId": a, "entityType": "column", "to": row.ID, "index": float64(2),
	})
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if !decodeEdit(t, out).Changed {
		t.Fatal("drop reported no change")
	}
	cols := s.pages.Page().Sections[0].Rows[0].Columns
	if cols[0].ID != b || cols[1].ID != a {
		t.Fatalf("order after drop = [%s %s]", cols[0].ID, cols[1].ID)
	}

	if _, err := call(t, s.handleUndo, nil); err != nil {
		t.Fatalf("undo: %v", err)
	}
	cols = s.pages.Page().Sections[0].Rows[0].Columns
	if cols[0].ID != a {
		t.Error("undo did not restore column order")
	}

	if _, err := call(t, s.handleDrop, map[string]any{
		"entityId": a, "entityType": "widget", "index": float64(0),
	}); err == nil {
		t.Error("expected invalid entity type error")
	}
}

func TestTools_SaveAndRevisionsUnsupported(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleUpdatePageMeta, map[string]any{"title": "Hello"})

	out, err := call(t, s.handleSavePage, nil)
	if err != nil {
		t.Fatalf("save_page: %v", err)
	}
	if !strings.Contains(out, "version 1") {
		t.Errorf("save output = %q", out)
	}

	// The JSON file store keeps no revisions.
	if _, err := call(t, s.handleListRevisions, nil); err == nil {
		t.Error("expected list_revisions to fail on the JSON store")
	}
}

func TestTools_ListPages(t *testing.T) {
	s := newTestServer(t)
	out, err := call(t, s.handleListPages, nil)
	if err != nil {
		t.Fatalf("list_pages: %v", err)
	}
	if out != "No pages found" {
		t.Errorf("empty store output = %q", out)
	}

	call(t, s.handleSavePage, nil)
	call(t, s.handleLoadPage, map[string]any{"slug": "pricing"})
	call(t, s.handleUpdatePageMeta, map[string]any{"title": "Plans"})
	call(t, s.handleSavePage, nil)

	out, err = call(t, s.handleListPages, map[string]any{"keyword": "plan"})
	if err != nil {
		t.Fatalf("list_pages: %v", err)
	}
	var pages []domain.PageSummary
	if err := json.Unmarshal([]byte(out), &pages); err != nil {
		t.Fatalf("decode pages: %v\n%s", err, out)
	}
	if len(pages) != 1 || pages[0].Slug != "pricing" || pages[0].Title != "Plans" {
		t.Errorf("pages = %+v", pages)
	}
}

func TestTools_SelectAndSpan(t *testing.T) {
	s := newTestServer(t)
	page := s.pages.Page()
	sec := page.Sections[0].ID
	col := page.Sections[0].Rows[0].Columns[0].ID

	if _, err := call(t, s.handleSelect, map[string]any{"entityId": sec, "entityType": "section"}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := call(t, s.handleSelect, map[string]any{"entityId": "nope", "entityType": "section"}); err == nil {
		t.Error("expected select of a missing section to fail")
	}
	out, _ := call(t, s.handleToggleSectionCollapse, map[string]any{"sectionId": sec})
	if !strings.Contains(out, "collapsed") {
		t.Errorf("toggle output = %q", out)
	}

	call(t, s.handleUpdateColumnSpan, map[string]any{"columnId": col, "span": float64(40)})
	if got := s.pages.Page().Sections[0].Rows[0].Columns[0].Span; got != 12 {
		t.Errorf("span = %d, want 12", got)
	}
	if _, err := call(t, s.handleUpdateColumnSpan, map[string]any{"columnId": col}); err == nil {
		t.Error("expected missing span error")
	}
}

func TestResources(t *testing.T) {
	s := newTestServer(t)
	contents, err := s.handleSessionResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("session resource: %v", err)
	}
	text := contents[0].(mcp.TextResourceContents)
	var st service.SessionState
	if err := json.Unmarshal([]byte(text.Text), &st); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if st.Slug != "home" || st.Lang != "en" || st.Status != service.StatusLoaded {
		t.Errorf("session = %+v", st)
	}

	contents, err = s.handlePageResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("page resource: %v", err)
	}
	var page domain.Page
	if err := json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Sections) != 1 {
		t.Errorf("sections = %d", len(page.Sections))
	}
}

func TestPropsPatch(t *testing.T) {
	if _, err := propsPatch(nil); err == nil {
		t.Error("nil patch accepted")
	}
	if _, err := propsPatch(42.0); err == nil {
		t.Error("number patch accepted")
	}
	b, err := propsPatch(map[string]any{"height": 10.0})
	if err != nil || string(b) != `{"height":10}` {
		t.Errorf("patch = %s, %v", b, err)
	}
}
