package domain_test

import (
	"testing"

	"pagebuilder/internal/domain"
)

func buildPage(t *testing.T) *domain.Page {
	t.Helper()
	p := domain.CreateEmptyPage()
	p.Sections = append(p.Sections, domain.CreateSection())
	c, err := domain.CreateComponent(domain.ComponentButton)
	if err != nil {
		t.Fatal(err)
	}
	second := p.Sections[1].Rows[0].Columns[1]
	second.Components = append(second.Components, c)
	return p
}

func TestFind_ReturnsParents(t *testing.T) {
	p := buildPage(t)
	sec := p.Sections[1]
	row := sec.Rows[0]
	col := row.Columns[1]
	cmp := col.Components[0]

	if s, i := p.FindSection(sec.ID); s != sec || i != 1 {
		t.Errorf("FindSection = (%v, %d)", s, i)
	}
	if r, parent, i := p.FindRow(row.ID); r != row || parent != sec || i != 0 {
		t.Errorf("FindRow returned wrong parent or index %d", i)
	}
	if c, parent, i := p.FindColumn(col.ID); c != col || parent != row || i != 1 {
		t.Errorf("FindColumn returned wrong parent or index %d", i)
	}
	if c, parent, i := p.FindComponent(cmp.ID); c != cmp || parent != col || i != 0 {
		t.Errorf("FindComponent returned wrong parent or index %d", i)
	}
}

func TestFind_Miss(t *testing.T) {
	p := buildPage(t)
	if s, i := p.FindSection("nope"); s != nil || i != -1 {
		t.Error("expected section miss")
	}
	if r, s, i := p.FindRow("nope"); r != nil || s != nil || i != -1 {
		t.Error("expected row miss")
	}
	if c, r, i := p.FindColumn("nope"); c != nil || r != nil || i != -1 {
		t.Error("expected column miss")
	}
	if c, col, i := p.FindComponent("nope"); c != nil || col != nil || i != -1 {
		t.Error("expected component miss")
	}
	if p.Contains(domain.EntityRow, p.Sections[0].ID) {
		t.Error("Contains must respect the entity type")
	}
}
