package editor

import (
	"slices"

	"pagebuilder/internal/domain"
)

// The functions in this file edit a page in place and report whether they
// found their target. They never touch history; History.Commit wraps them.

// clampIndex forces i into [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// appendIndex maps a negative index to n (append) and clamps the rest.
func appendIndex(i, n int) int {
	if i < 0 {
		return n
	}
	return clampIndex(i, n)
}

// moveWithin relocates or duplicates items[from] to index to within the
// same slice. to is clamped against the pre-removal length and shifted down
// by one when the item came from before it, so the result never drifts.
func moveWithin[T any](items []T, from, to int, dup func(T) T) []T {
	at := clampIndex(to, len(items))
	if dup != nil {
		return slices.Insert(items, at, dup(items[from]))
	}
	moved := items[from]
	items = slices.Delete(items, from, from+1)
	if from < at {
		at--
	}
	return slices.Insert(items, at, moved)
}

// ── Add ────────────────────────────────────────────────────

func addSection(p *domain.Page, index int) bool {
	p.Sections = slices.Insert(p.Sections, appendIndex(index, len(p.Sections)), domain.CreateSection())
	return true
}

func addRow(p *domain.Page, sectionID string, index int) bool {
	s, _ := p.FindSection(sectionID)
	if s == nil {
		return false
	}
	s.Rows = slices.Insert(s.Rows, appendIndex(index, len(s.Rows)), domain.CreateRow())
	return true
}

func addColumn(p *domain.Page, rowID string, span, index int) bool {
	r, _, _ := p.FindRow(rowID)
	if r == nil {
		return false
	}
	if span == 0 {
		span = domain.DefaultSpan
	}
	r.Columns = slices.Insert(r.Columns, appendIndex(index, len(r.Columns)), domain.CreateColumn(span))
	return true
}

func addComponent(p *domain.Page, columnID string, cmp *domain.Component, index int) bool {
	c, _, _ := p.FindColumn(columnID)
	if c == nil {
		return false
	}
	c.Components = slices.Insert(c.Components, appendIndex(index, len(c.Components)), cmp)
	return true
}

// ── Move ───────────────────────────────────────────────────

func moveSection(p *domain.Page, sectionID string, toIndex int, duplicate bool) bool {
	_, from := p.FindSection(sectionID)
	if from < 0 {
		return false
	}
	var dup func(*domain.Section) *domain.Section
	if duplicate {
		dup = (*domain.Section).Duplicate
	}
	p.Sections = moveWithin(p.Sections, from, toIndex, dup)
	return true
}

// moveRow moves a row between sections. An empty fromSectionID means the
// source is looked up from the row itself.
func moveRow(p *domain.Page, rowID, fromSectionID, toSectionID string, toIndex int, duplicate bool) bool {
	src, from, ok := resolveRow(p, rowID, fromSectionID)
	if !ok {
		return false
	}
	dst, _ := p.FindSection(toSectionID)
	if dst == nil {
		return false
	}
	var dup func(*domain.Row) *domain.Row
	if duplicate {
		dup = (*domain.Row).Duplicate
	}
	if src == dst {
		src.Rows = moveWithin(src.Rows, from, toIndex, dup)
		return true
	}

	at := clampIndex(toIndex, len(dst.Rows))
	if dup != nil {
		dst.Rows = slices.Insert(dst.Rows, at, dup(src.Rows[from]))
		return true
	}
	moved := src.Rows[from]
	src.Rows = slices.Delete(src.Rows, from, from+1)
	dst.Rows = slices.Insert(dst.Rows, at, moved)
	if len(src.Rows) == 0 {
		src.Rows = append(src.Rows, domain.CreateRow())
	}
	return true
}

// moveColumn moves a column between rows. An empty fromRowID means the
// source is looked up from the column itself.
func moveColumn(p *domain.Page, columnID, fromRowID, toRowID string, toIndex int, duplicate bool) bool {
	src, from, ok := resolveColumn(p, columnID, fromRowID)
	if !ok {
		return false
	}
	dst, _, _ := p.FindRow(toRowID)
	if dst == nil {
		return false
	}
	var dup func(*domain.Column) *domain.Column
	if duplicate {
		dup = (*domain.Column).Duplicate
	}
	if src == dst {
		src.Columns = moveWithin(src.Columns, from, toIndex, dup)
		return true
	}

	at := clampIndex(toIndex, len(dst.Columns))
	if dup != nil {
		dst.Columns = slices.Insert(dst.Columns, at, dup(src.Columns[from]))
		return true
	}
	moved := src.Columns[from]
	src.Columns = slices.Delete(src.Columns, from, from+1)
	dst.Columns = slices.Insert(dst.Columns, at, moved)
	if len(src.Columns) == 0 {
		src.Columns = append(src.Columns, domain.CreateColumn(domain.MaxSpan))
	}
	return true
}

// moveComponent moves a component between columns. An empty fromColumnID
// means the source is looked up from the component itself. Columns may end
// up empty.
func moveComponent(p *domain.Page, componentID, fromColumnID, toColumnID string, toIndex int, duplicate bool) bool {
	src, from, ok := resolveComponent(p, componentID, fromColumnID)
	if !ok {
		return false
	}
	dst, _, _ := p.FindColumn(toColumnID)
	if dst == nil {
		return false
	}
	var dup func(*domain.Component) *domain.Component
	if duplicate {
		dup = (*domain.Component).Duplicate
	}
	if src == dst {
		src.Components = moveWithin(src.Components, from, toIndex, dup)
		return true
	}

	at := clampIndex(toIndex, len(dst.Components))
	if dup != nil {
		dst.Components = slices.Insert(dst.Components, at, dup(src.Components[from]))
		return true
	}
	moved := src.Components[from]
	src.Components = slices.Delete(src.Components, from, from+1)
	dst.Components = slices.Insert(dst.Components, at, moved)
	return true
}

func resolveRow(p *domain.Page, rowID, sectionID string) (*domain.Section, int, bool) {
	if sectionID == "" {
		_, s, i := p.FindRow(rowID)
		return s, i, s != nil
	}
	s, _ := p.FindSection(sectionID)
	if s == nil {
		return nil, -1, false
	}
	i := s.RowIndex(rowID)
	return s, i, i >= 0
}

func resolveColumn(p *domain.Page, columnID, rowID string) (*domain.Row, int, bool) {
	if rowID == "" {
		_, r, i := p.FindColumn(columnID)
		return r, i, r != nil
	}
	r, _, _ := p.FindRow(rowID)
	if r == nil {
		return nil, -1, false
	}
	i := r.ColumnIndex(columnID)
	return r, i, i >= 0
}

func resolveComponent(p *domain.Page, componentID, columnID string) (*domain.Column, int, bool) {
	if columnID == "" {
		_, c, i := p.FindComponent(componentID)
		return c, i, c != nil
	}
	c, _, _ := p.FindColumn(columnID)
	if c == nil {
		return nil, -1, false
	}
	i := c.ComponentIndex(componentID)
	return c, i, i >= 0
}

// ── Delete ─────────────────────────────────────────────────

func deleteSection(p *domain.Page, sectionID string) bool {
	_, i := p.FindSection(sectionID)
	if i < 0 {
		return false
	}
	p.Sections = slices.Delete(p.Sections, i, i+1)
	if len(p.Sections) == 0 {
		p.Sections = append(p.Sections, domain.CreateSection())
	}
	return true
}

func deleteRow(p *domain.Page, rowID string) bool {
	_, s, i := p.FindRow(rowID)
	if s == nil {
		return false
	}
	s.Rows = slices.Delete(s.Rows, i, i+1)
	if len(s.Rows) == 0 {
		s.Rows = append(s.Rows, domain.CreateRow())
	}
	return true
}

func deleteColumn(p *domain.Page, columnID string) bool {
	_, r, i := p.FindColumn(columnID)
	if r == nil {
		return false
	}
	r.Columns = slices.Delete(r.Columns, i, i+1)
	if len(r.Columns) == 0 {
		r.Columns = append(r.Columns, domain.CreateColumn(domain.MaxSpan))
	}
	return true
}

func deleteComponent(p *domain.Page, componentID string) bool {
	_, c, i := p.FindComponent(componentID)
	if c == nil {
		return false
	}
	c.Components = slices.Delete(c.Components, i, i+1)
	return true
}

// ── Properties ─────────────────────────────────────────────

func updateColumnSpan(p *domain.Page, columnID string, span int) bool {
	c, _, _ := p.FindColumn(columnID)
	if c == nil {
		return false
	}
	span = domain.ClampSpan(span)
	if c.Span == span {
		return false
	}
	c.Span = span
	return true
}

func updatePageMeta(p *domain.Page, title string) bool {
	if p.Title == title {
		return false
	}
	p.Title = title
	return true
}
