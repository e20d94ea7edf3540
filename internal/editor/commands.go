package editor

import (
	"fmt"
	"reflect"

	"pagebuilder/internal/domain"
)

// Every command below is atomic: it either records exactly one undo point
// or leaves the history untouched. A command whose target cannot be found
// returns false.

// AddSection inserts a new section at index. A negative index appends.
func (h *History) AddSection(index int) bool {
	return h.Commit("add section", func(p *domain.Page) bool {
		return addSection(p, index)
	})
}

// AddRow inserts a new two-column row into a section.
func (h *History) AddRow(sectionID string, index int) bool {
	return h.Commit("add row", func(p *domain.Page) bool {
		return addRow(p, sectionID, index)
	})
}

// AddColumn inserts an empty column into a row. A zero span uses DefaultSpan.
func (h *History) AddColumn(rowID string, span, index int) bool {
	return h.Commit("add column", func(p *domain.Page) bool {
		return addColumn(p, rowID, span, index)
	})
}

// AddComponent inserts a default component of typ into a column and returns
// the new component's id.
func (h *History) AddComponent(columnID string, typ domain.ComponentType, index int) (string, bool, error) {
	cmp, err := domain.CreateComponent(typ)
	if err != nil {
		return "", false, err
	}
	ok := h.Commit("add "+string(typ), func(p *domain.Page) bool {
		return addComponent(p, columnID, cmp, index)
	})
	if !ok {
		return "", false, nil
	}
	return cmp.ID, true, nil
}

func (h *History) MoveSection(sectionID string, toIndex int, duplicate bool) bool {
	return h.Commit(moveLabel("section", duplicate), func(p *domain.Page) bool {
		return moveSection(p, sectionID, toIndex, duplicate)
	})
}

func (h *History) MoveRow(rowID, fromSectionID, toSectionID string, toIndex int, duplicate bool) bool {
	return h.Commit(moveLabel("row", duplicate), func(p *domain.Page) bool {
		return moveRow(p, rowID, fromSectionID, toSectionID, toIndex, duplicate)
	})
}

func (h *History) MoveColumn(columnID, fromRowID, toRowID string, toIndex int, duplicate bool) bool {
	return h.Commit(moveLabel("column", duplicate), func(p *domain.Page) bool {
		return moveColumn(p, columnID, fromRowID, toRowID, toIndex, duplicate)
	})
}

func (h *History) MoveComponent(componentID, fromColumnID, toColumnID string, toIndex int, duplicate bool) bool {
	return h.Commit(moveLabel("component", duplicate), func(p *domain.Page) bool {
		return moveComponent(p, componentID, fromColumnID, toColumnID, toIndex, duplicate)
	})
}

func moveLabel(kind string, duplicate bool) string {
	if duplicate {
		return "copy " + kind
	}
	return "move " + kind
}

// Duplicate inserts a deep copy with fresh ids directly after the original.
func (h *History) Duplicate(t domain.EntityType, id string) bool {
	return h.Commit("duplicate "+string(t), func(p *domain.Page) bool {
		switch t {
		case domain.EntitySection:
			_, i := p.FindSection(id)
			return i >= 0 && moveSection(p, id, i+1, true)
		case domain.EntityRow:
			_, s, i := p.FindRow(id)
			return s != nil && moveRow(p, id, s.ID, s.ID, i+1, true)
		case domain.EntityColumn:
			_, r, i := p.FindColumn(id)
			return r != nil && moveColumn(p, id, r.ID, r.ID, i+1, true)
		case domain.EntityComponent:
			_, c, i := p.FindComponent(id)
			return c != nil && moveComponent(p, id, c.ID, c.ID, i+1, true)
		}
		return false
	})
}

// DeleteSection removes a section. Deleting the last one leaves a fresh
// default section behind.
func (h *History) DeleteSection(sectionID string) bool {
	return h.Commit("delete section", func(p *domain.Page) bool {
		return deleteSection(p, sectionID)
	})
}

func (h *History) DeleteRow(rowID string) bool {
	return h.Commit("delete row", func(p *domain.Page) bool {
		return deleteRow(p, rowID)
	})
}

func (h *History) DeleteColumn(columnID string) bool {
	return h.Commit("delete column", func(p *domain.Page) bool {
		return deleteColumn(p, columnID)
	})
}

func (h *History) DeleteComponent(componentID string) bool {
	return h.Commit("delete component", func(p *domain.Page) bool {
		return deleteComponent(p, componentID)
	})
}

// Delete dispatches on t.
func (h *History) Delete(t domain.EntityType, id string) bool {
	switch t {
	case domain.EntitySection:
		return h.DeleteSection(id)
	case domain.EntityRow:
		return h.DeleteRow(id)
	case domain.EntityColumn:
		return h.DeleteColumn(id)
	case domain.EntityComponent:
		return h.DeleteComponent(id)
	}
	return false
}

// UpdateComponentProps shallow-merges patch into a component's props. An
// invalid patch is reported as an error and records nothing, as does a patch
// that leaves the props unchanged.
func (h *History) UpdateComponentProps(componentID string, patch []byte) (bool, error) {
	var mergeErr error
	ok := h.Commit("edit props", func(p *domain.Page) bool {
		c, _, _ := p.FindComponent(componentID)
		if c == nil {
			return false
		}
		merged, err := domain.MergeProps(c.Props, patch)
		if err != nil {
			mergeErr = fmt.Errorf("component %s: %w", componentID, err)
			return false
		}
		if reflect.DeepEqual(merged, c.Props) {
			return false
		}
		c.Props = merged
		return true
	})
	return ok, mergeErr
}

// UpdateColumnSpan sets a column's span, clamped to the grid. Setting the
// span a column already has records nothing.
func (h *History) UpdateColumnSpan(columnID string, span int) bool {
	return h.Commit("resize column", func(p *domain.Page) bool {
		return updateColumnSpan(p, columnID, span)
	})
}

func (h *History) UpdatePageMeta(title string) bool {
	return h.Commit("edit page", func(p *domain.Page) bool {
		return updatePageMeta(p, title)
	})
}

// ReplacePage swaps the whole document as one undoable edit. It is used to
// restore an older revision without losing the session's history.
func (h *History) ReplacePage(label string, page *domain.Page) bool {
	if page == nil {
		return false
	}
	return h.Commit(label, func(p *domain.Page) bool {
		next := page.Clone()
		next.Normalize()
		*p = *next
		return true
	})
}
