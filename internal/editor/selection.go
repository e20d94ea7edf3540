package editor

import (
	"slices"

	"pagebuilder/internal/domain"
)

// Selection is view state: the selected entity and the set of collapsed
// sections. It is never recorded in history.
type Selection struct {
	id        string
	kind      domain.EntityType
	collapsed map[string]bool
}

// SelectionState is the serializable form of Selection.
type SelectionState struct {
	SelectedID        string            `json:"selectedId,omitempty"`
	SelectedType      domain.EntityType `json:"selectedType,omitempty"`
	CollapsedSections []string          `json:"collapsedSections"`
}

func NewSelection() *Selection {
	return &Selection{collapsed: make(map[string]bool)}
}

// Select marks id as selected. An empty id or EntityNone clears the selection.
func (s *Selection) Select(id string, kind domain.EntityType) {
	if id == "" || !kind.Valid() {
		s.Clear()
		return
	}
	s.id, s.kind = id, kind
}

func (s *Selection) Clear() {
	s.id, s.kind = "", domain.EntityNone
}

// Selected returns the selected id and its type.
func (s *Selection) Selected() (string, domain.EntityType) {
	return s.id, s.kind
}

// ToggleSectionCollapse flips membership of sectionID in the collapsed set
// and reports the new state.
func (s *Selection) ToggleSectionCollapse(sectionID string) bool {
	if s.collapsed[sectionID] {
		delete(s.collapsed, sectionID)
		return false
	}
	s.collapsed[sectionID] = true
	return true
}

func (s *Selection) IsCollapsed(sectionID string) bool {
	return s.collapsed[sectionID]
}

// CollapsedSectionIDs returns the collapsed set in sorted order.
func (s *Selection) CollapsedSectionIDs() []string {
	ids := make([]string, 0, len(s.collapsed))
	for id := range s.collapsed {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reset clears the selection and the collapsed set. Called on document load.
func (s *Selection) Reset() {
	s.Clear()
	clear(s.collapsed)
}

// Reconcile drops a selection that no longer resolves in p, e.g. after an
// undo removed the selected entity.
func (s *Selection) Reconcile(p *domain.Page) {
	if s.id != "" && !p.Contains(s.kind, s.id) {
		s.Clear()
	}
}

func (s *Selection) State() SelectionState {
	return SelectionState{
		SelectedID:        s.id,
		SelectedType:      s.kind,
		CollapsedSections: s.CollapsedSectionIDs(),
	}
}
