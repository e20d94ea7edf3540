package editor

import "pagebuilder/internal/domain"

// Drop is a normalized drag/drop gesture. From may be empty, in which case
// the source container is looked up from the entity. From and To are unused
// for sections.
type Drop struct {
	EntityID   string            `json:"entityId"`
	EntityType domain.EntityType `json:"entityType"`
	From       string            `json:"from,omitempty"`
	To         string            `json:"to,omitempty"`
	Index      int               `json:"index"`
	Duplicate  bool              `json:"duplicate,omitempty"`
}

// ApplyDrop routes d to the matching move command.
func (h *History) ApplyDrop(d Drop) bool {
	switch d.EntityType {
	case domain.EntitySection:
		return h.MoveSection(d.EntityID, d.Index, d.Duplicate)
	case domain.EntityRow:
		return h.MoveRow(d.EntityID, d.From, d.To, d.Index, d.Duplicate)
	case domain.EntityColumn:
		return h.MoveColumn(d.EntityID, d.From, d.To, d.Index, d.Duplicate)
	case domain.EntityComponent:
		return h.MoveComponent(d.EntityID, d.From, d.To, d.Index, d.Duplicate)
	}
	return false
}
