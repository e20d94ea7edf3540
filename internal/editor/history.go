package editor

import (
	"time"

	"pagebuilder/internal/domain"
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 100

// entry is an immutable snapshot together with the edit that produced it.
type entry struct {
	page  *domain.Page
	state uint64
	label string
	at    time.Time
}

// EntryInfo describes one undoable or redoable edit.
type EntryInfo struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// History is the undo/redo state machine for a single document.
// It is not safe for concurrent use; callers serialize access.
type History struct {
	past    []entry // oldest first
	present entry
	future  []entry // nearest first

	maxEntries int
	lastState  uint64
}

// NewHistory creates a history whose present is a normalized copy of page.
func NewHistory(page *domain.Page, maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{maxEntries: maxEntries}
	h.Reset(page)
	return h
}

// Reset replaces the present document and clears both stacks. It is the
// only way to change the document without recording an undo point.
func (h *History) Reset(page *domain.Page) {
	if page == nil {
		page = domain.CreateEmptyPage()
	}
	next := page.Clone()
	next.Normalize()
	h.past = nil
	h.future = nil
	h.present = entry{page: next, state: h.nextState(), label: "load", at: time.Now()}
}

// Commit runs fn against a copy of the present page. When fn reports a
// change the copy becomes the present, the previous present is pushed onto
// the undo stack and the redo stack is cleared. Otherwise nothing happens.
func (h *History) Commit(label string, fn func(p *domain.Page) bool) bool {
	next := h.present.page.Clone()
	if !fn(next) {
		return false
	}
	h.past = append(h.past, h.present)
	if excess := len(h.past) - h.maxEntries; excess > 0 {
		h.past = h.past[excess:]
	}
	h.future = nil
	h.present = entry{page: next, state: h.nextState(), label: label, at: time.Now()}
	return true
}

// Undo restores the most recent snapshot. It reports false when there is
// nothing to undo.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	last := len(h.past) - 1
	prev := h.past[last]
	h.past = h.past[:last]
	h.future = append([]entry{h.present}, h.future...)
	h.present = prev
	return true
}

// Redo re-applies the nearest undone edit. It reports false when there is
// nothing to redo.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}

// Present returns a deep copy of the current document.
func (h *History) Present() *domain.Page {
	return h.present.page.Clone()
}

// StateID identifies the present snapshot. It changes on every commit and
// moves with undo and redo, so equal ids mean equal documents.
func (h *History) StateID() uint64 {
	return h.present.state
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// UndoCount returns the number of undo snapshots.
func (h *History) UndoCount() int { return len(h.past) }

// RedoCount returns the number of redo snapshots.
func (h *History) RedoCount() int { return len(h.future) }

// MaxEntries returns the undo depth limit.
func (h *History) MaxEntries() int { return h.maxEntries }

// UndoInfo lists the edits that undo would revert, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	info := make([]EntryInfo, 0, len(h.past))
	for i := 1; i < len(h.past); i++ {
		info = append(info, EntryInfo{Label: h.past[i].label, At: h.past[i].at})
	}
	if len(h.past) > 0 {
		info = append(info, EntryInfo{Label: h.present.label, At: h.present.at})
	}
	return info
}

// RedoInfo lists the edits that redo would re-apply, nearest first.
func (h *History) RedoInfo() []EntryInfo {
	info := make([]EntryInfo, len(h.future))
	for i, e := range h.future {
		info[i] = EntryInfo{Label: e.label, At: e.at}
	}
	return info
}

func (h *History) nextState() uint64 {
	h.lastState++
	return h.lastState
}
