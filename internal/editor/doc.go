// Package editor holds the editing core for page documents.
//
// # History
//
// A History owns one document: the present page plus linear undo (past)
// and redo (future) stacks of snapshots. Every edit runs on a private deep
// copy of the present page; if the edit finds its target the copy becomes
// the new present, the old present is pushed onto past and future is
// cleared. If the target is missing the copy is discarded and nothing is
// recorded.
//
//	h := editor.NewHistory(domain.CreateEmptyPage(), 100)
//	h.AddComponent(columnID, domain.ComponentText, 0)
//	h.Undo()
//	h.Redo()
//
// Snapshots are never mutated after they are recorded, so undo and redo
// only move entries between the stacks.
//
// # Structural invariants
//
// Edits keep every Section holding at least one Row and every Row holding
// at least one Column by re-seeding default children when a delete or a
// cross-container move would empty them. Spans are clamped into [1, 12]
// and insertion indexes into the destination bounds.
//
// # Selection
//
// Selection tracks the selected node and collapsed sections. It is view
// state and never enters the history.
package editor
