package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/editor"
)

// ─────────────────────────────────────────────────────────────
// Page Service: one editing session over a PageStore
// ─────────────────────────────────────────────────────────────

// Session status strings.
const (
	StatusIdle       = "Idle"
	StatusLoading    = "Loading..."
	StatusLoaded     = "Loaded"
	StatusLoadFailed = "Failed to load"
	StatusSaving     = "Saving..."
	StatusSaved      = "Saved"
	StatusSaveFailed = "Save failed"
)

// SessionState is a point-in-time view of the session.
type SessionState struct {
	Slug      string                `json:"slug"`
	Lang      string                `json:"lang"`
	Title     string                `json:"title"`
	Version   int                   `json:"version"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Status    string                `json:"status"`
	Loaded    bool                  `json:"loaded"`
	Dirty     bool                  `json:"dirty"`
	CanUndo   bool                  `json:"canUndo"`
	CanRedo   bool                  `json:"canRedo"`
	Stats     domain.Stats          `json:"stats"`
	Selection editor.SelectionState `json:"selection"`
}

// HistoryState describes the undo and redo stacks.
type HistoryState struct {
	Undo       []editor.EntryInfo `json:"undo"`
	Redo       []editor.EntryInfo `json:"redo"`
	MaxEntries int                `json:"maxEntries"`
}

// PageService owns the document history, the selection and the persistence
// round-trips of one page at a time. All methods are safe for concurrent
// use; store I/O happens outside the lock.
type PageService struct {
	store     domain.PageStore
	revisions domain.RevisionStore // nil when the store keeps no revisions
	lister    domain.PageLister    // nil when the store cannot enumerate pages
	emitter   EventEmitter
	saves     saveGuard

	mu         sync.Mutex
	history    *editor.History
	selection  *editor.Selection
	key        domain.PageKey
	loaded     bool
	version    int
	updatedAt  time.Time
	status     string
	generation uint64
	savedState uint64
}

// NewPageService creates a PageService. maxHistory bounds the undo stack;
// zero uses editor.DefaultMaxEntries.
func NewPageService(store domain.PageStore, maxHistory int, emitter EventEmitter) *PageService {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	s := &PageService{
		store:     store,
		emitter:   emitter,
		history:   editor.NewHistory(domain.CreateEmptyPage(), maxHistory),
		selection: editor.NewSelection(),
		status:    StatusIdle,
	}
	if rs, ok := store.(domain.RevisionStore); ok {
		s.revisions = rs
	}
	if pl, ok := store.(domain.PageLister); ok {
		s.lister = pl
	}
	return s
}

// SetEmitter replaces the event sink. It is used when the transport that
// consumes events is built after the service.
func (s *PageService) SetEmitter(e EventEmitter) {
	if e == nil {
		e = NopEmitter{}
	}
	s.mu.Lock()
	s.emitter = e
	s.mu.Unlock()
}

// ── Load / Save ────────────────────────────────────────────

// Load fetches the page stored under slug and lang and makes it the present
// document, clearing history and selection. A missing page yields a fresh
// empty page at version 1. If another Load starts before this one finishes,
// this one returns ErrStaleLoad and changes nothing.
func (s *PageService) Load(ctx context.Context, slug, lang string) (SessionState, error) {
	lang, err := domain.NormalizeLang(lang)
	if err != nil {
		return SessionState{}, err
	}
	key := domain.PageKey{Slug: domain.NormalizeSlug(slug), Lang: lang}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.status = StatusLoading
	s.mu.Unlock()

	rec, err := s.store.Load(ctx, key.Slug, key.Lang)
	if errors.Is(err, domain.ErrPageNotFound) {
		rec = &domain.PageRecord{
			Slug:      key.Slug,
			Lang:      key.Lang,
			Title:     domain.DefaultTitle,
			Page:      domain.CreateEmptyPage(),
			Version:   1,
			UpdatedAt: time.Unix(0, 0).UTC(),
		}
		err = nil
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return SessionState{}, ErrStaleLoad
	}
	if err != nil {
		s.status = StatusLoadFailed
		s.mu.Unlock()
		log.Printf("[PAGE] load %s failed: %v", key, err)
		return SessionState{}, fmt.Errorf("load page %s: %w", key, err)
	}

	s.applyRecordLocked(key, rec)
	st := s.stateLocked()
	s.mu.Unlock()

	s.emit(ctx, EventPageLoaded, st)
	return st, nil
}

// applyRecordLocked makes rec the present document with empty history and
// selection. The caller holds s.mu.
func (s *PageService) applyRecordLocked(key domain.PageKey, rec *domain.PageRecord) {
	page := rec.Page
	if page == nil {
		page = domain.CreateEmptyPage()
	}
	if verr := page.Validate(); verr != nil {
		log.Printf("[PAGE] repairing %s: %v", key, verr)
	}
	if page.Title == "" {
		page = page.Clone()
		page.Title = rec.Title
	}
	s.history.Reset(page)
	s.selection.Reset()
	s.key = key
	s.loaded = true
	s.version = rec.Version
	s.updatedAt = rec.UpdatedAt
	s.savedState = s.history.StateID()
	s.status = StatusLoaded
}

// LoadAsync runs Load in the background. Stale results are dropped silently.
func (s *PageService) LoadAsync(ctx context.Context, slug, lang string) {
	go func() {
		if _, err := s.Load(ctx, slug, lang); err != nil && !errors.Is(err, ErrStaleLoad) {
			log.Printf("[PAGE] background load failed: %v", err)
		}
	}()
}

// ReloadIfClean reloads the current page from the store unless the session
// has unsaved edits, nothing is stored yet, or the stored record is the one
// the session already holds. An edit or load that lands while the store is
// being read wins over the reload. It reports whether a reload happened.
func (s *PageService) ReloadIfClean(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if !s.loaded || s.dirtyLocked() {
		s.mu.Unlock()
		return false, nil
	}
	key, version, updatedAt := s.key, s.version, s.updatedAt
	gen, state := s.generation, s.history.StateID()
	s.mu.Unlock()

	rec, err := s.store.Load(ctx, key.Slug, key.Lang)
	if errors.Is(err, domain.ErrPageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check page %s: %w", key, err)
	}
	if rec.Version == version && rec.UpdatedAt.Equal(updatedAt) {
		return false, nil
	}

	s.mu.Lock()
	if gen != s.generation || state != s.history.StateID() || s.dirtyLocked() ||
		version != s.version || !updatedAt.Equal(s.updatedAt) {
		s.mu.Unlock()
		return false, nil
	}
	s.generation++
	s.applyRecordLocked(key, rec)
	st := s.stateLocked()
	s.mu.Unlock()

	s.emit(ctx, EventPageLoaded, st)
	return true, nil
}

// Save persists the present document. A failed save leaves the document,
// the history and the last saved version untouched.
func (s *PageService) Save(ctx context.Context) (*domain.PageRecord, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, ErrNoPageLoaded
	}
	key := s.key
	if !s.saves.TryLock(key) {
		s.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	defer s.saves.Unlock(key)
	page := s.history.Present()
	state := s.history.StateID()
	gen := s.generation
	s.status = StatusSaving
	s.mu.Unlock()

	rec, err := s.store.Save(ctx, key.Slug, key.Lang, page)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Printf("[PAGE] save of %s finished after a reload, result ignored", key)
		return rec, err
	}
	if err != nil {
		s.status = StatusSaveFailed
		s.mu.Unlock()
		log.Printf("[PAGE] save %s failed: %v", key, err)
		return nil, fmt.Errorf("save page %s: %w", key, err)
	}
	s.version = rec.Version
	s.updatedAt = rec.UpdatedAt
	s.savedState = state
	s.status = StatusSaved
	st := s.stateLocked()
	s.mu.Unlock()

	s.emit(ctx, EventPageSaved, st)
	return rec, nil
}

// SaveIfDirty saves only when there are unsaved edits and no other save is
// running. It reports whether a save happened.
func (s *PageService) SaveIfDirty(ctx context.Context) (bool, error) {
	if !s.Dirty() {
		return false, nil
	}
	if _, err := s.Save(ctx); err != nil {
		if errors.Is(err, ErrSaveInProgress) || errors.Is(err, ErrNoPageLoaded) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WaitSaves blocks until running saves finish or ctx is done.
func (s *PageService) WaitSaves(ctx context.Context) {
	s.saves.WaitAll(ctx)
}

// ── Editing ────────────────────────────────────────────────

// Edit runs fn against the session history under the lock. When fn reports
// a change the selection is reconciled and EventPageChanged is emitted.
func (s *PageService) Edit(ctx context.Context, fn func(h *editor.History) (bool, error)) (bool, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false, ErrNoPageLoaded
	}
	changed, err := fn(s.history)
	if !changed {
		s.mu.Unlock()
		return false, err
	}
	s.selection.Reconcile(s.history.Present())
	st := s.stateLocked()
	s.mu.Unlock()

	s.emit(ctx, EventPageChanged, st)
	return true, err
}

// Apply is Edit for commands that cannot fail.
func (s *PageService) Apply(ctx context.Context, fn func(h *editor.History) bool) (bool, error) {
	return s.Edit(ctx, func(h *editor.History) (bool, error) {
		return fn(h), nil
	})
}

func (s *PageService) Undo(ctx context.Context) (bool, error) {
	return s.Apply(ctx, (*editor.History).Undo)
}

func (s *PageService) Redo(ctx context.Context) (bool, error) {
	return s.Apply(ctx, (*editor.History).Redo)
}

// ── Selection ──────────────────────────────────────────────

// Select marks an entity as selected. It reports false when the entity is
// not in the present document.
func (s *PageService) Select(id string, kind domain.EntityType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.history.Present().Contains(kind, id) {
		return false
	}
	s.selection.Select(id, kind)
	return true
}

func (s *PageService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// ToggleSectionCollapse flips the collapsed state of a section and returns
// the new state.
func (s *PageService) ToggleSectionCollapse(sectionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.ToggleSectionCollapse(sectionID)
}

// ── Revisions ──────────────────────────────────────────────

func (s *PageService) Revisions(ctx context.Context) ([]domain.Revision, error) {
	if s.revisions == nil {
		return nil, ErrRevisionsUnsupported
	}
	key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	return s.revisions.ListRevisions(ctx, key.Slug, key.Lang)
}

// RestoreRevision replaces the present document with a stored revision as a
// single undoable edit. The restored page still needs saving.
func (s *PageService) RestoreRevision(ctx context.Context, version int) (bool, error) {
	if s.revisions == nil {
		return false, ErrRevisionsUnsupported
	}
	key, err := s.currentKey()
	if err != nil {
		return false, err
	}
	rev, err := s.revisions.GetRevision(ctx, key.Slug, key.Lang, version)
	if err != nil {
		return false, fmt.Errorf("restore %s v%d: %w", key, version, err)
	}
	return s.Apply(ctx, func(h *editor.History) bool {
		return h.ReplacePage(fmt.Sprintf("restore v%d", rev.Version), rev.Page)
	})
}

// ListPages returns the stored pages whose slug or title contains keyword.
// It does not need a loaded page.
func (s *PageService) ListPages(ctx context.Context, keyword string) ([]domain.PageSummary, error) {
	if s.lister == nil {
		return nil, ErrListingUnsupported
	}
	pages, err := s.lister.ListPages(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// ── Read ───────────────────────────────────────────────────

// Page returns a copy of the present document.
func (s *PageService) Page() *domain.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Present()
}

func (s *PageService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *PageService) History() HistoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HistoryState{
		Undo:       s.history.UndoInfo(),
		Redo:       s.history.RedoInfo(),
		MaxEntries: s.history.MaxEntries(),
	}
}

// Dirty reports whether the present document differs from the last loaded
// or saved one.
func (s *PageService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyLocked()
}

func (s *PageService) emit(ctx context.Context, event string, st SessionState) {
	s.mu.Lock()
	e := s.emitter
	s.mu.Unlock()
	e.Emit(ctx, event, st)
}

func (s *PageService) currentKey() (domain.PageKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.PageKey{}, ErrNoPageLoaded
	}
	return s.key, nil
}

func (s *PageService) dirtyLocked() bool {
	return s.loaded && s.history.StateID() != s.savedState
}

func (s *PageService) stateLocked() SessionState {
	page := s.history.Present()
	return SessionState{
		Slug:      s.key.Slug,
		Lang:      s.key.Lang,
		Title:     page.Title,
		Version:   s.version,
		UpdatedAt: s.updatedAt,
		Status:    s.status,
		Loaded:    s.loaded,
		Dirty:     s.dirtyLocked(),
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
		Stats:     page.Stats(),
		Selection: s.selection.State(),
	}
}
