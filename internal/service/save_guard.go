package service

import (
	"context"
	"sync"

	"pagebuilder/internal/domain"
)

// ExportedSaveGuard is an exported alias so _test packages can test the guard.
type ExportedSaveGuard = saveGuard

// ─────────────────────────────────────────────────────────────
// saveGuard: prevents overlapping saves of the same page
// ─────────────────────────────────────────────────────────────

// saveGuard ensures only one save per page key runs at a time. Autosave
// ticks and explicit saves share it.
type saveGuard struct {
	mu      sync.Mutex
	running map[domain.PageKey]struct{}
	wg      sync.WaitGroup
}

// TryLock marks key as saving. Returns false if a save is already running.
func (g *saveGuard) TryLock(key domain.PageKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running == nil {
		g.running = make(map[domain.PageKey]struct{})
	}
	if _, ok := g.running[key]; ok {
		return false
	}
	g.running[key] = struct{}{}
	g.wg.Add(1)
	return true
}

// Unlock releases key. Must be called after TryLock returns true.
func (g *saveGuard) Unlock(key domain.PageKey) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
	g.wg.Done()
}

// WaitAll blocks until all running saves complete or ctx is cancelled.
func (g *saveGuard) WaitAll(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
