package app

import (
	"context"
	"log"
	"sync"
	"time"

	"pagebuilder/internal/service"
)

// pageWatcher polls the store for changes to the open page made by another
// process, for drivers that have no file to watch. A clean session is
// reloaded; a dirty one keeps its edits.
type pageWatcher struct {
	ctx      context.Context
	pages    *service.PageService
	interval time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func newPageWatcher(ctx context.Context, pages *service.PageService, interval time.Duration) *pageWatcher {
	return &pageWatcher{ctx: ctx, pages: pages, interval: interval}
}

// Start begins the polling loop.
func (w *pageWatcher) Start() {
	w.stopCh = make(chan struct{})
	w.wg.Add(1)
	go w.pollLoop()
}

// Stop terminates the polling loop and waits for a running check.
func (w *pageWatcher) Stop() {
	if w.stopCh != nil {
		close(w.stopCh)
		w.wg.Wait()
		w.stopCh = nil
	}
}

func (w *pageWatcher) pollLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

// check reports whether the session was reloaded.
func (w *pageWatcher) check() bool {
	reloaded, err := w.pages.ReloadIfClean(w.ctx)
	if err != nil {
		log.Printf("[WATCH] poll failed: %v", err)
		return false
	}
	if reloaded {
		st := w.pages.State()
		log.Printf("[WATCH] %s/%s changed in the store, reloaded v%d", st.Slug, st.Lang, st.Version)
	}
	return reloaded
}
