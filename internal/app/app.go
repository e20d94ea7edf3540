package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"pagebuilder/internal/config"
	mcpserver "pagebuilder/internal/mcp"
	"pagebuilder/internal/service"
	"pagebuilder/internal/storage"
	"pagebuilder/internal/watch"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// shutdownTimeout bounds how long Shutdown waits for running saves.
const shutdownTimeout = 10 * time.Second

// App owns the store, the editing session and everything that feeds it.
type App struct {
	ctx context.Context
	cfg *config.Config

	store    storage.Store
	pages    *service.PageService
	server   *mcpserver.Server
	autosave *service.Autosaver

	// Only one of these runs, depending on the storage driver.
	fileWatch *watch.Watcher
	poller    *pageWatcher
}

// New creates a new App for cfg.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	return &App{cfg: cfg}
}

// Startup opens storage, loads slug/lang (falling back to the configured
// defaults) and starts autosave and change detection.
func (a *App) Startup(ctx context.Context, slug, lang string) error {
	a.ctx = ctx
	cfg := a.cfg

	store, err := storage.Open(ctx, storageOptions(cfg), cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	a.store = store

	a.pages = service.NewPageService(store, cfg.Editor.MaxHistory, nil)
	a.server = mcpserver.New(mcpserver.Deps{
		Pages:       a.pages,
		DefaultSlug: cfg.Editor.DefaultSlug,
		DefaultLang: cfg.Editor.DefaultLang,
		Version:     Version,
	})
	a.pages.SetEmitter(a.server)

	if slug == "" {
		slug = cfg.Editor.DefaultSlug
	}
	if lang == "" {
		lang = cfg.Editor.DefaultLang
	}
	st, err := a.pages.Load(ctx, slug, lang)
	if err != nil {
		a.closeStore()
		return fmt.Errorf("load page: %w", err)
	}
	log.Printf("[PAGE] loaded %s/%s v%d", st.Slug, st.Lang, st.Version)

	a.autosave = service.NewAutosaver(a.pages, cfg.Autosave.Schedule)
	if err := a.autosave.Start(ctx); err != nil {
		a.closeStore()
		return err
	}

	if cfg.Watch.Enabled {
		if err := a.startWatching(ctx); err != nil {
			// Change detection is optional; the session works without it.
			log.Printf("[WATCH] disabled: %v", err)
		}
	}
	return nil
}

func (a *App) startWatching(ctx context.Context) error {
	if js, ok := a.store.(*storage.JSONFileStore); ok {
		w, err := watch.New(js.Path(), watch.DefaultDebounce, a.reload)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		a.fileWatch = w
		return nil
	}

	interval, err := a.cfg.Watch.Poll()
	if err != nil || interval == 0 {
		return err
	}
	a.poller = newPageWatcher(ctx, a.pages, interval)
	a.poller.Start()
	log.Printf("[WATCH] polling every %s", interval)
	return nil
}

// reload pulls in external changes unless the session has unsaved edits.
func (a *App) reload(ctx context.Context) {
	reloaded, err := a.pages.ReloadIfClean(ctx)
	if err != nil {
		log.Printf("[WATCH] reload failed: %v", err)
		return
	}
	if reloaded {
		st := a.pages.State()
		log.Printf("[WATCH] reloaded %s/%s v%d", st.Slug, st.Lang, st.Version)
	}
}

// Shutdown stops background work, flushes unsaved edits when autosave is
// enabled and closes the store.
func (a *App) Shutdown(ctx context.Context) {
	if a.fileWatch != nil {
		a.fileWatch.Close()
		a.fileWatch = nil
	}
	if a.poller != nil {
		a.poller.Stop()
		a.poller = nil
	}
	if a.autosave != nil {
		a.autosave.Stop()
	}

	if a.pages != nil {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		a.pages.WaitSaves(ctx)
		if a.cfg.Autosave.Schedule != "" {
			if _, err := a.pages.SaveIfDirty(ctx); err != nil {
				log.Printf("[PAGE] final save failed: %v", err)
			}
		} else if a.pages.Dirty() {
			log.Printf("[PAGE] discarding unsaved edits to %s", a.pages.State().Slug)
		}
	}
	a.closeStore()
}

func (a *App) closeStore() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		log.Printf("[STORE] close: %v", err)
	}
	a.store = nil
}

// Pages returns the editing session.
func (a *App) Pages() *service.PageService { return a.pages }

// Server returns the MCP server.
func (a *App) Server() *mcpserver.Server { return a.server }

func storageOptions(cfg *config.Config) storage.Options {
	s := cfg.Storage
	return storage.Options{
		Driver:        s.Driver,
		Path:          s.Path,
		Host:          s.Host,
		Port:          s.Port,
		Database:      s.Database,
		Username:      s.Username,
		Password:      s.Password,
		SSLMode:       s.SSLMode,
		URI:           s.URI,
		Collection:    s.Collection,
		RevisionsKept: cfg.Editor.RevisionsKept,
	}
}
