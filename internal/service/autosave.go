package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Autosaver saves the session on a cron schedule whenever it is dirty.
type Autosaver struct {
	svc      *PageService
	schedule string
	sched    *cron.Cron
}

// NewAutosaver creates an Autosaver. An empty schedule disables it.
func NewAutosaver(svc *PageService, schedule string) *Autosaver {
	return &Autosaver{svc: svc, schedule: schedule}
}

// Start validates the schedule and begins ticking. It is a no-op when the
// schedule is empty.
func (a *Autosaver) Start(ctx context.Context) error {
	if a.schedule == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(a.schedule, func() { a.Tick(ctx) }); err != nil {
		return fmt.Errorf("autosave schedule %q: %w", a.schedule, err)
	}
	c.Start()
	a.sched = c
	log.Printf("[AUTOSAVE] scheduled %q", a.schedule)
	return nil
}

// Tick performs one autosave attempt and reports whether it saved.
func (a *Autosaver) Tick(ctx context.Context) bool {
	saved, err := a.svc.SaveIfDirty(ctx)
	if err != nil {
		log.Printf("[AUTOSAVE] save failed: %v", err)
		return false
	}
	if saved {
		log.Printf("[AUTOSAVE] saved %s", a.svc.State().Slug)
	}
	return saved
}

// Stop halts the schedule and waits for a running tick to finish.
func (a *Autosaver) Stop() {
	if a.sched == nil {
		return
	}
	<-a.sched.Stop().Done()
	a.sched = nil
}
