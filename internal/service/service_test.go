package service_test

import (
	"context"
	"testing"
	"time"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/service"
)

var (
	homeEN = domain.PageKey{Slug: "home", Lang: "en"}
	homeDE = domain.PageKey{Slug: "home", Lang: "de"}
)

// ─────────────────────────────────────────────────────────────
// SaveGuard tests
// ─────────────────────────────────────────────────────────────

func TestSaveGuard_TryLock(t *testing.T) {
	var g service.ExportedSaveGuard

	if !g.TryLock(homeEN) {
		t.Fatal("expected first TryLock to succeed")
	}
	if g.TryLock(homeEN) {
		t.Fatal("expected second TryLock for same page to fail")
	}
	if !g.TryLock(homeDE) {
		t.Fatal("expected TryLock for different page to succeed")
	}
	// Both format as "a:b:c".
	if !g.TryLock(domain.PageKey{Slug: "a:b", Lang: "c"}) || !g.TryLock(domain.PageKey{Slug: "a", Lang: "b:c"}) {
		t.Fatal("distinct keys with the same string form collided")
	}
	g.Unlock(domain.PageKey{Slug: "a:b", Lang: "c"})
	g.Unlock(domain.PageKey{Slug: "a", Lang: "b:c"})
	g.Unlock(homeEN)
	g.Unlock(homeDE)

	if !g.TryLock(homeEN) {
		t.Fatal("expected TryLock to succeed after unlock")
	}
	g.Unlock(homeEN)
}

func TestSaveGuard_WaitAll(t *testing.T) {
	var g service.ExportedSaveGuard

	if !g.TryLock(homeEN) {
		t.Fatal("expected lock to succeed")
	}

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.WaitAll(ctx)
		close(done)
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		g.Unlock(homeEN)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("WaitAll timed out")
	}
}

func TestSaveGuard_WaitAllRespectsContext(t *testing.T) {
	var g service.ExportedSaveGuard
	stuck := domain.PageKey{Slug: "stuck", Lang: "en"}
	g.TryLock(stuck)
	defer g.Unlock(stuck)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	g.WaitAll(ctx)
	if time.Since(start) > time.Second {
		t.Fatal("WaitAll ignored context cancellation")
	}
}
