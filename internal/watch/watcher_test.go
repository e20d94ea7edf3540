package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"pagebuilder/internal/watch"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	w, err := watch.New(path, 50*time.Millisecond, func(context.Context) { calls.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		os.WriteFile(path, []byte(`{"n":1}`), 0644)
	}
	waitFor(t, func() bool { return calls.Load() >= 1 })

	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one debounced call, got %d", n)
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.json")

	var calls atomic.Int32
	w, err := watch.New(path, 20*time.Millisecond, func(context.Context) { calls.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644)
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("sibling write triggered %d calls", n)
	}

	tmp := filepath.Join(dir, ".pages-tmp.json")
	os.WriteFile(tmp, []byte("{}"), 0644)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return calls.Load() == 1 })
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	w, err := watch.New(filepath.Join(t.TempDir(), "x.json"), 0, func(context.Context) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
