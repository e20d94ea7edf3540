package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/storage"
)

func TestJSONFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pages.json")
	s := storage.NewJSONFileStore(path)
	ctx := context.Background()

	if _, err := s.Load(ctx, "home", "en"); !errors.Is(err, domain.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound on missing file, got %v", err)
	}

	page := samplePage(t, "Home")
	rec, err := s.Save(ctx, "home", "en", page)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Version != 1 {
		t.Errorf("version = %d, want 1", rec.Version)
	}
	rec, _ = s.Save(ctx, "home", "en", page)
	if rec.Version != 2 {
		t.Errorf("version = %d, want 2", rec.Version)
	}

	got, err := storage.NewJSONFileStore(path).Load(ctx, "home", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.Page, page) || got.Version != 2 || !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("record = %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the store file, found %d entries", len(entries))
	}
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.NewJSONFileStore(path).Load(context.Background(), "home", "en"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestJSONFileStore_HandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	raw := `{
  "home:en": {
    "title": "Hand made",
    "updatedAt": "2024-05-01T10:00:00Z",
    "version": 7,
    "page": {"sections": [{"id": "section-1", "rows": []}]}
  }
}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	rec, err := storage.NewJSONFileStore(path).Load(context.Background(), "home", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Version != 7 || rec.Title != "Hand made" {
		t.Errorf("record = %+v", rec)
	}
	if !rec.UpdatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("updatedAt = %v", rec.UpdatedAt)
	}
	if len(rec.Page.Sections) != 1 {
		t.Errorf("sections = %d", len(rec.Page.Sections))
	}
}

func TestJSONFileStore_ListPages(t *testing.T) {
	testListPages(t, storage.NewJSONFileStore(filepath.Join(t.TempDir(), "pages.json")))
}
