package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pagebuilder/internal/domain"
	"pagebuilder/internal/storage"
)

func newSQLiteStore(t *testing.T, keep int) *storage.PageStore {
	t.Helper()
	db, err := storage.NewSQLite(filepath.Join(t.TempDir(), "sub", "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	s := storage.NewPageStore(db, keep)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePage(t *testing.T, title string) *domain.Page {
	t.Helper()
	p := domain.CreateEmptyPage()
	p.Title = title
	cmp, err := domain.CreateComponent(domain.ComponentGallery)
	if err != nil {
		t.Fatal(err)
	}
	col := p.Sections[0].Rows[0].Columns[1]
	col.Components = append(col.Components, cmp)
	return p
}

func TestPageStore_LoadMiss(t *testing.T) {
	s := newSQLiteStore(t, 0)
	if _, err := s.Load(context.Background(), "home", "en"); !errors.Is(err, domain.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageStore_SaveLoadRoundTrip(t *testing.T) {
	s := newSQLiteStore(t, 0)
	ctx := context.Background()
	page := samplePage(t, "Home")

	rec, err := s.Save(ctx, "home", "en", page)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Version != 1 {
		t.Errorf("first version = %d, want 1", rec.Version)
	}

	got, err := s.Load(ctx, "home", "en")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "Home" || got.Version != 1 {
		t.Errorf("record = %+v", got)
	}
	if d := got.UpdatedAt.Sub(rec.UpdatedAt); d > time.Millisecond || d < -time.Millisecond {
		t.Errorf("updatedAt drifted by %v", d)
	}
	if !reflect.DeepEqual(got.Page, page) {
		t.Errorf("page mismatch:\n got %+v\nwant %+v", got.Page, page)
	}

	// Same slug in another language is a separate page.
	if _, err := s.Load(ctx, "home", "de"); !errors.Is(err, domain.ErrPageNotFound) {
		t.Errorf("expected miss for other language, got %v", err)
	}
}

func TestPageStore_VersionIncrements(t *testing.T) {
	s := newSQLiteStore(t, 0)
	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		rec, err := s.Save(ctx, "about", "en", samplePage(t, "About"))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if rec.Version != want {
			t.Fatalf("version = %d, want %d", rec.Version, want)
		}
	}
}

func TestPageStore_RevisionsPruned(t *testing.T) {
	s := newSQLiteStore(t, 2)
	ctx := context.Background()
	for _, title := range []string{"one", "two", "three"} {
		if _, err := s.Save(ctx, "home", "en", samplePage(t, title)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	revs, err := s.ListRevisions(ctx, "home", "en")
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revs) != 2 || revs[0].Version != 3 || revs[1].Version != 2 {
		t.Fatalf("revisions = %+v", revs)
	}
	if revs[0].Page != nil {
		t.Error("listing should omit page bodies")
	}

	rev, err := s.GetRevision(ctx, "home", "en", 2)
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	if rev.Title != "two" || rev.Page == nil || rev.Page.Title != "two" {
		t.Errorf("revision = %+v", rev)
	}

	if _, err := s.GetRevision(ctx, "home", "en", 1); !errors.Is(err, domain.ErrRevisionNotFound) {
		t.Errorf("expected pruned revision to be gone, got %v", err)
	}
}

func TestPageStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	db, err := storage.NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	storage.NewPageStore(db, 0).Save(ctx, "home", "en", samplePage(t, "kept"))
	db.Close()

	db, err = storage.NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	rec, err := storage.NewPageStore(db, 0).Load(ctx, "home", "en")
	if err != nil || rec.Title != "kept" {
		t.Fatalf("Load after reopen: %+v, %v", rec, err)
	}
}

type pageLister interface {
	domain.PageStore
	domain.PageLister
}

func testListPages(t *testing.T, s pageLister) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []struct{ slug, lang, title string }{
		{"home", "fr", "Accueil"},
		{"pricing_v2", "en", "Pricing"},
		{"home", "en", "Home"},
		{"about", "en", "About 100%"},
	} {
		if _, err := s.Save(ctx, p.slug, p.lang, samplePage(t, p.title)); err != nil {
			t.Fatalf("Save %s/%s: %v", p.slug, p.lang, err)
		}
	}
	s.Save(ctx, "home", "en", samplePage(t, "Home"))

	cases := []struct {
		keyword string
		want    []string
	}{
		{"", []string{"about:en", "home:en", "home:fr", "pricing_v2:en"}},
		{"HOME", []string{"home:en", "home:fr"}},
		{"accueil", []string{"home:fr"}},
		{"%", []string{"about:en"}},
		{"_", []string{"pricing_v2:en"}},
		{"contact", nil},
	}
	for _, c := range cases {
		got, err := s.ListPages(ctx, c.keyword)
		if err != nil {
			t.Fatalf("ListPages(%q): %v", c.keyword, err)
		}
		var keys []string
		for _, p := range got {
			keys = append(keys, domain.PageKey{Slug: p.Slug, Lang: p.Lang}.String())
		}
		if !reflect.DeepEqual(keys, c.want) {
			t.Errorf("ListPages(%q) = %v, want %v", c.keyword, keys, c.want)
		}
	}

	all, _ := s.ListPages(ctx, "home")
	if len(all) != 2 || all[0].Title != "Home" || all[0].Version != 2 || all[0].UpdatedAt.IsZero() {
		t.Errorf("summary = %+v", all)
	}
}

func TestPageStore_ListPages(t *testing.T) {
	testListPages(t, newSQLiteStore(t, 0))
}
