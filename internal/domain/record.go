package domain

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// PageRecord is a page as it is persisted under (slug, lang).
type PageRecord struct {
	Slug      string    `json:"slug"`
	Lang      string    `json:"lang"`
	Title     string    `json:"title"`
	Page      *Page     `json:"page"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Revision is one previously saved version of a page.
type Revision struct {
	Slug    string    `json:"slug"`
	Lang    string    `json:"lang"`
	Version int       `json:"version"`
	Title   string    `json:"title"`
	Page    *Page     `json:"page,omitempty"`
	SavedAt time.Time `json:"savedAt"`
}

// PageStore persists pages keyed by slug and language tag.
// Load returns ErrPageNotFound on a miss. Save increments the stored version
// (starting at 1) and returns the canonical record; concurrent saves are not
// reconciled, the last write wins.
type PageStore interface {
	Load(ctx context.Context, slug, lang string) (*PageRecord, error)
	Save(ctx context.Context, slug, lang string, page *Page) (*PageRecord, error)
}

// RevisionStore is implemented by stores that keep saved versions.
// ListRevisions omits the Page body.
type RevisionStore interface {
	ListRevisions(ctx context.Context, slug, lang string) ([]Revision, error)
	GetRevision(ctx context.Context, slug, lang string, version int) (*Revision, error)
}

// PageSummary describes a stored page without its tree.
type PageSummary struct {
	Slug      string    `json:"slug"`
	Lang      string    `json:"lang"`
	Title     string    `json:"title"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Matches reports whether keyword occurs in the slug or title, ignoring
// case. An empty keyword matches every page.
func (s PageSummary) Matches(keyword string) bool {
	if keyword == "" {
		return true
	}
	fold := cases.Fold()
	kw := fold.String(keyword)
	return strings.Contains(fold.String(s.Slug), kw) || strings.Contains(fold.String(s.Title), kw)
}

// PageLister is implemented by stores that can enumerate their pages.
// ListPages returns the pages whose slug or title contains keyword, case
// insensitively, ordered by slug then language.
type PageLister interface {
	ListPages(ctx context.Context, keyword string) ([]PageSummary, error)
}

// PageKey identifies a stored page.
type PageKey struct {
	Slug string `json:"slug"`
	Lang string `json:"lang"`
}

// String formats k as "slug:lang".
func (k PageKey) String() string {
	return k.Slug + ":" + k.Lang
}
