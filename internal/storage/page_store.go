package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pagebuilder/internal/domain"
)

// DefaultRevisionsKept is how many saved versions are kept per page.
const DefaultRevisionsKept = 40

// PageStore persists pages in the pages table and keeps saved versions in
// page_revisions.
type PageStore struct {
	db   *DB
	keep int
}

// NewPageStore creates a PageStore. keep bounds the revisions kept per page;
// zero uses DefaultRevisionsKept.
func NewPageStore(db *DB, keep int) *PageStore {
	if keep <= 0 {
		keep = DefaultRevisionsKept
	}
	return &PageStore{db: db, keep: keep}
}

// Load returns the page stored under slug and lang, or domain.ErrPageNotFound.
func (s *PageStore) Load(ctx context.Context, slug, lang string) (*domain.PageRecord, error) {
	rec := &domain.PageRecord{Slug: slug, Lang: lang}
	var schemaJSON string
	err := s.db.Conn().QueryRowContext(ctx, s.db.rebind(
		`SELECT title, schema_json, version, updated_at FROM pages WHERE slug = ? AND lang = ?`),
		slug, lang,
	).Scan(&rec.Title, &schemaJSON, &rec.Version, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	page, err := decodePage(schemaJSON)
	if err != nil {
		return nil, err
	}
	rec.Page = page
	return rec, nil
}

// Save writes page as the next version and records a revision. The read of
// the current version and the write share a transaction.
func (s *PageStore) Save(ctx context.Context, slug, lang string, page *domain.Page) (*domain.PageRecord, error) {
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, s.db.rebind(
		`SELECT version FROM pages WHERE slug = ? AND lang = ?`), slug, lang,
	).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, s.db.rebind(
			`INSERT INTO pages (slug, lang, title, schema_json, version, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`),
			slug, lang, page.Title, string(raw), 1, now, now,
		)
	case err == nil:
		_, err = tx.ExecContext(ctx, s.db.rebind(
			`UPDATE pages SET title = ?, schema_json = ?, version = ?, updated_at = ?
			 WHERE slug = ? AND lang = ?`),
			page.Title, string(raw), current+1, now, slug, lang,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("write page: %w", err)
	}
	version := current + 1

	if _, err := tx.ExecContext(ctx, s.db.rebind(
		`INSERT INTO page_revisions (slug, lang, version, title, schema_json, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		slug, lang, version, page.Title, string(raw), now,
	); err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.db.rebind(
		`DELETE FROM page_revisions WHERE slug = ? AND lang = ? AND version <= ?`),
		slug, lang, version-s.keep,
	); err != nil {
		return nil, fmt.Errorf("prune revisions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save: %w", err)
	}
	return &domain.PageRecord{
		Slug:      slug,
		Lang:      lang,
		Title:     page.Title,
		Page:      page,
		Version:   version,
		UpdatedAt: now,
	}, nil
}

// ListPages returns the stored pages whose slug or title contains keyword,
// case insensitively.
func (s *PageStore) ListPages(ctx context.Context, keyword string) ([]domain.PageSummary, error) {
	query := `SELECT slug, lang, title, version, updated_at FROM pages`
	var args []any
	if keyword != "" {
		query += ` WHERE LOWER(slug) LIKE ? ESCAPE '!' OR LOWER(title) LIKE ? ESCAPE '!'`
		pattern := "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY slug, lang`

	rows, err := s.db.Conn().QueryContext(ctx, s.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var out []domain.PageSummary
	for rows.Next() {
		var p domain.PageSummary
		if err := rows.Scan(&p.Slug, &p.Lang, &p.Title, &p.Version, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListRevisions returns the kept revisions of a page, newest first, without
// their page bodies.
func (s *PageStore) ListRevisions(ctx context.Context, slug, lang string) ([]domain.Revision, error) {
	rows, err := s.db.Conn().QueryContext(ctx, s.db.rebind(
		`SELECT version, title, saved_at FROM page_revisions
		 WHERE slug = ? AND lang = ? ORDER BY version DESC`), slug, lang,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		r := domain.Revision{Slug: slug, Lang: lang}
		if err := rows.Scan(&r.Version, &r.Title, &r.SavedAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRevision returns one kept revision with its page body.
func (s *PageStore) GetRevision(ctx context.Context, slug, lang string, version int) (*domain.Revision, error) {
	r := &domain.Revision{Slug: slug, Lang: lang, Version: version}
	var schemaJSON string
	err := s.db.Conn().QueryRowContext(ctx, s.db.rebind(
		`SELECT title, schema_json, saved_at FROM page_revisions
		 WHERE slug = ? AND lang = ? AND version = ?`), slug, lang, version,
	).Scan(&r.Title, &schemaJSON, &r.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRevisionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}
	if r.Page, err = decodePage(schemaJSON); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the underlying database.
func (s *PageStore) Close() error {
	return s.db.Close()
}

func decodePage(raw string) (*domain.Page, error) {
	var p domain.Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode page schema: %w", err)
	}
	return &p, nil
}
