package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"pagebuilder/internal/domain"
)

// jsonRecord is one entry of the store file, keyed by "slug:lang".
type jsonRecord struct {
	Title     string       `json:"title"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Version   int          `json:"version"`
	Page      *domain.Page `json:"page"`
}

// JSONFileStore keeps every page in a single indented JSON file. It is
// meant for local use; other processes may edit the file by hand.
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore returns a store backed by path. The file is created on
// first save.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the backing file.
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Load(_ context.Context, slug, lang string) (*domain.PageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	r, ok := all[domain.PageKey{Slug: slug, Lang: lang}.String()]
	if !ok || r.Page == nil {
		return nil, domain.ErrPageNotFound
	}
	return &domain.PageRecord{
		Slug:      slug,
		Lang:      lang,
		Title:     r.Title,
		Page:      r.Page,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (s *JSONFileStore) Save(_ context.Context, slug, lang string, page *domain.Page) (*domain.PageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	key := domain.PageKey{Slug: slug, Lang: lang}.String()
	r := jsonRecord{
		Title:     page.Title,
		UpdatedAt: time.Now().UTC(),
		Version:   all[key].Version + 1,
		Page:      page,
	}
	all[key] = r
	if err := s.write(all); err != nil {
		return nil, err
	}
	return &domain.PageRecord{
		Slug:      slug,
		Lang:      lang,
		Title:     r.Title,
		Page:      page,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// ListPages returns the stored pages whose slug or title contains keyword,
// case insensitively.
func (s *JSONFileStore) ListPages(_ context.Context, keyword string) ([]domain.PageSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []domain.PageSummary
	for key, r := range all {
		i := strings.LastIndexByte(key, ':')
		if i < 0 || r.Page == nil {
			continue
		}
		p := domain.PageSummary{
			Slug:      key[:i],
			Lang:      key[i+1:],
			Title:     r.Title,
			Version:   r.Version,
			UpdatedAt: r.UpdatedAt,
		}
		if p.Matches(keyword) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slug != out[j].Slug {
			return out[i].Slug < out[j].Slug
		}
		return out[i].Lang < out[j].Lang
	})
	return out, nil
}

// Close is a no-op.
func (s *JSONFileStore) Close() error { return nil }

// read returns all records. A missing file is an empty store.
func (s *JSONFileStore) read() (map[string]jsonRecord, error) {
	all := make(map[string]jsonRecord)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(raw) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", s.path, err)
	}
	return all, nil
}

// write replaces the file through a rename so readers never see a partial
// document.
func (s *JSONFileStore) write(all map[string]jsonRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	raw, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pages-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
