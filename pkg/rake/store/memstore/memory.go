package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	stops    map[string]map[string]struct{}
	reports  map[string]store.Report
	urlIndex map[string][]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		stops:    make(map[string]map[string]struct{}),
		reports:  make(map[string]store.Report),
		urlIndex: make(map[string][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertStoplist replaces the stop words of one language.
func (s *Store) UpsertStoplist(ctx context.Context, lang string, tokens []string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return fmt.Errorf("%w: empty stoplist language", internalerr.ErrInvalidInput)
	}

	words := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok = stoplist.Normalize(tok); tok != "" {
			words[tok] = struct{}{}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(words) == 0 {
		delete(s.stops, lang)
		return nil
	}
	s.stops[lang] = words
	return nil
}

// Stopwords returns sorted words grouped by language.
func (s *Store) Stopwords(ctx context.Context, langs ...string) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(langs) == 0 {
		for lang := range s.stops {
			langs = append(langs, lang)
		}
	}

	out := make(map[string][]string, len(langs))
	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		words, ok := s.stops[lang]
		if !ok {
			return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownLanguage, lang)
		}
		list := make([]string, 0, len(words))
		for w := range words {
			list = append(list, w)
		}
		sort.Strings(list)
		out[lang] = list
	}
	return out, nil
}

// Languages lists stored stoplist languages in sorted order.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	langs := make([]string, 0, len(s.stops))
	for lang := range s.stops {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// SaveReport stores a copy of r, replacing any report with the same id.
func (s *Store) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" || r.URL == "" {
		return fmt.Errorf("%w: report needs an id and a url", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, exists := s.reports[r.ID]
	if exists && old.URL != r.URL {
		s.urlIndex[old.URL] = remove(s.urlIndex[old.URL], r.ID)
	}
	if !exists || old.URL != r.URL {
		s.urlIndex[r.URL] = append(s.urlIndex[r.URL], r.ID)
	}
	s.reports[r.ID] = copyReport(r)
	return nil
}

// GetReport returns the report with the given id.
func (s *Store) GetReport(ctx context.Context, id string) (store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return store.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	return copyReport(r), nil
}

// ReportsByURL returns the newest k reports for url, newest first.
func (s *Store) ReportsByURL(ctx context.Context, url string, k int) ([]store.Report, error) {
	if k <= 0 {
		k = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := append([]string(nil), s.urlIndex[url]...)
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	if len(ids) > k {
		ids = ids[:k]
	}

	result := make([]store.Report, 0, len(ids))
	for _, id := range ids {
		result = append(result, copyReport(s.reports[id]))
	}
	return result, nil
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func copyReport(r store.Report) store.Report {
	out := r
	out.Phrases = append([]rank.Entry(nil), r.Phrases...)
	out.Keywords = append([]string(nil), r.Keywords...)
	return out
}
