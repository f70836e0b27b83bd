// Package store persists stop word lists and extraction reports.
package store

import (
	"context"
	"time"

	"github.com/cognicore/rake/pkg/rake/rank"
)

// Store is the persistence interface shared by the SQLite and in-memory
// implementations
type Store interface {
	Close() error

	// Stoplist
	UpsertStoplist(ctx context.Context, lang string, tokens []string) error
	Stopwords(ctx context.Context, langs ...string) (map[string][]string, error)
	Languages(ctx context.Context) ([]string, error)

	// Reports
	SaveReport(ctx context.Context, r Report) error
	GetReport(ctx context.Context, id string) (Report, error)
	ReportsByURL(ctx context.Context, url string, k int) ([]Report, error)
}

// Report is a stored extraction result for one document
type Report struct {
	ID             string       `json:"id"`
	URL            string       `json:"url"`
	Title          string       `json:"title,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	MinLength      int          `json:"min_length"`
	FilterNumerics bool         `json:"filter_numerics"`
	Phrases        []rank.Entry `json:"phrases"`
	Keywords       []string     `json:"keywords"`
}
