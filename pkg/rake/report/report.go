// Package report turns extraction results into storable reports.
package report

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/store"
)

// Builder constructs reports with time-ordered IDs
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Build creates a report for doc from view. Phrases keep the view's
// current order and are cut to the first topK; topK <= 0 keeps all.
// Keywords come from the whole view.
func (b *Builder) Build(doc ingest.Doc, view *rank.View, opts rake.Options, topK int) store.Report {
	now := b.now()
	return store.Report{
		ID:             b.newID(now),
		URL:            doc.URL,
		Title:          doc.Title,
		CreatedAt:      now,
		MinLength:      opts.PhraseMinLength,
		FilterNumerics: opts.FilterNumerics,
		Phrases:        view.Top(topK),
		Keywords:       view.Keywords(),
	}
}

// newID is safe for concurrent use; the monotonic reader is not
func (b *Builder) newID(t time.Time) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), b.entropy).String()
}
