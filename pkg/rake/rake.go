// Package rake extracts keyword phrases from text with Rapid Automatic
// Keyword Extraction.
//
// Text is split into sentences on punctuation, sentences into candidate
// phrases on stop words, and every phrase is scored by the co-occurrence
// degree and frequency of its words:
//
//	stops, _ := stoplist.Default()
//	ex, _ := rake.New(stops, rake.DefaultOptions())
//	view := ex.Extract(text).SortByScore(rank.Desc)
//
// An Extractor holds no per-call state and may be shared by goroutines.
package rake

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/score"
	"github.com/cognicore/rake/pkg/rake/stoplist"
)

// Options configures an Extractor
type Options struct {
	// PhraseMinLength drops words shorter than this many characters.
	// 0 disables the filter.
	PhraseMinLength int
	// FilterNumerics drops purely numeric words from phrases and keywords.
	FilterNumerics bool
}

// DefaultOptions returns the default extraction options
func DefaultOptions() Options {
	return Options{
		PhraseMinLength: 0,
		FilterNumerics:  true,
	}
}

// Validate checks the options for values extraction cannot use
func (o Options) Validate() error {
	if o.PhraseMinLength < 0 {
		return fmt.Errorf("%w: phrase min length %d is negative", internalerr.ErrInvalidConfig, o.PhraseMinLength)
	}
	return nil
}

// Extractor is the keyword extraction facade
type Extractor struct {
	stops    *stoplist.Set
	opts     Options
	pipeline *ingest.Pipeline
}

// New creates an Extractor over an immutable stop word set
func New(stops *stoplist.Set, opts Options) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{
		stops:    stops,
		opts:     opts,
		pipeline: ingest.NewPipeline(ingest.NewSegmenter(stops, opts.PhraseMinLength, opts.FilterNumerics)),
	}, nil
}

// Options returns the options the extractor was built with
func (e *Extractor) Options() Options {
	return e.opts
}

// Stopwords returns the stop word set in use
func (e *Extractor) Stopwords() *stoplist.Set {
	return e.stops
}

// Extract scores the candidate phrases of text. The view starts in first
// encounter order.
func (e *Extractor) Extract(text string) *rank.View {
	phrases := e.pipeline.Process(text)
	return rank.NewView(score.Phrases(phrases), e.opts.PhraseMinLength, e.opts.FilterNumerics)
}

type job struct {
	index int
	text  string
}

// ExtractBatch extracts every text on a pool of workers. Results keep the
// order of texts. workers <= 0 uses one worker per CPU.
func (e *Extractor) ExtractBatch(ctx context.Context, texts []string, workers int) ([]*rank.View, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(texts) {
		workers = len(texts)
	}

	views := make([]*rank.View, len(texts))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				views[j.index] = e.Extract(j.text)
			}
		}()
	}

	var err error
dispatch:
	for i, text := range texts {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- job{index: i, text: text}:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return views, nil
}
