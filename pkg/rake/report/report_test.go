package report

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/store/memstore"
)

func testView() *rank.View {
	return rank.NewView([]rank.Entry{
		{Phrase: "keyword extraction", Score: 5.3},
		{Phrase: "rapid automatic keyword extraction", Score: 13.3},
		{Phrase: "difficult", Score: 1},
	}, 0, true)
}

func TestBuilderTopK(t *testing.T) {
	builder := New()
	doc := ingest.Doc{URL: "https://example.com/a", Title: "RAKE"}

	r := builder.Build(doc, testView().SortByScore(rank.Desc), rake.DefaultOptions(), 2)

	if len(r.Phrases) != 2 {
		t.Fatalf("Expected 2 phrases, got %d", len(r.Phrases))
	}
	if r.Phrases[0].Phrase != "rapid automatic keyword extraction" {
		t.Errorf("Expected highest score first, got %q", r.Phrases[0].Phrase)
	}
	if r.URL != doc.URL || r.Title != doc.Title || !r.FilterNumerics {
		t.Errorf("Unexpected report header: %+v", r)
	}

	// Keywords cover the whole view, not just the top k
	want := []string{"rapid", "automatic", "keyword", "extraction", "difficult"}
	if len(r.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", r.Keywords, want)
	}
	for i := range want {
		if r.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, r.Keywords[i], want[i])
		}
	}
}

func TestBuilderKeepsAllWhenTopKZero(t *testing.T) {
	r := New().Build(ingest.Doc{URL: "u"}, testView(), rake.DefaultOptions(), 0)

	if len(r.Phrases) != 3 {
		t.Errorf("Expected all 3 phrases, got %d", len(r.Phrases))
	}
	if r.Phrases[0].Phrase != "keyword extraction" {
		t.Errorf("Expected view order to be kept, got %q", r.Phrases[0].Phrase)
	}
}

func TestBuilderULIDUniqueness(t *testing.T) {
	builder := New()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	builder.now = func() time.Time { return fixed }

	ids := make([]string, 0, 1000)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := builder.Build(ingest.Doc{URL: "u"}, testView(), rake.DefaultOptions(), 1)
		if seen[r.ID] {
			t.Errorf("Duplicate ULID generated: %s", r.ID)
		}
		seen[r.ID] = true
		ids = append(ids, r.ID)
	}

	// Same millisecond: monotonic entropy keeps IDs sorted
	if !sort.StringsAreSorted(ids) {
		t.Error("IDs should sort in creation order")
	}

	parsed, err := ulid.Parse(ids[0])
	if err != nil {
		t.Fatalf("ulid.Parse: %v", err)
	}
	if !ulid.Time(parsed.Time()).Equal(fixed) {
		t.Errorf("ID timestamp = %v, want %v", ulid.Time(parsed.Time()), fixed)
	}
}

func TestBuilderConcurrent(t *testing.T) {
	builder := New()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r := builder.Build(ingest.Doc{URL: "u"}, testView(), rake.DefaultOptions(), 1)
				mu.Lock()
				seen[r.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 800 {
		t.Errorf("Expected 800 unique IDs, got %d", len(seen))
	}
}

func TestBuilderStoredReportsListNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	builder := New()

	var last string
	for i := 0; i < 3; i++ {
		r := builder.Build(ingest.Doc{URL: "https://example.com/a"}, testView(), rake.DefaultOptions(), 0)
		if err := st.SaveReport(ctx, r); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
		last = r.ID
	}

	reports, err := st.ReportsByURL(ctx, "https://example.com/a", 1)
	if err != nil {
		t.Fatalf("ReportsByURL: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != last {
		t.Errorf("Expected newest report %s, got %+v", last, reports)
	}
}
