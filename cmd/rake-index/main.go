package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cognicore/rake/internal/corpus"
	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/report"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "Database path (default RAKE_DB or settings)")
		dataPath     = flag.String("data", "", "Input JSONL file (required)")
		settingsPath = flag.String("config", "", "Settings file (rake.yaml)")
		stoplistPath = flag.String("stoplist", "", "Stoplist YAML file (default bundled lists)")
		envFile      = flag.String("env", "", "Env file with RAKE_* overrides")
		workers      = flag.Int("workers", 0, "Extraction workers (default one per CPU)")
		timeout      = flag.Duration("timeout", 0, "Abort indexing after this long (0 disables)")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	loader := config.Loader{
		SettingsPath: *settingsPath,
		StoplistPath: *stoplistPath,
		EnvFile:      *envFile,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if *dbPath == "" {
		*dbPath = comp.DBPath
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer st.Close()

	docs, err := corpus.LoadFromJSONL(*dataPath)
	if err != nil {
		log.Fatal("Failed to load documents: ", err)
	}
	log.Printf("Loaded %d documents from %s", len(docs), *dataPath)

	ex, err := comp.Extractor()
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	saved, err := index(ctx, ex, comp, st, docs, *workers)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Indexing complete: %d reports saved in %s", saved, time.Since(start).Round(time.Millisecond))
}

// index extracts every document in parallel and saves one report per
// document. It returns the number of reports saved.
func index(ctx context.Context, ex *rake.Extractor, comp *config.Components, st store.Store, docs []ingest.Doc, workers int) (int, error) {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Body
	}

	views, err := ex.ExtractBatch(ctx, texts, workers)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	builder := report.New()
	saved := 0
	for i, doc := range docs {
		r := builder.Build(doc, comp.Apply(views[i]), ex.Options(), comp.Top)
		if err := st.SaveReport(ctx, r); err != nil {
			log.Printf("Failed to save report for %s: %v", doc.URL, err)
			continue
		}
		saved++

		if saved%100 == 0 {
			log.Printf("Saved %d/%d reports", saved, len(docs))
		}
	}
	return saved, nil
}
