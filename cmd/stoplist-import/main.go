package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

func main() {
	var (
		dbPath       = flag.String("db", "", "Database path (required)")
		stoplistPath = flag.String("stoplist", "", "Stoplist YAML file (default bundled lists)")
		lang         = flag.String("lang", "", "Language tag for the flat terms list")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	byLang, err := loadLists(*stoplistPath, *lang)
	if err != nil {
		log.Fatal(err)
	}

	counts, err := importLists(ctx, st, byLang)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range sortedKeys(counts) {
		log.Printf("Imported %d stopwords for %s", counts[l], l)
	}
}

// loadLists reads per-language lists from path, or the bundled lists when
// path is empty. Flat terms need a language tag.
func loadLists(path, lang string) (map[string][]string, error) {
	if path == "" {
		return stoplist.Bundled()
	}

	sl, err := config.LoadStoplist(path)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}

	byLang := make(map[string][]string, len(sl.Languages)+1)
	for l, words := range sl.Languages {
		byLang[l] = words
	}
	if len(sl.Terms) > 0 {
		if lang == "" {
			return nil, fmt.Errorf("%s has flat terms; tag them with --lang", path)
		}
		byLang[lang] = append(byLang[lang], sl.Terms...)
	}
	return byLang, nil
}

func importLists(ctx context.Context, st store.Store, byLang map[string][]string) (map[string]int, error) {
	counts := make(map[string]int, len(byLang))
	for _, l := range sortedKeys(byLang) {
		if err := st.UpsertStoplist(ctx, l, byLang[l]); err != nil {
			return nil, fmt.Errorf("import %s: %w", l, err)
		}
		counts[l] = len(byLang[l])
	}
	return counts, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
