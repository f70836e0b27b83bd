package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/report"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	file         string
	html         bool
	settingsPath string
	stoplistPath string
	envFile      string
	langs        string
	minLength    int
	keepNumerics bool
	sort         string
	order        string
	top          int
	keywords     bool
	json         bool
	dbPath       string
	dbStoplist   bool
	url          string
	title        string
}

func main() {
	var o cliOptions
	flag.StringVar(&o.file, "file", "", "Input text file (default stdin)")
	flag.BoolVar(&o.html, "html", false, "Strip HTML markup from the input")
	flag.StringVar(&o.settingsPath, "config", "", "Settings file (rake.yaml)")
	flag.StringVar(&o.stoplistPath, "stoplist", "", "Stoplist YAML file (default bundled lists)")
	flag.StringVar(&o.envFile, "env", "", "Env file with RAKE_* overrides")
	flag.StringVar(&o.langs, "lang", "", "Comma separated stoplist languages (default all)")
	flag.IntVar(&o.minLength, "min-length", -1, "Minimum word length in characters (0 disables)")
	flag.BoolVar(&o.keepNumerics, "keep-numerics", false, "Keep purely numeric words")
	flag.StringVar(&o.sort, "sort", "", "Sort by score or phrase")
	flag.StringVar(&o.order, "order", "", "Sort order: asc or desc")
	flag.IntVar(&o.top, "top", -1, "Print only the first N phrases (0 prints all)")
	flag.BoolVar(&o.keywords, "keywords", false, "Print single keywords instead of phrases")
	flag.BoolVar(&o.json, "json", false, "Print JSON")
	flag.StringVar(&o.dbPath, "db", "", "SQLite database for reports and stoplists")
	flag.BoolVar(&o.dbStoplist, "db-stoplist", false, "Read stop words from the database")
	flag.StringVar(&o.url, "url", "", "Document URL recorded in the saved report (default file name)")
	flag.StringVar(&o.title, "title", "", "Document title recorded in the saved report")
	quiet := flag.Bool("quiet", false, "Suppress progress logging")
	flag.Parse()

	if *quiet {
		log.SetOutput(io.Discard)
	}

	if err := run(context.Background(), o, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o cliOptions, stdin io.Reader, stdout io.Writer) error {
	comp, err := loadComponents(o)
	if err != nil {
		return err
	}

	dbPath := o.dbPath
	if dbPath == "" {
		dbPath = comp.DBPath
	}
	if o.dbStoplist && dbPath == "" {
		return fmt.Errorf("--db-stoplist requires --db")
	}

	var st store.Store
	if dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	if o.dbStoplist {
		if comp.Stopwords, err = storedStopwords(ctx, st, splitList(o.langs)); err != nil {
			return err
		}
		log.Printf("Loaded %d stopwords from %s", comp.Stopwords.Len(), dbPath)
	}

	text, err := readInput(o.file, stdin, o.html)
	if err != nil {
		return err
	}

	ex, err := comp.Extractor()
	if err != nil {
		return fmt.Errorf("build extractor: %w", err)
	}
	view := comp.Apply(ex.Extract(text))

	var reportID string
	if st != nil {
		doc := ingest.Doc{URL: o.url, Title: o.title, Body: text}
		if doc.URL == "" {
			doc.URL = o.file
		}
		if doc.URL == "" {
			doc.URL = "stdin"
		}
		r := report.New().Build(doc, view, ex.Options(), comp.Top)
		if err := st.SaveReport(ctx, r); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		reportID = r.ID
		log.Printf("Saved report %s for %s (%d phrases)", r.ID, r.URL, len(r.Phrases))
	}

	return writeOutput(stdout, view, comp.Top, o, reportID)
}

// loadComponents merges flags over the settings and env layers
func loadComponents(o cliOptions) (*config.Components, error) {
	loader := config.Loader{
		SettingsPath: o.settingsPath,
		StoplistPath: o.stoplistPath,
		EnvFile:      o.envFile,
		Languages:    splitList(o.langs),
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if o.minLength >= 0 {
		comp.Options.PhraseMinLength = o.minLength
	}
	if o.keepNumerics {
		comp.Options.FilterNumerics = false
	}
	if o.top >= 0 {
		comp.Top = o.top
	}
	if o.sort != "" {
		key := config.SortKey(o.sort)
		if key != config.SortByScore && key != config.SortByPhrase {
			return nil, fmt.Errorf("unknown sort key %q (want score or phrase)", o.sort)
		}
		comp.Sort = key
	}
	if o.order != "" {
		if comp.Order, err = rank.ParseOrder(o.order); err != nil {
			return nil, err
		}
	}
	return comp, nil
}

func storedStopwords(ctx context.Context, st store.Store, langs []string) (*stoplist.Set, error) {
	byLang, err := st.Stopwords(ctx, langs...)
	if err != nil {
		return nil, fmt.Errorf("load stored stoplist: %w", err)
	}
	if len(byLang) == 0 {
		return nil, fmt.Errorf("database holds no stopwords; run stoplist-import first")
	}
	return stoplist.FromLanguages(byLang)
}

func readInput(path string, stdin io.Reader, html bool) (string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	text := string(data)
	if html {
		if text, err = ingest.StripHTML(text); err != nil {
			return "", fmt.Errorf("strip html: %w", err)
		}
	}
	return text, nil
}

type jsonOutput struct {
	Report   string       `json:"report,omitempty"`
	Phrases  []rank.Entry `json:"phrases,omitempty"`
	Keywords []string     `json:"keywords,omitempty"`
}

func writeOutput(w io.Writer, view *rank.View, top int, o cliOptions, reportID string) error {
	var keywords []string
	if o.keywords {
		keywords = view.Keywords()
		if top > 0 && len(keywords) > top {
			keywords = keywords[:top]
		}
	}

	if o.json {
		out := jsonOutput{Report: reportID, Keywords: keywords}
		if !o.keywords {
			out.Phrases = view.Top(top)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if o.keywords {
		for _, kw := range keywords {
			if _, err := fmt.Fprintln(w, kw); err != nil {
				return err
			}
		}
		return nil
	}
	for _, e := range view.Top(top) {
		if _, err := fmt.Fprintf(w, "%.4f\t%s\n", e.Score, e.Phrase); err != nil {
			return err
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
