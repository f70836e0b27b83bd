package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/rake/pkg/rake/config"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/store/sqlite"
)

const sampleText = "Keyword extraction is not that difficult after all. There are many libraries that can help you with keyword extraction. Rapid automatic keyword extraction is one of those"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvStoplist, config.EnvLanguages, config.EnvMinLength, config.EnvFilterNumerics, config.EnvDB} {
		t.Setenv(key, "")
	}
}

func defaultCLI() cliOptions {
	return cliOptions{minLength: -1, top: -1}
}

func TestRunPrintsScoredPhrases(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer

	if err := run(context.Background(), defaultCLI(), strings.NewReader(sampleText), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != "13.3333\trapid automatic keyword extraction" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestRunKeywordsTop(t *testing.T) {
	clearEnv(t)
	o := defaultCLI()
	o.keywords = true
	o.top = 2
	var out bytes.Buffer

	if err := run(context.Background(), o, strings.NewReader(sampleText), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := out.String(); got != "rapid\nautomatic\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunJSONSortedByPhrase(t *testing.T) {
	clearEnv(t)
	o := defaultCLI()
	o.json = true
	o.sort = "phrase"
	o.order = "asc"
	var out bytes.Buffer

	if err := run(context.Background(), o, strings.NewReader(sampleText), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var decoded jsonOutput
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Phrases) != 4 || decoded.Phrases[0].Phrase != "difficult" {
		t.Errorf("unexpected phrases: %+v", decoded.Phrases)
	}
	if decoded.Report != "" {
		t.Error("no report should be saved without a database")
	}
}

func TestRunKeepNumerics(t *testing.T) {
	clearEnv(t)
	o := defaultCLI()
	o.keepNumerics = true
	var out bytes.Buffer

	err := run(context.Background(), o, strings.NewReader("6462 Little Crest Suite 413 Lake Carlietown, WA 12643"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "crest suite 413 lake carlietown") {
		t.Errorf("numeric word should be kept: %q", out.String())
	}
}

func TestRunHTMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "page.html")
	html := "<html><head><script>var keyword = 1;</script></head><body><p>Rapid automatic keyword extraction</p></body></html>"
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	o := defaultCLI()
	o.file = path
	o.html = true
	var out bytes.Buffer

	if err := run(context.Background(), o, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "var") {
		t.Errorf("script content leaked into output: %q", out.String())
	}
	if !strings.Contains(out.String(), "rapid automatic keyword extraction") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRunSavesReport(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "rake.db")

	o := defaultCLI()
	o.dbPath = dbPath
	o.url = "https://example.com/rake"
	o.top = 2
	o.json = true
	var out bytes.Buffer

	if err := run(ctx, o, strings.NewReader(sampleText), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var decoded jsonOutput
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Report == "" {
		t.Fatal("Expected a report id")
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	r, err := st.GetReport(ctx, decoded.Report)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if r.URL != o.url || len(r.Phrases) != 2 {
		t.Errorf("unexpected report: %+v", r)
	}
}

func TestRunDBStoplist(t *testing.T) {
	clearEnv(t)
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "rake.db")

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertStoplist(ctx, "en", []string{"and"}); err != nil {
		t.Fatalf("UpsertStoplist: %v", err)
	}
	st.Close()

	o := defaultCLI()
	o.dbPath = dbPath
	o.dbStoplist = true
	o.sort = "phrase"
	o.order = "asc"
	var out bytes.Buffer

	if err := run(ctx, o, strings.NewReader("cats and dogs"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "1.0000\tcats\n1.0000\tdogs\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunDBStoplistRequiresDB(t *testing.T) {
	clearEnv(t)
	o := defaultCLI()
	o.dbStoplist = true

	if err := run(context.Background(), o, strings.NewReader(sampleText), &bytes.Buffer{}); err == nil {
		t.Error("Expected an error without --db")
	}
}

func TestLoadComponentsOverrides(t *testing.T) {
	clearEnv(t)
	o := defaultCLI()
	o.minLength = 4
	o.keepNumerics = true
	o.top = 3
	o.sort = "phrase"
	o.order = "desc"
	o.langs = "en, ru"

	comp, err := loadComponents(o)
	if err != nil {
		t.Fatalf("loadComponents: %v", err)
	}
	if comp.Options.PhraseMinLength != 4 || comp.Options.FilterNumerics {
		t.Errorf("unexpected options: %+v", comp.Options)
	}
	if comp.Top != 3 || comp.Sort != config.SortByPhrase || comp.Order != rank.Desc {
		t.Errorf("unexpected ordering: %+v", comp)
	}
	if comp.Stopwords.IsStop("und") {
		t.Error("German stopwords should not be loaded for en,ru")
	}
}

func TestLoadComponentsInvalidFlags(t *testing.T) {
	clearEnv(t)

	for _, o := range []cliOptions{
		{minLength: -1, top: -1, sort: "length"},
		{minLength: -1, top: -1, order: "up"},
		{minLength: -1, top: -1, stoplistPath: "/nonexistent/stoplist.yaml"},
	} {
		if _, err := loadComponents(o); err == nil {
			t.Errorf("Expected an error for %+v", o)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" en, ,ru,")
	if len(got) != 2 || got[0] != "en" || got[1] != "ru" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}
