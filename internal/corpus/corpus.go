// Package corpus loads document collections for batch extraction.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/rake/pkg/rake/ingest"
)

// maxLine bounds a single JSONL record
const maxLine = 16 << 20

// Item is one JSONL record
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"text"`
	HTML  bool   `json:"html"`
}

// LoadFromJSONL loads documents from a JSONL file. Malformed lines and
// documents without a URL or body are skipped with a warning.
func LoadFromJSONL(path string) ([]ingest.Doc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	defer f.Close()

	var docs []ingest.Doc
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", lineNo, path, err)
			continue
		}

		doc, err := item.Doc()
		if err != nil {
			log.Printf("Warning: skipping line %d in %s: %v", lineNo, path, err)
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", path)
	}

	return docs, nil
}

// Doc converts the record to a validated document, stripping markup when
// the record is flagged as HTML.
func (it Item) Doc() (ingest.Doc, error) {
	doc := ingest.Doc{URL: it.URL, Title: it.Title, Body: it.Body}
	if it.HTML {
		body, err := ingest.StripHTML(it.Body)
		if err != nil {
			return ingest.Doc{}, err
		}
		doc.Body = body
	}
	if err := doc.Validate(); err != nil {
		return ingest.Doc{}, err
	}
	return doc, nil
}
