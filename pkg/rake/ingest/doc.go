package ingest

import (
	"fmt"
	"strings"

	"github.com/cognicore/rake/pkg/rake/internalerr"
)

// Doc is a document handed to batch extraction and reporting
type Doc struct {
	URL   string
	Title string
	Body  string
}

// Validate checks if the document has required fields
func (d *Doc) Validate() error {
	if strings.TrimSpace(d.URL) == "" {
		return fmt.Errorf("%w: doc URL is required", internalerr.ErrInvalidInput)
	}

	if strings.TrimSpace(d.Body) == "" {
		return fmt.Errorf("%w: %s", internalerr.ErrEmptyDocument, d.URL)
	}

	return nil
}
