package ingest

import "golang.org/x/text/unicode/norm"

// Normalize returns text in Unicode NFC so that composed and decomposed
// spellings of a word compare equal to the stoplist entries.
func Normalize(text string) string {
	return norm.NFC.String(text)
}
