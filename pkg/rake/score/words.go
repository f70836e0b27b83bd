package score

import (
	"strings"
	"unicode"

	"github.com/cognicore/rake/pkg/rake/ingest"
)

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '_'
}

// SplitWords splits a phrase into its scoring words on runs of non-word
// characters. Numeric words never take part in scoring, whatever the
// segmentation settings were.
func SplitWords(phrase string) []string {
	fields := strings.FieldsFunc(phrase, func(r rune) bool { return !isWordRune(r) })

	words := fields[:0]
	for _, w := range fields {
		if !ingest.IsNumeric(w) {
			words = append(words, w)
		}
	}
	return words
}
