package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/rake/pkg/rake/stoplist"
)

// Segmenter splits sentences into candidate phrases: maximal runs of
// words that are not stopwords.
type Segmenter struct {
	stops          *stoplist.Set
	minLength      int
	filterNumerics bool
}

// NewSegmenter creates a segmenter. minLength is the minimum number of
// characters a word needs to be kept (0 keeps everything); filterNumerics
// drops purely numeric words.
func NewSegmenter(stops *stoplist.Set, minLength int, filterNumerics bool) *Segmenter {
	return &Segmenter{
		stops:          stops,
		minLength:      minLength,
		filterNumerics: filterNumerics,
	}
}

// Segment returns the candidate phrases of all sentences, in encounter
// order. Repeated phrases are kept as separate entries.
func (s *Segmenter) Segment(sentences []string) []string {
	var phrases []string
	for _, sentence := range sentences {
		phrases = s.appendPhrases(phrases, sentence)
	}
	return phrases
}

// appendPhrases tokenizes one sentence on single spaces. A stopword closes
// the current run; filtered words are dropped without closing it.
func (s *Segmenter) appendPhrases(phrases []string, sentence string) []string {
	var run []string
	flush := func() {
		if phrase := strings.TrimSpace(strings.Join(run, " ")); phrase != "" {
			phrases = append(phrases, phrase)
		}
		run = run[:0]
	}

	for _, raw := range strings.Split(strings.ToLower(sentence), " ") {
		word := strings.TrimSpace(raw)
		if s.stops.IsStop(word) {
			flush()
			continue
		}
		if !s.Keep(word) {
			continue
		}
		run = append(run, word)
	}
	flush()

	return phrases
}

// Keep reports whether a non-stopword survives the numeric and length filters.
func (s *Segmenter) Keep(word string) bool {
	if word == "" {
		return false
	}
	if s.filterNumerics && IsNumeric(word) {
		return false
	}
	if s.minLength > 0 && utf8.RuneCountInString(word) < s.minLength {
		return false
	}
	return true
}
