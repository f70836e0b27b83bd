package ingest

import (
	"strings"
	"unicode/utf8"
)

// lineBreaks collapses every physical line terminator to one space so a
// sentence wrapped across lines stays in one piece.
var lineBreaks = strings.NewReplacer(
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
	"\u2028", " ",
	"\u2029", " ",
)

func isSentenceBreak(r rune) bool {
	switch r {
	case '.', '!', '?', ',', ';', ':', '\t', '"', '(', ')':
		return true
	}
	return false
}

// SplitSentences breaks text into sentence-like segments on punctuation.
// Segments are returned verbatim, empty ones included; case and
// surrounding whitespace are left for the segmenter.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}
	text = lineBreaks.Replace(text)

	var sentences []string
	start := 0
	for i, r := range text {
		if isSentenceBreak(r) {
			sentences = append(sentences, text[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(sentences, text[start:])
}
