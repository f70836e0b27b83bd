// Package score implements the RAKE word and phrase scoring.
//
// A word scores (degree + frequency) / frequency, where degree sums
// (phrase length - 1) over the phrases containing it. A phrase scores the
// sum of its words. Both stages split phrases with SplitWords, so every
// word of a phrase has a score.
package score

import (
	"fmt"

	"github.com/cognicore/rake/pkg/rake/rank"
)

// WordScores scans the candidate phrases once and scores every word.
func WordScores(phrases []string) map[string]float64 {
	counter := NewCounter()
	for _, phrase := range phrases {
		counter.AddPhrase(SplitWords(phrase))
	}
	return counter.Scores()
}

// PhraseScores sums word scores per distinct phrase. Entries follow the
// first occurrence of each phrase; a phrase without scoring words gets 0.
//
// It panics if a word has no score, which means wordScores was not built
// from the same phrases.
func PhraseScores(phrases []string, wordScores map[string]float64) []rank.Entry {
	index := make(map[string]int, len(phrases))
	entries := make([]rank.Entry, 0, len(phrases))

	for _, phrase := range phrases {
		if _, seen := index[phrase]; seen {
			continue
		}

		total := 0.0
		for _, w := range SplitWords(phrase) {
			s, ok := wordScores[w]
			if !ok {
				panic(fmt.Sprintf("score: word %q of phrase %q has no score", w, phrase))
			}
			total += s
		}

		index[phrase] = len(entries)
		entries = append(entries, rank.Entry{Phrase: phrase, Score: total})
	}

	return entries
}

// Phrases scores candidate phrases end to end.
func Phrases(phrases []string) []rank.Entry {
	return PhraseScores(phrases, WordScores(phrases))
}
