// Package rank holds the ordered result of an extraction and the views
// derived from it.
package rank

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/rake/pkg/rake/ingest"
	"github.com/cognicore/rake/pkg/rake/internalerr"
)

// Order is a sort direction
type Order int

const (
	Asc Order = iota
	Desc
)

// ParseOrder parses "asc" or "desc" (case-insensitive).
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return Asc, fmt.Errorf("%w: unknown sort order %q", internalerr.ErrInvalidInput, s)
}

func (o Order) String() string {
	if o == Desc {
		return "desc"
	}
	return "asc"
}

// Entry is a scored candidate phrase
type Entry struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// View is the phrase → score mapping of one extraction. Scores are fixed
// at construction; sorting only changes iteration order.
type View struct {
	entries        []Entry
	scores         map[string]float64
	minLength      int
	filterNumerics bool
}

// NewView creates a view over entries in their given order. minLength and
// filterNumerics apply to Keywords.
func NewView(entries []Entry, minLength int, filterNumerics bool) *View {
	v := &View{
		entries:        append([]Entry(nil), entries...),
		scores:         make(map[string]float64, len(entries)),
		minLength:      minLength,
		filterNumerics: filterNumerics,
	}
	for _, e := range v.entries {
		v.scores[e.Phrase] = e.Score
	}
	return v
}

// Len returns the number of distinct phrases
func (v *View) Len() int {
	return len(v.entries)
}

// Scores returns the entries in the current order
func (v *View) Scores() []Entry {
	return append([]Entry(nil), v.entries...)
}

// Map returns the phrase scores as an unordered map
func (v *View) Map() map[string]float64 {
	m := make(map[string]float64, len(v.scores))
	for p, s := range v.scores {
		m[p] = s
	}
	return m
}

// Score looks up the score of one phrase
func (v *View) Score(phrase string) (float64, bool) {
	s, ok := v.scores[phrase]
	return s, ok
}

// Phrases returns the phrases in the current order
func (v *View) Phrases() []string {
	phrases := make([]string, len(v.entries))
	for i, e := range v.entries {
		phrases[i] = e.Phrase
	}
	return phrases
}

// Top returns the first n entries in the current order
func (v *View) Top(n int) []Entry {
	if n <= 0 || n > len(v.entries) {
		n = len(v.entries)
	}
	return append([]Entry(nil), v.entries[:n]...)
}

// Keywords returns the distinct single words of all phrases, in phrase
// order, after the numeric and minimum length filters.
func (v *View) Keywords() []string {
	seen := make(map[string]struct{})
	var keywords []string

	for _, e := range v.entries {
		for _, w := range strings.Split(e.Phrase, " ") {
			if _, ok := seen[w]; ok || !v.keepKeyword(w) {
				continue
			}
			seen[w] = struct{}{}
			keywords = append(keywords, w)
		}
	}
	return keywords
}

func (v *View) keepKeyword(w string) bool {
	if w == "" {
		return false
	}
	if v.filterNumerics && ingest.IsNumeric(w) {
		return false
	}
	return v.minLength == 0 || utf8.RuneCountInString(w) >= v.minLength
}

// SortByScore orders phrases by score. Ties keep their current relative
// order.
func (v *View) SortByScore(o Order) *View {
	sort.SliceStable(v.entries, func(i, j int) bool {
		if o == Desc {
			return v.entries[i].Score > v.entries[j].Score
		}
		return v.entries[i].Score < v.entries[j].Score
	})
	return v
}

// Sort orders phrases lexicographically by code point.
func (v *View) Sort(o Order) *View {
	sort.SliceStable(v.entries, func(i, j int) bool {
		if o == Desc {
			return v.entries[i].Phrase > v.entries[j].Phrase
		}
		return v.entries[i].Phrase < v.entries[j].Phrase
	})
	return v
}
