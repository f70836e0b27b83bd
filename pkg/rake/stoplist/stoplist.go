// Package stoplist provides the immutable stop word set consumed by the
// phrase segmenter. A Set pools the words of any number of languages into
// one flat, case-normalized membership index.
package stoplist

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/rake/pkg/rake/internalerr"
)

//go:embed data/stopwords.yaml
var bundled []byte

// Set is a read-only stop word set. It is safe for concurrent use.
type Set struct {
	words map[string]struct{}
	langs []string
}

// NewSet creates a set from a flat word list.
func NewSet(words []string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	s.add(words)
	return s
}

// FromLanguages pools the given per-language lists into one set. With no
// langs every language in byLang is used.
func FromLanguages(byLang map[string][]string, langs ...string) (*Set, error) {
	if len(langs) == 0 {
		for lang := range byLang {
			langs = append(langs, lang)
		}
	}

	s := &Set{words: make(map[string]struct{})}
	for _, lang := range uniqueSorted(langs) {
		words, ok := byLang[lang]
		if !ok {
			return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownLanguage, lang)
		}
		s.add(words)
		s.langs = append(s.langs, lang)
	}
	return s, nil
}

type bundledFile struct {
	Languages map[string][]string `yaml:"languages"`
}

// Bundled returns the embedded per-language stop word lists.
func Bundled() (map[string][]string, error) {
	var f bundledFile
	if err := yaml.Unmarshal(bundled, &f); err != nil {
		return nil, fmt.Errorf("parse bundled stopwords: %w", err)
	}
	return f.Languages, nil
}

// Default builds a set from the embedded multilingual stop words,
// restricted to langs when any are given.
func Default(langs ...string) (*Set, error) {
	byLang, err := Bundled()
	if err != nil {
		return nil, err
	}
	return FromLanguages(byLang, langs...)
}

// IsStop checks if a token is a stopword. A nil set has no stopwords.
func (s *Set) IsStop(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[token]
	return ok
}

// Len returns the number of distinct stopwords.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// All returns all stopwords in sorted order.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.words))
	for w := range s.words {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}

// Languages lists the language codes pooled into the set, if known.
func (s *Set) Languages() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.langs...)
}

// With returns a new set holding s plus words. s is left untouched.
func (s *Set) With(words ...string) *Set {
	out := s.clone()
	out.add(words)
	return out
}

// Without returns a new set holding s minus words. s is left untouched.
func (s *Set) Without(words ...string) *Set {
	out := s.clone()
	for _, w := range words {
		delete(out.words, Normalize(w))
	}
	return out
}

func (s *Set) clone() *Set {
	out := &Set{words: make(map[string]struct{}, s.Len())}
	if s == nil {
		return out
	}
	for w := range s.words {
		out.words[w] = struct{}{}
	}
	out.langs = append(out.langs, s.langs...)
	return out
}

func (s *Set) add(words []string) {
	for _, w := range words {
		if w = Normalize(w); w != "" {
			s.words[w] = struct{}{}
		}
	}
}

// Normalize maps a word to the form stored in a Set: NFC, trimmed, lowercase.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(word)))
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
