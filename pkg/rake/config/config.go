package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/stoplist"
)

// Stoplist represents the stopword list configuration. Flat terms and
// per-language lists may be combined in one file.
type Stoplist struct {
	Terms     []string            `yaml:"terms"`
	Languages map[string][]string `yaml:"languages"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if len(sl.Terms) == 0 && len(sl.Languages) == 0 {
		return nil, fmt.Errorf("%w: %s holds no stopwords", internalerr.ErrInvalidConfig, path)
	}

	return &sl, nil
}

// Set pools the flat terms and the selected languages into one set. With
// no langs every language is used.
func (s *Stoplist) Set(langs ...string) (*stoplist.Set, error) {
	if len(langs) == 0 && len(s.Languages) == 0 {
		return stoplist.NewSet(s.Terms), nil
	}
	set, err := stoplist.FromLanguages(s.Languages, langs...)
	if err != nil {
		return nil, err
	}
	return set.With(s.Terms...), nil
}

// Settings represents the extractor settings file (rake.yaml)
type Settings struct {
	Stoplist       string   `yaml:"stoplist"`
	Languages      []string `yaml:"languages"`
	MinLength      int      `yaml:"min_length"`
	FilterNumerics *bool    `yaml:"filter_numerics"`
	Sort           string   `yaml:"sort"`
	Order          string   `yaml:"order"`
	Top            int      `yaml:"top"`
	DB             string   `yaml:"db"`
}

// LoadSettings loads extractor settings from a YAML file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var st Settings
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return &st, nil
}
