package config

import (
	"fmt"
	"path/filepath"

	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/rank"
	"github.com/cognicore/rake/pkg/rake/stoplist"
)

// SortKey selects what results are ordered by
type SortKey string

const (
	SortByScore  SortKey = "score"
	SortByPhrase SortKey = "phrase"
)

// Loader loads configuration files and constructs components.
// Precedence: Loader fields, process environment, EnvFile, settings file,
// defaults.
type Loader struct {
	SettingsPath string
	StoplistPath string
	EnvFile      string
	Languages    []string
}

// Components holds all loaded configuration components
type Components struct {
	Stopwords *stoplist.Set
	Options   rake.Options
	Sort      SortKey
	Order     rank.Order
	Top       int
	DBPath    string
}

// Load reads all configuration sources and returns initialized components
func (l *Loader) Load() (*Components, error) {
	settings := &Settings{}
	if l.SettingsPath != "" {
		st, err := LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		settings = st
		if settings.Stoplist != "" && !filepath.IsAbs(settings.Stoplist) {
			settings.Stoplist = filepath.Join(filepath.Dir(l.SettingsPath), settings.Stoplist)
		}
	}

	e, err := newEnv(l.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	opts := rake.DefaultOptions()
	if settings.FilterNumerics != nil {
		opts.FilterNumerics = *settings.FilterNumerics
	}
	opts.PhraseMinLength = e.getEnvInt(EnvMinLength, settings.MinLength)
	opts.FilterNumerics = e.getEnvBool(EnvFilterNumerics, opts.FilterNumerics)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{
		Options: opts,
		Sort:    SortByScore,
		Order:   rank.Desc,
		Top:     settings.Top,
		DBPath:  e.getEnv(EnvDB, settings.DB),
	}

	if settings.Sort != "" {
		comp.Sort = SortKey(settings.Sort)
	}
	if comp.Sort != SortByScore && comp.Sort != SortByPhrase {
		return nil, fmt.Errorf("%w: unknown sort key %q", internalerr.ErrInvalidConfig, settings.Sort)
	}
	if settings.Order != "" {
		order, err := rank.ParseOrder(settings.Order)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
		}
		comp.Order = order
	}

	langs := l.Languages
	if len(langs) == 0 {
		langs = e.getEnvList(EnvLanguages, settings.Languages)
	}

	stoplistPath := l.StoplistPath
	if stoplistPath == "" {
		stoplistPath = e.getEnv(EnvStoplist, settings.Stoplist)
	}

	if stoplistPath != "" {
		sl, err := LoadStoplist(stoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		if comp.Stopwords, err = sl.Set(langs...); err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	} else {
		if comp.Stopwords, err = stoplist.Default(langs...); err != nil {
			return nil, fmt.Errorf("load bundled stoplist: %w", err)
		}
	}

	return comp, nil
}

// Extractor builds an extractor from the loaded components
func (c *Components) Extractor() (*rake.Extractor, error) {
	return rake.New(c.Stopwords, c.Options)
}

// Apply orders a view as configured
func (c *Components) Apply(v *rank.View) *rank.View {
	if c.Sort == SortByPhrase {
		return v.Sort(c.Order)
	}
	return v.SortByScore(c.Order)
}
