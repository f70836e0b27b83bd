package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/stoplist"
	"github.com/cognicore/rake/pkg/rake/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	// Single connection: writers queue instead of failing with SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS stoplist (
	lang TEXT NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(lang, token)
);

CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	title TEXT,
	created_at TEXT NOT NULL,
	min_length INTEGER NOT NULL DEFAULT 0,
	filter_numerics INTEGER NOT NULL DEFAULT 1,
	phrases TEXT NOT NULL,
	keywords TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_url ON reports(url);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertStoplist replaces the stop words of one language in a single
// transaction.
func (s *sqliteStore) UpsertStoplist(ctx context.Context, lang string, tokens []string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return fmt.Errorf("%w: empty stoplist language", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stoplist WHERE lang = ?`, lang); err != nil {
		return err
	}

	if len(tokens) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stoplist (lang, token) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tok := range tokens {
			if tok = stoplist.Normalize(tok); tok == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, lang, tok); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Stopwords returns the stored words grouped by language. With no langs
// every stored language is returned.
func (s *sqliteStore) Stopwords(ctx context.Context, langs ...string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT lang, token FROM stoplist ORDER BY lang, token`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byLang := make(map[string][]string)
	for rows.Next() {
		var lang, tok string
		if err := rows.Scan(&lang, &tok); err != nil {
			return nil, err
		}
		byLang[lang] = append(byLang[lang], tok)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return selectLanguages(byLang, langs)
}

// Languages lists the stored stoplist languages in sorted order
func (s *sqliteStore) Languages(ctx context.Context) ([]string, error) {
	return s.loadStringColumn(ctx, `SELECT DISTINCT lang FROM stoplist ORDER BY lang`)
}

// SaveReport inserts or replaces a report
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" || r.URL == "" {
		return fmt.Errorf("%w: report needs an id and a url", internalerr.ErrInvalidInput)
	}

	phrasesJSON, err := json.Marshal(r.Phrases)
	if err != nil {
		return err
	}
	keywordsJSON, err := json.Marshal(r.Keywords)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO reports (id, url, title, created_at, min_length, filter_numerics, phrases, keywords)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	url=excluded.url,
	title=excluded.title,
	created_at=excluded.created_at,
	min_length=excluded.min_length,
	filter_numerics=excluded.filter_numerics,
	phrases=excluded.phrases,
	keywords=excluded.keywords;
`, r.ID, r.URL, r.Title, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.MinLength, r.FilterNumerics,
		string(phrasesJSON), string(keywordsJSON))
	return err
}

const reportColumns = `id, url, title, created_at, min_length, filter_numerics, phrases, keywords`

// GetReport loads a report by id
func (s *sqliteStore) GetReport(ctx context.Context, id string) (store.Report, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Report{}, fmt.Errorf("report %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// ReportsByURL returns the newest k reports for a document URL
func (s *sqliteStore) ReportsByURL(ctx context.Context, url string, k int) ([]store.Report, error) {
	if k <= 0 {
		k = 10
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+reportColumns+`
FROM reports
WHERE url = ?
ORDER BY id DESC
LIMIT ?;
`, url, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []store.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (store.Report, error) {
	var r store.Report
	var title sql.NullString
	var createdAt, phrasesJSON, keywordsJSON string
	if err := sc.Scan(&r.ID, &r.URL, &title, &createdAt, &r.MinLength, &r.FilterNumerics, &phrasesJSON, &keywordsJSON); err != nil {
		return store.Report{}, err
	}
	r.Title = title.String

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Report{}, fmt.Errorf("report %s: created_at: %w", r.ID, err)
	}
	r.CreatedAt = t

	if err := json.Unmarshal([]byte(phrasesJSON), &r.Phrases); err != nil {
		return store.Report{}, fmt.Errorf("report %s: phrases: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &r.Keywords); err != nil {
		return store.Report{}, fmt.Errorf("report %s: keywords: %w", r.ID, err)
	}
	return r, nil
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func selectLanguages(byLang map[string][]string, langs []string) (map[string][]string, error) {
	if len(langs) == 0 {
		return byLang, nil
	}
	out := make(map[string][]string, len(langs))
	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		words, ok := byLang[lang]
		if !ok {
			return nil, fmt.Errorf("%w: %q", internalerr.ErrUnknownLanguage, lang)
		}
		out[lang] = words
	}
	return out, nil
}
