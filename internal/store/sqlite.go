// internal/store/sqlite.go
//
// SQLite-backed cache of generated word lists.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Loading and replacing the pool for a (language, length) pair.
//
// Only candidate pools are stored; no game or player data is persisted.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-cli/assets"
)

// WordCache implements words.Cache on top of SQLite.
type WordCache struct {
	db *sql.DB
}

// OpenWordCache opens (and creates if missing) the cache database and migrates it.
func OpenWordCache(ctx context.Context, dsn string) (*WordCache, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, assets.Migrations()); err != nil {
		db.Close()
		return nil, err
	}
	return &WordCache{db: db}, nil
}

// Close releases the database handle.
func (c *WordCache) Close() error { return c.db.Close() }

// openDB opens a SQLite database file, creating its parent directory
// for paths like ./data/words.db.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases consistent.
	db.SetMaxOpenConns(1)
	return db, nil
}

// migrate applies *.sql files from fsys in lexical order, skipping the
// ones already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// LoadWordList returns the cached pool in insertion order, or nil if none.
func (c *WordCache) LoadWordList(ctx context.Context, language string, length int) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT word FROM wordlists WHERE language=? AND length=? ORDER BY rowid`,
		strings.ToLower(language), length,
	)
	if err != nil {
		return nil, fmt.Errorf("query wordlists: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SaveWordList replaces the cached pool for (language, length).
func (c *WordCache) SaveWordList(ctx context.Context, language string, length int, words []string) error {
	lang := strings.ToLower(language)
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wordlists WHERE language=? AND length=?`, lang, length); err != nil {
		return fmt.Errorf("clear wordlists: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO wordlists (language, length, word) VALUES (?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, lang, length, w); err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wordlists: %w", err)
	}
	log.Info().Str("language", language).Int("length", length).Int("words", len(words)).Msg("cached word list")
	return nil
}
