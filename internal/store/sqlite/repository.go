// Package sqlite stores dictionary entries in SQLite through sqlx and the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/noah-isme/devtools-playground/internal/store"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const (
	selectByWord = `SELECT id, word, definition, created_at FROM dictionary_entries WHERE word = ?`
	insertEntry  = `INSERT INTO dictionary_entries (word, definition, created_at) VALUES (?, ?, ?)`
)

// Repository is an sqlx-backed store.Repository.
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens the database file at path. Use ":memory:" for a private
// in-memory database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer and every :memory: connection is a
	// separate database.
	db.SetMaxOpenConns(1)
	return db, nil
}

// PathFromURL converts a sqlite:// URL into a file path understood by the
// driver. "sqlite:///./app.db" is relative, "sqlite:////var/app.db" is
// absolute, and an empty path selects an in-memory database.
func PathFromURL(raw string) string {
	rest := raw
	if idx := strings.Index(raw, "://"); idx >= 0 {
		rest = raw[idx+len("://"):]
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" || rest == ":memory:" {
		return ":memory:"
	}
	return rest
}

// New wraps an open database.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// DB exposes the underlying handle for migrations.
func (r *Repository) DB() *sql.DB {
	return r.db.DB
}

// FindByWord returns the entry stored under word.
func (r *Repository) FindByWord(ctx context.Context, word string) (store.Entry, error) {
	var entry store.Entry
	if err := r.db.GetContext(ctx, &entry, selectByWord, word); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Entry{}, store.ErrNotFound
		}
		return store.Entry{}, fmt.Errorf("query dictionary entry: %w", err)
	}
	return entry, nil
}

// Create inserts a new entry. A unique violation on word is reported as
// store.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, word, definition string) (store.Entry, error) {
	createdAt := r.now().UTC().Truncate(time.Microsecond)
	res, err := r.db.ExecContext(ctx, insertEntry, word, definition, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.Entry{}, fmt.Errorf("%w: %s", store.ErrDuplicate, word)
		}
		return store.Entry{}, fmt.Errorf("insert dictionary entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return store.Entry{}, fmt.Errorf("read inserted id: %w", err)
	}
	return store.Entry{ID: id, Word: word, Definition: definition, CreatedAt: createdAt}, nil
}

// Ping checks connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
