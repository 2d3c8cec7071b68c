// Package postgres stores dictionary entries in PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/devtools-playground/internal/store"
)

const uniqueViolation = "23505"

const (
	selectByWord = `SELECT id, word, definition, created_at FROM dictionary_entries WHERE word = $1`
	insertEntry  = `INSERT INTO dictionary_entries (word, definition) VALUES ($1, $2) RETURNING id, word, definition, created_at`
)

// Statements names the repository's SQL for query tracing.
var Statements = map[string]string{
	selectByWord: "dictionary.find_by_word",
	insertEntry:  "dictionary.create",
}

// Repository is a pgxpool-backed store.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool exposes the underlying pool for migrations.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// FindByWord returns the entry stored under word.
func (r *Repository) FindByWord(ctx context.Context, word string) (store.Entry, error) {
	rows, err := r.pool.Query(ctx, selectByWord, word)
	if err != nil {
		return store.Entry{}, fmt.Errorf("query dictionary entry: %w", err)
	}
	entry, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[store.Entry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Entry{}, store.ErrNotFound
		}
		return store.Entry{}, fmt.Errorf("scan dictionary entry: %w", err)
	}
	return entry, nil
}

// Create inserts a new entry. A unique violation on word is reported as
// store.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, word, definition string) (store.Entry, error) {
	rows, err := r.pool.Query(ctx, insertEntry, word, definition)
	if err != nil {
		return store.Entry{}, translate(err)
	}
	entry, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[store.Entry])
	if err != nil {
		return store.Entry{}, translate(err)
	}
	return entry, nil
}

// Ping checks connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", store.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("insert dictionary entry: %w", err)
}
