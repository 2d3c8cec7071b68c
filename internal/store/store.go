// Package store defines the persisted dictionary entry and the errors shared
// by every storage backend.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no entry matches the requested word.
	ErrNotFound = errors.New("store: entry not found")
	// ErrDuplicate is returned when an insert violates the unique word constraint.
	ErrDuplicate = errors.New("store: duplicate entry")
)

// Entry is a stored dictionary row. Word is always lowercase.
type Entry struct {
	ID         int64     `db:"id"`
	Word       string    `db:"word"`
	Definition string    `db:"definition"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repository is implemented by every storage backend.
type Repository interface {
	FindByWord(ctx context.Context, word string) (Entry, error)
	Create(ctx context.Context, word, definition string) (Entry, error)
	Ping(ctx context.Context) error
	Close() error
}
