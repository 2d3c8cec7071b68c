// Package database opens the dictionary store selected by the database URL,
// waiting for it to come up and applying migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/obs"
	"github.com/noah-isme/devtools-playground/internal/store"
	"github.com/noah-isme/devtools-playground/internal/store/migrations"
	"github.com/noah-isme/devtools-playground/internal/store/postgres"
	"github.com/noah-isme/devtools-playground/internal/store/sqlite"
)

// ErrDatabaseConnection is returned when the store cannot be reached after
// every retry attempt.
var ErrDatabaseConnection = errors.New("database connection failed")

// Config controls how the store is opened.
type Config struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ApplicationName string
	Migrate         bool
}

// IsSQLite reports whether url selects the SQLite backend.
func IsSQLite(url string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(url)), "sqlite")
}

// Open connects to the configured store, retrying the connection, and runs
// migrations when cfg.Migrate is set.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (store.Repository, error) {
	var repo store.Repository
	err := WaitFor(ctx, cfg.MaxRetries, cfg.RetryDelay, logger, func(ctx context.Context) error {
		r, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		repo = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !cfg.Migrate {
		return repo, nil
	}
	if err := migrate(repo); err != nil {
		_ = repo.Close()
		return nil, err
	}
	logger.Info().Str("backend", backendName(cfg.URL)).Msg("database migrations applied")
	return repo, nil
}

// WaitFor calls connect up to attempts times, sleeping delay between
// attempts but not after the last one. The final failure is wrapped in
// ErrDatabaseConnection.
func WaitFor(ctx context.Context, attempts int, delay time.Duration, logger zerolog.Logger, connect func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	err := retry.Do(
		func() error { return connect(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().
				Err(err).
				Uint("attempt", n+1).
				Int("max_attempts", attempts).
				Dur("retry_in", delay).
				Msg("database connection attempt failed")
		}),
	)
	if err != nil {
		logger.Error().Err(err).Int("attempts", attempts).Msg("could not connect to database")
		return fmt.Errorf("%w after %d attempts: %w", ErrDatabaseConnection, attempts, err)
	}
	return nil
}

func connect(ctx context.Context, cfg Config) (store.Repository, error) {
	if IsSQLite(cfg.URL) {
		db, err := sqlite.Open(sqlite.PathFromURL(cfg.URL))
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return sqlite.New(db), nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("parse database config: %w", err))
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{Statements: postgres.Statements}
	if cfg.ApplicationName != "" {
		if poolConfig.ConnConfig.RuntimeParams == nil {
			poolConfig.ConnConfig.RuntimeParams = map[string]string{}
		}
		poolConfig.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return postgres.New(pool), nil
}

func migrate(repo store.Repository) error {
	switch r := repo.(type) {
	case *postgres.Repository:
		return migrations.UpPostgres(r.Pool())
	case *sqlite.Repository:
		return migrations.UpSQLite(r.DB())
	default:
		return fmt.Errorf("no migrations for %T", repo)
	}
}

func backendName(url string) string {
	if IsSQLite(url) {
		return "sqlite"
	}
	return "postgres"
}
