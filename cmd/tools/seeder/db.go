package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/config"
	"github.com/noah-isme/devtools-playground/internal/database"
	"github.com/noah-isme/devtools-playground/internal/dictionary"
	"github.com/noah-isme/devtools-playground/internal/store"
)

type adder interface {
	Add(ctx context.Context, word, definition string) (store.Entry, error)
}

func newDBCmd(logger zerolog.Logger, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "Seed the configured database directly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			words, err := loadWords(*file)
			if err != nil {
				return err
			}
			repo, err := database.Open(cmd.Context(), database.Config{
				URL:             cfg.DatabaseURL,
				MaxRetries:      cfg.DBMaxRetries,
				RetryDelay:      cfg.DBRetryDelay,
				ApplicationName: "devtools-seeder",
				Migrate:         cfg.DBMigrate,
			}, logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			svc, err := dictionary.NewService(dictionary.ServiceConfig{Repository: repo, Logger: logger})
			if err != nil {
				return err
			}
			report := seedService(cmd.Context(), svc, words)
			report.log(logger)
			return report.Err()
		},
	}
}

func seedService(ctx context.Context, svc adder, words []Word) Report {
	var report Report
	for _, w := range words {
		entry, err := svc.Add(ctx, w.Word, w.Definition)
		switch {
		case err == nil:
			report.Added = append(report.Added, entry.Word)
		case errors.Is(err, dictionary.ErrAlreadyExists):
			report.Duplicates = append(report.Duplicates, w.Word)
		case common.HasCode(err, common.CodeValidation):
			report.fail(w.Word, fmt.Errorf("invalid entry: %w", err))
		default:
			report.fail(w.Word, err)
		}
	}
	return report
}
