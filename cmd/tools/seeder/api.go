package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/devtools-playground/internal/common"
)

type apiError struct {
	Error common.ErrorBody `json:"error"`
}

func newAPICmd(logger zerolog.Logger, file *string) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		retries int
	)
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Seed through a running API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, err := loadWords(*file)
			if err != nil {
				return err
			}
			report := seedAPI(cmd.Context(), newClient(baseURL, timeout, retries), words)
			report.log(logger)
			return report.Err()
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8000", "API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&retries, "retries", 2, "retries on server errors")
	return cmd
}

func newClient(baseURL string, timeout time.Duration, retries int) *resty.Client {
	return resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})
}

func seedAPI(ctx context.Context, client *resty.Client, words []Word) Report {
	var report Report
	for _, w := range words {
		var failure apiError
		resp, err := client.R().
			SetContext(ctx).
			SetBody(map[string]string{"word": w.Word, "definition": w.Definition}).
			SetError(&failure).
			Post("/dictionary/add")
		if err != nil {
			report.fail(w.Word, err)
			continue
		}
		switch resp.StatusCode() {
		case http.StatusCreated:
			report.Added = append(report.Added, w.Word)
		case http.StatusConflict:
			report.Duplicates = append(report.Duplicates, w.Word)
		default:
			report.fail(w.Word, fmt.Errorf("status %d: %s %s", resp.StatusCode(), failure.Error.Code, failure.Error.Message))
		}
	}
	return report
}
