package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/devtools-playground/internal/obs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := obs.NewLogger(envOr("OBS_LOG_FORMAT", "console"), envOr("OBS_LOG_LEVEL", "info"))
	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	var file string
	root := &cobra.Command{
		Use:          "seeder",
		Short:        "Load dictionary words from a YAML file",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&file, "file", "f", "words.yaml", "YAML word list")
	root.AddCommand(newDBCmd(logger, &file), newAPICmd(logger, &file))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
