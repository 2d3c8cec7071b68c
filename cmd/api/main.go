package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/app"
	"github.com/noah-isme/devtools-playground/internal/config"
	"github.com/noah-isme/devtools-playground/internal/database"
	"github.com/noah-isme/devtools-playground/internal/health"
	"github.com/noah-isme/devtools-playground/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().
		Str("env", cfg.AppEnv).
		Str("version", cfg.AppVersion).
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracingEnabled := envBool("OBS_ENABLE_TRACING", false)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
			ServiceName:    "devtools-api",
			ServiceVersion: cfg.AppVersion,
			Environment:    cfg.AppEnv,
			Exporter:       envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			Endpoint:       envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio:  envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	repo, err := database.Open(ctx, database.Config{
		URL:             cfg.DatabaseURL,
		MaxRetries:      cfg.DBMaxRetries,
		RetryDelay:      cfg.DBRetryDelay,
		ApplicationName: "devtools-api",
		Migrate:         cfg.DBMigrate,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error().Err(err).Msg("close database")
		}
	}()
	logger.Info().Bool("sqlite", cfg.IsSQLite()).Msg("database ready")

	redisClient := openRedis(ctx, cfg.RedisURL, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
	}

	gate := &health.Gate{}
	router, err := app.NewRouter(app.Dependencies{
		Config:  cfg,
		Logger:  logger,
		Store:   repo,
		Redis:   redisClient,
		Gate:    gate,
		Tracing: tracingEnabled,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build router")
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		router.Handle("/debug/pprof/*", protectPprof(newPprofMux(), user, pass))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("app", cfg.AppName).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
		return
	case <-ctx.Done():
	}

	gate.Drain()
	grace := envDurationMillis("HTTP_SHUTDOWN_TIMEOUT_MS", 10000)
	logger.Info().Dur("grace", grace).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

// openRedis returns nil when url is empty or Redis cannot be reached; the
// API then runs without the dictionary cache and with local rate limits.
func openRedis(ctx context.Context, url string, logger zerolog.Logger) *redis.Client {
	if url == "" {
		logger.Info().Msg("redis not configured, cache disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis metrics")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, cache disabled")
		_ = client.Close()
		return nil
	}
	return client
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}

func newPprofMux() http.Handler {
	const prefix = "/debug/pprof/"
	mux := http.NewServeMux()
	mux.HandleFunc(prefix, pprof.Index)
	mux.HandleFunc(prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"profile", pprof.Profile)
	mux.HandleFunc(prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"trace", pprof.Trace)
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
