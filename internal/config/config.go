package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv     string `validate:"required"`
	AppName    string `validate:"required"`
	AppVersion string `validate:"required"`
	Port       string `validate:"required"`

	DatabaseURL  string `validate:"required"`
	DBMaxRetries int    `validate:"gte=1"`
	DBRetryDelay time.Duration
	DBMigrate    bool

	RedisURL           string
	DictionaryCacheTTL time.Duration

	CORSAllowedOrigins []string

	RateLimitMax    int `validate:"gte=0"`
	RateLimitWindow time.Duration
	BodyLimitBytes  int64 `validate:"gt=0"`
	SecureHeaders   bool
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		AppName:            valueOrDefault(k.String("APP_NAME"), "DevTools Playground API"),
		AppVersion:         valueOrDefault(k.String("APP_VERSION"), "1.0.0"),
		Port:               valueOrDefault(k.String("PORT"), "8000"),
		DatabaseURL:        databaseURL(k),
		DBMaxRetries:       parseInt(k.String("DB_MAX_RETRIES"), 5),
		DBRetryDelay:       parseSeconds(k.String("DB_RETRY_DELAY"), "2s"),
		DBMigrate:          parseBoolDefault(k.String("DB_MIGRATE"), true),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		DictionaryCacheTTL: parseDuration(k.String("DICTIONARY_CACHE_TTL"), "10m"),
		CORSAllowedOrigins: parseOrigins(k.String("CORS_ORIGINS")),
		RateLimitMax:       parseInt(k.String("RATE_LIMIT_MAX"), 120),
		RateLimitWindow:    parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		BodyLimitBytes:     int64(parseInt(k.String("HTTP_BODY_LIMIT_BYTES"), 1<<20)),
		SecureHeaders:      parseBoolDefault(k.String("SECURE_HEADERS_ENABLE"), true),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// IsSQLite reports whether DatabaseURL selects the SQLite backend.
func (c *Config) IsSQLite() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.DatabaseURL)), "sqlite")
}

// databaseURL prefers DATABASE_URL and otherwise assembles a PostgreSQL URL
// from the DB_* components.
func databaseURL(k *koanf.Koanf) string {
	if raw := strings.TrimSpace(k.String("DATABASE_URL")); raw != "" {
		return raw
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(valueOrDefault(k.String("DB_USER"), "postgres"), valueOrDefault(k.String("DB_PASSWORD"), "postgres")),
		Host:   valueOrDefault(k.String("DB_HOST"), "localhost") + ":" + valueOrDefault(k.String("DB_PORT"), "5432"),
		Path:   "/" + valueOrDefault(k.String("DB_NAME"), "devtools"),
	}
	return u.String()
}

// parseOrigins accepts a comma separated list or a JSON array.
func parseOrigins(value string) []string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "[") {
		var origins []string
		if err := json.Unmarshal([]byte(trimmed), &origins); err == nil {
			return splitAndTrim(strings.Join(origins, ","))
		}
	}
	return splitAndTrim(trimmed)
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// parseSeconds accepts a Go duration or a bare number of seconds.
func parseSeconds(value, fallback string) time.Duration {
	if secs, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return parseDuration(value, fallback)
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseBoolDefault(value string, fallback bool) bool {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return parseBool(value)
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
