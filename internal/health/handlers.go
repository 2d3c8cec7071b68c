package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/devtools-playground/internal/common"
)

// ErrDisabled marks an optional dependency that is not configured. It does
// not fail readiness.
var ErrDisabled = errors.New("disabled")

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingDB(ctx context.Context, timeout time.Duration) error
	PingRedis(ctx context.Context, timeout time.Duration) error
}

// Pinger is satisfied by the dictionary store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe checks the dictionary store and the optional Redis cache.
type Probe struct {
	DB    Pinger
	Redis *redis.Client
}

// PingDB pings the store within timeout.
func (p Probe) PingDB(ctx context.Context, timeout time.Duration) error {
	if p.DB == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.DB.Ping(ctx)
}

// PingRedis pings Redis within timeout, or reports ErrDisabled.
func (p Probe) PingRedis(ctx context.Context, timeout time.Duration) error {
	if p.Redis == nil {
		return ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Redis.Ping(ctx).Err()
}

// Info describes the API at GET /.
type Info struct {
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// NewInfo builds the root document for an API name and version.
func NewInfo(name, version string) Info {
	return Info{
		Message:     name,
		Version:     version,
		Description: "Dictionary lookup, shopping cart totals and word utilities.",
		Endpoints: map[string]string{
			"dictionary": "/dictionary",
			"shopping":   "/shopping",
			"words":      "/word",
			"health":     "/health",
		},
	}
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker      Checker
	Gate         *Gate
	Info         Info
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

// Root serves the API information document.
func (h Handler) Root(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, h.Info)
}

// Healthy reports that the process is serving requests.
func (h Handler) Healthy(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	if h.Gate.Draining() {
		common.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "draining"})
		return
	}
	ctx := r.Context()
	dbStatus := "ok"
	if err := h.Checker.PingDB(ctx, h.dbTimeout()); err != nil {
		dbStatus = err.Error()
	}
	redisStatus := "ok"
	redisFailed := false
	if err := h.Checker.PingRedis(ctx, h.redisTimeout()); err != nil {
		redisStatus = err.Error()
		redisFailed = !errors.Is(err, ErrDisabled)
	}
	status := map[string]string{
		"db":    dbStatus,
		"redis": redisStatus,
	}
	code := http.StatusOK
	if dbStatus != "ok" || redisFailed {
		code = http.StatusServiceUnavailable
	}
	common.JSON(w, code, status)
}

func (h Handler) dbTimeout() time.Duration {
	if h.DBTimeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.DBTimeout
}

func (h Handler) redisTimeout() time.Duration {
	if h.RedisTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.RedisTimeout
}
