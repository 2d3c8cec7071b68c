package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/noah-isme/devtools-playground/internal/obs"
)

// Limiter decides whether an event for key fits in max events per window.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error)
}

// Memory is a process-local fixed window limiter for single-instance
// deployments without Redis.
type Memory struct {
	store limiter.Store
}

// NewMemory constructs an in-memory limiter whose keys share prefix.
func NewMemory(prefix string) *Memory {
	return &Memory{store: memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          prefix,
		CleanUpInterval: time.Minute,
	})}
}

// Allow registers an event for key.
func (m *Memory) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if m == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}
	lctx, err := limiter.New(m.store, limiter.Rate{Period: window, Limit: int64(max)}).Get(ctx, key)
	if err != nil {
		return false, 0, time.Now().Add(window), err
	}
	return !lctx.Reached, int(lctx.Remaining), time.Unix(lctx.Reset, 0), nil
}

// ByClientIP keys requests on the client address. It expects RemoteAddr to
// have been resolved by a RealIP middleware.
func ByClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return "ip:" + addr
}

// ByGroup prefixes key with the endpoint group recorded on the request, so
// each API area keeps its own budget.
func ByGroup(key func(*http.Request) string) func(*http.Request) string {
	return func(r *http.Request) string {
		if group := obs.EndpointGroup(r.Context()); group != "" {
			return group + ":" + key(r)
		}
		return key(r)
	}
}
