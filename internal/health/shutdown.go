package health

import "sync/atomic"

// Gate flips readiness off while the server drains connections.
type Gate struct {
	draining atomic.Bool
}

// Drain marks the process as shutting down.
func (g *Gate) Drain() {
	if g != nil {
		g.draining.Store(true)
	}
}

// Draining reports whether Drain has been called.
func (g *Gate) Draining() bool {
	return g != nil && g.draining.Load()
}
