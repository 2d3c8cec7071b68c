package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/resilience"
)

func TestBreakerTransitions(t *testing.T) {
	breaker := resilience.NewBreaker(2, 0.5, 50*time.Millisecond)
	ctx := context.Background()

	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)
	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)

	require.False(t, breaker.Allow(ctx), "breaker should open after threshold exceeded")
	require.Equal(t, resilience.Open, breaker.State())

	time.Sleep(60 * time.Millisecond)
	require.True(t, breaker.Allow(ctx), "breaker should admit a probe after cool off")
	require.False(t, breaker.Allow(ctx), "only one probe while half-open")
	breaker.Report(ctx, true)
	require.True(t, breaker.Allow(ctx), "breaker should close after successful probe")
	require.Equal(t, resilience.Closed, breaker.State())
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	breaker := resilience.NewBreaker(1, 0.5, 10*time.Millisecond)
	ctx := context.Background()

	breaker.Report(ctx, false)
	require.Eventually(t, func() bool { return breaker.Allow(ctx) }, time.Second, 5*time.Millisecond)
	breaker.Report(ctx, false)
	require.Equal(t, resilience.Open, breaker.State())
}

func TestBreakerDo(t *testing.T) {
	breaker := resilience.NewBreaker(1, 0.5, time.Minute)
	ctx := context.Background()
	benign := errors.New("cache miss")

	err := breaker.Do(ctx, func() error { return benign }, func(err error) bool { return !errors.Is(err, benign) })
	require.ErrorIs(t, err, benign)
	require.Equal(t, resilience.Closed, breaker.State())

	err = breaker.Do(ctx, func() error { return errors.New("connection refused") }, nil)
	require.Error(t, err)
	require.Equal(t, resilience.Open, breaker.State())

	called := false
	err = breaker.Do(ctx, func() error { called = true; return nil }, nil)
	require.ErrorIs(t, err, resilience.ErrOpenCircuit)
	require.False(t, called)
}

func TestNilBreakerAllows(t *testing.T) {
	var breaker *resilience.Breaker
	require.True(t, breaker.Allow(context.Background()))
	breaker.Report(context.Background(), false)
}

func TestBreakerMetricsTransitions(t *testing.T) {
	metrics := resilience.NewMetrics("devtools", prometheus.NewRegistry())
	breaker := resilience.NewBreaker(1, 0.5, 20*time.Millisecond).WithTarget("redis").WithMetrics(metrics)
	ctx := context.Background()

	require.True(t, breaker.Allow(ctx))
	breaker.Report(ctx, false)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.State.WithLabelValues("redis")))

	require.Eventually(t, func() bool { return breaker.Allow(ctx) }, time.Second, 5*time.Millisecond)
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.State.WithLabelValues("redis")))

	breaker.Report(ctx, true)
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.State.WithLabelValues("redis")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Opened.WithLabelValues("redis")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("redis", "closed", "open")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("redis", "open", "half_open")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("redis", "half_open", "closed")))
}
