package dictionary_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/devtools-playground/internal/dictionary"
	"github.com/noah-isme/devtools-playground/internal/resilience"
	"github.com/noah-isme/devtools-playground/internal/store"
)

func TestCacheDisabledWithoutClient(t *testing.T) {
	cache := dictionary.NewCache(nil, time.Minute)
	require.False(t, cache.Enabled())

	_, hit, err := cache.Get(context.Background(), "go")
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, cache.Set(context.Background(), store.Entry{Word: "go"}))

	var nilCache *dictionary.Cache
	require.False(t, nilCache.Enabled())
}

func TestCacheMissesDoNotTripBreaker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	breaker := resilience.NewBreaker(1, 0.5, time.Minute)
	cache := dictionary.NewCache(client, time.Minute).WithBreaker(breaker)

	for i := 0; i < 3; i++ {
		_, hit, err := cache.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.False(t, hit)
	}
	require.Equal(t, resilience.Closed, breaker.State())
}

func TestCacheOutageOpensBreaker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	breaker := resilience.NewBreaker(2, 0.5, time.Minute)
	cache := dictionary.NewCache(client, time.Minute).WithBreaker(breaker)
	mr.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, _, err := cache.Get(ctx, "go")
		require.Error(t, err)
		require.NotErrorIs(t, err, resilience.ErrOpenCircuit)
	}
	require.Equal(t, resilience.Open, breaker.State())

	_, _, err := cache.Get(ctx, "go")
	require.ErrorIs(t, err, resilience.ErrOpenCircuit)
	require.ErrorIs(t, cache.Set(ctx, store.Entry{Word: "go"}), resilience.ErrOpenCircuit)
}
