package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlidingWindow limits events per key over a trailing window using a Redis
// sorted set scored by arrival time, so every API replica shares one budget.
// Rejected events are removed again and do not extend a client's lockout.
type SlidingWindow struct {
	Client *redis.Client
	Prefix string
}

// Allow records an event for key. reset is when the oldest admitted event
// leaves the window.
func (l SlidingWindow) Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error) {
	now := time.Now()
	if l.Client == nil || max <= 0 || window <= 0 {
		return true, max, now.Add(window), nil
	}

	redisKey := l.Prefix + key
	member := uuid.NewString()
	cutoff := "(" + strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	count := pipe.ZCard(ctx, redisKey)
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.PExpire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, now.Add(window), fmt.Errorf("sliding window %s: %w", redisKey, err)
	}

	reset = now.Add(window)
	if first := oldest.Val(); len(first) > 0 {
		reset = time.Unix(0, int64(first[0].Score)).Add(window)
	}
	current := int(count.Val())
	if current > max {
		if err := l.Client.ZRem(ctx, redisKey, member).Err(); err != nil {
			return false, 0, reset, fmt.Errorf("sliding window %s: release rejected event: %w", redisKey, err)
		}
		return false, 0, reset, nil
	}
	return true, max - current, reset, nil
}
