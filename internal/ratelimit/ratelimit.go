// Package ratelimit throttles credential submissions with a Redis
// fixed-window counter. With no Redis configured the limiter is a no-op,
// matching how the rest of the stack treats Redis as optional.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowStore is the slice of the Redis API the limiter uses.
type windowStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Limiter struct {
	store  windowStore
	limit  int
	window time.Duration
}

func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	l := &Limiter{limit: limit, window: window}
	if client != nil {
		l.store = client
	}
	return l
}

// Allow reports whether the given key (usually a client IP) may attempt
// another submission. Redis failures fail open: a broken limiter must not
// lock users out of the sign-in flow.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.store == nil {
		return true
	}

	redisKey := "metroeval:ratelimit:" + key
	count, err := l.store.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		if err := l.store.Expire(ctx, redisKey, l.window).Err(); err != nil {
			// A counter without a TTL would throttle this client forever
			// once over the limit.
			l.store.Del(ctx, redisKey)
			return true
		}
	}
	return count <= int64(l.limit)
}
