package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "sichtungskern:ratelimit:"

// RedisLimiter is the multi-instance backend: the same single-mutable-datum
// contract as MemoryLimiter, but the datum lives in Redis so every replica
// of the bot sees the same last-notify timestamp, and the read-modify-write
// is serialized by a distributed mutex (redsync) rather than an in-process
// one, since two replicas racing the same channel is exactly the case a
// process-local mutex can't cover.
type RedisLimiter struct {
	client  *redis.Client
	rs      *redsync.Redsync
	window  time.Duration
	lockTTL time.Duration
}

func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	pool := goredis.NewPool(client)
	return &RedisLimiter{
		client:  client,
		rs:      redsync.New(pool),
		window:  window,
		lockTTL: 5 * time.Second,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, channel string, now time.Time) (bool, error) {
	mutex := l.rs.NewMutex(keyPrefix+"lock:"+channel, redsync.WithExpiry(l.lockTTL))
	if err := mutex.LockContext(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: acquire distributed lock for %q: %w", channel, err)
	}
	defer func() { _, _ = mutex.UnlockContext(ctx) }()

	key := keyPrefix + channel
	raw, err := l.client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		// no prior timestamp, fall through to the write below
	case err != nil:
		return false, fmt.Errorf("ratelimit: read last-notify time for %q: %w", channel, err)
	default:
		prev, parseErr := time.Parse(time.RFC3339Nano, raw)
		if parseErr != nil {
			return false, fmt.Errorf("ratelimit: parse stored timestamp for %q: %w", channel, parseErr)
		}
		if now.Sub(prev) < l.window {
			return false, nil
		}
	}

	if err := l.client.Set(ctx, key, now.Format(time.RFC3339Nano), l.window).Err(); err != nil {
		return false, fmt.Errorf("ratelimit: write last-notify time for %q: %w", channel, err)
	}
	return true, nil
}
