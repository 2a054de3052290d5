package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLimiter(client, window), mr
}

func TestRedisLimiter_FirstCallAllowed(t *testing.T) {
	l, _ := newTestRedisLimiter(t, 5*time.Minute)

	allowed, err := l.Allow(context.Background(), "chan-1", time.Now())
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRedisLimiter_SecondCallWithinWindowDenied(t *testing.T) {
	l, _ := newTestRedisLimiter(t, 5*time.Minute)
	now := time.Now()

	allowed, err := l.Allow(context.Background(), "chan-1", now)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = l.Allow(context.Background(), "chan-1", now.Add(1*time.Minute))
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestRedisLimiter_CallAfterExpiryAllowed(t *testing.T) {
	l, mr := newTestRedisLimiter(t, 5*time.Minute)
	now := time.Now()

	allowed, err := l.Allow(context.Background(), "chan-1", now)
	require.NoError(t, err)
	require.True(t, allowed)

	mr.FastForward(6 * time.Minute)

	allowed, err = l.Allow(context.Background(), "chan-1", now.Add(6*time.Minute))
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRedisLimiter_ChannelsAreIndependent(t *testing.T) {
	l, _ := newTestRedisLimiter(t, 5*time.Minute)
	now := time.Now()

	_, err := l.Allow(context.Background(), "chan-1", now)
	require.NoError(t, err)

	allowed, err := l.Allow(context.Background(), "chan-2", now)
	require.NoError(t, err)
	require.True(t, allowed)
}
