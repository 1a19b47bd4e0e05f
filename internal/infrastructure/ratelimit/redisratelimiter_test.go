package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisLimiter_AllowsUpToMinuteLimit(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 5}
	key := "login:203.0.113.7"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "login:203.0.113.7", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:203.0.113.8", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:203.0.113.7", config)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisLimiter_ResetClearsWindows(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 1}
	key := "login:203.0.113.7"

	allowed, err := limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, err = limiter.Allow(ctx, key, config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_Remaining(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	config := Config{RequestsPerMinute: 10}
	key := "status:tenant-42"

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, key, config)
		require.NoError(t, err)
	}

	count, err := limiter.Remaining(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRedisLimiter_ZeroLimitsDisableThrottling(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(ctx, "unthrottled", Config{})
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
