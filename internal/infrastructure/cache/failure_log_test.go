package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/config"
)

func failure(i int) tasting.Failure {
	return tasting.Failure{
		TaskID:     fmt.Sprintf("t%d", i),
		BlendID:    fmt.Sprintf("b%d", i),
		Reason:     "backend rejected",
		OccurredAt: time.Unix(int64(i), 0).UTC(),
	}
}

func TestMemoryFailureLog(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryFailureLog(3)

	empty, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := 1; i <= 5; i++ {
		require.NoError(t, log.Record(ctx, failure(i)))
	}

	recent, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "t5", recent[0].TaskID)
	assert.Equal(t, "t4", recent[1].TaskID)
	assert.Equal(t, "t3", recent[2].TaskID)

	two, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	total, err := log.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestMemoryFailureLog_PartiallyFilled(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryFailureLog(0)

	require.NoError(t, log.Record(ctx, failure(1)))
	require.NoError(t, log.Record(ctx, failure(2)))

	recent, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "t2", recent[0].TaskID)
}

func TestStoreFactory_Memory(t *testing.T) {
	f := NewStoreFactory(config.RedisConfig{})
	stores, err := f.Create(config.BackfillConfig{Store: "memory", FailureLogSize: 5})
	require.NoError(t, err)
	defer stores.Close()

	assert.Equal(t, "memory", stores.Backend)
	assert.IsType(t, &InMemoryIdempotencyStore{}, stores.Idempotency)
	assert.IsType(t, &MemoryFailureLog{}, stores.Failures)
}

func TestStoreFactory_RedisFallback(t *testing.T) {
	f := NewStoreFactory(config.RedisConfig{Host: "127.0.0.1", Port: 1})
	f.pingTimeout = 200 * time.Millisecond

	stores, err := f.Create(config.BackfillConfig{Store: "redis"})
	require.NoError(t, err)
	defer stores.Close()
	assert.Equal(t, "memory", stores.Backend)

	strict := NewStoreFactory(config.RedisConfig{Host: "127.0.0.1", Port: 1}, WithInMemoryFallback(false))
	strict.pingTimeout = 200 * time.Millisecond
	_, err = strict.Create(config.BackfillConfig{Store: "redis"})
	assert.Error(t, err)
}

// redisClient connects to SAANJH_TEST_REDIS_ADDR or skips the test
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("SAANJH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SAANJH_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisIdempotencyStore(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(client, "test:done:")

	marked, err := store.MarkProcessed(ctx, "b1", time.Minute)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = store.MarkProcessed(ctx, "b1", time.Minute)
	require.NoError(t, err)
	assert.False(t, marked)

	processed, err := store.IsProcessed(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, processed)

	require.NoError(t, store.Forget(ctx, "b1"))
	processed, err = store.IsProcessed(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, processed)
	assert.NoError(t, store.Close())
}

func TestRedisFailureLog(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	log := NewRedisFailureLog(client, 2)

	total, err := log.Total(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	for i := 1; i <= 3; i++ {
		require.NoError(t, log.Record(ctx, failure(i)))
	}

	recent, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "t3", recent[0].TaskID)
	assert.Equal(t, "t2", recent[1].TaskID)

	total, err = log.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
