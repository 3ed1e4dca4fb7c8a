package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/saanjh/storefront/internal/domain/tasting"
)

// MemoryFailureLog is a fixed-size ring of backfill failures
type MemoryFailureLog struct {
	mu    sync.RWMutex
	ring  []tasting.Failure
	next  int
	full  bool
	total int64
}

// NewMemoryFailureLog creates a ring holding at most capacity failures
func NewMemoryFailureLog(capacity int) *MemoryFailureLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryFailureLog{ring: make([]tasting.Failure, capacity)}
}

// Record appends a failure, overwriting the oldest when full
func (l *MemoryFailureLog) Record(_ context.Context, f tasting.Failure) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ring[l.next] = f
	l.next = (l.next + 1) % len(l.ring)
	if l.next == 0 {
		l.full = true
	}
	l.total++
	return nil
}

// Recent returns up to limit failures, newest first. limit <= 0 returns all.
func (l *MemoryFailureLog) Recent(_ context.Context, limit int) ([]tasting.Failure, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.ring)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]tasting.Failure, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.ring)) % len(l.ring)
		out = append(out, l.ring[idx])
	}
	return out, nil
}

// Total returns how many failures were recorded
func (l *MemoryFailureLog) Total(context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total, nil
}

const (
	defaultFailureListKey    = "storefront:backfill:failures"
	defaultFailureCounterKey = "storefront:backfill:failures:total"
)

// RedisFailureLog keeps failures in a capped Redis list
type RedisFailureLog struct {
	client     redis.UniversalClient
	listKey    string
	counterKey string
	capacity   int64
}

// NewRedisFailureLog creates a log capped at capacity entries
func NewRedisFailureLog(client redis.UniversalClient, capacity int) *RedisFailureLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &RedisFailureLog{
		client:     client,
		listKey:    defaultFailureListKey,
		counterKey: defaultFailureCounterKey,
		capacity:   int64(capacity),
	}
}

// Record pushes the failure and trims the list in one pipeline
func (l *RedisFailureLog) Record(ctx context.Context, f tasting.Failure) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode failure: %w", err)
	}

	_, err = l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, l.listKey, data)
		p.LTrim(ctx, l.listKey, 0, l.capacity-1)
		p.Incr(ctx, l.counterKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return nil
}

// Recent returns up to limit failures, newest first
func (l *RedisFailureLog) Recent(ctx context.Context, limit int) ([]tasting.Failure, error) {
	stop := int64(limit) - 1
	if limit <= 0 || int64(limit) > l.capacity {
		stop = l.capacity - 1
	}

	raw, err := l.client.LRange(ctx, l.listKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}

	out := make([]tasting.Failure, 0, len(raw))
	for _, item := range raw {
		var f tasting.Failure
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// Total returns how many failures were recorded
func (l *RedisFailureLog) Total(ctx context.Context) (int64, error) {
	n, err := l.client.Get(ctx, l.counterKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read failure total: %w", err)
	}
	return n, nil
}

var (
	_ tasting.FailureLog = (*MemoryFailureLog)(nil)
	_ tasting.FailureLog = (*RedisFailureLog)(nil)
)
