package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saanjh/storefront/internal/domain/shared"
	"github.com/saanjh/storefront/internal/domain/tasting"
	"github.com/saanjh/storefront/internal/infrastructure/config"
)

// BackfillStores bundles the dedupe store and failure log used by the backfill queue
type BackfillStores struct {
	Idempotency shared.IdempotencyStore
	Failures    tasting.FailureLog
	// Backend is "memory" or "redis"
	Backend string

	client redis.UniversalClient
}

// Close releases the stores and the Redis client, if any
func (s *BackfillStores) Close() error {
	var firstErr error
	if s.Idempotency != nil {
		if err := s.Idempotency.Close(); err != nil {
			firstErr = err
		}
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StoreFactory creates backfill stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// StoreFactoryOption configures the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to memory.
// Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemory creates process-local stores
func (f *StoreFactory) CreateInMemory(failureLogSize int) *BackfillStores {
	return &BackfillStores{
		Idempotency: NewInMemoryIdempotencyStore(0),
		Failures:    NewMemoryFailureLog(failureLogSize),
		Backend:     "memory",
	}
}

// CreateRedis connects to Redis and creates shared stores
func (f *StoreFactory) CreateRedis(failureLogSize int) (*BackfillStores, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), f.pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BackfillStores{
		Idempotency: NewRedisIdempotencyStore(client, ""),
		Failures:    NewRedisFailureLog(client, failureLogSize),
		Backend:     "redis",
		client:      client,
	}, nil
}

// Create builds the stores named by cfg.Store. Redis falls back to memory
// with a warning unless fallback is disabled.
func (f *StoreFactory) Create(cfg config.BackfillConfig) (*BackfillStores, error) {
	if cfg.Store != "redis" {
		return f.CreateInMemory(cfg.FailureLogSize), nil
	}

	stores, err := f.CreateRedis(cfg.FailureLogSize)
	if err == nil {
		f.logger.Info("Using Redis backfill stores", zap.String("addr", f.redisConfig.Addr()))
		return stores, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for backfill stores but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory backfill stores. "+
		"Instances will not share dedupe state.",
		zap.Error(err),
	)
	return f.CreateInMemory(cfg.FailureLogSize), nil
}
