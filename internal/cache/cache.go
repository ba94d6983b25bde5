// Package cache stores rendered table output so repeated renders of the same
// document skip parsing and validation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conduit-lang/chartdata/internal/cli/config"
	"go.uber.org/zap"
)

// Cache defines the interface for all cache backends
type Cache interface {
	// Get retrieves a value from the cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with a TTL; zero uses the default TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes every value under the cache prefix
	Clear(ctx context.Context) error

	// Exists checks if a key exists in the cache
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases background resources and connections
	Close() error
}

// Config holds common configuration for cache backends
type Config struct {
	// DefaultTTL is the time-to-live used when Set is given zero
	DefaultTTL time.Duration
	// Prefix is prepended to all cache keys
	Prefix string
}

// DefaultConfig returns a default cache configuration
func DefaultConfig() Config {
	return Config{
		DefaultTTL: 5 * time.Minute,
		Prefix:     "chartdata:",
	}
}

// ErrCacheMiss is returned when a key is not found in the cache
var ErrCacheMiss = errors.New("cache miss")

func missError(key string) error {
	return fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

// IsCacheMiss checks if an error is a cache miss
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

// New builds the backend selected by cfg. The none backend returns a cache
// that never stores anything.
func New(cfg config.CacheConfig) (Cache, error) {
	common := Config{DefaultTTL: cfg.TTL, Prefix: cfg.Prefix}

	switch cfg.Backend {
	case config.CacheNone, "":
		return NopCache{}, nil
	case config.CacheMemory:
		return NewMemoryCache(common), nil
	case config.CacheRedis:
		return NewRedisCache(RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			Config:   common,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Fetch returns the cached value for key, or calls build, stores its result
// and returns it. The bool reports a cache hit. Backend failures are logged
// and fall through to build.
func Fetch(ctx context.Context, c Cache, key string, logger *zap.Logger, build func() ([]byte, error)) ([]byte, bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	value, err := c.Get(ctx, key)
	switch {
	case err == nil:
		logger.Debug("cache hit", zap.String("key", key))
		return value, true, nil
	case !IsCacheMiss(err):
		logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err = build()
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, value, 0); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, false, nil
}

// NopCache is a Cache that stores nothing
type NopCache struct{}

// Get always misses
func (NopCache) Get(_ context.Context, key string) ([]byte, error) { return nil, missError(key) }

// Set discards the value
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing
func (NopCache) Delete(context.Context, string) error { return nil }

// Clear does nothing
func (NopCache) Clear(context.Context) error { return nil }

// Exists always reports false
func (NopCache) Exists(context.Context, string) (bool, error) { return false, nil }

// Close does nothing
func (NopCache) Close() error { return nil }
