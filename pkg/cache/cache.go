// Package cache stores generation results between runs.
//
// Enumerating the realizations of a degree sequence is deterministic, so a
// finished run can be replayed from a previous result. The [Cache] interface
// is a plain byte store with expiry; [Keyer] derives keys from the inputs that
// determine a run's output.
//
// Backends:
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a Redis server, for the HTTP API behind several instances
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing, used by --no-cache
//
// Network backends wrap transient failures with [Retryable] and run each call
// through [RetryWithBackoff].
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the cache.
	Clear(ctx context.Context) error

	// Close releases connections held by the backend.
	Close() error
}

// DefaultTTL is the expiry used when the configuration does not set one.
const DefaultTTL = 7 * 24 * time.Hour

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	MongoURI  string        `toml:"mongo_uri"`
	TTL       time.Duration `toml:"ttl"`
}

// Open creates the backend named by cfg.Backend. An empty backend name
// selects the file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, RedisConfig{Addr: cfg.RedisAddr})
	case BackendMongo:
		return NewMongoCache(ctx, MongoConfig{URI: cfg.MongoURI})
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
