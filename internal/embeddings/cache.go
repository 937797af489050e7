package embeddings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheOptions configures a CachedEmbedder.
type CacheOptions struct {
	// KeyPrefix namespaces keys per (language, variant) so two backends
	// never read each other's entries.
	KeyPrefix string

	// TTL is the lifetime of a cached lookup.
	TTL time.Duration

	// OpTimeout bounds a single Redis round trip. Defaults to one second.
	OpTimeout time.Duration
}

// CachedEmbedder wraps an Embedder with a Redis lookup cache. Cache
// failures degrade to direct lookups and are never surfaced to the caller;
// only vocabulary hits are cached, so a miss always reaches the backend.
type CachedEmbedder struct {
	inner  Embedder
	client *redis.Client
	opts   CacheOptions
	logger *zap.Logger
}

// NewCachedEmbedder creates a Redis-cached view of an embedder.
func NewCachedEmbedder(inner Embedder, client *redis.Client, opts CacheOptions, logger *zap.Logger) *CachedEmbedder {
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEmbedder{inner: inner, client: client, opts: opts, logger: logger}
}

func (c *CachedEmbedder) Lookup(token string) ([]float32, bool) {
	key := c.opts.KeyPrefix + ":" + token

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.OpTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		// fall through to the backend
	case err != nil:
		c.logger.Debug("Cache lookup failed", zap.Error(err))
	default:
		var vec []float32
		if jsonErr := json.Unmarshal(data, &vec); jsonErr == nil {
			return vec, true
		}
		// Corrupt entry: drop it and re-resolve from the backend.
		c.client.Del(ctx, key)
	}

	vec, ok := c.inner.Lookup(token)
	if !ok {
		return nil, false
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := c.client.Set(ctx, key, data, c.opts.TTL).Err(); err != nil {
			c.logger.Debug("Cache store failed", zap.Error(err))
		}
	}
	return vec, true
}

func (c *CachedEmbedder) Dimension() int { return c.inner.Dimension() }

// Close releases the Redis connection.
func (c *CachedEmbedder) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

var _ Embedder = (*CachedEmbedder)(nil)
