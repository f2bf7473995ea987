package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/httputil"
)

// RedisCache stores entries in Redis. TTLs map onto Redis key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// DefaultRedisPrefix namespaces all keys written by RedisCache.
const DefaultRedisPrefix = "licensecharts:"

// NewRedisCache connects to the server at url ("redis://host:port/db") and
// verifies the connection with PING, retrying transient failures.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	if url == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache needs a URL")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis URL")
	}
	client := redis.NewClient(opts)

	err = connectPolicy.Do(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return httputil.Retryable(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", opts.Addr)
	}
	return newRedisCache(client), nil
}

func newRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: DefaultRedisPrefix}
}

// Get retrieves a value; redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. A ttl of 0 keeps the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, data, max(ttl, 0)).Err()
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
