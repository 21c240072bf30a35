package buffer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores cache entries as plain Redis strings.
type RedisBackend struct {
	client redis.UniversalClient
}

// NewRedisClient returns a pooled client for a single node, a cluster, or a
// sentinel setup depending on the options. addrs is a comma-separated list.
func NewRedisClient(addrs, password string, db int, masterName string) redis.UniversalClient {
	opts := &redis.UniversalOptions{
		Addrs:      splitAddrs(addrs),
		Password:   password,
		DB:         db,
		MasterName: masterName,
	}
	return redis.NewUniversalClient(opts)
}

// NewRedisBackend wraps a shared client. The client is owned by the caller.
func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	val, err := b.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (b *RedisBackend) SetEX(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func splitAddrs(addrs string) []string {
	var out []string
	for _, a := range strings.Split(addrs, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
