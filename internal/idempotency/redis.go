package idempotency

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces idempotency keys in Redis.
const DefaultPrefix = "kapso:webhook:idem:"

// Redis is a Store shared between trigger replicas.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets how long a key is remembered.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to a Redis server.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		prefix: DefaultPrefix,
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency check: %w", err)
	}
	return !ok, nil
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
