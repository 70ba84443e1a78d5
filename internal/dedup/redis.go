package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the production Redis backend.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries int
	Timeout    time.Duration
	// KeyPrefix isolates this deployment's sets from other users of the
	// same Redis instance.
	KeyPrefix string
}

// RedisStore is the production Store backend. Redis set commands give the
// atomic check-then-set for free: SADD reports whether the member was new.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "leadscout"
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

// NewRedisStoreWithClient wraps an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "leadscout"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(namespace string) string {
	return s.prefix + ":" + namespace
}

// Seen reports whether the id is a member of the namespace set.
func (s *RedisStore) Seen(ctx context.Context, namespace, id string) (bool, error) {
	seen, err := s.client.SIsMember(ctx, s.key(namespace), id).Result()
	if err != nil {
		return false, fmt.Errorf("check membership in %s: %w", namespace, err)
	}
	return seen, nil
}

// Add inserts the id, reporting whether it was newly added.
func (s *RedisStore) Add(ctx context.Context, namespace, id string) (bool, error) {
	added, err := s.client.SAdd(ctx, s.key(namespace), id).Result()
	if err != nil {
		return false, fmt.Errorf("add to %s: %w", namespace, err)
	}
	return added == 1, nil
}

// Remove deletes the id from the namespace set.
func (s *RedisStore) Remove(ctx context.Context, namespace, id string) error {
	if err := s.client.SRem(ctx, s.key(namespace), id).Err(); err != nil {
		return fmt.Errorf("remove from %s: %w", namespace, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
