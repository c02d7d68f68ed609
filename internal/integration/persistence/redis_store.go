// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	domainerror "github.com/finance-tracker/lucapp/internal/domain/error"
)

// redisStore implements adapter.KeyValueStore on plain Redis strings.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed key-value store.
func NewRedisStore(client *redis.Client) adapter.KeyValueStore {
	return &redisStore{
		client: client,
	}
}

// Get retrieves the value stored under key.
func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set stores value under key without expiry.
func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes key.
func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
