package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/egannguyen/go-storefront/internal/entity"
)

const redisOpTimeout = 2 * time.Second

// RedisStore keeps basket records in Redis, one JSON value per key, no TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "storefront:basket:"}
}

func (s *RedisStore) Save(key string, items []entity.Product) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal basket: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(key string) []entity.Product {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		slog.Error("Failed to load basket, treating as empty", "key", key, "err", err)
		return nil
	}

	var items []entity.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("Corrupt basket record, treating as empty", "key", key, "err", err)
		return nil
	}
	return items
}

func (s *RedisStore) Clear(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
