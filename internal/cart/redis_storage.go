package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

// RedisStorage keeps the cart as a JSON array under a single key, for
// storefront sessions that should survive the local machine.
type RedisStorage struct {
	rdb *redis.Client
	ctx context.Context
	key string
}

// NewRedisStorage creates a redis-backed cart storage. The key isolates
// one shopper's cart from another's.
func NewRedisStorage(rdb *redis.Client, ctx context.Context, key string) *RedisStorage {
	return &RedisStorage{rdb: rdb, ctx: ctx, key: key}
}

// Load reads the persisted cart. A missing key or invalid JSON yields an
// empty cart.
func (s *RedisStorage) Load() ([]models.CartLineItem, error) {
	data, err := s.rdb.Get(s.ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.CartLineItem{}, nil
		}
		return nil, err
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return []models.CartLineItem{}, nil
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items, nil
}

// Save writes the full cart, replacing whatever was there.
func (s *RedisStorage) Save(items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(s.ctx, s.key, data, 0).Err()
}

// Clear removes the persisted cart entirely.
func (s *RedisStorage) Clear() error {
	return s.rdb.Del(s.ctx, s.key).Err()
}
