package storage

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

// RedisStore keeps the cart slot in a single redis key. The payload
// never expires; the slot lives until removed or overwritten.
type RedisStore struct {
	client *redis.Client
	slot   string
}

func NewRedisStore(client *redis.Client, slot string) *RedisStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &RedisStore{client: client, slot: slot}
}

func (s *RedisStore) Load(ctx context.Context) []model.CartLine {
	payload, err := s.client.Get(ctx, s.slot).Result()
	if err == redis.Nil {
		return []model.CartLine{}
	}
	if err != nil {
		logger.Warn("Cart slot unreadable, starting empty", map[string]interface{}{
			"slot":  s.slot,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		logger.Warn("Cart slot corrupted, starting empty", map[string]interface{}{
			"slot":  s.slot,
			"error": err.Error(),
		})
		return []model.CartLine{}
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines
}

func (s *RedisStore) Save(ctx context.Context, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.slot, payload, 0).Err()
}
