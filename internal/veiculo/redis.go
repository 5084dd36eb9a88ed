package veiculo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache guarda consultas como JSON, sem expiração no Redis: a validade é
// avaliada na leitura pelo Service.
type RedisCache struct {
	client redisCommander
}

// NewRedisCache cria o cache sobre um cliente Redis.
func NewRedisCache(client redisCommander) *RedisCache {
	return &RedisCache{client: client}
}

// CacheKey monta a chave única de (dono, placa).
func CacheKey(ownerID, placa string) string {
	return fmt.Sprintf("veiculo:placa:%s:%s", ownerID, placa)
}

// Get lê o registro; redis.Nil vira ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, ownerID, placa string) (*PlacaCache, error) {
	raw, err := c.client.Get(ctx, CacheKey(ownerID, placa)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var p PlacaCache
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cache de placa corrompido: %w", err)
	}
	return &p, nil
}

// Upsert sobrescreve o registro de (dono, placa).
func (c *RedisCache) Upsert(ctx context.Context, p PlacaCache) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey(p.OwnerID, p.Placa), payload, 0).Err()
}
