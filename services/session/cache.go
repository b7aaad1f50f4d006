// File: services/session/cache.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"salonassist/models"
)

const sessionCtxPrefix = "session:ctx:"

// RedisContextCache is a TTL'd read-through cache for current-day session
// contexts. Mongo stays the source of truth; a cache miss is never an error.
type RedisContextCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextCache(client *redis.Client, ttl time.Duration) *RedisContextCache {
	return &RedisContextCache{client: client, ttl: ttl}
}

func cacheKey(phone, day string) string {
	return sessionCtxPrefix + phone + ":" + day
}

func (c *RedisContextCache) Get(ctx context.Context, phone, day string) (*models.SessionContext, error) {
	data, err := c.client.Get(ctx, cacheKey(phone, day)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sessionCtx models.SessionContext
	if err := json.Unmarshal([]byte(data), &sessionCtx); err != nil {
		return nil, err
	}
	return &sessionCtx, nil
}

func (c *RedisContextCache) Set(ctx context.Context, sessionCtx *models.SessionContext) error {
	b, err := json.Marshal(sessionCtx)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(sessionCtx.Phone, sessionCtx.Day), b, c.ttl).Err()
}

func (c *RedisContextCache) Clear(ctx context.Context, phone, day string) error {
	return c.client.Del(ctx, cacheKey(phone, day)).Err()
}
