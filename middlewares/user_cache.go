package middlewares

import (
	"context"
	"crypto/sha256"
	"dashboard/schemas"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const USER_CACHE_TTL = 60 * time.Second

// RedisUserCache guarda o usuário autenticado por hash do token.
type RedisUserCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewRedisUserCache(rdb *redis.Client, logger *zap.SugaredLogger) *RedisUserCache {
	return &RedisUserCache{rdb: rdb, ttl: USER_CACHE_TTL, logger: logger}
}

func userCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "dashboard:auth:" + hex.EncodeToString(sum[:])
}

func (c *RedisUserCache) Get(ctx context.Context, token string) (*schemas.User, bool) {
	val, err := c.rdb.Get(ctx, userCacheKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("user cache read failed", "error", err)
		}
		return nil, false
	}
	user := &schemas.User{}
	if err := json.Unmarshal([]byte(val), user); err != nil {
		return nil, false
	}
	return user, true
}

func (c *RedisUserCache) Set(ctx context.Context, token string, user *schemas.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, userCacheKey(token), payload, c.ttl).Err(); err != nil {
		c.logger.Warnw("user cache write failed", "error", err)
	}
}
