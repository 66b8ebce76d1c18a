package preferences

import (
	"context"
	"dashboard/schemas"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

func preferencesKey(userID string) string {
	return "dashboard:prefs:" + userID
}

func Defaults() schemas.Preferences {
	return schemas.Preferences{Theme: "system"}
}

// RedisStore guarda as preferências de interface de cada usuário, sem expiração.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (schemas.Preferences, error) {
	val, err := s.rdb.Get(ctx, preferencesKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Defaults(), nil
	}
	if err != nil {
		return schemas.Preferences{}, fmt.Errorf("lendo preferências: %w", err)
	}

	prefs := Defaults()
	if err := json.Unmarshal(val, &prefs); err != nil {
		return schemas.Preferences{}, fmt.Errorf("preferências corrompidas: %w", err)
	}
	return prefs, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, prefs schemas.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, preferencesKey(userID), payload, 0).Err(); err != nil {
		return fmt.Errorf("salvando preferências: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, preferencesKey(userID)).Err()
}
