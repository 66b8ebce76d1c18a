package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const REDIS_TIMEOUT = 5 * time.Second

// ConnectRedis monta o client a partir de uma URI redis:// e confirma com PING.
func ConnectRedis(ctx context.Context, uri string) (*redis.Client, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("[Redis] URI inválida: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, REDIS_TIMEOUT)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[Redis] ping: %w", err)
	}
	return client, nil
}
