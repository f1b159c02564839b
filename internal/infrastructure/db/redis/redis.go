// Package redis backs the scan-duplicate fast path. The client here is
// advisory infrastructure: the Postgres unique constraint stays the
// authority on duplicates, so callers treat a lost connection as a
// degraded mode, not an outage.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rollcall/attendance-system/internal/infrastructure/config"
)

const connectTimeout = 5 * time.Second

// Connect initialises the dedup client from the process configuration and
// validates connectivity with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
