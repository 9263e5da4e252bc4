package configs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when REDIS_ADDR is unset or the server is unreachable;
// callers fall back to in-memory state.
func ConnectRedis(cfg AppConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		Log.Warn("REDIS_ADDR not set, rate limiter uses in-memory storage")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		Log.WithError(err).Error("❌ redis unreachable, rate limiter uses in-memory storage")
		_ = rdb.Close()
		return nil
	}

	Log.Info("✅ redis connected")
	return rdb
}
