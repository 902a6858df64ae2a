package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tda-club/club-website-backend/config"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared client. Must be called before any token or
// counter helper.
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return redisClient.Ping(redisCtx).Err()
}

// ======================
// Token helpers (password reset)
// ======================

func SetToken(key, value string, ttl time.Duration) error {
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	return redisClient.Get(redisCtx, key).Result()
}

func DeleteToken(key string) error {
	return redisClient.Del(redisCtx, key).Err()
}

// ======================
// Counter helpers (news view counts)
// ======================

// IncrCounter bumps a counter key. Failures are ignored by callers: the
// database column stays authoritative, Redis is a mirror for dashboards.
func IncrCounter(key string) error {
	return redisClient.Incr(redisCtx, key).Err()
}

func GetCounter(key string) (int64, error) {
	val, err := redisClient.Get(redisCtx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
