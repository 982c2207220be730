package config

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared client, nil when REDIS_ADDR is unset or the
// server turned out to be unreachable at startup.
var RedisClient *redis.Client

// All keys this service writes are namespaced under one prefix so a shared
// Redis can host several environments side by side.
const defaultRedisPrefix = "pos"

var redisPrefix = defaultRedisPrefix

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	if p := os.Getenv("REDIS_PREFIX"); p != "" {
		redisPrefix = strings.TrimSuffix(p, ":")
	}
	dbIndex := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			dbIndex = n
		}
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       dbIndex,
	})
}

// RedisKey joins parts into a namespaced key: pos:<part>:<part>...
func RedisKey(parts ...string) string {
	return redisPrefix + ":" + strings.Join(parts, ":")
}

func RedisCtx() context.Context {
	return context.Background()
}
