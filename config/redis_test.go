package config

import "testing"

func TestRedisKey_DefaultPrefix(t *testing.T) {
	if got := RedisKey("realtime", "price-stock", "SKU-1", "2"); got != "pos:realtime:price-stock:SKU-1:2" {
		t.Errorf("RedisKey = %q", got)
	}
}

func TestInitRedis_SelectsDBAndPrefix(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PREFIX", "shop:")
	t.Cleanup(func() {
		RedisClient = nil
		redisPrefix = defaultRedisPrefix
	})

	InitRedis()
	if RedisClient == nil {
		t.Fatal("client not initialized")
	}
	if RedisClient.Options().DB != 3 {
		t.Errorf("DB = %d, want 3", RedisClient.Options().DB)
	}
	if got := RedisKey("a", "b"); got != "shop:a:b" {
		t.Errorf("RedisKey = %q", got)
	}
}

func TestInitRedis_NoAddrDisablesClient(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	InitRedis()
	if RedisClient != nil {
		t.Error("client should be nil without REDIS_ADDR")
	}
}
