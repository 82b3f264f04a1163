package repository

import (
	"github.com/google/wire"
)

// RedisRepository 彙整所有 Redis 存取。目前只有限流計數一個成員，
// 之後的快取類存取也掛在這裡。
type RedisRepository struct {
	rateLimitRepo *RateLimiterRepository
}

func NewRedisRepository(
	rateLimitRepo *RateLimiterRepository,
) *RedisRepository {
	return &RedisRepository{
		rateLimitRepo: rateLimitRepo,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewRateLimiterRepository,
	NewRedisRepository)
