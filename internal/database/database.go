package database

import (
	client "assetline/internal/database/client"
	fluentdRepo "assetline/internal/database/fluentd/repository"
	mongoRepo "assetline/internal/database/mongodb/repository"
	redisRepo "assetline/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
