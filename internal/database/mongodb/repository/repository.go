package repository

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
)

// 統一管理所有 MongoDB repository
type MongoDBRepository struct {
	roleRepo    *RoleRepository
	assetRepo   *AssetRepository
	requestRepo *RequestRepository
}

func NewMongoDBRepository(
	roleRepo *RoleRepository,
	assetRepo *AssetRepository,
	requestRepo *RequestRepository,
) *MongoDBRepository {
	return &MongoDBRepository{
		roleRepo:    roleRepo,
		assetRepo:   assetRepo,
		requestRepo: requestRepo,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewRoleRepository,
	NewAssetRepository,
	NewRequestRepository,
	NewMongoDBRepository)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}
