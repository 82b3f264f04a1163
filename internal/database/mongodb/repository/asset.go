package repository

import (
	"context"
	"fmt"
	"time"

	"assetline/internal/core"
	client "assetline/internal/database/client"
	"assetline/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssetRepository struct {
	collection *mongo.Collection
}

func NewAssetRepository(mongoClient *client.MongoClient) *AssetRepository {
	repository := &AssetRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBAssetline)).Collection(string(core.MongoCollectionAssets)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *AssetRepository) ensureIndexes(contextValue context.Context) error {
	ctx := contextValue

	indexModels := []mongo.IndexModel{
		{ // 依擁有者列資產
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email"),
		},
		{ // 低庫存掃描
			Keys:    bson.D{{Key: "productQuantity", Value: 1}},
			Options: options.Index().SetName("idx_productQuantity"),
		},
	}
	_, _ = repository.collection.Indexes().CreateMany(ctx, indexModels)
	return nil
}

// Create：單文件插入
func (repository *AssetRepository) Create(
	contextValue context.Context,
	asset *model.Asset,
) (_ *model.Asset, returnedError error) {

	nowUTC := time.Now().UTC()
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	asset.CreatedAt = nowUTC
	asset.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, asset)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	asset.ID = objectID
	return asset, nil
}

func (repository *AssetRepository) GetByID(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
) (_ *model.Asset, returnedError error) {

	var asset model.Asset
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": assetIdentifier}).Decode(&asset); returnedError != nil {
		return nil, returnedError
	}
	return &asset, nil
}

// UpdateByID：將呼叫端給的欄位寫入 $set（數量異動不可走這裡，必須走 Adjust*）
func (repository *AssetRepository) UpdateByID(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	setFields bson.M,
) (_ int64, returnedError error) {

	update := bson.M{"$set": setFields}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": assetIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

func (repository *AssetRepository) DeleteByID(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
) (_ int64, returnedError error) {

	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": assetIdentifier})
	if deleteError != nil {
		return 0, deleteError
	}
	return result.DeletedCount, nil
}

// DecrementQuantity：條件式扣庫存。
// filter 帶上 productQuantity >= delta，數量不足時 matched=0，
// 整個「檢查 + 扣減」是單一文件上的一次原子更新，併發扣減不會把庫存打成負數。
func (repository *AssetRepository) DecrementQuantity(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	delta int64,
) (_ int64, returnedError error) {

	filter := bson.M{
		"_id":             assetIdentifier,
		"productQuantity": bson.M{"$gte": delta},
	}
	update := bson.M{"$inc": bson.M{"productQuantity": -delta}}
	result, updateError := repository.collection.UpdateOne(contextValue, filter, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// IncrementQuantity：歸還方向不設上限，無條件 $inc
func (repository *AssetRepository) IncrementQuantity(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	delta int64,
) (_ int64, returnedError error) {

	update := bson.M{"$inc": bson.M{"productQuantity": delta}}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": assetIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// List：依過濾條件列舉，findOptions 交由呼叫端決定排序
func (repository *AssetRepository) List(
	contextValue context.Context,
	filter bson.M,
	findOptions *options.FindOptions,
) (_ []*model.Asset, returnedError error) {

	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var assets []*model.Asset
	if returnedError = cursor.All(contextValue, &assets); returnedError != nil {
		return nil, returnedError
	}
	return assets, nil
}

// ListLowStock：productQuantity 嚴格小於 threshold
func (repository *AssetRepository) ListLowStock(
	contextValue context.Context,
	threshold int64,
) (_ []*model.Asset, returnedError error) {

	return repository.List(contextValue, bson.M{"productQuantity": bson.M{"$lt": threshold}}, nil)
}
