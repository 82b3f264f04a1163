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

type RoleRepository struct {
	collection *mongo.Collection
}

func NewRoleRepository(mongoClient *client.MongoClient) *RoleRepository {
	repository := &RoleRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBAssetline)).Collection(string(core.MongoCollectionRoles)),
	}
	// 啟動時建立常用索引（冪等、存在即跳過）
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *RoleRepository) ensureIndexes(contextValue context.Context) error {
	ctx := contextValue

	indexModels := []mongo.IndexModel{
		{ // email 全店唯一，重複註冊由這條索引兜底
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{ // 查某個 manager 的 team
			Keys:    bson.D{{Key: "team", Value: 1}},
			Options: options.Index().SetName("idx_team"),
		},
		{ // 查 HR manager 名下的員工
			Keys:    bson.D{{Key: "hrManagerId", Value: 1}},
			Options: options.Index().SetName("idx_hrManagerId"),
		},
	}
	_, _ = repository.collection.Indexes().CreateMany(ctx, indexModels)
	return nil
}

// Create：單文件插入；email 撞唯一索引時回傳 duplicate key error
func (repository *RoleRepository) Create(
	contextValue context.Context,
	role *model.Role,
) (_ *model.Role, returnedError error) {

	nowUTC := time.Now().UTC()
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	if role.Team == "" {
		role.Team = core.TeamNone
	}
	role.CreatedAt = nowUTC
	role.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, role)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	role.ID = objectID
	return role, nil
}

// GetByEmail：email 是角色紀錄的業務主鍵
func (repository *RoleRepository) GetByEmail(
	contextValue context.Context,
	email string,
) (_ *model.Role, returnedError error) {

	var role model.Role
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"email": email}).Decode(&role); returnedError != nil {
		return nil, returnedError
	}
	return &role, nil
}

func (repository *RoleRepository) GetByID(
	contextValue context.Context,
	roleIdentifier primitive.ObjectID,
) (_ *model.Role, returnedError error) {

	var role model.Role
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": roleIdentifier}).Decode(&role); returnedError != nil {
		return nil, returnedError
	}
	return &role, nil
}

// AssignTeam：把員工掛到 manager 底下，同時寫入 hrManagerId
func (repository *RoleRepository) AssignTeam(
	contextValue context.Context,
	roleIdentifier primitive.ObjectID,
	teamEmail string,
	hrManagerID string,
) (_ int64, returnedError error) {

	update := bson.M{"$set": bson.M{
		"team":        teamEmail,
		"hrManagerId": hrManagerID,
	}}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": roleIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// RemoveTeam：team 歸 none、hrManagerId 一併 unset；
// 兩者必須同一次更新處理，避免員工殘留對已脫離團隊的參照
func (repository *RoleRepository) RemoveTeam(
	contextValue context.Context,
	roleIdentifier primitive.ObjectID,
) (_ int64, returnedError error) {

	update := bson.M{
		"$set":   bson.M{"team": core.TeamNone},
		"$unset": bson.M{"hrManagerId": ""},
	}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": roleIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// UpdateByEmail：將呼叫端給的欄位寫入 $set（只傳欄位值，不要傳 operator）
func (repository *RoleRepository) UpdateByEmail(
	contextValue context.Context,
	email string,
	setFields bson.M,
) (_ int64, returnedError error) {

	update := bson.M{"$set": setFields}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"email": email}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// List：依過濾條件全量列舉（角色集合量級小，不分頁）
func (repository *RoleRepository) List(
	contextValue context.Context,
	filter bson.M,
) (_ []*model.Role, returnedError error) {

	cursor, findError := repository.collection.Find(contextValue, filter)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var roles []*model.Role
	if returnedError = cursor.All(contextValue, &roles); returnedError != nil {
		return nil, returnedError
	}
	return roles, nil
}
