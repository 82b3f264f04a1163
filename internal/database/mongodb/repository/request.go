package repository

import (
	"context"
	"time"

	"assetline/internal/core"
	client "assetline/internal/database/client"
	"assetline/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RequestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(mongoClient *client.MongoClient) *RequestRepository {
	repository := &RequestRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBAssetline)).Collection(string(core.MongoCollectionRequests)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *RequestRepository) ensureIndexes(contextValue context.Context) error {
	ctx := contextValue

	indexModels := []mongo.IndexModel{
		{ // pending 狀態下 (productId, requesterMail) 至多一筆，UpsertPending 撞索引時兜底
			Keys: bson.D{{Key: "productId", Value: 1}, {Key: "requesterMail", Value: 1}},
			Options: options.Index().
				SetName("uniq_pending_product_requester").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": core.StatusPending}),
		},
		{ // 排行榜
			Keys:    bson.D{{Key: "requestCount", Value: -1}},
			Options: options.Index().SetName("idx_requestCount_desc"),
		},
		{ // 待審批佇列與狀態報表
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{ // 個人近期請求，依提出時間倒序
			Keys:    bson.D{{Key: "requesterMail", Value: 1}, {Key: "requestedDate", Value: -1}},
			Options: options.Index().SetName("idx_requester_requestedDate"),
		},
	}
	_, _ = repository.collection.Indexes().CreateMany(ctx, indexModels)
	return nil
}

// UpsertPending：建立或累加請求，一次原子 upsert 完成去重。
// filter 鎖定未解決的 (productId, requesterMail)；命中時 $inc requestCount，
// 沒命中時靠 upsert 插入、$inc 讓新文件的 requestCount 從 1 起算，
// 其餘欄位只在插入時由 $setOnInsert 寫入。
func (repository *RequestRepository) UpsertPending(
	contextValue context.Context,
	request *model.Request,
) (_ *model.Request, returnedError error) {

	nowUTC := time.Now().UTC()
	filter := bson.M{
		"productId":     request.ProductID,
		"requesterMail": request.RequesterMail,
		"status":        core.StatusPending,
	}
	update := bson.M{
		"$inc": bson.M{"requestCount": 1},
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"productName":   request.ProductName,
			"productType":   request.ProductType,
			"requesterName": request.RequesterName,
			"note":          request.Note,
			"requestedDate": nowUTC,
			"createdAt":     nowUTC,
		},
	}

	findOptions := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated model.Request
	if returnedError = repository.collection.
		FindOneAndUpdate(contextValue, filter, withUpdatedAt(update), findOptions).
		Decode(&updated); returnedError != nil {
		return nil, returnedError
	}
	return &updated, nil
}

func (repository *RequestRepository) GetByID(
	contextValue context.Context,
	requestIdentifier primitive.ObjectID,
) (_ *model.Request, returnedError error) {

	var request model.Request
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": requestIdentifier}).Decode(&request); returnedError != nil {
		return nil, returnedError
	}
	return &request, nil
}

// TransitionStatus：CAS 式狀態轉移。filter 同時鎖 _id 與 fromStatus，
// matched=0 代表請求不存在或已被並發轉走，由呼叫端分辨。
func (repository *RequestRepository) TransitionStatus(
	contextValue context.Context,
	requestIdentifier primitive.ObjectID,
	fromStatus core.RequestStatus,
	toStatus core.RequestStatus,
	extraSet bson.M,
) (_ int64, returnedError error) {

	setFields := bson.M{"status": toStatus}
	for k, v := range extraSet {
		setFields[k] = v
	}
	update := bson.M{"$set": setFields}
	filter := bson.M{"_id": requestIdentifier, "status": fromStatus}

	result, updateError := repository.collection.UpdateOne(contextValue, filter, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// DeleteOwnedPending：撤回。只刪 requester 自己的 pending 請求，
// approved/returned 一律刪不到（deleted=0）。
func (repository *RequestRepository) DeleteOwnedPending(
	contextValue context.Context,
	requestIdentifier primitive.ObjectID,
	requesterMail string,
) (_ int64, returnedError error) {

	filter := bson.M{
		"_id":           requestIdentifier,
		"requesterMail": requesterMail,
		"status":        core.StatusPending,
	}
	result, deleteError := repository.collection.DeleteOne(contextValue, filter)
	if deleteError != nil {
		return 0, deleteError
	}
	return result.DeletedCount, nil
}

// List：依過濾條件列舉，排序與上限交由呼叫端
func (repository *RequestRepository) List(
	contextValue context.Context,
	filter bson.M,
	findOptions *options.FindOptions,
) (_ []*model.Request, returnedError error) {

	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var requests []*model.Request
	if returnedError = cursor.All(contextValue, &requests); returnedError != nil {
		return nil, returnedError
	}
	return requests, nil
}
