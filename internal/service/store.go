package service

import (
	"context"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// service 層只依賴這些窄介面，repository 的具體型別自然滿足。
// 測試時換成記憶體假件，生命週期引擎的補償流程才驗得到。

type RoleStore interface {
	Create(contextValue context.Context, role *model.Role) (*model.Role, error)
	GetByEmail(contextValue context.Context, email string) (*model.Role, error)
	GetByID(contextValue context.Context, roleIdentifier primitive.ObjectID) (*model.Role, error)
	AssignTeam(contextValue context.Context, roleIdentifier primitive.ObjectID, teamEmail string, hrManagerID string) (int64, error)
	RemoveTeam(contextValue context.Context, roleIdentifier primitive.ObjectID) (int64, error)
	UpdateByEmail(contextValue context.Context, email string, setFields bson.M) (int64, error)
	List(contextValue context.Context, filter bson.M) ([]*model.Role, error)
}

type AssetStore interface {
	Create(contextValue context.Context, asset *model.Asset) (*model.Asset, error)
	GetByID(contextValue context.Context, assetIdentifier primitive.ObjectID) (*model.Asset, error)
	UpdateByID(contextValue context.Context, assetIdentifier primitive.ObjectID, setFields bson.M) (int64, error)
	DeleteByID(contextValue context.Context, assetIdentifier primitive.ObjectID) (int64, error)
	DecrementQuantity(contextValue context.Context, assetIdentifier primitive.ObjectID, delta int64) (int64, error)
	IncrementQuantity(contextValue context.Context, assetIdentifier primitive.ObjectID, delta int64) (int64, error)
	List(contextValue context.Context, filter bson.M, findOptions *options.FindOptions) ([]*model.Asset, error)
	ListLowStock(contextValue context.Context, threshold int64) ([]*model.Asset, error)
}

type RequestStore interface {
	UpsertPending(contextValue context.Context, request *model.Request) (*model.Request, error)
	GetByID(contextValue context.Context, requestIdentifier primitive.ObjectID) (*model.Request, error)
	TransitionStatus(contextValue context.Context, requestIdentifier primitive.ObjectID, fromStatus core.RequestStatus, toStatus core.RequestStatus, extraSet bson.M) (int64, error)
	DeleteOwnedPending(contextValue context.Context, requestIdentifier primitive.ObjectID, requesterMail string) (int64, error)
	List(contextValue context.Context, filter bson.M, findOptions *options.FindOptions) ([]*model.Request, error)
}
