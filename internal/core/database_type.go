package core

import "go.mongodb.org/mongo-driver/bson"

// ─── Database Types ────────────────────────────────────────────────────────────

// DatabaseType defines the type of database
type DatabaseType string

const (
	Mongo DatabaseType = "mongo"
	Redis DatabaseType = "redis"
)

// Databases contains all supported database types
var Databases = []DatabaseType{Mongo, Redis}

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBAssetline MongoDatabaseName = "assetline"
)

// MongoDB collections；roles/assets/requests 只以 email 與 productId 彼此關聯
const (
	MongoCollectionRoles    MongoCollection = "roles"
	MongoCollectionAssets   MongoCollection = "assets"
	MongoCollectionRequests MongoCollection = "requests"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeySubmitLimit RedisKey = "submit_limit" // 請求提交限流
	RedisKeyServerName  RedisKey = "assetline"
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}
