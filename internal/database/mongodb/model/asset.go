package model

import (
	"assetline/internal/core"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset 一筆庫存品項。ProductQuantity 永不為負：所有扣減都走
// repository 的條件式 $inc，不做 read-modify-write。
type Asset struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	ProductName     string             `json:"productName" bson:"productName"`
	ProductType     core.ProductType   `json:"productType" bson:"productType"`
	ProductQuantity int64              `json:"productQuantity" bson:"productQuantity"`
	Email           string             `json:"email" bson:"email"` // 擁有它的 manager
	Availability    core.Availability  `json:"availability" bson:"availability"`
	Date            string             `json:"date,omitempty" bson:"date,omitempty"` // 前端帶入的新增日期
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
