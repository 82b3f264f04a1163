package dto

import (
	"assetline/internal/core"
	"time"
)

type CreateAssetDto struct {
	ProductName     string            `json:"productName" binding:"required"`
	ProductType     core.ProductType  `json:"productType" binding:"required,oneof=returnable non-returnable"`
	ProductQuantity int64             `json:"productQuantity" binding:"required,gte=0"`
	Availability    core.Availability `json:"availability" binding:"required,oneof=available out-of-stock"`
	Date            string            `json:"date,omitempty"`
}

// 全欄位置換更新（沿用前端送整包的習慣），數量異動仍會經過條件檢查
type UpdateAssetDto struct {
	ProductName     *string            `json:"productName,omitempty"`
	ProductType     *core.ProductType  `json:"productType,omitempty" binding:"omitempty,oneof=returnable non-returnable"`
	ProductQuantity *int64             `json:"productQuantity,omitempty" binding:"omitempty,gte=0"`
	Availability    *core.Availability `json:"availability,omitempty" binding:"omitempty,oneof=available out-of-stock"`
	Date            *string            `json:"date,omitempty"`
}

// 手動調帳，delta 可正可負但不可為零
type AdjustQuantityDto struct {
	Delta int64 `json:"delta" binding:"required"`
}

type AssetResponseDto struct {
	ID              string            `json:"id"`
	ProductName     string            `json:"productName"`
	ProductType     core.ProductType  `json:"productType"`
	ProductQuantity int64             `json:"productQuantity"`
	Email           string            `json:"email"`
	Availability    core.Availability `json:"availability"`
	Date            string            `json:"date,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
