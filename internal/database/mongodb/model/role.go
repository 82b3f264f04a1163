package model

import (
	"assetline/internal/core"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role 一人一筆；email 唯一。manager 是團隊的根，employee 以 team 欄位
// （值為 manager 的 email）掛在 manager 底下，hrManagerId 是另一條正交的歸屬。
type Role struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	Email           string             `json:"email" bson:"email"`                                       // 唯一鍵
	Name            string             `json:"name,omitempty" bson:"name,omitempty"`                     // 顯示名稱
	Role            core.Role          `json:"role" bson:"role"`                                         // employee / manager
	Team            string             `json:"team" bson:"team"`                                         // manager email 或 "none"
	HRManagerID     string             `json:"hrManagerId,omitempty" bson:"hrManagerId,omitempty"`       // 移除團隊時一併 unset
	SelectedPackage int                `json:"selectedPackage,omitempty" bson:"selectedPackage,omitempty"`
	AddLimit        int                `json:"addLimit,omitempty" bson:"addLimit,omitempty"`             // 可建立資產上限
	TransactionID   string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`   // 金流閘道回填，不驗證
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
