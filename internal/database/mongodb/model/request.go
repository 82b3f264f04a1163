package model

import (
	"assetline/internal/core"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request 一位員工對一項資產的請求。
// 未解決（pending）時 (productId, requesterMail) 至多一筆；
// 重複提交只累加 RequestCount。
type Request struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	ProductID     primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName   string             `json:"productName" bson:"productName"`
	ProductType   core.ProductType   `json:"productType" bson:"productType"`
	RequesterMail string             `json:"requesterMail" bson:"requesterMail"`
	RequesterName string             `json:"requesterName,omitempty" bson:"requesterName,omitempty"`
	RequestCount  int64              `json:"requestCount" bson:"requestCount"`
	Status        core.RequestStatus `json:"status" bson:"status"`
	Note          string             `json:"note,omitempty" bson:"note,omitempty"`
	RequestedDate time.Time          `json:"requestedDate" bson:"requestedDate"`
	ApprovalDate  *time.Time         `json:"approvalDate,omitempty" bson:"approvalDate,omitempty"` // approved 前為 unset
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
