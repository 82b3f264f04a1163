package dto

import (
	"assetline/internal/core"
	"time"
)

type CreateRequestDto struct {
	ProductID string `json:"productId" binding:"required"`
	Note      string `json:"note,omitempty"`
}

type RequestResponseDto struct {
	ID            string             `json:"id"`
	ProductID     string             `json:"productId"`
	ProductName   string             `json:"productName"`
	ProductType   core.ProductType   `json:"productType"`
	RequesterMail string             `json:"requesterMail"`
	RequesterName string             `json:"requesterName,omitempty"`
	RequestCount  int64              `json:"requestCount"`
	Status        core.RequestStatus `json:"status"`
	Note          string             `json:"note,omitempty"`
	RequestedDate time.Time          `json:"requestedDate"`
	ApprovalDate  *time.Time         `json:"approvalDate,omitempty"`
}
