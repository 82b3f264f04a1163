package dto

import "assetline/internal/core"

// 建立 payment intent；金額單位為方案價（美元），閘道收 cents
type CreateIntentDto struct {
	Package int64 `json:"package" binding:"required,gt=0"`
}

type IntentResponseDto struct {
	ClientSecret string `json:"clientSecret"`
}

// 付款完成後回填到角色紀錄的欄位；金流狀態本身不驗證
type ApplyPaymentDto struct {
	Amount        int       `json:"amount" binding:"required"`
	TransactionID string    `json:"transectionId" binding:"required"`
	Role          core.Role `json:"role" binding:"required,oneof=employee manager"`
	AddLimit      int       `json:"addLimit" binding:"required"`
}
