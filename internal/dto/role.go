package dto

import (
	"time"

	"assetline/internal/core"
	"assetline/internal/pkg/request"
)

// 註冊角色（首次登入建立，email 重複時視為已註冊）
type RegisterRoleDto struct {
	Email           string    `json:"email" binding:"required,email"`
	Name            string    `json:"name,omitempty"`
	Role            core.Role `json:"role" binding:"required,oneof=employee manager"`
	SelectedPackage int       `json:"selectedPackage,omitempty"`
	AddLimit        int       `json:"addLimit,omitempty"`
}

// 團隊指派
type AssignTeamDto struct {
	Team        string `json:"team" binding:"required,email"` // manager 的 email
	HRManagerID string `json:"hrManagerId" binding:"required"`
}

func (AssignTeamDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Team.required":        "team is required",
		"Team.email":           "team must be the manager's email",
		"HRManagerID.required": "hrManagerId is required",
	}
}

// 更新方案
type UpdatePackageDto struct {
	SelectedPackage int `json:"selectedPackage" binding:"required"`
}

type RoleResponseDto struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name,omitempty"`
	Role            core.Role `json:"role"`
	Team            string    `json:"team"`
	HRManagerID     string    `json:"hrManagerId,omitempty"`
	SelectedPackage int       `json:"selectedPackage,omitempty"`
	AddLimit        int       `json:"addLimit,omitempty"`
	TransactionID   string    `json:"transactionId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// 角色探測（/roles/manager/:email 等端點的回應）
type RoleProbeDto struct {
	Manager  bool `json:"manager"`
	Employee bool `json:"employee"`
}
