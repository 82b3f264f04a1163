package command

import (
	"context"

	"assetline/internal/core"
	"assetline/internal/dto"
	"assetline/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// SeedHandler 從命令列建立初始 manager 角色，
// 新環境沒有任何 manager 時用這個開第一把鑰匙。
type SeedHandler struct {
	logger      *zap.Logger
	roleService *service.RoleService
}

func NewSeedHandler(logger *zap.Logger, roleService *service.RoleService) *SeedHandler {
	return &SeedHandler{
		logger:      logger,
		roleService: roleService,
	}
}

func (handler *SeedHandler) SeedManager(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		cmd.Println("usage: seed-manager <email> [name]")
		return
	}
	email := args[0]
	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	role, err := handler.roleService.Register(context.Background(), &dto.RegisterRoleDto{
		Email: email,
		Name:  name,
		Role:  core.RoleManager,
	})
	if err != nil {
		handler.logger.Error("seed manager failed", zap.String("email", email), zap.Error(err))
		cmd.PrintErrf("seed manager failed: %v\n", err)
		return
	}
	cmd.Printf("manager ready: %s (%s)\n", role.Email, role.ID)
}
