package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RoleRouter struct {
	authHandler *handler.AuthHandler
	roleHandler *handler.RoleHandler
	auth        *middleware.Auth
	manager     *middleware.Manager
}

func NewRoleRouter(
	authHandler *handler.AuthHandler,
	roleHandler *handler.RoleHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
) *RoleRouter {
	return &RoleRouter{
		authHandler: authHandler,
		roleHandler: roleHandler,
		auth:        auth,
		manager:     manager,
	}
}

func (router *RoleRouter) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/token", router.authHandler.IssueToken)

	roles := r.Group("/roles")
	{
		roles.POST("", router.roleHandler.Register)
		// 角色探測不用 token：前端登入流程在拿 token 之前就要判斷入口
		roles.GET("/manager/:email", router.roleHandler.ProbeManager)
		roles.GET("/employee/:email", router.roleHandler.ProbeEmployee)
		roles.GET("/my-info/:email", router.auth.Handler(), router.roleHandler.MyInfo)
		roles.GET("/hr-manager/:email", router.auth.Handler(), router.manager.Handler(), router.roleHandler.HRManagerInfo)
	}
}
