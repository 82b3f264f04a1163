package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type TeamRouter struct {
	teamHandler *handler.TeamHandler
	auth        *middleware.Auth
	manager     *middleware.Manager
}

func NewTeamRouter(
	teamHandler *handler.TeamHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
) *TeamRouter {
	return &TeamRouter{teamHandler: teamHandler, auth: auth, manager: manager}
}

func (router *TeamRouter) RegisterRoutes(r *gin.Engine) {
	teams := r.Group("/teams", router.auth.Handler())
	{
		// /mine 要先註冊，避免被 /:email 萬用路徑吃掉
		teams.GET("/mine/:id", router.teamHandler.Mine)
		teams.GET("/unassigned", router.manager.Handler(), router.teamHandler.Unassigned)
		teams.GET("/:email", router.manager.Handler(), router.teamHandler.Members)
		teams.PATCH("/assign/:id", router.manager.Handler(), router.teamHandler.Assign)
		teams.PATCH("/remove/:id", router.manager.Handler(), router.teamHandler.Remove)
	}
}
