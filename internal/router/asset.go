package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AssetRouter struct {
	assetHandler *handler.AssetHandler
	auth         *middleware.Auth
	manager      *middleware.Manager
}

func NewAssetRouter(
	assetHandler *handler.AssetHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
) *AssetRouter {
	return &AssetRouter{assetHandler: assetHandler, auth: auth, manager: manager}
}

func (router *AssetRouter) RegisterRoutes(r *gin.Engine) {
	assets := r.Group("/assets", router.auth.Handler())
	{
		assets.POST("", router.manager.Handler(), router.assetHandler.Create)
		assets.GET("", router.assetHandler.List)
		assets.GET("/owned/:email", router.manager.Handler(), router.assetHandler.ListOwned)
		assets.GET("/:id", router.assetHandler.Get)
		assets.PATCH("/:id", router.manager.Handler(), router.assetHandler.Update)
		assets.PATCH("/:id/quantity", router.manager.Handler(), router.assetHandler.AdjustQuantity)
		assets.DELETE("/:id", router.manager.Handler(), router.assetHandler.Delete)
	}
}
