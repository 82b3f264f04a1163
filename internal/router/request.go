package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type RequestRouter struct {
	requestHandler *handler.RequestHandler
	auth           *middleware.Auth
	manager        *middleware.Manager
	rateLimit      *middleware.RateLimit
}

func NewRequestRouter(
	requestHandler *handler.RequestHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
	rateLimit *middleware.RateLimit,
) *RequestRouter {
	return &RequestRouter{
		requestHandler: requestHandler,
		auth:           auth,
		manager:        manager,
		rateLimit:      rateLimit,
	}
}

func (router *RequestRouter) RegisterRoutes(r *gin.Engine) {
	requests := r.Group("/requests", router.auth.Handler())
	{
		requests.POST("", router.rateLimit.Guard(), router.requestHandler.Create)
		requests.GET("", router.manager.Handler(), router.requestHandler.Search)
		requests.GET("/quota", router.rateLimit.Quota)
		requests.GET("/mine/:email", router.requestHandler.Mine)
		requests.GET("/pending/:email", router.requestHandler.Pending)
		requests.GET("/recent/:email", router.requestHandler.Recent)
		requests.DELETE("/:id", router.requestHandler.Withdraw)
		requests.PATCH("/:id/approve", router.manager.Handler(), router.requestHandler.Approve)
		requests.PATCH("/:id/return", router.requestHandler.Return)
	}
}
