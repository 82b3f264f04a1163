package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ReportRouter struct {
	reportHandler *handler.ReportHandler
	auth          *middleware.Auth
	manager       *middleware.Manager
}

func NewReportRouter(
	reportHandler *handler.ReportHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
) *ReportRouter {
	return &ReportRouter{reportHandler: reportHandler, auth: auth, manager: manager}
}

func (router *ReportRouter) RegisterRoutes(r *gin.Engine) {
	reports := r.Group("/reports")
	{
		// 首頁看板，登入前也要能看
		reports.GET("/most-requested", router.reportHandler.MostRequested)

		managed := reports.Group("", router.auth.Handler(), router.manager.Handler())
		{
			managed.GET("/pending", router.reportHandler.Pending)
			managed.GET("/returnable", router.reportHandler.Returnable)
			managed.GET("/non-returnable", router.reportHandler.NonReturnable)
			managed.GET("/low-stock", router.reportHandler.LowStock)
		}
	}
}
