package router

import (
	"assetline/internal/handler"
	"assetline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type PaymentRouter struct {
	paymentHandler *handler.PaymentHandler
	auth           *middleware.Auth
	manager        *middleware.Manager
}

func NewPaymentRouter(
	paymentHandler *handler.PaymentHandler,
	auth *middleware.Auth,
	manager *middleware.Manager,
) *PaymentRouter {
	return &PaymentRouter{paymentHandler: paymentHandler, auth: auth, manager: manager}
}

func (router *PaymentRouter) RegisterRoutes(r *gin.Engine) {
	payments := r.Group("/payments", router.auth.Handler())
	{
		payments.POST("/intent", router.paymentHandler.CreateIntent)
		payments.GET("/manager/:email", router.paymentHandler.GetManager)
		payments.PATCH("/manager/:email", router.paymentHandler.ApplyPayment)
	}

	r.PATCH("/packages/:email", router.auth.Handler(), router.manager.Handler(), router.paymentHandler.UpdatePackage)
}
