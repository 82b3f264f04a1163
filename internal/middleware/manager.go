package middleware

import (
	"assetline/internal/core"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Manager 授權閘門：要求已驗證的呼叫者在角色紀錄上是 manager。
// 必須掛在 Auth 之後；查無角色或角色不符都是 403，不是 401。
type Manager struct {
	trace       *telemetry.Trace
	roleService *service.RoleService
}

func NewManager(trace *telemetry.Trace, roleService *service.RoleService) *Manager {
	return &Manager{trace: trace, roleService: roleService}
}

func (middleware *Manager) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanManagerMiddleware))

		email := c.GetString(core.ContextEmailKey)
		if email == "" {
			middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "missing_claims"})
			err := cErr.Unauthorized("missing auth context")
			response.AbortWithError(c, err)
			end(err)
			return
		}

		if err := middleware.roleService.RequireManager(ctx, email); err != nil {
			middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
				Email:  email,
				Status: "not_manager",
			})
			response.AbortWithError(c, err)
			end(err)
			return
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
			Email:  email,
			Role:   string(core.RoleManager),
			Status: "success",
		})
		end(nil)
		c.Next()
	}
}
