package middleware

import (
	"strings"

	"assetline/internal/core"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Auth 驗證 Bearer token 並把 claims 放進 gin.Context。
// 缺 token 與 token 無效是兩種不同的信號（40100 / 40101）。
type Auth struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuth(trace *telemetry.Trace, authService *service.AuthService) *Auth {
	return &Auth{trace: trace, authService: authService}
}

func (middleware *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))

		authorization := c.GetHeader("Authorization")
		if authorization == "" {
			middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "missing_header"})
			err := cErr.Unauthorized("missing authorization header")
			response.AbortWithError(c, err)
			end(err)
			return
		}

		tokenString, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || tokenString == "" {
			middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "malformed_header"})
			err := cErr.Unauthorized("malformed authorization header")
			response.AbortWithError(c, err)
			end(err)
			return
		}

		claims, err := middleware.authService.ParseToken(tokenString)
		if err != nil {
			middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "invalid_token"})
			response.AbortWithError(c, err)
			end(err)
			return
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
			Email:  claims.Email,
			Status: "success",
		})
		c.Set(core.ContextClaimsKey, claims)
		c.Set(core.ContextEmailKey, claims.Email)
		end(nil)
		c.Next()
	}
}
