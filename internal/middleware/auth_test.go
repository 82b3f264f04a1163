package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"assetline/config"
	"assetline/internal/core"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConf() *config.Configuration {
	return &config.Configuration{Auth: config.Auth{SecretKey: "mw-secret", TokenTTL: 3600}}
}

func testContext(t *testing.T, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/requests", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func lastErrorCode(t *testing.T, c *gin.Context) int {
	t.Helper()
	require.NotEmpty(t, c.Errors)
	appErr, ok := c.Errors.Last().Err.(*cErr.Error)
	require.True(t, ok, "expected *cErr.Error, got %T", c.Errors.Last().Err)
	return appErr.ErrorCode()
}

func TestAuthMissingHeader(t *testing.T) {
	auth := NewAuth(&telemetry.Trace{}, service.NewAuthService(testConf()))
	c := testContext(t, nil)

	auth.Handler()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, cErr.UNAUTHORIZED, lastErrorCode(t, c))
}

func TestAuthMalformedHeader(t *testing.T) {
	auth := NewAuth(&telemetry.Trace{}, service.NewAuthService(testConf()))

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		c := testContext(t, map[string]string{"Authorization": header})
		auth.Handler()(c)
		assert.True(t, c.IsAborted(), "header %q must be rejected", header)
		assert.Equal(t, cErr.UNAUTHORIZED, lastErrorCode(t, c))
	}
}

func TestAuthInvalidToken(t *testing.T) {
	auth := NewAuth(&telemetry.Trace{}, service.NewAuthService(testConf()))
	c := testContext(t, map[string]string{"Authorization": "Bearer not.a.token"})

	auth.Handler()(c)

	assert.True(t, c.IsAborted())
	// 憑證無效與缺少憑證是兩種不同的 401
	assert.Equal(t, cErr.INVALID_CREDENTIAL, lastErrorCode(t, c))
}

func TestAuthValidTokenPopulatesContext(t *testing.T) {
	authService := service.NewAuthService(testConf())
	auth := NewAuth(&telemetry.Trace{}, authService)

	token, err := authService.IssueToken("amy@corp.io", "Amy")
	require.NoError(t, err)

	c := testContext(t, map[string]string{"Authorization": "Bearer " + token})
	auth.Handler()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "amy@corp.io", c.GetString(core.ContextEmailKey))

	value, exists := c.Get(core.ContextClaimsKey)
	require.True(t, exists)
	claims, ok := value.(*core.Claims)
	require.True(t, ok)
	assert.Equal(t, "Amy", claims.Name)
}
