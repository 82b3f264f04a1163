package response

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestSuccessWithoutMessageKey(t *testing.T) {
	c := testContext(t)

	require.NotPanics(t, func() {
		Success(c, gin.H{"approved": "68d4a6"})
	})

	data, exists := c.Get("data")
	require.True(t, exists)
	assert.Equal(t, gin.H{"approved": "68d4a6"}, data)
	assert.Equal(t, "Request Success", c.GetString("message"))
}

func TestCreateWithoutMessageKey(t *testing.T) {
	c := testContext(t)

	require.NotPanics(t, func() {
		Create(c, gin.H{"id": "68d4a6"})
	})
	assert.Equal(t, "Create Success", c.GetString("message"))
}

func TestSuccessLiftsMessageOutOfPayload(t *testing.T) {
	c := testContext(t)

	Success(c, gin.H{"message": "歸還完成", "assetId": "68d4a6"})

	assert.Equal(t, "歸還完成", c.GetString("message"))
	data, _ := c.Get("data")
	assert.Equal(t, gin.H{"assetId": "68d4a6"}, data)
}

func TestSuccessIgnoresNonStringMessage(t *testing.T) {
	c := testContext(t)

	require.NotPanics(t, func() {
		Success(c, gin.H{"message": 42})
	})
	assert.Equal(t, "Request Success", c.GetString("message"))
	data, _ := c.Get("data")
	assert.Equal(t, gin.H{"message": 42}, data)
}

func TestSuccessWithNonMapPayload(t *testing.T) {
	c := testContext(t)

	require.NotPanics(t, func() {
		Success(c, []string{"a", "b"})
	})
	assert.Equal(t, "Request Success", c.GetString("message"))
}
