package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"assetline/internal/database/mongodb/model"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 調帳只會碰 Increment / Decrement / GetByID
type adjustAssetStore struct {
	quantity int64

	incrementedBy int64
	decrementedBy int64
}

func (s *adjustAssetStore) Create(_ context.Context, asset *model.Asset) (*model.Asset, error) {
	return asset, nil
}

func (s *adjustAssetStore) GetByID(_ context.Context, _ primitive.ObjectID) (*model.Asset, error) {
	return &model.Asset{ProductQuantity: s.quantity}, nil
}

func (s *adjustAssetStore) UpdateByID(_ context.Context, _ primitive.ObjectID, _ bson.M) (int64, error) {
	return 0, nil
}

func (s *adjustAssetStore) DeleteByID(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *adjustAssetStore) DecrementQuantity(_ context.Context, _ primitive.ObjectID, delta int64) (int64, error) {
	if s.quantity < delta {
		return 0, nil
	}
	s.quantity -= delta
	s.decrementedBy += delta
	return 1, nil
}

func (s *adjustAssetStore) IncrementQuantity(_ context.Context, _ primitive.ObjectID, delta int64) (int64, error) {
	s.quantity += delta
	s.incrementedBy += delta
	return 1, nil
}

func (s *adjustAssetStore) List(_ context.Context, _ bson.M, _ *options.FindOptions) ([]*model.Asset, error) {
	return nil, nil
}

func (s *adjustAssetStore) ListLowStock(_ context.Context, _ int64) ([]*model.Asset, error) {
	return nil, nil
}

var _ service.AssetStore = (*adjustAssetStore)(nil)

func adjustContext(t *testing.T, id string, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("PATCH", "/assets/"+id+"/quantity", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

func newAssetHandlerForTest(store *adjustAssetStore) *AssetHandler {
	return NewAssetHandler(&telemetry.Trace{}, service.NewAssetService(&telemetry.Trace{}, store))
}

func TestAdjustQuantityHandlerIncrements(t *testing.T) {
	store := &adjustAssetStore{quantity: 2}
	c := adjustContext(t, primitive.NewObjectID().Hex(), `{"delta":3}`)

	newAssetHandlerForTest(store).AdjustQuantity(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, int64(5), store.quantity)
	assert.Equal(t, int64(3), store.incrementedBy)
}

func TestAdjustQuantityHandlerRejectsOverdraw(t *testing.T) {
	store := &adjustAssetStore{quantity: 1}
	c := adjustContext(t, primitive.NewObjectID().Hex(), `{"delta":-4}`)

	newAssetHandlerForTest(store).AdjustQuantity(c)

	require.NotEmpty(t, c.Errors)
	var appErr *cErr.Error
	require.ErrorAs(t, c.Errors.Last().Err, &appErr)
	assert.Equal(t, cErr.INVENTORY_EXHAUSTED, appErr.ErrorCode())
	assert.Equal(t, int64(1), store.quantity)
}

func TestAdjustQuantityHandlerRejectsBadID(t *testing.T) {
	store := &adjustAssetStore{quantity: 1}
	c := adjustContext(t, "not-an-object-id", `{"delta":1}`)

	newAssetHandlerForTest(store).AdjustQuantity(c)

	require.NotEmpty(t, c.Errors)
	assert.Equal(t, int64(1), store.quantity)
}
