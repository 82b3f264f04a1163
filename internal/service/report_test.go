package service

import (
	"context"
	"testing"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newReportServiceForTest(assetStore *fakeAssetStore, requestStore *fakeRequestStore) *ReportService {
	return NewReportService(testTrace(), assetStore, requestStore)
}

func TestMostRequestedQueryShape(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	_, err := service.MostRequested(context.Background())
	require.NoError(t, err)

	assert.Equal(t, bson.M{}, requestStore.listFilter, "leaderboard spans every status and requester")
	require.NotNil(t, requestStore.listOptions)
	assert.Equal(t, bson.M{"requestCount": -1}, requestStore.listOptions.Sort)
	require.NotNil(t, requestStore.listOptions.Limit)
	assert.Equal(t, int64(core.MostRequestedLimit), *requestStore.listOptions.Limit)
}

func TestPendingQueueQueryShape(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	_, err := service.PendingQueue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, bson.M{"status": core.StatusPending}, requestStore.listFilter)
	require.NotNil(t, requestStore.listOptions)
	// 最舊的先審
	assert.Equal(t, bson.M{"requestedDate": 1}, requestStore.listOptions.Sort)
	require.NotNil(t, requestStore.listOptions.Limit)
	assert.Equal(t, int64(core.PendingQueueLimit), *requestStore.listOptions.Limit)
}

func TestReturnableAndNonReturnableSplitByStatus(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	_, err := service.Returnable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"status": core.StatusReturned}, requestStore.listFilter)

	_, err = service.NonReturnable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"status": core.StatusApproved}, requestStore.listFilter)
}

func TestSearchIsCaseInsensitiveRegex(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	_, err := service.Search(context.Background(), "mac")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"productName": bson.M{"$regex": "mac", "$options": "i"}}, requestStore.listFilter)

	_, err = service.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, bson.M{}, requestStore.listFilter)
}

func TestListByRequesterFilterChain(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	// search 命中時跨所有 requester 查詢
	_, err := service.ListByRequester(context.Background(), "amy@corp.io", core.RequestListFilter{
		Search: "mac", Status: "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"productName": bson.M{"$regex": "mac", "$options": "i"}}, requestStore.listFilter)

	// status 與 requesterMail 合併
	_, err = service.ListByRequester(context.Background(), "amy@corp.io", core.RequestListFilter{
		Status: "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io", "status": "pending"}, requestStore.listFilter)

	// 沒有條件就只剩本人範圍
	_, err = service.ListByRequester(context.Background(), "amy@corp.io", core.RequestListFilter{})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io"}, requestStore.listFilter)
}

func TestRecentByRequesterSortsNewestFirst(t *testing.T) {
	requestStore := newFakeRequestStore()
	service := newReportServiceForTest(newFakeAssetStore(), requestStore)

	_, err := service.RecentByRequester(context.Background(), "amy@corp.io")
	require.NoError(t, err)

	assert.Equal(t, bson.M{"requesterMail": "amy@corp.io"}, requestStore.listFilter)
	require.NotNil(t, requestStore.listOptions)
	assert.Equal(t, bson.M{"requestedDate": -1}, requestStore.listOptions.Sort)
}

func TestLowStockUsesSharedThreshold(t *testing.T) {
	assetStore := newFakeAssetStore()
	assetStore.lowStockResult = []*model.Asset{
		{ProductName: "hdmi cable", ProductQuantity: 2},
	}
	service := newReportServiceForTest(assetStore, newFakeRequestStore())

	assets, err := service.LowStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(core.LowStockThreshold), assetStore.lowStockThreshold)
	require.Len(t, assets, 1)
	assert.Equal(t, "hdmi cable", assets[0].ProductName)
}
