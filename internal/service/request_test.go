package service

import (
	"context"
	"errors"
	"testing"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newRequestServiceForTest(assetStore *fakeAssetStore, requestStore *fakeRequestStore) *RequestService {
	return NewRequestService(testTrace(), nil, zap.NewNop(), assetStore, requestStore)
}

func requireErrorCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	require.Error(t, err)
	var appErr *cErr.Error
	require.True(t, errors.As(err, &appErr), "expected *cErr.Error, got %T", err)
	assert.Equal(t, wantCode, appErr.ErrorCode())
}

func TestCreateRequestDeduplicates(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "macbook", ProductQuantity: 3})
	createDto := &dto.CreateRequestDto{ProductID: asset.ID.Hex(), Note: "for onboarding"}

	first, err := service.Create(context.Background(), "amy@corp.io", "Amy", createDto)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.RequestCount)
	assert.Equal(t, core.StatusPending, first.Status)

	second, err := service.Create(context.Background(), "amy@corp.io", "Amy", createDto)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same requester and asset must collapse into one pending request")
	assert.Equal(t, int64(2), second.RequestCount)

	// 不同人請求同一資產不受去重影響
	third, err := service.Create(context.Background(), "bob@corp.io", "Bob", createDto)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Equal(t, int64(1), third.RequestCount)
}

func TestCreateRequestRetriesLostUpsertRace(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "macbook", ProductQuantity: 3})

	// 贏家的 pending 已落地，輸家的第一次 upsert 撞唯一索引
	requestStore.put(&model.Request{
		ProductID:     asset.ID,
		RequesterMail: "amy@corp.io",
		Status:        core.StatusPending,
		RequestCount:  1,
	})
	requestStore.upsertErrOnce = duplicateKeyError()

	created, err := service.Create(context.Background(), "amy@corp.io", "Amy",
		&dto.CreateRequestDto{ProductID: asset.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.RequestCount, "loser must converge to the increment")
	assert.Equal(t, 2, requestStore.upsertCalls)
}

func TestCreateRequestUpsertFailureIsNotRetried(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "macbook", ProductQuantity: 3})
	requestStore.upsertErrOnce = errors.New("socket closed")

	_, err := service.Create(context.Background(), "amy@corp.io", "Amy",
		&dto.CreateRequestDto{ProductID: asset.ID.Hex()})
	requireErrorCode(t, err, cErr.DATABASE_ERROR)
	assert.Equal(t, 1, requestStore.upsertCalls)
}

func TestCreateRequestAssetMissing(t *testing.T) {
	service := newRequestServiceForTest(newFakeAssetStore(), newFakeRequestStore())

	_, err := service.Create(context.Background(), "amy@corp.io", "Amy",
		&dto.CreateRequestDto{ProductID: "64f000000000000000000000"})
	requireErrorCode(t, err, cErr.NOT_FOUND)
}

func TestCreateRequestInvalidProductID(t *testing.T) {
	service := newRequestServiceForTest(newFakeAssetStore(), newFakeRequestStore())

	_, err := service.Create(context.Background(), "amy@corp.io", "Amy",
		&dto.CreateRequestDto{ProductID: "not-an-object-id"})
	requireErrorCode(t, err, cErr.BAD_REQUEST_BODY)
}

func TestApproveDecrementsStockAndStampsDate(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 2})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})

	require.NoError(t, service.Approve(context.Background(), request.ID))

	assert.Equal(t, int64(1), assetStore.quantity(asset.ID))
	assert.Equal(t, core.StatusApproved, requestStore.status(request.ID))
	stored, err := requestStore.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ApprovalDate)
}

func TestApproveAtZeroStockRejectsAndTouchesNothing(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 0})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})

	err := service.Approve(context.Background(), request.ID)
	requireErrorCode(t, err, cErr.INVENTORY_EXHAUSTED)

	// 兩邊都原封不動
	assert.Equal(t, int64(0), assetStore.quantity(asset.ID))
	assert.Equal(t, core.StatusPending, requestStore.status(request.ID))
}

func TestApproveAssetDeletedUnderneath(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 1})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})
	_, err := assetStore.DeleteByID(context.Background(), asset.ID)
	require.NoError(t, err)

	err = service.Approve(context.Background(), request.ID)
	requireErrorCode(t, err, cErr.NOT_FOUND)
}

func TestApproveNonPendingCompensatesStock(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 5})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusApproved,
	})

	err := service.Approve(context.Background(), request.ID)
	requireErrorCode(t, err, cErr.INVALID_TRANSITION)

	// CAS 沒命中，先扣掉的那一件必須補回來
	assert.Equal(t, int64(5), assetStore.quantity(asset.ID))
	assert.Equal(t, 1, assetStore.incrementCalls)
}

func TestApproveLostRaceCompensatesStock(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 5})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})

	// 扣庫存與 CAS 之間，另一個操作者把請求撤走了
	requestStore.beforeTransition = func() {
		requestStore.beforeTransition = nil
		_, _ = requestStore.DeleteOwnedPending(context.Background(), request.ID, "amy@corp.io")
	}

	err := service.Approve(context.Background(), request.ID)
	requireErrorCode(t, err, cErr.INVALID_TRANSITION)
	assert.Equal(t, int64(5), assetStore.quantity(asset.ID))
}

func TestApproveLastUnitSingleWinner(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 1})
	first := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})
	second := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "bob@corp.io", Status: core.StatusPending,
	})

	require.NoError(t, service.Approve(context.Background(), first.ID))

	err := service.Approve(context.Background(), second.ID)
	requireErrorCode(t, err, cErr.INVENTORY_EXHAUSTED)

	assert.Equal(t, int64(0), assetStore.quantity(asset.ID))
	assert.Equal(t, core.StatusApproved, requestStore.status(first.ID))
	assert.Equal(t, core.StatusPending, requestStore.status(second.ID))
}

func TestReturnRestocksAsset(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 0})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusApproved,
	})

	require.NoError(t, service.Return(context.Background(), request.ID, "amy@corp.io", false))

	assert.Equal(t, core.StatusReturned, requestStore.status(request.ID))
	assert.Equal(t, int64(1), assetStore.quantity(asset.ID))
}

func TestReturnRequiresApprovedStatus(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 0})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})

	err := service.Return(context.Background(), request.ID, "amy@corp.io", false)
	requireErrorCode(t, err, cErr.INVALID_TRANSITION)
	assert.Equal(t, int64(0), assetStore.quantity(asset.ID))
}

func TestReturnOwnershipScope(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 0})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusApproved,
	})

	err := service.Return(context.Background(), request.ID, "bob@corp.io", false)
	requireErrorCode(t, err, cErr.FORBIDDEN_SCOPE)
	assert.Equal(t, core.StatusApproved, requestStore.status(request.ID))

	// manager 可以代任何人歸還
	require.NoError(t, service.Return(context.Background(), request.ID, "boss@corp.io", true))
	assert.Equal(t, core.StatusReturned, requestStore.status(request.ID))
}

func TestReturnRestockFailureRollsBackStatus(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 0})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusApproved,
	})
	assetStore.incrementErr = errors.New("connection reset")

	err := service.Return(context.Background(), request.ID, "amy@corp.io", false)
	requireErrorCode(t, err, cErr.DATABASE_ERROR)

	// 狀態撤回 approved，下一次歸還可以重試
	assert.Equal(t, core.StatusApproved, requestStore.status(request.ID))
}

func TestWithdrawDeletesOwnPending(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 1})
	request := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusPending,
	})

	require.NoError(t, service.Withdraw(context.Background(), request.ID, "amy@corp.io"))

	_, err := requestStore.GetByID(context.Background(), request.ID)
	assert.Error(t, err)
}

func TestWithdrawDistinguishesFailureModes(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	service := newRequestServiceForTest(assetStore, requestStore)

	asset := assetStore.put(&model.Asset{ProductName: "monitor", ProductQuantity: 1})
	approved := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "amy@corp.io", Status: core.StatusApproved,
	})
	pending := requestStore.put(&model.Request{
		ProductID: asset.ID, RequesterMail: "bob@corp.io", Status: core.StatusPending,
	})

	// 已批出的不可撤回
	err := service.Withdraw(context.Background(), approved.ID, "amy@corp.io")
	requireErrorCode(t, err, cErr.INVALID_TRANSITION)

	// 別人的 pending 不可撤回
	err = service.Withdraw(context.Background(), pending.ID, "amy@corp.io")
	requireErrorCode(t, err, cErr.FORBIDDEN_SCOPE)

	// 根本不存在
	err = service.Withdraw(context.Background(), asset.ID, "amy@corp.io")
	requireErrorCode(t, err, cErr.NOT_FOUND)
}

// 完整走一遍：上架 → 請求 → 批准 → 耗盡 → 歸還 → 再批准
func TestLifecycleEndToEnd(t *testing.T) {
	assetStore := newFakeAssetStore()
	requestStore := newFakeRequestStore()
	assetService := NewAssetService(testTrace(), assetStore)
	requestService := newRequestServiceForTest(assetStore, requestStore)

	created, err := assetService.Create(context.Background(), "boss@corp.io", &dto.CreateAssetDto{
		ProductName:     "thinkpad",
		ProductType:     core.ProductTypeReturnable,
		ProductQuantity: 1,
		Availability:    core.AvailabilityAvailable,
	})
	require.NoError(t, err)

	amys, err := requestService.Create(context.Background(), "amy@corp.io", "Amy",
		&dto.CreateRequestDto{ProductID: created.ID})
	require.NoError(t, err)
	bobs, err := requestService.Create(context.Background(), "bob@corp.io", "Bob",
		&dto.CreateRequestDto{ProductID: created.ID})
	require.NoError(t, err)

	amyID, err := primitive.ObjectIDFromHex(amys.ID)
	require.NoError(t, err)
	bobID, err := primitive.ObjectIDFromHex(bobs.ID)
	require.NoError(t, err)
	assetID, err := primitive.ObjectIDFromHex(created.ID)
	require.NoError(t, err)

	// 最後一件批給 Amy，Bob 撲空
	require.NoError(t, requestService.Approve(context.Background(), amyID))
	requireErrorCode(t, requestService.Approve(context.Background(), bobID), cErr.INVENTORY_EXHAUSTED)
	assert.Equal(t, int64(0), assetStore.quantity(assetID))

	// Amy 歸還後 Bob 的請求才批得出去
	require.NoError(t, requestService.Return(context.Background(), amyID, "amy@corp.io", false))
	assert.Equal(t, int64(1), assetStore.quantity(assetID))

	require.NoError(t, requestService.Approve(context.Background(), bobID))
	assert.Equal(t, int64(0), assetStore.quantity(assetID))
	assert.Equal(t, core.StatusApproved, requestStore.status(bobID))
}
