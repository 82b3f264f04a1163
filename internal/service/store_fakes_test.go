package service

import (
	"context"
	"sync"
	"time"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 記憶體假件。條件更新的語意（matched / not matched）要跟
// repository 的 Mongo 查詢一模一樣，補償流程的測試才有意義。

func testTrace() *telemetry.Trace {
	return &telemetry.Trace{}
}

var (
	_ AssetStore   = (*fakeAssetStore)(nil)
	_ RequestStore = (*fakeRequestStore)(nil)
	_ RoleStore    = (*fakeRoleStore)(nil)
)

type fakeAssetStore struct {
	mu     sync.Mutex
	assets map[primitive.ObjectID]*model.Asset

	decrementErr error
	incrementErr error

	incrementCalls int

	listFilter  bson.M
	listOptions *options.FindOptions
	listResult  []*model.Asset

	lowStockThreshold int64
	lowStockResult    []*model.Asset
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{assets: map[primitive.ObjectID]*model.Asset{}}
}

func (f *fakeAssetStore) put(asset *model.Asset) *model.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	f.assets[asset.ID] = asset
	return asset
}

func (f *fakeAssetStore) quantity(id primitive.ObjectID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assets[id].ProductQuantity
}

func (f *fakeAssetStore) Create(_ context.Context, asset *model.Asset) (*model.Asset, error) {
	return f.put(asset), nil
}

func (f *fakeAssetStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *asset
	return &copied, nil
}

func (f *fakeAssetStore) UpdateByID(_ context.Context, id primitive.ObjectID, setFields bson.M) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.assets[id]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeAssetStore) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.assets[id]; !ok {
		return 0, nil
	}
	delete(f.assets, id)
	return 1, nil
}

// DecrementQuantity 只在 productQuantity >= delta 時命中，數量永不為負
func (f *fakeAssetStore) DecrementQuantity(_ context.Context, id primitive.ObjectID, delta int64) (int64, error) {
	if f.decrementErr != nil {
		return 0, f.decrementErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok || asset.ProductQuantity < delta {
		return 0, nil
	}
	asset.ProductQuantity -= delta
	return 1, nil
}

func (f *fakeAssetStore) IncrementQuantity(_ context.Context, id primitive.ObjectID, delta int64) (int64, error) {
	f.mu.Lock()
	f.incrementCalls++
	f.mu.Unlock()
	if f.incrementErr != nil {
		return 0, f.incrementErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok {
		return 0, nil
	}
	asset.ProductQuantity += delta
	return 1, nil
}

func (f *fakeAssetStore) List(_ context.Context, filter bson.M, findOptions *options.FindOptions) ([]*model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFilter = filter
	f.listOptions = findOptions
	return f.listResult, nil
}

func (f *fakeAssetStore) ListLowStock(_ context.Context, threshold int64) ([]*model.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lowStockThreshold = threshold
	return f.lowStockResult, nil
}

type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*model.Request

	transitionErr error

	// 下一次 upsert 先回這個錯，模擬並發首次提交撞唯一索引
	upsertErrOnce error
	upsertCalls   int

	// CAS 前的攔截點，用來模擬並發者搶先改走狀態
	beforeTransition func()

	listFilter  bson.M
	listOptions *options.FindOptions
	listResult  []*model.Request
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: map[primitive.ObjectID]*model.Request{}}
}

func (f *fakeRequestStore) put(request *model.Request) *model.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if request.RequestedDate.IsZero() {
		request.RequestedDate = time.Now().UTC()
	}
	f.requests[request.ID] = request
	return request
}

func (f *fakeRequestStore) status(id primitive.ObjectID) core.RequestStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[id].Status
}

func (f *fakeRequestStore) UpsertPending(_ context.Context, request *model.Request) (*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErrOnce != nil {
		err := f.upsertErrOnce
		f.upsertErrOnce = nil
		return nil, err
	}
	for _, existing := range f.requests {
		if existing.ProductID == request.ProductID &&
			existing.RequesterMail == request.RequesterMail &&
			existing.Status == core.StatusPending {
			existing.RequestCount++
			copied := *existing
			return &copied, nil
		}
	}
	request.ID = primitive.NewObjectID()
	request.Status = core.StatusPending
	request.RequestCount = 1
	request.RequestedDate = time.Now().UTC()
	f.requests[request.ID] = request
	copied := *request
	return &copied, nil
}

func (f *fakeRequestStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestStore) TransitionStatus(
	_ context.Context,
	id primitive.ObjectID,
	fromStatus core.RequestStatus,
	toStatus core.RequestStatus,
	extraSet bson.M,
) (int64, error) {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	if f.transitionErr != nil {
		return 0, f.transitionErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.Status != fromStatus {
		return 0, nil
	}
	request.Status = toStatus
	if approvalDate, ok := extraSet["approvalDate"].(time.Time); ok {
		request.ApprovalDate = &approvalDate
	}
	return 1, nil
}

func (f *fakeRequestStore) DeleteOwnedPending(_ context.Context, id primitive.ObjectID, requesterMail string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.RequesterMail != requesterMail || request.Status != core.StatusPending {
		return 0, nil
	}
	delete(f.requests, id)
	return 1, nil
}

func (f *fakeRequestStore) List(_ context.Context, filter bson.M, findOptions *options.FindOptions) ([]*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFilter = filter
	f.listOptions = findOptions
	return f.listResult, nil
}

type fakeRoleStore struct {
	mu    sync.Mutex
	roles map[string]*model.Role

	createErr error

	updatedEmail     string
	updatedSetFields bson.M

	listFilter bson.M
	listResult []*model.Role
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{roles: map[string]*model.Role{}}
}

func (f *fakeRoleStore) put(role *model.Role) *model.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	f.roles[role.Email] = role
	return role
}

func (f *fakeRoleStore) Create(_ context.Context, role *model.Role) (*model.Role, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[role.Email]; ok {
		return nil, duplicateKeyError()
	}
	role.ID = primitive.NewObjectID()
	f.roles[role.Email] = role
	copied := *role
	return &copied, nil
}

func (f *fakeRoleStore) GetByEmail(_ context.Context, email string) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *role
	return &copied, nil
}

func (f *fakeRoleStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, role := range f.roles {
		if role.ID == id {
			copied := *role
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleStore) AssignTeam(_ context.Context, id primitive.ObjectID, teamEmail string, hrManagerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, role := range f.roles {
		if role.ID == id {
			role.Team = teamEmail
			role.HRManagerID = hrManagerID
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRoleStore) RemoveTeam(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, role := range f.roles {
		if role.ID == id {
			role.Team = core.TeamNone
			role.HRManagerID = ""
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeRoleStore) UpdateByEmail(_ context.Context, email string, setFields bson.M) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updatedEmail = email
	f.updatedSetFields = setFields
	if _, ok := f.roles[email]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeRoleStore) List(_ context.Context, filter bson.M) ([]*model.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listFilter = filter
	return f.listResult, nil
}

// 模擬撞上 email 唯一索引的 E11000
func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}
