package middleware

import (
	"context"
	"testing"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 只養 GetByEmail，Manager 閘門用不到其他方法
type stubRoleStore struct {
	roles map[string]core.Role
}

func (s *stubRoleStore) Create(_ context.Context, role *model.Role) (*model.Role, error) {
	return role, nil
}

func (s *stubRoleStore) GetByEmail(_ context.Context, email string) (*model.Role, error) {
	role, ok := s.roles[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &model.Role{Email: email, Role: role}, nil
}

func (s *stubRoleStore) GetByID(_ context.Context, _ primitive.ObjectID) (*model.Role, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubRoleStore) AssignTeam(_ context.Context, _ primitive.ObjectID, _ string, _ string) (int64, error) {
	return 0, nil
}

func (s *stubRoleStore) RemoveTeam(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubRoleStore) UpdateByEmail(_ context.Context, _ string, _ bson.M) (int64, error) {
	return 0, nil
}

func (s *stubRoleStore) List(_ context.Context, _ bson.M) ([]*model.Role, error) {
	return nil, nil
}

func newManagerForTest() *Manager {
	roleService := service.NewRoleService(&telemetry.Trace{}, &stubRoleStore{
		roles: map[string]core.Role{
			"boss@corp.io": core.RoleManager,
			"amy@corp.io":  core.RoleEmployee,
		},
	})
	return NewManager(&telemetry.Trace{}, roleService)
}

func TestManagerRequiresAuthContext(t *testing.T) {
	c := testContext(t, nil)

	newManagerForTest().Handler()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, cErr.UNAUTHORIZED, lastErrorCode(t, c))
}

func TestManagerRejectsEmployee(t *testing.T) {
	c := testContext(t, nil)
	c.Set(core.ContextEmailKey, "amy@corp.io")

	newManagerForTest().Handler()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, cErr.FORBIDDEN, lastErrorCode(t, c))
}

func TestManagerRejectsUnknownPrincipal(t *testing.T) {
	c := testContext(t, nil)
	c.Set(core.ContextEmailKey, "ghost@corp.io")

	newManagerForTest().Handler()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, cErr.FORBIDDEN, lastErrorCode(t, c))
}

func TestManagerAllowsManager(t *testing.T) {
	c := testContext(t, nil)
	c.Set(core.ContextEmailKey, "boss@corp.io")

	newManagerForTest().Handler()(c)

	assert.False(t, c.IsAborted())
}
