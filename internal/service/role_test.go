package service

import (
	"context"
	"testing"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegisterIsIdempotent(t *testing.T) {
	roleStore := newFakeRoleStore()
	service := NewRoleService(testTrace(), roleStore)

	registerDto := &dto.RegisterRoleDto{Email: "boss@corp.io", Name: "Boss", Role: core.RoleManager}

	created, err := service.Register(context.Background(), registerDto)
	require.NoError(t, err)
	assert.Equal(t, core.TeamNone, created.Team, "a fresh role starts without a team")

	_, err = service.Register(context.Background(), registerDto)
	requireErrorCode(t, err, cErr.DUPLICATE_REGISTRATION)

	// 原紀錄不被覆寫
	stored, err := roleStore.GetByEmail(context.Background(), "boss@corp.io")
	require.NoError(t, err)
	assert.Equal(t, "Boss", stored.Name)
}

func TestRegisterDuplicateKeyRaceCollapsesToDuplicate(t *testing.T) {
	roleStore := newFakeRoleStore()
	service := NewRoleService(testTrace(), roleStore)

	// 先查不到、插入時撞唯一索引：並發註冊的縫隙
	roleStore.createErr = duplicateKeyError()

	_, err := service.Register(context.Background(), &dto.RegisterRoleDto{
		Email: "boss@corp.io", Role: core.RoleManager,
	})
	requireErrorCode(t, err, cErr.DUPLICATE_REGISTRATION)
}

func TestClassifyUnknownEmailIsNotAnError(t *testing.T) {
	service := NewRoleService(testTrace(), newFakeRoleStore())

	probe, err := service.Classify(context.Background(), "ghost@corp.io")
	require.NoError(t, err)
	assert.False(t, probe.Manager)
	assert.False(t, probe.Employee)
}

func TestRequireManagerGate(t *testing.T) {
	roleStore := newFakeRoleStore()
	roleStore.put(&model.Role{Email: "boss@corp.io", Role: core.RoleManager})
	roleStore.put(&model.Role{Email: "amy@corp.io", Role: core.RoleEmployee})
	service := NewRoleService(testTrace(), roleStore)

	require.NoError(t, service.RequireManager(context.Background(), "boss@corp.io"))

	err := service.RequireManager(context.Background(), "amy@corp.io")
	requireErrorCode(t, err, cErr.FORBIDDEN)

	err = service.RequireManager(context.Background(), "ghost@corp.io")
	requireErrorCode(t, err, cErr.FORBIDDEN)
}

func TestAssignAndRemoveTeam(t *testing.T) {
	roleStore := newFakeRoleStore()
	employee := roleStore.put(&model.Role{Email: "amy@corp.io", Role: core.RoleEmployee, Team: core.TeamNone})
	service := NewRoleService(testTrace(), roleStore)

	err := service.AssignTeam(context.Background(), employee.ID, &dto.AssignTeamDto{
		Team: "boss@corp.io", HRManagerID: "hr-17",
	})
	require.NoError(t, err)

	stored, err := roleStore.GetByEmail(context.Background(), "amy@corp.io")
	require.NoError(t, err)
	assert.Equal(t, "boss@corp.io", stored.Team)
	assert.Equal(t, "hr-17", stored.HRManagerID)

	require.NoError(t, service.RemoveTeam(context.Background(), employee.ID))

	stored, err = roleStore.GetByEmail(context.Background(), "amy@corp.io")
	require.NoError(t, err)
	assert.Equal(t, core.TeamNone, stored.Team)
	assert.Empty(t, stored.HRManagerID)

	err = service.AssignTeam(context.Background(), primitive.NewObjectID(), &dto.AssignTeamDto{
		Team: "boss@corp.io", HRManagerID: "hr-17",
	})
	requireErrorCode(t, err, cErr.NOT_FOUND)
}

func TestListTeamlessFilter(t *testing.T) {
	roleStore := newFakeRoleStore()
	service := NewRoleService(testTrace(), roleStore)

	_, err := service.ListTeamless(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bson.M{"role": core.RoleEmployee, "team": core.TeamNone}, roleStore.listFilter)

	_, err = service.ListTeam(context.Background(), "boss@corp.io")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"team": "boss@corp.io"}, roleStore.listFilter)

	_, err = service.ListManaged(context.Background(), "hr-17")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"hrManagerId": "hr-17"}, roleStore.listFilter)
}

func TestApplyPaymentWritesBackPlanFields(t *testing.T) {
	roleStore := newFakeRoleStore()
	roleStore.put(&model.Role{Email: "boss@corp.io", Role: core.RoleEmployee})
	service := NewRoleService(testTrace(), roleStore)

	err := service.ApplyPayment(context.Background(), "boss@corp.io", &dto.ApplyPaymentDto{
		Amount: 250, TransactionID: "tx-91", Role: core.RoleManager, AddLimit: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, "boss@corp.io", roleStore.updatedEmail)
	assert.Equal(t, bson.M{
		"selectedPackage": 250,
		"transactionId":   "tx-91",
		"role":            core.RoleManager,
		"addLimit":        40,
	}, roleStore.updatedSetFields)

	err = service.ApplyPayment(context.Background(), "ghost@corp.io", &dto.ApplyPaymentDto{
		Amount: 250, TransactionID: "tx-91", Role: core.RoleManager, AddLimit: 40,
	})
	requireErrorCode(t, err, cErr.NOT_FOUND)
}
