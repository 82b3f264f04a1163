package service

import (
	"context"
	"errors"
	"fmt"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RoleService Identity & Role Store：一人一筆角色紀錄與團隊歸屬
type RoleService struct {
	trace    *telemetry.Trace
	roleRepo RoleStore
}

func NewRoleService(trace *telemetry.Trace, roleRepo RoleStore) *RoleService {
	return &RoleService{trace: trace, roleRepo: roleRepo}
}

// Register 冪等註冊：email 已存在時不覆寫，回報 duplicate。
// 先查再插，插入撞唯一索引（並發註冊）時同樣收斂成 duplicate。
func (s *RoleService) Register(ctx context.Context, dto *dto.RegisterRoleDto) (*dto.RoleResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if _, err := s.roleRepo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, cErr.DuplicateRegistration(fmt.Sprintf("role for %s already exists", dto.Email))
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, cErr.DatabaseError("database Register lookup error")
	}

	role := &model.Role{
		Email:           dto.Email,
		Name:            dto.Name,
		Role:            dto.Role,
		Team:            core.TeamNone,
		SelectedPackage: dto.SelectedPackage,
		AddLimit:        dto.AddLimit,
	}
	created, err := s.roleRepo.Create(ctx, role)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.DuplicateRegistration(fmt.Sprintf("role for %s already exists", dto.Email))
		}
		return nil, cErr.DatabaseError("database Register error")
	}
	return modelToRoleResponseDto(created), nil
}

// Lookup 依 email 取角色紀錄
func (s *RoleService) Lookup(ctx context.Context, email string) (*dto.RoleResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	role, err := s.roleRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound(fmt.Sprintf("role for %s not found", email))
		}
		return nil, cErr.DatabaseError("database Lookup error")
	}
	return modelToRoleResponseDto(role), nil
}

// Classify 把 principal 解析成封閉的角色列舉，之後不再比對字串。
// 查無紀錄不是錯誤：兩個布林都是 false（沿用原系統的探測語意）。
func (s *RoleService) Classify(ctx context.Context, email string) (*dto.RoleProbeDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	role, err := s.roleRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &dto.RoleProbeDto{}, nil
		}
		return nil, cErr.DatabaseError("database Classify error")
	}
	return &dto.RoleProbeDto{
		Manager:  role.Role == core.RoleManager,
		Employee: role.Role == core.RoleEmployee,
	}, nil
}

// RequireManager 授權閘門用：email 必須存在且是 manager
func (s *RoleService) RequireManager(ctx context.Context, email string) error {
	probe, err := s.Classify(ctx, email)
	if err != nil {
		return err
	}
	if !probe.Manager {
		return cErr.Forbidden("manager role required")
	}
	return nil
}

// AssignTeam 把員工掛到 manager 的團隊（以內部 id 定位）
func (s *RoleService) AssignTeam(ctx context.Context, id primitive.ObjectID, dto *dto.AssignTeamDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	matchedCount, err := s.roleRepo.AssignTeam(ctx, id, dto.Team, dto.HRManagerID)
	if err != nil {
		return cErr.DatabaseError("database AssignTeam error")
	}
	if matchedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("role with id %s not found", id.Hex()))
	}
	return nil
}

// RemoveTeam 移除團隊歸屬；team 與 hrManagerId 同一次更新清掉
func (s *RoleService) RemoveTeam(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	matchedCount, err := s.roleRepo.RemoveTeam(ctx, id)
	if err != nil {
		return cErr.DatabaseError("database RemoveTeam error")
	}
	if matchedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("role with id %s not found", id.Hex()))
	}
	return nil
}

// ListTeamless 還沒被任何團隊收編的員工
func (s *RoleService) ListTeamless(ctx context.Context) ([]*dto.RoleResponseDto, error) {
	return s.list(ctx, bson.M{"role": core.RoleEmployee, "team": core.TeamNone})
}

// ListTeam 某 manager 名下的團隊成員
func (s *RoleService) ListTeam(ctx context.Context, managerEmail string) ([]*dto.RoleResponseDto, error) {
	return s.list(ctx, bson.M{"team": managerEmail})
}

// ListManaged 某 HR manager 名下的員工
func (s *RoleService) ListManaged(ctx context.Context, hrManagerID string) ([]*dto.RoleResponseDto, error) {
	return s.list(ctx, bson.M{"hrManagerId": hrManagerID})
}

func (s *RoleService) list(ctx context.Context, filter bson.M) ([]*dto.RoleResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	roles, err := s.roleRepo.List(ctx, filter)
	if err != nil {
		return nil, cErr.DatabaseError("database list roles error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{Scope: "roles", ResultCount: len(roles)})

	resp := make([]*dto.RoleResponseDto, len(roles))
	for i, r := range roles {
		resp[i] = modelToRoleResponseDto(r)
	}
	return resp, nil
}

// UpdatePackage 只改 selectedPackage
func (s *RoleService) UpdatePackage(ctx context.Context, email string, dto *dto.UpdatePackageDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	matchedCount, err := s.roleRepo.UpdateByEmail(ctx, email, bson.M{"selectedPackage": dto.SelectedPackage})
	if err != nil {
		return cErr.DatabaseError("database UpdatePackage error")
	}
	if matchedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("role for %s not found", email))
	}
	return nil
}

// ApplyPayment 金流完成後回填方案/額度/交易編號；金流狀態不在這裡驗證
func (s *RoleService) ApplyPayment(ctx context.Context, email string, dto *dto.ApplyPaymentDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	setFields := bson.M{
		"selectedPackage": dto.Amount,
		"transactionId":   dto.TransactionID,
		"role":            dto.Role,
		"addLimit":        dto.AddLimit,
	}
	matchedCount, err := s.roleRepo.UpdateByEmail(ctx, email, setFields)
	if err != nil {
		return cErr.DatabaseError("database ApplyPayment error")
	}
	if matchedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("role for %s not found", email))
	}
	return nil
}

func modelToRoleResponseDto(m *model.Role) *dto.RoleResponseDto {
	return &dto.RoleResponseDto{
		ID:              m.ID.Hex(),
		Email:           m.Email,
		Name:            m.Name,
		Role:            m.Role,
		Team:            m.Team,
		HRManagerID:     m.HRManagerID,
		SelectedPackage: m.SelectedPackage,
		AddLimit:        m.AddLimit,
		TransactionID:   m.TransactionID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
