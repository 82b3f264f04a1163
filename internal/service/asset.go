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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssetService 庫存品項的 CRUD 與查詢。
// 數量增減不在這裡：那是生命週期引擎透過 repository 條件更新的事。
type AssetService struct {
	trace     *telemetry.Trace
	assetRepo AssetStore
}

func NewAssetService(trace *telemetry.Trace, assetRepo AssetStore) *AssetService {
	return &AssetService{trace: trace, assetRepo: assetRepo}
}

// Create 只有 manager 會走到這裡（閘門在 middleware）；ownerEmail 取自憑證
func (s *AssetService) Create(ctx context.Context, ownerEmail string, dto *dto.CreateAssetDto) (*dto.AssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	asset := &model.Asset{
		ProductName:     dto.ProductName,
		ProductType:     dto.ProductType,
		ProductQuantity: dto.ProductQuantity,
		Email:           ownerEmail,
		Availability:    dto.Availability,
		Date:            dto.Date,
	}
	created, err := s.assetRepo.Create(ctx, asset)
	if err != nil {
		return nil, cErr.DatabaseError("database CreateAsset error")
	}
	return modelToAssetResponseDto(created), nil
}

func (s *AssetService) GetByID(ctx context.Context, id primitive.ObjectID) (*dto.AssetResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("asset not found")
		}
		return nil, cErr.DatabaseError("database GetAssetByID error")
	}
	return modelToAssetResponseDto(asset), nil
}

// ListByOwner 擁有者視角的列表。filter 採 first-match-wins 條件鏈，
// sortByQuantity 時依數量倒序（原系統的 ?sort）。
func (s *AssetService) ListByOwner(ctx context.Context, ownerEmail string, filter core.ListFilter, sortByQuantity bool) ([]*dto.AssetResponseDto, error) {
	base := bson.M{"email": ownerEmail}
	var findOptions *options.FindOptions
	if sortByQuantity {
		findOptions = options.Find().SetSort(bson.M{"productQuantity": -1})
	}
	return s.list(ctx, "owner", filter, base, findOptions)
}

// ListAll 所有人可見的總表（員工挑選資產用）
func (s *AssetService) ListAll(ctx context.Context, filter core.ListFilter) ([]*dto.AssetResponseDto, error) {
	return s.list(ctx, "all", filter, bson.M{}, nil)
}

func (s *AssetService) list(ctx context.Context, scope string, filter core.ListFilter, base bson.M, findOptions *options.FindOptions) ([]*dto.AssetResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	ruleName, query := filter.Resolve(base)
	assets, err := s.assetRepo.List(ctx, query, findOptions)
	if err != nil {
		return nil, cErr.DatabaseError("database ListAssets error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Scope:       scope,
		FilterRule:  ruleName,
		ResultCount: len(assets),
	})

	resp := make([]*dto.AssetResponseDto, len(assets))
	for i, a := range assets {
		resp[i] = modelToAssetResponseDto(a)
	}
	return resp, nil
}

// Update 欄位更新；productQuantity 走 $set 是「管理員改帳」語意，
// 生命週期的增減一律走 Adjust 系列的條件更新
func (s *AssetService) Update(ctx context.Context, id primitive.ObjectID, dto *dto.UpdateAssetDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if dto.ProductName != nil {
		update["productName"] = *dto.ProductName
	}
	if dto.ProductType != nil {
		update["productType"] = *dto.ProductType
	}
	if dto.ProductQuantity != nil {
		update["productQuantity"] = *dto.ProductQuantity
	}
	if dto.Availability != nil {
		update["availability"] = *dto.Availability
	}
	if dto.Date != nil {
		update["date"] = *dto.Date
	}
	if len(update) == 0 {
		return cErr.ValidateErr("no fields to update")
	}

	matchedCount, err := s.assetRepo.UpdateByID(ctx, id, update)
	if err != nil {
		return cErr.DatabaseError("database UpdateAsset error")
	}
	if matchedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("asset with id %s not found", id.Hex()))
	}
	return nil
}

func (s *AssetService) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	deletedCount, err := s.assetRepo.DeleteByID(ctx, id)
	if err != nil {
		return cErr.DatabaseError("database DeleteAsset error")
	}
	if deletedCount == 0 {
		return cErr.NotFound(fmt.Sprintf("asset with id %s not found", id.Hex()))
	}
	return nil
}

// AdjustQuantity 手動調帳；delta < 0 時同樣不允許把庫存打負
func (s *AssetService) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int64) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if delta == 0 {
		return cErr.ValidateErr("delta must be non-zero")
	}

	var matchedCount int64
	var err error
	if delta > 0 {
		matchedCount, err = s.assetRepo.IncrementQuantity(ctx, id, delta)
	} else {
		matchedCount, err = s.assetRepo.DecrementQuantity(ctx, id, -delta)
	}
	if err != nil {
		return cErr.DatabaseError("database AdjustQuantity error")
	}
	if matchedCount == 0 {
		// 扣不到：資產不存在或庫存不足，分辨後回報
		if _, getErr := s.assetRepo.GetByID(ctx, id); getErr != nil {
			return cErr.NotFound(fmt.Sprintf("asset with id %s not found", id.Hex()))
		}
		return cErr.InventoryExhausted(fmt.Sprintf("asset %s has insufficient quantity", id.Hex()))
	}
	return nil
}

func modelToAssetResponseDto(m *model.Asset) *dto.AssetResponseDto {
	return &dto.AssetResponseDto{
		ID:              m.ID.Hex(),
		ProductName:     m.ProductName,
		ProductType:     m.ProductType,
		ProductQuantity: m.ProductQuantity,
		Email:           m.Email,
		Availability:    m.Availability,
		Date:            m.Date,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
