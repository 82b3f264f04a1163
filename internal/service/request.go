package service

import (
	"context"
	"errors"
	"time"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	outcomeSuccess   = "success"
	outcomeExhausted = "exhausted"
	outcomeConflict  = "conflict"
	outcomeError     = "error"
)

// RequestService 請求生命週期引擎：pending → approved → returned，
// 外加 pending 的撤回。每一步狀態轉移都是 CAS 條件更新，
// 複合操作（approve / return）失敗時以補償更新回復前一步。
type RequestService struct {
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	logger      *zap.Logger
	assetRepo   AssetStore
	requestRepo RequestStore
}

func NewRequestService(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	logger *zap.Logger,
	assetRepo AssetStore,
	requestRepo RequestStore,
) *RequestService {
	return &RequestService{
		trace:       trace,
		metric:      metric,
		logger:      logger,
		assetRepo:   assetRepo,
		requestRepo: requestRepo,
	}
}

// Create 建立（或累加）一筆請求。資產必須存在；
// 同一 (productId, requesterMail) 的 pending 請求靠單次 upsert 去重。
func (s *RequestService) Create(
	ctx context.Context,
	requesterMail string,
	requesterName string,
	createDto *dto.CreateRequestDto,
) (*dto.RequestResponseDto, error) {

	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	productID, err := primitive.ObjectIDFromHex(createDto.ProductID)
	if err != nil {
		return nil, cErr.ValidateErr("invalid productId")
	}

	asset, err := s.assetRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("asset not found")
		}
		return nil, cErr.DatabaseError("database GetAssetByID error")
	}

	request := &model.Request{
		ProductID:     asset.ID,
		ProductName:   asset.ProductName,
		ProductType:   asset.ProductType,
		RequesterMail: requesterMail,
		RequesterName: requesterName,
		Note:          createDto.Note,
	}
	created, err := s.requestRepo.UpsertPending(ctx, request)
	if mongo.IsDuplicateKeyError(err) {
		// 兩個首次提交同時 miss 過濾條件時，輸家會撞 pending 唯一索引。
		// 此時文件已存在，重跑一次 upsert 就收斂成 $inc。
		created, err = s.requestRepo.UpsertPending(ctx, request)
	}
	if err != nil {
		return nil, cErr.DatabaseError("database UpsertPending error")
	}

	s.trace.ApplyTraceAttributes(span, core.TraceLifecycleMeta{
		RequestID:     created.ID.Hex(),
		AssetID:       asset.ID.Hex(),
		RequesterMail: requesterMail,
		Transition:    "submit",
		Outcome:       outcomeSuccess,
	})
	return modelToRequestResponseDto(created), nil
}

func (s *RequestService) GetByID(ctx context.Context, id primitive.ObjectID) (*dto.RequestResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("request not found")
		}
		return nil, cErr.DatabaseError("database GetRequestByID error")
	}
	return modelToRequestResponseDto(request), nil
}

// Approve 批准：先條件扣庫存（數量不足就整個拒絕，請求不動），
// 再 CAS pending → approved。CAS 沒命中代表請求已被並發轉走，
// 此時把剛扣掉的庫存補償回去。
func (s *RequestService) Approve(ctx context.Context, id primitive.ObjectID) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	meta := core.TraceLifecycleMeta{RequestID: id.Hex(), Transition: "approve"}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("request not found")
		}
		return cErr.DatabaseError("database GetRequestByID error")
	}
	meta.AssetID = request.ProductID.Hex()
	meta.RequesterMail = request.RequesterMail

	matched, err := s.assetRepo.DecrementQuantity(ctx, request.ProductID, 1)
	if err != nil {
		meta.Outcome = outcomeError
		s.countApprove(outcomeError)
		return cErr.DatabaseError("database DecrementQuantity error")
	}
	if matched == 0 {
		// 資產不見了或庫存歸零，兩邊都原封不動
		meta.Outcome = outcomeExhausted
		s.countApprove(outcomeExhausted)
		if _, getErr := s.assetRepo.GetByID(ctx, request.ProductID); getErr != nil {
			return cErr.NotFound("asset not found")
		}
		return cErr.InventoryExhausted("asset is out of stock")
	}

	matched, err = s.requestRepo.TransitionStatus(
		ctx, id, core.StatusPending, core.StatusApproved,
		bson.M{"approvalDate": time.Now().UTC()},
	)
	if err != nil || matched == 0 {
		// 請求沒轉成，扣掉的那一件要補回來
		meta.Compensated = true
		if _, incErr := s.assetRepo.IncrementQuantity(ctx, request.ProductID, 1); incErr != nil {
			s.logger.Error("approve compensation failed, asset quantity is short by one",
				zap.String("requestId", id.Hex()),
				zap.String("assetId", request.ProductID.Hex()),
				zap.Error(incErr),
			)
		}
		meta.Outcome = outcomeConflict
		s.countApprove(outcomeConflict)
		if err != nil {
			return cErr.DatabaseError("database TransitionStatus error")
		}
		return cErr.InvalidTransition("request is not pending")
	}

	meta.Outcome = outcomeSuccess
	s.countApprove(outcomeSuccess)
	return nil
}

// Return 歸還：先 CAS approved → returned，成功後補回庫存。
// 庫存補不回來時把狀態撤回 approved，讓下一次歸還重試。
// requester 只能還自己的請求；manager 不受此限。
func (s *RequestService) Return(ctx context.Context, id primitive.ObjectID, callerMail string, isManager bool) (returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	meta := core.TraceLifecycleMeta{RequestID: id.Hex(), Transition: "return"}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("request not found")
		}
		return cErr.DatabaseError("database GetRequestByID error")
	}
	meta.AssetID = request.ProductID.Hex()
	meta.RequesterMail = request.RequesterMail

	if !isManager && request.RequesterMail != callerMail {
		s.countReturn(outcomeConflict)
		return cErr.ForbiddenScope("request belongs to another requester")
	}

	matched, err := s.requestRepo.TransitionStatus(ctx, id, core.StatusApproved, core.StatusReturned, nil)
	if err != nil {
		meta.Outcome = outcomeError
		s.countReturn(outcomeError)
		return cErr.DatabaseError("database TransitionStatus error")
	}
	if matched == 0 {
		meta.Outcome = outcomeConflict
		s.countReturn(outcomeConflict)
		return cErr.InvalidTransition("request is not approved")
	}

	if _, err = s.assetRepo.IncrementQuantity(ctx, request.ProductID, 1); err != nil {
		// 庫存沒加回去，狀態撤回 approved 保持兩邊一致
		meta.Compensated = true
		if _, casErr := s.requestRepo.TransitionStatus(ctx, id, core.StatusReturned, core.StatusApproved, nil); casErr != nil {
			s.logger.Error("return compensation failed, request marked returned without restock",
				zap.String("requestId", id.Hex()),
				zap.String("assetId", request.ProductID.Hex()),
				zap.Error(casErr),
			)
		}
		meta.Outcome = outcomeError
		s.countReturn(outcomeError)
		return cErr.DatabaseError("database IncrementQuantity error")
	}

	meta.Outcome = outcomeSuccess
	s.countReturn(outcomeSuccess)
	return nil
}

// Withdraw 撤回自己的 pending 請求。approved 之後就不可撤回，
// 一顆 DeleteOne 同時驗 ownership 與狀態。
func (s *RequestService) Withdraw(ctx context.Context, id primitive.ObjectID, requesterMail string) error {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	meta := core.TraceLifecycleMeta{
		RequestID:     id.Hex(),
		RequesterMail: requesterMail,
		Transition:    "withdraw",
	}
	defer func() { s.trace.ApplyTraceAttributes(span, meta) }()

	deleted, err := s.requestRepo.DeleteOwnedPending(ctx, id, requesterMail)
	if err != nil {
		meta.Outcome = outcomeError
		return cErr.DatabaseError("database DeleteOwnedPending error")
	}
	if deleted == 0 {
		meta.Outcome = outcomeConflict
		request, getErr := s.requestRepo.GetByID(ctx, id)
		if getErr != nil {
			return cErr.NotFound("request not found")
		}
		if request.RequesterMail != requesterMail {
			return cErr.ForbiddenScope("request belongs to another requester")
		}
		return cErr.InvalidTransition("request is no longer pending")
	}
	meta.Outcome = outcomeSuccess
	return nil
}

func (s *RequestService) countApprove(outcome string) {
	if s.metric == nil || s.metric.ApproveTotal == nil {
		return
	}
	s.metric.ApproveTotal.WithLabelValues(outcome).Inc()
}

func (s *RequestService) countReturn(outcome string) {
	if s.metric == nil || s.metric.ReturnTotal == nil {
		return
	}
	s.metric.ReturnTotal.WithLabelValues(outcome).Inc()
}

func modelToRequestResponseDto(m *model.Request) *dto.RequestResponseDto {
	return &dto.RequestResponseDto{
		ID:            m.ID.Hex(),
		ProductID:     m.ProductID.Hex(),
		ProductName:   m.ProductName,
		ProductType:   m.ProductType,
		RequesterMail: m.RequesterMail,
		RequesterName: m.RequesterName,
		RequestCount:  m.RequestCount,
		Status:        m.Status,
		Note:          m.Note,
		RequestedDate: m.RequestedDate,
		ApprovalDate:  m.ApprovalDate,
	}
}
