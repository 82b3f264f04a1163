package service

import (
	"context"

	"assetline/internal/core"
	"assetline/internal/database/mongodb/model"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportService 請求與庫存的查詢面。
// 寫入一律走 RequestService / AssetService，這裡只有唯讀列表。
type ReportService struct {
	trace       *telemetry.Trace
	assetRepo   AssetStore
	requestRepo RequestStore
}

func NewReportService(
	trace *telemetry.Trace,
	assetRepo AssetStore,
	requestRepo RequestStore,
) *ReportService {
	return &ReportService{trace: trace, assetRepo: assetRepo, requestRepo: requestRepo}
}

// MostRequested 首頁看板：requestCount 最高的前幾筆
func (s *ReportService) MostRequested(ctx context.Context) ([]*dto.RequestResponseDto, error) {
	findOptions := options.Find().
		SetSort(bson.M{"requestCount": -1}).
		SetLimit(core.MostRequestedLimit)
	return s.listRequests(ctx, "most_requested", bson.M{}, findOptions)
}

// PendingQueue 管理員待辦佇列，只取前幾筆
func (s *ReportService) PendingQueue(ctx context.Context) ([]*dto.RequestResponseDto, error) {
	findOptions := options.Find().
		SetSort(bson.M{"requestedDate": 1}).
		SetLimit(core.PendingQueueLimit)
	return s.listRequests(ctx, "pending_queue", bson.M{"status": core.StatusPending}, findOptions)
}

// Returnable 已歸還清單
func (s *ReportService) Returnable(ctx context.Context) ([]*dto.RequestResponseDto, error) {
	return s.listRequests(ctx, "returnable", bson.M{"status": core.StatusReturned}, nil)
}

// NonReturnable 已批出、尚未歸還的清單
func (s *ReportService) NonReturnable(ctx context.Context) ([]*dto.RequestResponseDto, error) {
	return s.listRequests(ctx, "non_returnable", bson.M{"status": core.StatusApproved}, nil)
}

// Search 管理員用 productName 模糊搜尋所有請求
func (s *ReportService) Search(ctx context.Context, search string) ([]*dto.RequestResponseDto, error) {
	query := bson.M{}
	if search != "" {
		query["productName"] = bson.M{"$regex": search, "$options": "i"}
	}
	return s.listRequests(ctx, "search", query, nil)
}

// ListByRequester 員工自己的請求，條件鏈 search > status > type
func (s *ReportService) ListByRequester(ctx context.Context, requesterMail string, filter core.RequestListFilter) ([]*dto.RequestResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	ruleName, query := filter.Resolve(bson.M{"requesterMail": requesterMail})
	requests, err := s.requestRepo.List(ctx, query, nil)
	if err != nil {
		return nil, cErr.DatabaseError("database ListRequests error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Scope:       "requester",
		FilterRule:  ruleName,
		ResultCount: len(requests),
	})
	return modelsToRequestResponseDtos(requests), nil
}

// PendingByRequester 員工自己仍在排隊的請求
func (s *ReportService) PendingByRequester(ctx context.Context, requesterMail string) ([]*dto.RequestResponseDto, error) {
	query := bson.M{"requesterMail": requesterMail, "status": core.StatusPending}
	return s.listRequests(ctx, "requester_pending", query, nil)
}

// RecentByRequester 員工最近的請求，requestedDate 倒序
func (s *ReportService) RecentByRequester(ctx context.Context, requesterMail string) ([]*dto.RequestResponseDto, error) {
	findOptions := options.Find().SetSort(bson.M{"requestedDate": -1})
	return s.listRequests(ctx, "requester_recent", bson.M{"requesterMail": requesterMail}, findOptions)
}

// LowStock 低水位資產，cron 掃描與報表共用
func (s *ReportService) LowStock(ctx context.Context) ([]*dto.AssetResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	assets, err := s.assetRepo.ListLowStock(ctx, core.LowStockThreshold)
	if err != nil {
		return nil, cErr.DatabaseError("database ListLowStock error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Scope:       "low_stock",
		ResultCount: len(assets),
	})

	resp := make([]*dto.AssetResponseDto, len(assets))
	for i, a := range assets {
		resp[i] = modelToAssetResponseDto(a)
	}
	return resp, nil
}

func (s *ReportService) listRequests(ctx context.Context, scope string, query bson.M, findOptions *options.FindOptions) ([]*dto.RequestResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	requests, err := s.requestRepo.List(ctx, query, findOptions)
	if err != nil {
		return nil, cErr.DatabaseError("database ListRequests error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Scope:       scope,
		ResultCount: len(requests),
	})
	return modelsToRequestResponseDtos(requests), nil
}

func modelsToRequestResponseDtos(requests []*model.Request) []*dto.RequestResponseDto {
	resp := make([]*dto.RequestResponseDto, len(requests))
	for i, r := range requests {
		resp[i] = modelToRequestResponseDto(r)
	}
	return resp
}
