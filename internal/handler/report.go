package handler

import (
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	trace         *telemetry.Trace
	reportService *service.ReportService
}

func NewReportHandler(trace *telemetry.Trace, reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{trace: trace, reportService: reportService}
}

// MostRequested 首頁看板
// @Summary 取得請求次數最高的資產
// @Tags Report
// @Produce json
// @Success 200 {array} dto.RequestResponseDto
// @Router /reports/most-requested [get]
func (h *ReportHandler) MostRequested(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	requests, err := h.reportService.MostRequested(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// Pending 管理端待審批佇列
// @Summary 取得待審批請求佇列（manager）
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RequestResponseDto
// @Router /reports/pending [get]
func (h *ReportHandler) Pending(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	requests, err := h.reportService.PendingQueue(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// Returnable 已歸還清單
// @Summary 取得已歸還的請求（manager）
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RequestResponseDto
// @Router /reports/returnable [get]
func (h *ReportHandler) Returnable(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	requests, err := h.reportService.Returnable(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// NonReturnable 批出未還清單
// @Summary 取得已批出未歸還的請求（manager）
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RequestResponseDto
// @Router /reports/non-returnable [get]
func (h *ReportHandler) NonReturnable(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	requests, err := h.reportService.NonReturnable(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// LowStock 低庫存資產
// @Summary 取得低於補貨水位的資產（manager）
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AssetResponseDto
// @Router /reports/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	assets, err := h.reportService.LowStock(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assets)
}
