package handler

import (
	"context"

	"assetline/internal/core"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"
	"assetline/utils/validate"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	trace          *telemetry.Trace
	requestService *service.RequestService
	reportService  *service.ReportService
	roleService    *service.RoleService
}

func NewRequestHandler(
	trace *telemetry.Trace,
	requestService *service.RequestService,
	reportService *service.ReportService,
	roleService *service.RoleService,
) *RequestHandler {
	return &RequestHandler{
		trace:          trace,
		requestService: requestService,
		reportService:  reportService,
		roleService:    roleService,
	}
}

// Create 提交請求
// @Summary 提交資產請求（重複提交累加次數）
// @Tags Request
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateRequestDto true "請求資訊"
// @Success 201 {object} dto.RequestResponseDto
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateRequestDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		err := cErr.Unauthorized("missing auth context")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	request, err := h.requestService.Create(ctx, claims.Email, claims.Name, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, request)
}

// Search 全部請求（manager 檢索）
// @Summary 搜尋所有請求
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param search query string false "productName 模糊搜尋"
// @Success 200 {array} dto.RequestResponseDto
// @Router /requests [get]
func (h *RequestHandler) Search(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	requests, err := h.reportService.Search(ctx, c.Query("search"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// Mine 自己的請求，條件鏈 search > status > type
// @Summary 取得自己的請求列表
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Param search query string false "productName 模糊搜尋"
// @Param status query string false "狀態"
// @Param type query string false "資產類型"
// @Success 200 {array} dto.RequestResponseDto
// @Failure 403 {object} map[string]string
// @Router /requests/mine/{email} [get]
func (h *RequestHandler) Mine(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	email := c.Param("email")
	if email != c.GetString(core.ContextEmailKey) {
		err := cErr.ForbiddenScope("can only read your own requests")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	filter := core.RequestListFilter{
		Search:      c.Query("search"),
		Status:      c.Query("status"),
		ProductType: c.Query("type"),
	}
	if filter.Status != "" && !validate.IsValidStatus(filter.Status) {
		err := cErr.BadRequestParams("invalid status")
		end(err)
		response.AbortWithError(c, err)
		return
	}
	if filter.ProductType != "" && !validate.IsValidProductType(filter.ProductType) {
		err := cErr.BadRequestParams("invalid type")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	requests, err := h.reportService.ListByRequester(ctx, email, filter)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

// Pending 自己還在排隊的請求
// @Summary 取得自己的 pending 請求
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {array} dto.RequestResponseDto
// @Failure 403 {object} map[string]string
// @Router /requests/pending/{email} [get]
func (h *RequestHandler) Pending(c *gin.Context) {
	h.selfScoped(c, h.reportService.PendingByRequester)
}

// Recent 自己最近的請求
// @Summary 取得自己最近的請求（requestedDate 倒序）
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {array} dto.RequestResponseDto
// @Failure 403 {object} map[string]string
// @Router /requests/recent/{email} [get]
func (h *RequestHandler) Recent(c *gin.Context) {
	h.selfScoped(c, h.reportService.RecentByRequester)
}

// Withdraw 撤回自己的 pending 請求
// @Summary 撤回請求（僅限本人、僅限 pending）
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id} [delete]
func (h *RequestHandler) Withdraw(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.requestService.Withdraw(ctx, id, c.GetString(core.ContextEmailKey)); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"withdrawn": id.Hex()})
}

// Approve 批准請求
// @Summary 批准請求（manager）
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/approve [patch]
func (h *RequestHandler) Approve(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.requestService.Approve(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"approved": id.Hex()})
}

// Return 歸還
// @Summary 歸還已批准的請求（本人或 manager）
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/return [patch]
func (h *RequestHandler) Return(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	email := c.GetString(core.ContextEmailKey)
	isManager := h.roleService.RequireManager(ctx, email) == nil

	if err := h.requestService.Return(ctx, id, email, isManager); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"returned": id.Hex()})
}

func (h *RequestHandler) selfScoped(
	c *gin.Context,
	list func(ctx context.Context, email string) ([]*dto.RequestResponseDto, error),
) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	email := c.Param("email")
	if email != c.GetString(core.ContextEmailKey) {
		err := cErr.ForbiddenScope("can only read your own requests")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	requests, err := list(ctx, email)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, requests)
}

func claimsFromContext(c *gin.Context) *core.Claims {
	raw, ok := c.Get(core.ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := raw.(*core.Claims)
	return claims
}
