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

type PaymentHandler struct {
	trace          *telemetry.Trace
	paymentService *service.PaymentService
	roleService    *service.RoleService
}

func NewPaymentHandler(
	trace *telemetry.Trace,
	paymentService *service.PaymentService,
	roleService *service.RoleService,
) *PaymentHandler {
	return &PaymentHandler{
		trace:          trace,
		paymentService: paymentService,
		roleService:    roleService,
	}
}

// CreateIntent 建立 payment intent
// @Summary 向金流閘道建立 payment intent
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateIntentDto true "方案金額"
// @Success 200 {object} dto.IntentResponseDto
// @Failure 502 {object} map[string]string
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateIntentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	intent, err := h.paymentService.CreateIntent(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, intent)
}

// requireOwnRecord 付款紀錄只許本人操作，manager 例外
func (h *PaymentHandler) requireOwnRecord(ctx context.Context, c *gin.Context) (string, error) {
	email := c.Param("email")
	claimMail := c.GetString(core.ContextEmailKey)
	if email != claimMail && h.roleService.RequireManager(ctx, claimMail) != nil {
		return "", cErr.ForbiddenScope("can only access your own payment record")
	}
	return email, nil
}

// GetManager 讀取付款後的角色紀錄
// @Summary 取得指定 email 的角色紀錄（含方案與交易，僅限本人或 manager）
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.RoleResponseDto
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/manager/{email} [get]
func (h *PaymentHandler) GetManager(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	email, scopeErr := h.requireOwnRecord(ctx, c)
	if scopeErr != nil {
		end(scopeErr)
		response.AbortWithError(c, scopeErr)
		return
	}

	role, err := h.roleService.Lookup(ctx, email)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, role)
}

// ApplyPayment 付款完成後回填角色紀錄
// @Summary 回填方案、交易編號與額度（僅限本人或 manager）
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param email path string true "Email"
// @Param body body dto.ApplyPaymentDto true "付款資訊"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/manager/{email} [patch]
func (h *PaymentHandler) ApplyPayment(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	email, scopeErr := h.requireOwnRecord(ctx, c)
	if scopeErr != nil {
		end(scopeErr)
		response.AbortWithError(c, scopeErr)
		return
	}

	var req dto.ApplyPaymentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.roleService.ApplyPayment(ctx, email, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"applied": email})
}

// UpdatePackage 只改方案
// @Summary 更新角色的 selectedPackage（manager）
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param email path string true "Email"
// @Param body body dto.UpdatePackageDto true "方案"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /packages/{email} [patch]
func (h *PaymentHandler) UpdatePackage(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.UpdatePackageDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	email := c.Param("email")
	if err := h.roleService.UpdatePackage(ctx, email, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": email})
}
