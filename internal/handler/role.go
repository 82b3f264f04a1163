package handler

import (
	"assetline/internal/core"
	"assetline/internal/dto"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"
	"assetline/utils/validate"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	trace       *telemetry.Trace
	roleService *service.RoleService
}

func NewRoleHandler(trace *telemetry.Trace, roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{trace: trace, roleService: roleService}
}

// Register 註冊角色
// @Summary 首次登入建立角色，重複註冊回傳既有紀錄
// @Tags Role
// @Accept json
// @Produce json
// @Param body body dto.RegisterRoleDto true "角色資訊"
// @Success 201 {object} dto.RoleResponseDto
// @Failure 400 {object} map[string]string
// @Router /roles [post]
func (h *RoleHandler) Register(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.RegisterRoleDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	role, err := h.roleService.Register(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, role)
}

// ProbeManager 探測 email 是否為 manager
// @Summary 探測角色是否為 manager
// @Tags Role
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.RoleProbeDto
// @Router /roles/manager/{email} [get]
func (h *RoleHandler) ProbeManager(c *gin.Context) {
	h.probe(c)
}

// ProbeEmployee 探測 email 是否為 employee
// @Summary 探測角色是否為 employee
// @Tags Role
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.RoleProbeDto
// @Router /roles/employee/{email} [get]
func (h *RoleHandler) ProbeEmployee(c *gin.Context) {
	h.probe(c)
}

func (h *RoleHandler) probe(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	probe, err := h.roleService.Classify(ctx, c.Param("email"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, probe)
}

// MyInfo 取得自己的角色紀錄
// @Summary 取得自己的角色紀錄（僅限本人）
// @Tags Role
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.RoleResponseDto
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /roles/my-info/{email} [get]
func (h *RoleHandler) MyInfo(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	email := c.Param("email")
	if email != c.GetString(core.ContextEmailKey) {
		err := cErr.ForbiddenScope("can only read your own record")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	role, err := h.roleService.Lookup(ctx, email)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, role)
}

// HRManagerInfo 查任一角色紀錄（manager 限定）
// @Summary 查指定 email 的角色紀錄
// @Tags Role
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} dto.RoleResponseDto
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /roles/hr-manager/{email} [get]
func (h *RoleHandler) HRManagerInfo(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	role, err := h.roleService.Lookup(ctx, c.Param("email"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, role)
}
