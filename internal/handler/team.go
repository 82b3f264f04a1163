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

type TeamHandler struct {
	trace       *telemetry.Trace
	roleService *service.RoleService
}

func NewTeamHandler(trace *telemetry.Trace, roleService *service.RoleService) *TeamHandler {
	return &TeamHandler{trace: trace, roleService: roleService}
}

// Unassigned 尚未編入任何團隊的員工
// @Summary 取得未編組員工列表
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.RoleResponseDto
// @Router /teams/unassigned [get]
func (h *TeamHandler) Unassigned(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	roles, err := h.roleService.ListTeamless(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, roles)
}

// Members 某 manager 名下的團隊成員
// @Summary 取得指定 manager 的團隊成員
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Param email path string true "Manager email"
// @Success 200 {array} dto.RoleResponseDto
// @Router /teams/{email} [get]
func (h *TeamHandler) Members(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	roles, err := h.roleService.ListTeam(ctx, c.Param("email"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, roles)
}

// Assign 把員工編入團隊
// @Summary 將員工指派給 manager
// @Tags Team
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param body body dto.AssignTeamDto true "團隊資訊"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/assign/{id} [patch]
func (h *TeamHandler) Assign(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	var req dto.AssignTeamDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.roleService.AssignTeam(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"assigned": id.Hex()})
}

// Remove 把員工移出團隊，team 與 hrManagerId 一次清掉
// @Summary 將員工移出團隊
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /teams/remove/{id} [patch]
func (h *TeamHandler) Remove(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.roleService.RemoveTeam(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": id.Hex()})
}

// Mine 自己所屬團隊的同事（hrManagerId 範圍）。
// 只能看自己所屬的那棵樹，path 的 id 必須等於本人紀錄上的 hrManagerId。
// @Summary 取得同一 hrManager 下的成員
// @Tags Team
// @Security BearerAuth
// @Produce json
// @Param id path string true "HR manager ID"
// @Success 200 {array} dto.RoleResponseDto
// @Failure 403 {object} map[string]string
// @Router /teams/mine/{id} [get]
func (h *TeamHandler) Mine(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	me, err := h.roleService.Lookup(ctx, c.GetString(core.ContextEmailKey))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	hrManagerID := c.Param("id")
	if me.HRManagerID != hrManagerID {
		err := cErr.ForbiddenScope("can only list your own team")
		end(err)
		response.AbortWithError(c, err)
		return
	}

	roles, err := h.roleService.ListManaged(ctx, hrManagerID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, roles)
}
