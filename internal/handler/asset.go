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

type AssetHandler struct {
	trace        *telemetry.Trace
	assetService *service.AssetService
}

func NewAssetHandler(trace *telemetry.Trace, assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{trace: trace, assetService: assetService}
}

// Create 新增資產
// @Summary 新增資產（manager）
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateAssetDto true "資產資訊"
// @Success 201 {object} dto.AssetResponseDto
// @Failure 400 {object} map[string]string
// @Router /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	asset, err := h.assetService.Create(ctx, c.GetString(core.ContextEmailKey), &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, asset)
}

// List 所有資產（員工挑選用）
// @Summary 取得資產列表
// @Tags Asset
// @Security BearerAuth
// @Produce json
// @Param search query string false "productName 模糊搜尋"
// @Param availability query string false "供應狀態"
// @Param type query string false "資產類型"
// @Success 200 {array} dto.AssetResponseDto
// @Router /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	filter, respErr := assetFilterFromQuery(c)
	if respErr != nil {
		end(respErr)
		response.AbortWithError(c, respErr)
		return
	}

	assets, err := h.assetService.ListAll(ctx, filter)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assets)
}

// ListOwned 擁有者的資產列表
// @Summary 取得指定擁有者的資產列表（manager）
// @Tags Asset
// @Security BearerAuth
// @Produce json
// @Param email path string true "Owner email"
// @Param search query string false "productName 模糊搜尋"
// @Param availability query string false "供應狀態"
// @Param type query string false "資產類型"
// @Param sort query string false "quantity 時依數量倒序"
// @Success 200 {array} dto.AssetResponseDto
// @Router /assets/owned/{email} [get]
func (h *AssetHandler) ListOwned(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	filter, respErr := assetFilterFromQuery(c)
	if respErr != nil {
		end(respErr)
		response.AbortWithError(c, respErr)
		return
	}
	sortByQuantity := c.Query("sort") != ""

	assets, err := h.assetService.ListByOwner(ctx, c.Param("email"), filter, sortByQuantity)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assets)
}

// Get 取得單一資產
// @Summary 取得單一資產
// @Tags Asset
// @Security BearerAuth
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponseDto
// @Failure 404 {object} map[string]string
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	asset, err := h.assetService.GetByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, asset)
}

// Update 更新資產
// @Summary 更新資產（manager）
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body dto.UpdateAssetDto true "更新欄位"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assets/{id} [patch]
func (h *AssetHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	var req dto.UpdateAssetDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.assetService.Update(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": id.Hex()})
}

// AdjustQuantity 手動調整庫存
// @Summary 調整資產庫存（manager），delta 可正可負
// @Tags Asset
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body dto.AdjustQuantityDto true "調整量"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /assets/{id}/quantity [patch]
func (h *AssetHandler) AdjustQuantity(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	var req dto.AdjustQuantityDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.assetService.AdjustQuantity(ctx, id, req.Delta); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"adjusted": id.Hex()})
}

// Delete 刪除資產
// @Summary 刪除資產（manager）
// @Tags Asset
// @Security BearerAuth
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "id")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.assetService.Delete(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id.Hex()})
}

// assetFilterFromQuery 把 query string 轉成條件鏈輸入，列舉值先驗證
func assetFilterFromQuery(c *gin.Context) (core.ListFilter, error) {
	filter := core.ListFilter{
		Search:       c.Query("search"),
		Availability: c.Query("availability"),
		ProductType:  c.Query("type"),
	}
	if filter.Availability != "" && !validate.IsValidAvailability(filter.Availability) {
		return core.ListFilter{}, cErr.BadRequestParams("invalid availability")
	}
	if filter.ProductType != "" && !validate.IsValidProductType(filter.ProductType) {
		return core.ListFilter{}, cErr.BadRequestParams("invalid type")
	}
	return filter, nil
}
