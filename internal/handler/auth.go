package handler

import (
	"assetline/internal/dto"
	"assetline/internal/pkg/response"
	"assetline/internal/service"
	"assetline/internal/telemetry"
	"assetline/utils/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuthHandler(trace *telemetry.Trace, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{trace: trace, authService: authService}
}

// IssueToken 簽發 access token
// @Summary 以 email 簽發 access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.IssueTokenDto true "身份資訊"
// @Success 200 {object} dto.TokenResponseDto
// @Failure 400 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	_, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.IssueTokenDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	token, err := h.authService.IssueToken(req.Email, req.Name)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dto.TokenResponseDto{Token: token})
}
