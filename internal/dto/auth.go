package dto

// 簽發 access token（原系統的 /jwt：payload 只需要 email）
type IssueTokenDto struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
}

type TokenResponseDto struct {
	Token string `json:"token"`
}
