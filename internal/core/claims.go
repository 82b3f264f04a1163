package core

import "github.com/golang-jwt/jwt/v4"

// Claims 驗證過的 principal；授權唯一依賴 Email
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// gin context keys
const (
	ContextClaimsKey = "auth_claims"
	ContextEmailKey  = "auth_email"
)
