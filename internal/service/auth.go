package service

import (
	"errors"
	"time"

	"assetline/config"
	"assetline/internal/core"
	cErr "assetline/internal/pkg/error"

	"github.com/golang-jwt/jwt/v4"
)

// AuthService 簽發與驗證 access token。
// 授權模型只吃 token 內的 email claim，其餘交給 RoleService 解析。
type AuthService struct {
	conf *config.Configuration
}

func NewAuthService(conf *config.Configuration) *AuthService {
	return &AuthService{conf: conf}
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.conf.Auth.TokenTTL > 0 {
		return time.Duration(s.conf.Auth.TokenTTL) * time.Second
	}
	return time.Hour
}

// IssueToken 以 HS256 簽出帶 email claim 的 token
func (s *AuthService) IssueToken(email, name string) (string, error) {
	now := time.Now().UTC()
	claims := core.Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.conf.Auth.SecretKey))
	if err != nil {
		return "", cErr.InternalServer("sign token failed")
	}
	return signed, nil
}

// ParseToken 驗證簽章與效期並取回 claims。
// 失敗一律是「憑證無效」；「沒帶憑證」由 middleware 在進來之前就擋掉。
func (s *AuthService) ParseToken(tokenString string) (*core.Claims, error) {
	claims := &core.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.conf.Auth.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, cErr.InvalidCredential("token verification failed")
	}
	if claims.Email == "" {
		return nil, cErr.InvalidCredential("token has no email claim")
	}
	return claims, nil
}
