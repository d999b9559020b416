package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin — роль, которой разрешён доступ к админским эндпоинтам
const RoleAdmin = "admin"

// NewToken генерирует JWT-токен администратора с заданным временем жизни.
func NewToken(adminID, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	if adminID == "" {
		return "", errors.New("admin id is empty")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  adminID,
		"role": RoleAdmin,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
