package testutils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJwtSecret ключ подписи токенов в тестах
const TestJwtSecret = "test-secret-key"

type testClaims struct {
	UserId   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func sign(secret string, claims testClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString([]byte(secret))
	return signedToken
}

// GenerateToken действующий токен с указанной ролью
func GenerateToken(secret string, userId int64, username, role string) string {
	return sign(secret, testClaims{
		UserId:   userId,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
}

func GenerateExpiredToken(secret string) string {
	return sign(secret, testClaims{
		UserId:   1,
		Username: "admin",
		Role:     "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			// создан 2 часа назад, истёк час назад
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	})
}

func GenerateRolelessToken(secret string) string {
	return GenerateToken(secret, 2, "nobody", "")
}
