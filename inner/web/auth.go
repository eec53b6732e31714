package web

import (
	"errors"
	"slices"
	"time"

	"ems/inner/common"

	jwtMiddleware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	JwtKey    = "jwt"
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims полезная нагрузка токена доступа
type Claims struct {
	UserId   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken подписывает токен HS256 на время ttl
func IssueToken(secret string, ttl time.Duration, userId int64, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserId:   userId,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// middleware для JWT аутентификации
func AuthMiddleware(secret string, logger *common.Logger) fiber.Handler {
	config := jwtMiddleware.Config{
		SigningKey: jwtMiddleware.SigningKey{
			JWTAlg: jwt.SigningMethodHS256.Alg(),
			Key:    []byte(secret),
		},
		ContextKey:   JwtKey,
		ErrorHandler: createJwtErrorHandler(logger),
		Claims:       &Claims{},
	}
	return jwtMiddleware.New(config)
}

// GetClaims достаёт claims, положенные AuthMiddleware
func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	token, ok := c.Locals(JwtKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// middleware для проверки конкретной роли
func RequireRole(requiredRole string, logger *common.Logger) fiber.Handler {
	return RequireAnyRole([]string{requiredRole}, logger)
}

// middleware для проверки любой из указанных ролей
func RequireAnyRole(requiredRoles []string, logger *common.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return common.ErrResponse(c, fiber.StatusUnauthorized, "Missing or malformed JWT")
		}

		if !slices.Contains(requiredRoles, claims.Role) {
			logger.Warn("Access denied: insufficient role",
				zap.Strings("required_roles", requiredRoles),
				zap.String("user_role", claims.Role),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("ip", c.IP()))

			return common.ErrResponse(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		logger.Debug("Role check passed",
			zap.Strings("required_roles", requiredRoles),
			zap.String("user_role", claims.Role),
			zap.String("path", c.Path()))

		return c.Next()
	}
}

func createJwtErrorHandler(logger *common.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		logger.WarnCtx(ctx, "authentication failed",
			zap.Error(err),
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()))

		message := "Invalid or expired JWT"
		if errors.Is(err, jwtMiddleware.ErrJWTMissingOrMalformed) {
			message = "Missing or malformed JWT"
		}
		return common.ErrResponse(ctx, fiber.StatusUnauthorized, message)
	}
}
