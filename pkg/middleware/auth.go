package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/countryclub/pkg/auth"
	apperrors "github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/response"
)

// 上下文键
const (
	LocalUserID    = "userId"
	LocalEmail     = "email"
	LocalRole      = "role"
	LocalClaims    = "claims"
	LocalRequestID = "requestId"
)

// JWTAuth JWT认证中间件，每次请求重新加载用户以获取最新角色和状态
func JWTAuth(jwtManager *auth.JWTManager, loader auth.PrincipalLoader, revocations auth.RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return deny(c, apperrors.ErrTokenRequired)
		}

		claims, err := jwtManager.ParseToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return deny(c, apperrors.ErrTokenExpired)
			}
			return deny(c, apperrors.ErrTokenInvalid)
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				logger.Error("revocation lookup failed", zap.Error(err), zap.String("jti", claims.ID))
				return response.ServerError(c)
			}
			if revoked {
				return deny(c, apperrors.ErrTokenRevoked)
			}
		}

		principal, err := loader.LoadPrincipal(c.UserContext(), claims.UserID)
		if err != nil {
			logger.Error("principal lookup failed", zap.Error(err), zap.Int64("userId", claims.UserID))
			return response.ServerError(c)
		}
		if principal == nil {
			return deny(c, apperrors.ErrUserNotFound)
		}
		if !principal.Active {
			return deny(c, apperrors.ErrUserInactive)
		}

		c.Locals(LocalUserID, principal.ID)
		c.Locals(LocalEmail, principal.Email)
		c.Locals(LocalRole, principal.Role)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func deny(c *fiber.Ctx, e *apperrors.AppError) error {
	return response.Error(c, e.Code, e.Message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole 从上下文获取角色，未认证时为空
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

// GetClaims 从上下文获取Token声明
func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(LocalClaims).(*auth.Claims)
	return claims
}
