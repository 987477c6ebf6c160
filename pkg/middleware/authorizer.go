package middleware

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
)

// Authorizer 基于权限目录的请求门控，角色由前置认证中间件写入 c.Locals("role")
type Authorizer struct {
	evaluator *permission.Evaluator

	mu       sync.Mutex
	bindings []permission.Binding
}

// NewAuthorizer 创建门控
func NewAuthorizer(evaluator *permission.Evaluator) *Authorizer {
	return &Authorizer{evaluator: evaluator}
}

// RequirePermission 要求当前角色拥有 module.action 权限
func (a *Authorizer) RequirePermission(module permission.Module, action permission.Action) fiber.Handler {
	a.record(module, action)
	msg := fmt.Sprintf("No tienes permisos para %s en el módulo %s", action, module)
	return a.gate(module, action, msg, func(role permission.Role) bool {
		return a.evaluator.HasPermission(role, module, action)
	})
}

// RequireModuleAccess 要求当前角色可访问模块（即拥有 READ 权限）
func (a *Authorizer) RequireModuleAccess(module permission.Module) fiber.Handler {
	a.record(module, permission.ActionRead)
	msg := fmt.Sprintf("No tienes acceso al módulo %s", module)
	return a.gate(module, permission.ActionRead, msg, func(role permission.Role) bool {
		return a.evaluator.CanAccessModule(role, module)
	})
}

// Bindings 返回所有已生成门控引用的 (module, action)
func (a *Authorizer) Bindings() []permission.Binding {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]permission.Binding, len(a.bindings))
	copy(out, a.bindings)
	return out
}

func (a *Authorizer) record(module permission.Module, action permission.Action) {
	a.mu.Lock()
	a.bindings = append(a.bindings, permission.Binding{Module: module, Action: action})
	a.mu.Unlock()
}

func (a *Authorizer) gate(module permission.Module, action permission.Action, forbidden string, allow func(permission.Role) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return response.Unauthorized(c, "")
		}
		if !allow(permission.Role(role)) {
			logger.Warn("permission denied",
				zap.String("role", role),
				zap.String("module", string(module)),
				zap.String("action", string(action)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int64("userId", GetUserID(c)),
			)
			return response.Forbidden(c, forbidden)
		}
		return c.Next()
	}
}
