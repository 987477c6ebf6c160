package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/auth"
	apperrors "github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/pkg/validation"
)

// Controller 权限目录管理与审计，只读
type Controller struct {
	policies  *auth.PolicyService
	evaluator *permission.Evaluator
	authz     *middleware.Authorizer
}

// NewController 创建管理控制器
func NewController(policies *auth.PolicyService, evaluator *permission.Evaluator, authz *middleware.Authorizer) *Controller {
	return &Controller{policies: policies, evaluator: evaluator, authz: authz}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/admin"
}

// Routes 返回路由配置
// ADMIN 模块没有 READ 操作，目录接口使用 SYSTEM_CONFIG 而不是模块访问门控
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleAdmin, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/policies", Handler: c.listPolicies, Middlewares: gate(permission.ActionManageRoles)},
		{Method: "GET", Path: "/policies/check", Handler: c.check, Middlewares: gate(permission.ActionManageRoles)},
		{Method: "GET", Path: "/catalog", Handler: c.catalog, Middlewares: gate(permission.ActionSystemConfig)},
		{Method: "GET", Path: "/bindings", Handler: c.bindings, Middlewares: gate(permission.ActionSystemConfig)},
	}
}

func (c *Controller) listPolicies(ctx *fiber.Ctx) error {
	role := ctx.Query("role")
	if role != "" && !permission.Role(role).Valid() {
		return apperrors.BadRequest("Rol inválido")
	}
	rows, err := c.policies.Policies(role)
	if err != nil {
		return apperrors.Internal(err)
	}
	return response.Success(ctx, rows)
}

// check 同时用权限目录和 Casbin 镜像判定，二者应一致
func (c *Controller) check(ctx *fiber.Ctx) error {
	var req CheckRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperrors.BadRequest(err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return err
	}
	allowed := c.evaluator.HasPermission(permission.Role(req.Role), permission.Module(req.Module), permission.Action(req.Action))
	mirrored := c.policies.Enforce(req.Role, req.Module, req.Action)
	return response.Success(ctx, &CheckResult{
		Role:       req.Role,
		Module:     req.Module,
		Action:     req.Action,
		Allowed:    allowed,
		Mirrored:   mirrored,
		Consistent: allowed == mirrored,
	})
}

func (c *Controller) catalog(ctx *fiber.Ctx) error {
	cat := c.evaluator.Catalog()
	modules := cat.Modules()
	out := make([]ModuleEntry, 0, len(modules))
	for _, m := range modules {
		entry := ModuleEntry{Module: m}
		for _, a := range cat.Actions(m) {
			entry.Actions = append(entry.Actions, ActionEntry{Action: a, Roles: cat.Allowed(m, a)})
		}
		out = append(out, entry)
	}
	return response.Success(ctx, out)
}

func (c *Controller) bindings(ctx *fiber.Ctx) error {
	rep := BindingReport{Bindings: c.authz.Bindings(), Unknown: []permission.Binding{}}
	var unknown *permission.UnknownBindingError
	if err := c.evaluator.Catalog().Validate(rep.Bindings); errors.As(err, &unknown) {
		rep.Unknown = unknown.Bindings
	}
	return response.Success(ctx, rep)
}
