package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/pkg/validation"
)

// Controller 用户管理
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	page  config.PaginationConfig
}

// NewController 创建用户控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig) *Controller {
	return &Controller{repo: repo, authz: authz, page: page}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/users"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	jwt := mw["jwt"]
	return []router.Route{
		{Method: "GET", Path: "/", Handler: c.list, Middlewares: []fiber.Handler{jwt, c.authz.RequirePermission(permission.ModuleAdmin, permission.ActionManageUsers)}},
		{Method: "GET", Path: "/profile", Handler: c.profile, Middlewares: []fiber.Handler{jwt}},
		{Method: "PUT", Path: "/update-role", Handler: c.updateRole, Middlewares: []fiber.Handler{jwt, c.authz.RequirePermission(permission.ModuleAdmin, permission.ActionManageRoles)}},
		{Method: "DELETE", Path: "/:id", Handler: c.remove, Middlewares: []fiber.Handler{jwt, c.authz.RequirePermission(permission.ModuleAdmin, permission.ActionManageUsers)}},
	}
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.BadRequest(err.Error())
	}
	page, err := c.repo.List(ctx.UserContext(), &req, dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	infos := make([]*Info, len(page.Items))
	for i := range page.Items {
		infos[i] = ToInfo(&page.Items[i])
	}
	return response.SuccessPage(ctx, infos, page.Total, page.Page, page.Limit)
}

func (c *Controller) profile(ctx *fiber.Ctx) error {
	u, err := c.repo.FindWithRole(ctx.UserContext(), middleware.GetUserID(ctx))
	if err != nil {
		return errors.Internal(err)
	}
	if u == nil {
		return errors.NotFound("Usuario")
	}
	return response.Success(ctx, ToInfo(u))
}

func (c *Controller) updateRole(ctx *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	role, err := c.repo.FindRole(ctx.UserContext(), req.RoleID)
	if err != nil {
		return errors.Internal(err)
	}
	if role == nil {
		return errors.BadRequest("Rol inválido")
	}
	n, err := c.repo.UpdateRole(ctx.UserContext(), req.UserID, req.RoleID)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Usuario")
	}
	u, err := c.repo.FindWithRole(ctx.UserContext(), req.UserID)
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, "Rol actualizado correctamente", ToInfo(u))
}

func (c *Controller) remove(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	if id == middleware.GetUserID(ctx) {
		return errors.BadRequest("No puedes eliminar tu propio usuario")
	}
	n, err := c.repo.Delete(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Usuario")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}
