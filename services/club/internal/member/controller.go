package member

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/config"
	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/router"
	"github.com/countryclub/pkg/validation"
	"github.com/countryclub/services/club/internal/model"
)

// Controller 会员管理
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	page  config.PaginationConfig
	now   func() time.Time
}

// NewController 创建会员控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig) *Controller {
	return &Controller{repo: repo, authz: authz, page: page, now: time.Now}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/members"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleMembers, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/", Handler: c.list, Middlewares: gate(permission.ActionRead)},
		{Method: "POST", Path: "/", Handler: c.create, Middlewares: gate(permission.ActionCreate)},
		{Method: "GET", Path: "/:id", Handler: c.get, Middlewares: gate(permission.ActionRead)},
		{Method: "PUT", Path: "/:id", Handler: c.update, Middlewares: gate(permission.ActionUpdate)},
		{Method: "DELETE", Path: "/:id", Handler: c.remove, Middlewares: gate(permission.ActionDelete)},
		{Method: "PUT", Path: "/:id/verify", Handler: c.verify, Middlewares: gate(permission.ActionVerifyMembership)},
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
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	exists, err := c.repo.ExistsDNI(ctx.UserContext(), req.DNI)
	if err != nil {
		return errors.Internal(err)
	}
	if exists {
		return errors.Conflict("El DNI")
	}

	m := &model.Member{
		RegistratorID: middleware.GetUserID(ctx),
		DNI:           req.DNI,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Email:         req.Email,
		Status:        req.Status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if m.Status == "" {
		m.Status = model.MemberActive
	}
	if err := c.repo.CreateWithNumber(ctx.UserContext(), m); err != nil {
		if dal.IsDuplicate(err) {
			return errors.Conflict("El DNI")
		}
		return errors.Internal(err)
	}
	return response.Created(ctx, m)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	m, err := c.find(ctx)
	if err != nil {
		return err
	}
	return response.Success(ctx, m)
}

func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	m, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if m == nil {
		return errors.NotFound("Miembro")
	}

	start, end := m.StartDate, m.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if !end.After(start) {
		return errors.BadRequest("La fecha de fin debe ser posterior a la fecha de inicio")
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	if _, err := c.repo.UpdateFields(ctx.UserContext(), id, fields); err != nil {
		return errors.Internal(err)
	}
	m, err = c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, response.MsgUpdated, m)
}

func (c *Controller) remove(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	n, err := c.repo.Delete(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Miembro")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

// verify 校验会员资格：状态为 active 且未过期
func (c *Controller) verify(ctx *fiber.Ctx) error {
	m, err := c.find(ctx)
	if err != nil {
		return err
	}
	active := m.MembershipActive(c.now())
	msg := "Membresía válida"
	if !active {
		msg = "Membresía no válida"
	}
	return response.SuccessWithMessage(ctx, msg, &VerifyResponse{Member: m, Active: active})
}

func (c *Controller) find(ctx *fiber.Ctx) (*model.Member, error) {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return nil, err
	}
	m, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if m == nil {
		return nil, errors.NotFound("Miembro")
	}
	return m, nil
}
