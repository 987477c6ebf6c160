package employee

import (
	"encoding/json"

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

// Controller 员工管理
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	page  config.PaginationConfig
}

// NewController 创建员工控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig) *Controller {
	return &Controller{repo: repo, authz: authz, page: page}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/employees"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleEmployees, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/", Handler: c.list, Middlewares: gate(permission.ActionRead)},
		{Method: "POST", Path: "/", Handler: c.create, Middlewares: gate(permission.ActionCreate)},
		{Method: "GET", Path: "/:id", Handler: c.get, Middlewares: gate(permission.ActionRead)},
		{Method: "PUT", Path: "/:id", Handler: c.update, Middlewares: gate(permission.ActionUpdate)},
		{Method: "DELETE", Path: "/:id", Handler: c.remove, Middlewares: gate(permission.ActionDelete)},
		{Method: "GET", Path: "/:id/tasks", Handler: c.tasks, Middlewares: gate(permission.ActionRead)},
		{Method: "PUT", Path: "/:id/schedule", Handler: c.schedule, Middlewares: gate(permission.ActionManageSchedules)},
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
	e := &model.Employee{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DNI:                   req.DNI,
		HireDate:              req.HireDate,
		Position:              req.Position,
		Salary:                req.Salary,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Phone:                 req.Phone,
	}
	if err := c.repo.Create(ctx.UserContext(), e); err != nil {
		if dal.IsDuplicate(err) {
			return errors.Conflict("El DNI")
		}
		return errors.Internal(err)
	}
	return response.Created(ctx, e)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	e, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.Success(ctx, e)
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
	return c.apply(ctx, id, req.Fields(), response.MsgUpdated)
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
		return errors.NotFound("Empleado")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

func (c *Controller) tasks(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := c.find(ctx, id); err != nil {
		return err
	}
	tasks, err := c.repo.Tasks(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, tasks)
}

// schedule 以 JSON 文本保存排班
func (c *Controller) schedule(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req ScheduleRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	for _, s := range req.Shifts {
		if s.End <= s.Start {
			return errors.BadRequest("La hora de fin debe ser posterior a la hora de inicio")
		}
	}
	raw, err := json.Marshal(req.Shifts)
	if err != nil {
		return errors.Internal(err)
	}
	return c.apply(ctx, id, map[string]any{"schedule": string(raw)}, "Horario actualizado correctamente")
}

func (c *Controller) apply(ctx *fiber.Ctx, id int64, fields map[string]any, msg string) error {
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	n, err := c.repo.UpdateFields(ctx.UserContext(), id, fields)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Empleado")
	}
	e, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, msg, e)
}

func (c *Controller) find(ctx *fiber.Ctx, id int64) (*model.Employee, error) {
	e, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if e == nil {
		return nil, errors.NotFound("Empleado")
	}
	return e, nil
}
