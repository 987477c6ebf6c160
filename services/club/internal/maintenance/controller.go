package maintenance

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

var errTaskNotFound = errors.New(fiber.StatusNotFound, "Tarea no encontrada")

// Controller 维护任务和事故
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	page  config.PaginationConfig
	now   func() time.Time
}

// NewController 创建维护控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig) *Controller {
	return &Controller{repo: repo, authz: authz, page: page, now: time.Now}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/maintenance"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleMaintenance, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/statistics", Handler: c.statistics, Middlewares: gate(permission.ActionRead)},
		{Method: "GET", Path: "/pending", Handler: c.pending, Middlewares: gate(permission.ActionRead)},
		{Method: "GET", Path: "/overdue", Handler: c.overdue, Middlewares: gate(permission.ActionRead)},

		{Method: "GET", Path: "/incidents", Handler: c.listIncidents, Middlewares: gate(permission.ActionRead)},
		{Method: "POST", Path: "/incidents", Handler: c.createIncident, Middlewares: gate(permission.ActionCreateIncidents)},
		{Method: "PUT", Path: "/incidents/:id/resolve", Handler: c.resolveIncident, Middlewares: gate(permission.ActionResolveIncidents)},

		{Method: "GET", Path: "/", Handler: c.list, Middlewares: gate(permission.ActionRead)},
		{Method: "POST", Path: "/", Handler: c.create, Middlewares: gate(permission.ActionCreateTasks)},
		{Method: "GET", Path: "/:id", Handler: c.get, Middlewares: gate(permission.ActionRead)},
		{Method: "PUT", Path: "/:id", Handler: c.update, Middlewares: gate(permission.ActionUpdateTasks)},
		{Method: "DELETE", Path: "/:id", Handler: c.remove, Middlewares: gate(permission.ActionDeleteTasks)},
	}
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req TaskListRequest
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
	var req TaskRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	t := &model.MaintenanceTask{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Category:      req.Category,
		Location:      req.Location,
		AssignedTo:    req.AssignedTo,
		ScheduledDate: req.ScheduledDate,
		EstimatedCost: req.EstimatedCost,
		Status:        model.TaskPending,
		RequestedBy:   middleware.GetUserID(ctx),
	}
	if t.Priority == "" {
		t.Priority = "medium"
	}
	if t.Category == "" {
		t.Category = "general"
	}
	if t.AssignedTo != nil {
		t.Status = model.TaskAssigned
	}
	if err := c.repo.Create(ctx.UserContext(), t); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, t)
}

func (c *Controller) get(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	t, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.Success(ctx, t)
}

// update 状态变为 completed 时记录完成时间
func (c *Controller) update(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req TaskUpdateRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	if req.Status != nil {
		if *req.Status == model.TaskCompleted {
			fields["completed_at"] = c.now()
		} else {
			fields["completed_at"] = nil
		}
	}
	n, err := c.repo.UpdateFields(ctx.UserContext(), id, fields)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errTaskNotFound
	}
	t, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, response.MsgUpdated, t)
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
		return errTaskNotFound
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

func (c *Controller) pending(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", c.page.DefaultLimit)
	if limit < 1 || limit > c.page.MaxLimit {
		limit = c.page.DefaultLimit
	}
	tasks, err := c.repo.Pending(ctx.UserContext(), limit)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, tasks)
}

func (c *Controller) overdue(ctx *fiber.Ctx) error {
	tasks, err := c.repo.Overdue(ctx.UserContext(), c.now())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, tasks)
}

func (c *Controller) statistics(ctx *fiber.Ctx) error {
	s, err := c.repo.Statistics(ctx.UserContext())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, s)
}

func (c *Controller) listIncidents(ctx *fiber.Ctx) error {
	page, err := c.repo.ListIncidents(ctx.UserContext(), ctx.Query("status"), ctx.Query("priority"), dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createIncident(ctx *fiber.Ctx) error {
	var req IncidentRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	i := &model.Incident{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Location:     req.Location,
		ReportedBy:   middleware.GetUserID(ctx),
		IncidentDate: c.now(),
		Status:       model.IncidentOpen,
	}
	if req.IncidentDate != nil {
		i.IncidentDate = *req.IncidentDate
	}
	if i.Priority == "" {
		i.Priority = "medium"
	}
	if err := c.repo.CreateIncident(ctx.UserContext(), i); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, i)
}

func (c *Controller) resolveIncident(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req ResolveRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	i, err := c.repo.FindIncident(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if i == nil {
		return errors.NotFound("Incidente")
	}
	ok, err := c.repo.ResolveIncident(ctx.UserContext(), id, middleware.GetUserID(ctx), req.Resolution, c.now())
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.BadRequest("El incidente ya fue resuelto")
	}
	i, err = c.repo.FindIncident(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessWithMessage(ctx, "Incidente resuelto correctamente", i)
}

func (c *Controller) find(ctx *fiber.Ctx, id int64) (*model.MaintenanceTask, error) {
	t, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if t == nil {
		return nil, errTaskNotFound
	}
	return t, nil
}
