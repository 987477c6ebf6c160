package event

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

// Controller 活动管理
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	page  config.PaginationConfig
	now   func() time.Time
}

// NewController 创建活动控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig) *Controller {
	return &Controller{repo: repo, authz: authz, page: page, now: time.Now}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/events"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleEvents, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/upcoming/events", Handler: c.upcoming, Middlewares: gate(permission.ActionRead)},
		{Method: "GET", Path: "/status/:status", Handler: c.byStatus, Middlewares: gate(permission.ActionRead)},
		{Method: "GET", Path: "/organizer/:organizerId", Handler: c.byOrganizer, Middlewares: gate(permission.ActionRead)},
		{Method: "GET", Path: "/", Handler: c.list, Middlewares: gate(permission.ActionRead)},
		{Method: "POST", Path: "/", Handler: c.create, Middlewares: gate(permission.ActionCreate)},
		{Method: "GET", Path: "/:id", Handler: c.get, Middlewares: gate(permission.ActionRead)},
		{Method: "PUT", Path: "/:id", Handler: c.update, Middlewares: gate(permission.ActionUpdate)},
		{Method: "DELETE", Path: "/:id", Handler: c.remove, Middlewares: gate(permission.ActionDelete)},
		{Method: "PUT", Path: "/:id/approve", Handler: c.approve, Middlewares: gate(permission.ActionApproveEvents)},
	}
}

func (c *Controller) list(ctx *fiber.Ctx) error {
	var req ListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.BadRequest(err.Error())
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return errors.BadRequest("Estado de evento inválido")
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
	e := &model.Event{
		Name:         req.Name,
		Date:         req.Date,
		Description:  req.Description,
		Location:     req.Location,
		Budget:       req.Budget,
		ActualCost:   req.ActualCost,
		Status:       req.Status,
		OrganizerID:  req.OrganizerID,
		EventTypeID:  req.EventTypeID,
		MaxAttendees: req.MaxAttendees,
	}
	if e.Status == "" {
		e.Status = model.EventScheduled
	}
	if err := c.repo.Create(ctx.UserContext(), e); err != nil {
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
	fields := req.Fields()
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	n, err := c.repo.UpdateFields(ctx.UserContext(), id, fields)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Evento")
	}
	e, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, response.MsgUpdated, e)
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
		return errors.NotFound("Evento")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

func (c *Controller) upcoming(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", c.page.DefaultLimit)
	if limit < 1 || limit > c.page.MaxLimit {
		limit = c.page.DefaultLimit
	}
	events, err := c.repo.Upcoming(ctx.UserContext(), c.now(), limit)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, events)
}

func (c *Controller) byStatus(ctx *fiber.Ctx) error {
	status := ctx.Params("status")
	if !ValidStatus(status) {
		return errors.BadRequest("Estado de evento inválido")
	}
	events, err := c.repo.ByStatus(ctx.UserContext(), status)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, events)
}

func (c *Controller) byOrganizer(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "organizerId")
	if err != nil {
		return err
	}
	events, err := c.repo.ByOrganizer(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, events)
}

func (c *Controller) approve(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := c.find(ctx, id); err != nil {
		return err
	}
	ok, err := c.repo.Approve(ctx.UserContext(), id, middleware.GetUserID(ctx), c.now())
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.BadRequest("El evento ya fue aprobado")
	}
	e, err := c.find(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, "Evento aprobado correctamente", e)
}

func (c *Controller) find(ctx *fiber.Ctx, id int64) (*model.Event, error) {
	e, err := c.repo.FindByID(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if e == nil {
		return nil, errors.NotFound("Evento")
	}
	return e, nil
}
