package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/cache"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/router"
)

// statsTTL 仪表盘统计的缓存时间
const statsTTL = 30 * time.Second

// Controller 报表
type Controller struct {
	repo  *Repository
	authz *middleware.Authorizer
	stats *cache.Cache[*GeneralStatistics]
	now   func() time.Time
}

// NewController 创建报表控制器
func NewController(repo *Repository, authz *middleware.Authorizer) *Controller {
	return &Controller{
		repo:  repo,
		authz: authz,
		stats: cache.New[*GeneralStatistics](statsTTL),
		now:   time.Now,
	}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/reports"
}

// Routes 返回路由配置
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	gate := func(action permission.Action) []fiber.Handler {
		return []fiber.Handler{mw["jwt"], c.authz.RequirePermission(permission.ModuleReports, action)}
	}
	return []router.Route{
		{Method: "GET", Path: "/statistics", Handler: c.statistics, Middlewares: gate(permission.ActionReadReports)},
		{Method: "GET", Path: "/membership", Handler: c.membership, Middlewares: gate(permission.ActionGenerateReports)},
		{Method: "GET", Path: "/events", Handler: c.events, Middlewares: gate(permission.ActionGenerateReports)},
		{Method: "GET", Path: "/inventory", Handler: c.inventory, Middlewares: gate(permission.ActionGenerateReports)},
		{Method: "GET", Path: "/maintenance", Handler: c.maintenance, Middlewares: gate(permission.ActionGenerateReports)},
		{Method: "GET", Path: "/export/:kind", Handler: c.export, Middlewares: gate(permission.ActionExportData)},
	}
}

// periodStart 计算 week/month/year 的起点
func periodStart(now time.Time, period string) (time.Time, bool) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	}
	return time.Time{}, false
}

func filter(ctx *fiber.Ctx) (*Filter, error) {
	var f Filter
	if err := ctx.QueryParser(&f); err != nil {
		return nil, errors.BadRequest(err.Error())
	}
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, errors.BadRequest("Fecha inválida, use el formato AAAA-MM-DD")
		}
	}
	return &f, nil
}

func (c *Controller) statistics(ctx *fiber.Ctx) error {
	period := ctx.Query("period", "month")
	since, ok := periodStart(c.now(), period)
	if !ok {
		return errors.BadRequest("Periodo inválido, use: week, month, year")
	}
	s, err := c.stats.GetOrLoad(period, func() (*GeneralStatistics, error) {
		s, err := c.repo.General(ctx.UserContext(), since)
		if err != nil {
			return nil, err
		}
		s.Period = period
		return s, nil
	})
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, s)
}

func (c *Controller) membership(ctx *fiber.Ctx) error {
	f, err := filter(ctx)
	if err != nil {
		return err
	}
	rep, err := c.repo.Membership(ctx.UserContext(), f, c.now())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, rep)
}

func (c *Controller) events(ctx *fiber.Ctx) error {
	f, err := filter(ctx)
	if err != nil {
		return err
	}
	rep, err := c.repo.Events(ctx.UserContext(), f)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, rep)
}

func (c *Controller) inventory(ctx *fiber.Ctx) error {
	f, err := filter(ctx)
	if err != nil {
		return err
	}
	rep, err := c.repo.Inventory(ctx.UserContext(), f, c.now())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, rep)
}

func (c *Controller) maintenance(ctx *fiber.Ctx) error {
	f, err := filter(ctx)
	if err != nil {
		return err
	}
	rep, err := c.repo.Maintenance(ctx.UserContext(), f)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, rep)
}

func (c *Controller) export(ctx *fiber.Ctx) error {
	f, err := filter(ctx)
	if err != nil {
		return err
	}
	kind := ctx.Params("kind")
	now := c.now()
	var buf bytes.Buffer
	ok, err := c.repo.Export(ctx.UserContext(), kind, f, now, &buf)
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.BadRequest("Tipo de exportación inválido, use: " + strings.Join(ExportKinds(), ", "))
	}
	ctx.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-%s.csv"`, kind, now.Format("20060102")))
	return ctx.Send(buf.Bytes())
}
