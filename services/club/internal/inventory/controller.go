package inventory

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

// Controller 库存管理：商品、分类、供应商、库存变动、领用申请和采购
type Controller struct {
	repo          *Repository
	authz         *middleware.Authorizer
	page          config.PaginationConfig
	lowStockLimit int
	now           func() time.Time
}

// NewController 创建库存控制器
func NewController(repo *Repository, authz *middleware.Authorizer, page config.PaginationConfig, club config.ClubConfig) *Controller {
	limit := club.LowStockAlert
	if limit < 1 {
		limit = page.DefaultLimit
	}
	return &Controller{repo: repo, authz: authz, page: page, lowStockLimit: limit, now: time.Now}
}

// Prefix 返回路由前缀
func (c *Controller) Prefix() string {
	return "/inventory"
}

// Routes 返回路由配置，静态路径需在 /:id 之前注册
func (c *Controller) Routes(mw map[string]fiber.Handler) []router.Route {
	jwt := mw["jwt"]
	gate := func(module permission.Module, action permission.Action) []fiber.Handler {
		return []fiber.Handler{jwt, c.authz.RequirePermission(module, action)}
	}
	inv := func(action permission.Action) []fiber.Handler { return gate(permission.ModuleInventory, action) }
	sup := func(action permission.Action) []fiber.Handler { return gate(permission.ModuleSuppliers, action) }
	pur := func(action permission.Action) []fiber.Handler { return gate(permission.ModulePurchases, action) }
	// 采购单列表即采购模块的可见性
	purView := []fiber.Handler{jwt, c.authz.RequireModuleAccess(permission.ModulePurchases)}

	return []router.Route{
		{Method: "GET", Path: "/statistics", Handler: c.statistics, Middlewares: inv(permission.ActionRead)},
		{Method: "GET", Path: "/low-stock", Handler: c.lowStock, Middlewares: inv(permission.ActionRead)},
		{Method: "GET", Path: "/expired", Handler: c.expired, Middlewares: inv(permission.ActionRead)},

		{Method: "GET", Path: "/categories", Handler: c.listCategories, Middlewares: inv(permission.ActionRead)},
		{Method: "POST", Path: "/categories", Handler: c.createCategory, Middlewares: inv(permission.ActionCreate)},

		{Method: "GET", Path: "/suppliers", Handler: c.listSuppliers, Middlewares: sup(permission.ActionRead)},
		{Method: "POST", Path: "/suppliers", Handler: c.createSupplier, Middlewares: sup(permission.ActionCreate)},
		{Method: "GET", Path: "/suppliers/:id", Handler: c.getSupplier, Middlewares: sup(permission.ActionRead)},
		{Method: "PUT", Path: "/suppliers/:id", Handler: c.updateSupplier, Middlewares: sup(permission.ActionUpdate)},
		{Method: "DELETE", Path: "/suppliers/:id", Handler: c.deleteSupplier, Middlewares: sup(permission.ActionDelete)},

		{Method: "GET", Path: "/movements", Handler: c.listMovements, Middlewares: inv(permission.ActionRead)},
		{Method: "POST", Path: "/movements", Handler: c.createMovement, Middlewares: inv(permission.ActionUpdate)},

		{Method: "GET", Path: "/requests", Handler: c.listRequests, Middlewares: inv(permission.ActionRead)},
		{Method: "POST", Path: "/requests", Handler: c.createRequest, Middlewares: inv(permission.ActionRequestItems)},
		{Method: "PUT", Path: "/requests/:id/approve", Handler: c.reviewRequest, Middlewares: inv(permission.ActionApproveRequests)},

		{Method: "GET", Path: "/purchases", Handler: c.listPurchases, Middlewares: purView},
		{Method: "POST", Path: "/purchases", Handler: c.createPurchase, Middlewares: pur(permission.ActionCreate)},
		{Method: "GET", Path: "/purchases/:id", Handler: c.getPurchase, Middlewares: pur(permission.ActionRead)},
		{Method: "PUT", Path: "/purchases/:id/status", Handler: c.updatePurchaseStatus, Middlewares: pur(permission.ActionUpdate)},
		{Method: "PUT", Path: "/purchases/:id/approve", Handler: c.approvePurchase, Middlewares: pur(permission.ActionApprove)},

		{Method: "GET", Path: "/", Handler: c.listProducts, Middlewares: inv(permission.ActionRead)},
		{Method: "POST", Path: "/", Handler: c.createProduct, Middlewares: inv(permission.ActionCreate)},
		{Method: "GET", Path: "/:id", Handler: c.getProduct, Middlewares: inv(permission.ActionRead)},
		{Method: "PUT", Path: "/:id", Handler: c.updateProduct, Middlewares: inv(permission.ActionUpdate)},
		{Method: "DELETE", Path: "/:id", Handler: c.deleteProduct, Middlewares: inv(permission.ActionDelete)},
	}
}

func (c *Controller) listProducts(ctx *fiber.Ctx) error {
	var req ProductListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.BadRequest(err.Error())
	}
	page, err := c.repo.ListProducts(ctx.UserContext(), &req, dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createProduct(ctx *fiber.Ctx) error {
	var req ProductRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	if req.MaxStock > 0 && req.MaxStock < req.MinStock {
		return errors.BadRequest("El stock máximo debe ser mayor o igual al stock mínimo")
	}
	exists, err := c.repo.SKUExists(ctx.UserContext(), req.SKU)
	if err != nil {
		return errors.Internal(err)
	}
	if exists {
		return errors.Conflict("El SKU")
	}
	if err := c.checkCategory(ctx, req.CategoryID); err != nil {
		return err
	}
	if req.SupplierID != nil {
		if _, err := c.findSupplier(ctx, *req.SupplierID); err != nil {
			return err
		}
	}

	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		CategoryID:    req.CategoryID,
		SupplierID:    req.SupplierID,
		UnitPrice:     req.UnitPrice,
		CostPrice:     req.CostPrice,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		CurrentStock:  req.CurrentStock,
		UnitOfMeasure: req.UnitOfMeasure,
		Barcode:       req.Barcode,
		Location:      req.Location,
		ExpiryDate:    req.ExpiryDate,
		Status:        req.Status,
		CreatedBy:     middleware.GetUserID(ctx),
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if p.UnitOfMeasure == "" {
		p.UnitOfMeasure = "unit"
	}
	if err := c.repo.CreateProduct(ctx.UserContext(), p); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, p)
}

func (c *Controller) getProduct(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	p, err := c.findProduct(ctx, id)
	if err != nil {
		return err
	}
	return response.Success(ctx, p)
}

func (c *Controller) updateProduct(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req ProductUpdateRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	if req.CategoryID != nil {
		if err := c.checkCategory(ctx, *req.CategoryID); err != nil {
			return err
		}
	}
	n, err := c.repo.UpdateProduct(ctx.UserContext(), id, fields)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Producto")
	}
	p, err := c.findProduct(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, response.MsgUpdated, p)
}

func (c *Controller) deleteProduct(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	n, err := c.repo.DeleteProduct(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Producto")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

func (c *Controller) statistics(ctx *fiber.Ctx) error {
	s, err := c.repo.Statistics(ctx.UserContext(), c.now())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, s)
}

func (c *Controller) lowStock(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", c.lowStockLimit)
	if limit < 1 || limit > c.page.MaxLimit {
		limit = c.lowStockLimit
	}
	products, err := c.repo.LowStock(ctx.UserContext(), limit)
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, products)
}

func (c *Controller) expired(ctx *fiber.Ctx) error {
	products, err := c.repo.Expired(ctx.UserContext(), c.now())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, products)
}

func (c *Controller) listCategories(ctx *fiber.Ctx) error {
	cats, err := c.repo.Categories(ctx.UserContext())
	if err != nil {
		return errors.Internal(err)
	}
	return response.Success(ctx, cats)
}

func (c *Controller) createCategory(ctx *fiber.Ctx) error {
	var req CategoryRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	exists, err := c.repo.CategoryExists(ctx.UserContext(), dal.WithWhere("name = ?", req.Name))
	if err != nil {
		return errors.Internal(err)
	}
	if exists {
		return errors.Conflict("La categoría")
	}
	cat := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	if err := c.repo.CreateCategory(ctx.UserContext(), cat); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, cat)
}

func (c *Controller) checkCategory(ctx *fiber.Ctx, id int64) error {
	ok, err := c.repo.CategoryExists(ctx.UserContext(), dal.WithWhere("id = ?", id))
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.BadRequest("Categoría inválida")
	}
	return nil
}

func (c *Controller) findProduct(ctx *fiber.Ctx, id int64) (*model.Product, error) {
	p, err := c.repo.FindProduct(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if p == nil {
		return nil, errors.NotFound("Producto")
	}
	return p, nil
}
