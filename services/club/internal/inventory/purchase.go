package inventory

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/validation"
	"github.com/countryclub/services/club/internal/model"
)

var errPurchaseNotFound = errors.New(fiber.StatusNotFound, "Compra no encontrada")

// purchaseNumber 生成 PUR-<日期>-<随机串>
func (c *Controller) purchaseNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "PUR-" + c.now().Format("20060102") + "-" + suffix
}

func (c *Controller) listPurchases(ctx *fiber.Ctx) error {
	var req PurchaseListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.BadRequest(err.Error())
	}
	page, err := c.repo.ListPurchases(ctx.UserContext(), &req, dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createPurchase(ctx *fiber.Ctx) error {
	var req PurchaseRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	now := c.now()
	if req.PurchaseDate.After(now) {
		return errors.BadRequest("La fecha de compra no puede ser futura")
	}
	if req.ExpectedDelivery != nil && req.ExpectedDelivery.Before(req.PurchaseDate) {
		return errors.BadRequest("La fecha de entrega esperada no puede ser anterior a la fecha de compra")
	}
	if _, err := c.findSupplier(ctx, req.SupplierID); err != nil {
		return err
	}

	number := req.PurchaseNumber
	if number == "" {
		number = c.purchaseNumber()
	} else {
		exists, err := c.repo.PurchaseNumberExists(ctx.UserContext(), number)
		if err != nil {
			return errors.Internal(err)
		}
		if exists {
			return errors.Conflict("El número de compra")
		}
	}

	uid := middleware.GetUserID(ctx)
	p := &model.Purchase{
		SupplierID:       req.SupplierID,
		PurchaseNumber:   number,
		TotalAmount:      req.TotalAmount,
		PurchaseDate:     req.PurchaseDate,
		ExpectedDelivery: req.ExpectedDelivery,
		Notes:            req.Notes,
		Status:           model.StatusPending,
		CreatedBy:        uid,
		UpdatedBy:        uid,
	}
	if err := c.repo.CreatePurchase(ctx.UserContext(), p); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, p)
}

func (c *Controller) getPurchase(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	p, err := c.findPurchase(ctx, id)
	if err != nil {
		return err
	}
	return response.Success(ctx, p)
}

func (c *Controller) updatePurchaseStatus(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req PurchaseStatusRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	n, err := c.repo.UpdatePurchase(ctx.UserContext(), id, map[string]any{
		"status":     req.Status,
		"updated_by": middleware.GetUserID(ctx),
	})
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errPurchaseNotFound
	}
	p, err := c.findPurchase(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, "Estado de compra actualizado", p)
}

func (c *Controller) approvePurchase(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	if _, err := c.findPurchase(ctx, id); err != nil {
		return err
	}
	ok, err := c.repo.ApprovePurchase(ctx.UserContext(), id, middleware.GetUserID(ctx), c.now())
	if err != nil {
		return errors.Internal(err)
	}
	if !ok {
		return errors.BadRequest("Solo se pueden aprobar compras pendientes")
	}
	p, err := c.findPurchase(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, "Compra aprobada correctamente", p)
}

func (c *Controller) findPurchase(ctx *fiber.Ctx, id int64) (*model.Purchase, error) {
	p, err := c.repo.FindPurchase(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if p == nil {
		return nil, errPurchaseNotFound
	}
	return p, nil
}
