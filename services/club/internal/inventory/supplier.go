package inventory

import (
	"github.com/gofiber/fiber/v2"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/validation"
	"github.com/countryclub/services/club/internal/model"
)

func (c *Controller) listSuppliers(ctx *fiber.Ctx) error {
	page, err := c.repo.ListSuppliers(ctx.UserContext(), ctx.Query("search"), ctx.Query("status"), dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createSupplier(ctx *fiber.Ctx) error {
	var req SupplierRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	s := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		PaymentTerms:  req.PaymentTerms,
		Status:        req.Status,
		CreatedBy:     middleware.GetUserID(ctx),
	}
	if s.PaymentTerms == "" {
		s.PaymentTerms = "net_30"
	}
	if s.Status == "" {
		s.Status = "active"
	}
	if err := c.repo.CreateSupplier(ctx.UserContext(), s); err != nil {
		return errors.Internal(err)
	}
	return response.Created(ctx, s)
}

func (c *Controller) getSupplier(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	s, err := c.findSupplier(ctx, id)
	if err != nil {
		return err
	}
	return response.Success(ctx, s)
}

func (c *Controller) updateSupplier(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req SupplierUpdateRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return errors.BadRequest("No hay campos para actualizar")
	}
	n, err := c.repo.UpdateSupplier(ctx.UserContext(), id, fields)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Proveedor")
	}
	s, err := c.findSupplier(ctx, id)
	if err != nil {
		return err
	}
	return response.SuccessWithMessage(ctx, response.MsgUpdated, s)
}

func (c *Controller) deleteSupplier(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	n, err := c.repo.DeleteSupplier(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if n == 0 {
		return errors.NotFound("Proveedor")
	}
	return response.SuccessWithMessage(ctx, response.MsgDeleted, nil)
}

func (c *Controller) findSupplier(ctx *fiber.Ctx, id int64) (*model.Supplier, error) {
	s, err := c.repo.FindSupplier(ctx.UserContext(), id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if s == nil {
		return nil, errors.NotFound("Proveedor")
	}
	return s, nil
}
