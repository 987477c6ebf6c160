package inventory

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/pkg/errors"
	"github.com/countryclub/pkg/logger"
	"github.com/countryclub/pkg/middleware"
	"github.com/countryclub/pkg/response"
	"github.com/countryclub/pkg/validation"
	"github.com/countryclub/services/club/internal/model"
)

var errRequestNotFound = errors.New(fiber.StatusNotFound, "Solicitud no encontrada")

func requestReference(id int64) string {
	return fmt.Sprintf("REQ-%d", id)
}

// storeError 业务错误原样返回，其余视为内部错误
func storeError(err error) error {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Internal(err)
}

func (c *Controller) listMovements(ctx *fiber.Ctx) error {
	var req MovementListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.BadRequest(err.Error())
	}
	page, err := c.repo.ListMovements(ctx.UserContext(), &req, dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createMovement(ctx *fiber.Ctx) error {
	var req MovementRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	m := &model.Movement{
		ProductID:       req.ProductID,
		MovementType:    req.MovementType,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		MovementDate:    c.now(),
		CreatedBy:       middleware.GetUserID(ctx),
	}
	if err := c.repo.RecordMovement(ctx.UserContext(), m); err != nil {
		return storeError(err)
	}
	logger.Info("movimiento de inventario registrado",
		zap.Int64("product_id", m.ProductID),
		zap.String("type", m.MovementType),
		zap.Int("stock_before", m.StockBefore),
		zap.Int("stock_after", m.StockAfter),
	)
	return response.Created(ctx, m)
}

func (c *Controller) listRequests(ctx *fiber.Ctx) error {
	page, err := c.repo.ListRequests(ctx.UserContext(), ctx.Query("status"), dal.PaginationFromQuery(ctx, c.page))
	if err != nil {
		return errors.Internal(err)
	}
	return response.SuccessPage(ctx, page.Items, page.Total, page.Page, page.Limit)
}

func (c *Controller) createRequest(ctx *fiber.Ctx) error {
	var req ItemRequestCreate
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	r := &model.ItemRequest{
		ProductID:   req.ProductID,
		EventID:     req.EventID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Status:      model.StatusPending,
		RequestedBy: middleware.GetUserID(ctx),
	}
	if err := c.repo.CreateRequest(ctx.UserContext(), r); err != nil {
		return storeError(err)
	}
	return response.Created(ctx, r)
}

// reviewRequest 批准时扣减库存，库存不足则申请保持待处理
func (c *Controller) reviewRequest(ctx *fiber.Ctx) error {
	id, err := dal.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	var req ReviewRequest
	if err := validation.BindAndValidate(ctx, &req); err != nil {
		return err
	}
	r, err := c.repo.FindRequest(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	if r == nil {
		return errRequestNotFound
	}
	if err := c.repo.ReviewRequest(ctx.UserContext(), r, req.Status, middleware.GetUserID(ctx), c.now()); err != nil {
		return storeError(err)
	}
	r, err = c.repo.FindRequest(ctx.UserContext(), id)
	if err != nil {
		return errors.Internal(err)
	}
	msg := "Solicitud aprobada correctamente"
	if req.Status == model.StatusRejected {
		msg = "Solicitud rechazada"
	}
	return response.SuccessWithMessage(ctx, msg, r)
}
