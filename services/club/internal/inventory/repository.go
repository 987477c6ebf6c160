package inventory

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	apperrors "github.com/countryclub/pkg/errors"
	"github.com/countryclub/services/club/internal/model"
)

// ErrProductNotFound 变动或申请引用的商品不存在
var ErrProductNotFound = apperrors.NotFound("Producto")

// Repository 库存仓储
type Repository struct {
	db         *gorm.DB
	products   *dal.Repository[model.Product]
	categories *dal.Repository[model.Category]
	suppliers  *dal.Repository[model.Supplier]
	movements  *dal.Repository[model.Movement]
	requests   *dal.Repository[model.ItemRequest]
	purchases  *dal.Repository[model.Purchase]
}

// NewRepository 创建库存仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		products:   dal.NewRepository[model.Product](db),
		categories: dal.NewRepository[model.Category](db),
		suppliers:  dal.NewRepository[model.Supplier](db),
		movements:  dal.NewRepository[model.Movement](db),
		requests:   dal.NewRepository[model.ItemRequest](db),
		purchases:  dal.NewRepository[model.Purchase](db),
	}
}

// ListProducts 分页查询商品
func (r *Repository) ListProducts(ctx context.Context, req *ProductListRequest, p *dal.Pagination) (*dal.PagedResult[model.Product], error) {
	f := dal.NewFilter().
		Search(req.Search, "name", "sku", "description", "barcode").
		EqInt("category_id", req.Category).
		EqInt("supplier_id", req.Supplier).
		Eq("status", req.Status).
		Where(req.LowStock, "current_stock <= min_stock").
		Order("name ASC")
	scopes := append(f.Scopes(), dal.WithPreload("Category"), dal.WithPreload("Supplier"))
	return r.products.FindPaged(ctx, p, scopes...)
}

// FindProduct 查询商品及分类、供应商
func (r *Repository) FindProduct(ctx context.Context, id int64) (*model.Product, error) {
	return r.products.FindByID(ctx, id, dal.WithPreload("Category"), dal.WithPreload("Supplier"))
}

// CreateProduct 创建商品
func (r *Repository) CreateProduct(ctx context.Context, p *model.Product) error {
	return r.products.Create(ctx, p)
}

// UpdateProduct 更新商品字段
func (r *Repository) UpdateProduct(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	return r.products.UpdateFields(ctx, id, fields)
}

// DeleteProduct 删除商品
func (r *Repository) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	return r.products.Delete(ctx, id)
}

// SKUExists 检查 SKU 是否重复
func (r *Repository) SKUExists(ctx context.Context, sku string) (bool, error) {
	return r.products.Exists(ctx, dal.WithWhere("sku = ?", sku))
}

// LowStock 低于最低库存的在售商品
func (r *Repository) LowStock(ctx context.Context, limit int) ([]model.Product, error) {
	return r.products.Find(ctx,
		dal.WithWhere("current_stock <= min_stock AND status = ?", "active"),
		dal.WithOrder("current_stock ASC"),
		dal.WithPreload("Category"),
		func(db *gorm.DB) *gorm.DB { return db.Limit(limit) },
	)
}

// Expired 已过期且仍有库存的商品
func (r *Repository) Expired(ctx context.Context, now time.Time) ([]model.Product, error) {
	return r.products.Find(ctx,
		dal.WithWhere("expiry_date < ? AND current_stock > 0", now),
		dal.WithOrder("expiry_date ASC"),
	)
}

// Statistics 库存汇总
func (r *Repository) Statistics(ctx context.Context, now time.Time) (*Statistics, error) {
	var s Statistics
	err := r.db.WithContext(ctx).Model(&model.Product{}).Select(`
		COUNT(*) AS total_products,
		COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active_products,
		COALESCE(SUM(CASE WHEN status = 'inactive' THEN 1 ELSE 0 END), 0) AS inactive_products,
		COALESCE(SUM(CASE WHEN current_stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock_products,
		COALESCE(SUM(CASE WHEN current_stock = 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_products,
		COALESCE(SUM(CASE WHEN expiry_date < ? THEN 1 ELSE 0 END), 0) AS expired_products,
		COALESCE(SUM(current_stock * unit_price), 0) AS total_inventory_value,
		COALESCE(SUM(current_stock * cost_price), 0) AS total_cost_value`, now).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Categories 分类及商品汇总
func (r *Repository) Categories(ctx context.Context) ([]CategorySummary, error) {
	var out []CategorySummary
	err := r.db.WithContext(ctx).Table("inventory_categories AS c").
		Select(`c.id, c.name, c.description, c.color,
			COUNT(p.id) AS product_count,
			COALESCE(SUM(p.current_stock), 0) AS total_stock,
			COALESCE(SUM(p.current_stock * p.unit_price), 0) AS total_value`).
		Joins("LEFT JOIN inventory_products AS p ON p.category_id = c.id AND p.deleted_at IS NULL").
		Where("c.deleted_at IS NULL").
		Group("c.id, c.name, c.description, c.color").
		Order("c.name ASC").
		Scan(&out).Error
	return out, err
}

// CreateCategory 创建分类
func (r *Repository) CreateCategory(ctx context.Context, c *model.Category) error {
	return r.categories.Create(ctx, c)
}

// CategoryExists 检查分类
func (r *Repository) CategoryExists(ctx context.Context, scopes ...dal.Scope) (bool, error) {
	return r.categories.Exists(ctx, scopes...)
}

// ListSuppliers 分页查询供应商
func (r *Repository) ListSuppliers(ctx context.Context, search, status string, p *dal.Pagination) (*dal.PagedResult[model.Supplier], error) {
	f := dal.NewFilter().
		Search(search, "name", "contact_person", "email").
		Eq("status", status).
		Order("name ASC")
	return r.suppliers.FindPaged(ctx, p, f.Scopes()...)
}

// FindSupplier 查询供应商
func (r *Repository) FindSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	return r.suppliers.FindByID(ctx, id)
}

// CreateSupplier 创建供应商
func (r *Repository) CreateSupplier(ctx context.Context, s *model.Supplier) error {
	return r.suppliers.Create(ctx, s)
}

// UpdateSupplier 更新供应商字段
func (r *Repository) UpdateSupplier(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	return r.suppliers.UpdateFields(ctx, id, fields)
}

// DeleteSupplier 删除供应商
func (r *Repository) DeleteSupplier(ctx context.Context, id int64) (int64, error) {
	return r.suppliers.Delete(ctx, id)
}

// ListMovements 分页查询库存变动
func (r *Repository) ListMovements(ctx context.Context, req *MovementListRequest, p *dal.Pagination) (*dal.PagedResult[model.Movement], error) {
	f := dal.NewFilter().
		EqInt("product_id", req.ProductID).
		Eq("movement_type", req.MovementType).
		Order("movement_date DESC, id DESC")
	return r.movements.FindPaged(ctx, p, append(f.Scopes(), dal.WithPreload("Product"))...)
}

// RecordMovement 在一个事务内写入变动并调整库存，库存不足时整体回滚
func (r *Repository) RecordMovement(ctx context.Context, m *model.Movement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyMovement(tx, m)
	})
}

func applyMovement(tx *gorm.DB, m *model.Movement) error {
	var p model.Product
	if err := tx.Select("id", "current_stock").First(&p, m.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	delta := model.StockDelta(m.MovementType, m.Quantity)
	if delta != 0 {
		// 条件更新保证并发下库存不为负
		res := tx.Model(&model.Product{}).
			Where("id = ? AND current_stock + ? >= 0", p.ID, delta).
			Update("current_stock", gorm.Expr("current_stock + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInsufficientStock
		}
		if err := tx.Select("current_stock").First(&p, p.ID).Error; err != nil {
			return err
		}
	}

	m.StockAfter = p.CurrentStock
	m.StockBefore = p.CurrentStock - delta
	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now()
	}
	return tx.Create(m).Error
}

// ListRequests 分页查询领用申请
func (r *Repository) ListRequests(ctx context.Context, status string, p *dal.Pagination) (*dal.PagedResult[model.ItemRequest], error) {
	f := dal.NewFilter().Eq("status", status).Order("id DESC")
	return r.requests.FindPaged(ctx, p, f.Scopes()...)
}

// CreateRequest 创建领用申请
func (r *Repository) CreateRequest(ctx context.Context, req *model.ItemRequest) error {
	ok, err := r.products.Exists(ctx, dal.WithWhere("id = ?", req.ProductID))
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return r.requests.Create(ctx, req)
}

// FindRequest 查询领用申请
func (r *Repository) FindRequest(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return r.requests.FindByID(ctx, id)
}

// ReviewRequest 审批领用申请；批准时同一事务内登记出库
func (r *Repository) ReviewRequest(ctx context.Context, req *model.ItemRequest, status string, reviewer int64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ItemRequest{}).
			Where("id = ? AND status = ?", req.ID, model.StatusPending).
			Updates(map[string]any{"status": status, "approved_by": reviewer, "approved_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.BadRequest("La solicitud ya fue procesada")
		}
		if status != model.StatusApproved {
			return nil
		}
		return applyMovement(tx, &model.Movement{
			ProductID:       req.ProductID,
			MovementType:    model.MovementOut,
			Quantity:        req.Quantity,
			ReferenceNumber: requestReference(req.ID),
			Notes:           req.Reason,
			MovementDate:    at,
			CreatedBy:       reviewer,
		})
	})
}

// ListPurchases 分页查询采购单
func (r *Repository) ListPurchases(ctx context.Context, req *PurchaseListRequest, p *dal.Pagination) (*dal.PagedResult[model.Purchase], error) {
	f := dal.NewFilter().
		EqInt("supplier_id", req.SupplierID).
		Eq("status", req.Status).
		Order("purchase_date DESC, id DESC")
	return r.purchases.FindPaged(ctx, p, append(f.Scopes(), dal.WithPreload("Supplier"))...)
}

// FindPurchase 查询采购单
func (r *Repository) FindPurchase(ctx context.Context, id int64) (*model.Purchase, error) {
	return r.purchases.FindByID(ctx, id, dal.WithPreload("Supplier"))
}

// CreatePurchase 创建采购单
func (r *Repository) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	return r.purchases.Create(ctx, p)
}

// PurchaseNumberExists 检查采购单号
func (r *Repository) PurchaseNumberExists(ctx context.Context, number string) (bool, error) {
	return r.purchases.Exists(ctx, dal.WithWhere("purchase_number = ?", number))
}

// UpdatePurchase 更新采购单字段
func (r *Repository) UpdatePurchase(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	return r.purchases.UpdateFields(ctx, id, fields)
}

// ApprovePurchase 审批待处理的采购单
func (r *Repository) ApprovePurchase(ctx context.Context, id, approver int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]any{"status": model.StatusApproved, "approved_by": approver, "approved_at": at, "updated_by": approver})
	return res.RowsAffected > 0, res.Error
}
