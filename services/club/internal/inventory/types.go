package inventory

import (
	"time"
)

// ProductRequest 新增商品
type ProductRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=200"`
	Description   string     `json:"description" validate:"max=1000"`
	SKU           string     `json:"sku" validate:"required,min=2,max=50"`
	CategoryID    int64      `json:"category_id" validate:"required,gt=0"`
	SupplierID    *int64     `json:"supplier_id" validate:"omitempty,gt=0"`
	UnitPrice     float64    `json:"unit_price" validate:"gte=0"`
	CostPrice     float64    `json:"cost_price" validate:"gte=0"`
	MinStock      int        `json:"min_stock" validate:"gte=0"`
	MaxStock      int        `json:"max_stock" validate:"gte=0"`
	CurrentStock  int        `json:"current_stock" validate:"gte=0"`
	UnitOfMeasure string     `json:"unit_of_measure" validate:"max=20"`
	Barcode       string     `json:"barcode" validate:"max=50"`
	Location      string     `json:"location" validate:"max=100"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	Status        string     `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
}

// ProductUpdateRequest 修改商品，库存只能通过库存变动调整
type ProductUpdateRequest struct {
	Name          *string    `json:"name" validate:"omitempty,min=2,max=200"`
	Description   *string    `json:"description" validate:"omitempty,max=1000"`
	CategoryID    *int64     `json:"category_id" validate:"omitempty,gt=0"`
	SupplierID    *int64     `json:"supplier_id" validate:"omitempty,gt=0"`
	UnitPrice     *float64   `json:"unit_price" validate:"omitempty,gte=0"`
	CostPrice     *float64   `json:"cost_price" validate:"omitempty,gte=0"`
	MinStock      *int       `json:"min_stock" validate:"omitempty,gte=0"`
	MaxStock      *int       `json:"max_stock" validate:"omitempty,gte=0"`
	UnitOfMeasure *string    `json:"unit_of_measure" validate:"omitempty,max=20"`
	Barcode       *string    `json:"barcode" validate:"omitempty,max=50"`
	Location      *string    `json:"location" validate:"omitempty,max=100"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	Status        *string    `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
}

// Fields 转换为更新字段
func (r *ProductUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.CategoryID != nil {
		f["category_id"] = *r.CategoryID
	}
	if r.SupplierID != nil {
		f["supplier_id"] = *r.SupplierID
	}
	if r.UnitPrice != nil {
		f["unit_price"] = *r.UnitPrice
	}
	if r.CostPrice != nil {
		f["cost_price"] = *r.CostPrice
	}
	if r.MinStock != nil {
		f["min_stock"] = *r.MinStock
	}
	if r.MaxStock != nil {
		f["max_stock"] = *r.MaxStock
	}
	if r.UnitOfMeasure != nil {
		f["unit_of_measure"] = *r.UnitOfMeasure
	}
	if r.Barcode != nil {
		f["barcode"] = *r.Barcode
	}
	if r.Location != nil {
		f["location"] = *r.Location
	}
	if r.ExpiryDate != nil {
		f["expiry_date"] = *r.ExpiryDate
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	return f
}

// ProductListRequest 商品列表筛选
type ProductListRequest struct {
	Search   string `query:"search"`
	Category int64  `query:"category"`
	Supplier int64  `query:"supplier"`
	Status   string `query:"status"`
	LowStock bool   `query:"low_stock"`
}

// CategoryRequest 新增分类
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// CategorySummary 分类及其商品数
type CategorySummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Color        string  `json:"color"`
	ProductCount int64   `json:"product_count"`
	TotalStock   int64   `json:"total_stock"`
	TotalValue   float64 `json:"total_value"`
}

// SupplierRequest 新增供应商
type SupplierRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=200"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=20"`
	Address       string `json:"address" validate:"max=300"`
	TaxID         string `json:"tax_id" validate:"max=50"`
	PaymentTerms  string `json:"payment_terms" validate:"omitempty,oneof=immediate net_15 net_30 net_45 net_60 net_90"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// SupplierUpdateRequest 修改供应商
type SupplierUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=100"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address" validate:"omitempty,max=300"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=50"`
	PaymentTerms  *string `json:"payment_terms" validate:"omitempty,oneof=immediate net_15 net_30 net_45 net_60 net_90"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// Fields 转换为更新字段
func (r *SupplierUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	for col, v := range map[string]*string{
		"name":           r.Name,
		"contact_person": r.ContactPerson,
		"email":          r.Email,
		"phone":          r.Phone,
		"address":        r.Address,
		"tax_id":         r.TaxID,
		"payment_terms":  r.PaymentTerms,
		"status":         r.Status,
	} {
		if v != nil {
			f[col] = *v
		}
	}
	return f
}

// MovementRequest 登记库存变动
type MovementRequest struct {
	ProductID       int64   `json:"product_id" validate:"required,gt=0"`
	MovementType    string  `json:"movement_type" validate:"required,oneof=in out purchase sale adjustment transfer return damage expiry"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	ReferenceNumber string  `json:"reference_number" validate:"max=50"`
	Notes           string  `json:"notes" validate:"max=500"`
}

// MovementListRequest 库存变动筛选
type MovementListRequest struct {
	ProductID    int64  `query:"product_id"`
	MovementType string `query:"movement_type"`
}

// ItemRequestCreate 活动物资领用申请
type ItemRequestCreate struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	EventID   *int64 `json:"event_id" validate:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"max=500"`
}

// ReviewRequest 审批领用申请
type ReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// PurchaseRequest 新增采购单，编号为空时自动生成
type PurchaseRequest struct {
	SupplierID       int64      `json:"supplier_id" validate:"required,gt=0"`
	PurchaseNumber   string     `json:"purchase_number" validate:"omitempty,min=3,max=50"`
	TotalAmount      float64    `json:"total_amount" validate:"gte=0,lte=1000000"`
	PurchaseDate     time.Time  `json:"purchase_date" validate:"required"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Notes            string     `json:"notes" validate:"max=1000"`
}

// PurchaseStatusRequest 修改采购单状态，审批走单独接口
type PurchaseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending ordered received cancelled completed"`
}

// PurchaseListRequest 采购单筛选
type PurchaseListRequest struct {
	SupplierID int64  `query:"supplier_id"`
	Status     string `query:"status"`
}

// Statistics 库存汇总
type Statistics struct {
	TotalProducts       int64   `json:"total_products"`
	ActiveProducts      int64   `json:"active_products"`
	InactiveProducts    int64   `json:"inactive_products"`
	LowStockProducts    int64   `json:"low_stock_products"`
	OutOfStockProducts  int64   `json:"out_of_stock_products"`
	ExpiredProducts     int64   `json:"expired_products"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
	TotalCostValue      float64 `json:"total_cost_value"`
}
