package model

import (
	"time"

	"github.com/countryclub/pkg/dal"
)

// 库存变动类型
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementPurchase   = "purchase"
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementTransfer   = "transfer"
	MovementReturn     = "return"
	MovementDamage     = "damage"
	MovementExpiry     = "expiry"
)

// StockDelta 变动对当前库存的影响，其余类型只记录不调整库存
func StockDelta(movementType string, quantity int) int {
	switch movementType {
	case MovementIn, MovementPurchase:
		return quantity
	case MovementOut, MovementSale, MovementAdjustment:
		return -quantity
	default:
		return 0
	}
}

// 领用申请和采购单状态
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Category 商品分类
type Category struct {
	dal.Model
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Color       string `gorm:"size:20" json:"color"`
	CreatedBy   int64  `json:"created_by"`
}

// TableName 表名
func (Category) TableName() string {
	return "inventory_categories"
}

// Supplier 供应商
type Supplier struct {
	dal.Model
	Name          string `gorm:"size:200;not null" json:"name"`
	ContactPerson string `gorm:"size:100" json:"contact_person"`
	Email         string `gorm:"size:150" json:"email"`
	Phone         string `gorm:"size:20" json:"phone"`
	Address       string `gorm:"size:300" json:"address"`
	TaxID         string `gorm:"size:50" json:"tax_id"`
	PaymentTerms  string `gorm:"size:20" json:"payment_terms"`
	Status        string `gorm:"size:20;default:active" json:"status"`
	CreatedBy     int64  `json:"created_by"`
}

// TableName 表名
func (Supplier) TableName() string {
	return "inventory_suppliers"
}

// Product 库存商品
type Product struct {
	dal.Model
	Name          string     `gorm:"size:200;not null" json:"name"`
	Description   string     `gorm:"size:1000" json:"description"`
	SKU           string     `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku"`
	CategoryID    int64      `gorm:"index" json:"category_id"`
	SupplierID    *int64     `gorm:"index" json:"supplier_id"`
	UnitPrice     float64    `json:"unit_price"`
	CostPrice     float64    `json:"cost_price"`
	MinStock      int        `json:"min_stock"`
	MaxStock      int        `json:"max_stock"`
	CurrentStock  int        `json:"current_stock"`
	UnitOfMeasure string     `gorm:"size:20" json:"unit_of_measure"`
	Barcode       string     `gorm:"size:50" json:"barcode"`
	Location      string     `gorm:"size:100" json:"location"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	Status        string     `gorm:"size:20;default:active;index" json:"status"`
	CreatedBy     int64      `json:"created_by"`
	Category      *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier      *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName 表名
func (Product) TableName() string {
	return "inventory_products"
}

// Movement 库存变动
type Movement struct {
	dal.Model
	ProductID       int64     `gorm:"index;not null" json:"product_id"`
	MovementType    string    `gorm:"size:20;index;not null" json:"movement_type"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	ReferenceNumber string    `gorm:"size:50" json:"reference_number"`
	Notes           string    `gorm:"size:500" json:"notes"`
	StockBefore     int       `json:"stock_before"`
	StockAfter      int       `json:"stock_after"`
	MovementDate    time.Time `gorm:"index" json:"movement_date"`
	CreatedBy       int64     `json:"created_by"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 表名
func (Movement) TableName() string {
	return "inventory_movements"
}

// ItemRequest 活动物资领用申请
type ItemRequest struct {
	dal.Model
	ProductID   int64      `gorm:"index;not null" json:"product_id"`
	EventID     *int64     `gorm:"index" json:"event_id"`
	Quantity    int        `json:"quantity"`
	Reason      string     `gorm:"size:500" json:"reason"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	RequestedBy int64      `gorm:"index" json:"requested_by"`
	ApprovedBy  *int64     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// TableName 表名
func (ItemRequest) TableName() string {
	return "inventory_requests"
}

// Purchase 采购单
type Purchase struct {
	dal.Model
	SupplierID       int64      `gorm:"index;not null" json:"supplier_id"`
	PurchaseNumber   string     `gorm:"size:50;uniqueIndex" json:"purchase_number"`
	TotalAmount      float64    `json:"total_amount"`
	PurchaseDate     time.Time  `gorm:"index" json:"purchase_date"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	Notes            string     `gorm:"size:500" json:"notes"`
	Status           string     `gorm:"size:20;default:pending;index" json:"status"`
	CreatedBy        int64      `json:"created_by"`
	UpdatedBy        int64      `json:"updated_by"`
	ApprovedBy       *int64     `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	Supplier         *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// TableName 表名
func (Purchase) TableName() string {
	return "inventory_purchases"
}
