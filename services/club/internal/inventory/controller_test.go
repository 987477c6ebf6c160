package inventory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/countryclub/pkg/config"
	"github.com/countryclub/services/club/internal/model"
	"github.com/countryclub/services/club/internal/testutil"
)

var now = time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db   *gorm.DB
	repo *Repository
	do   func(method, path, role string, body any) (int, *testutil.Envelope)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctrl := NewController(repo, testutil.NewAuthorizer(), testutil.Pagination, config.ClubConfig{LowStockAlert: 5})
	ctrl.now = func() time.Time { return now }
	app := testutil.NewApp(ctrl)
	return &fixture{db: db, repo: repo, do: func(method, path, role string, body any) (int, *testutil.Envelope) {
		return testutil.Do(t, app, method, path, role, 4, body)
	}}
}

func (f *fixture) product(t *testing.T, sku string, stock, min int) *model.Product {
	t.Helper()
	var cat model.Category
	require.NoError(t, f.db.FirstOrCreate(&cat, model.Category{Name: "Bebidas"}).Error)
	p := &model.Product{Name: "Producto " + sku, SKU: sku, CategoryID: cat.ID, CurrentStock: stock, MinStock: min, UnitPrice: 2, CostPrice: 1, Status: "active"}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	var p model.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.CurrentStock
}

func TestProductCRUD(t *testing.T) {
	f := setup(t)

	code, env := f.do("POST", "/api/v1/inventory/categories", "manager", map[string]any{"name": "Limpieza", "color": "#00ff00"})
	require.Equal(t, 201, code, env.Msg)
	var cat model.Category
	env.Decode(t, &cat)

	code, env = f.do("POST", "/api/v1/inventory/suppliers", "manager", map[string]any{"name": "Distribuidora Sur", "email": "ventas@sur.com"})
	require.Equal(t, 201, code, env.Msg)
	var sup model.Supplier
	env.Decode(t, &sup)
	assert.Equal(t, "net_30", sup.PaymentTerms)

	body := map[string]any{"name": "Detergente", "sku": "LIM-001", "category_id": cat.ID, "supplier_id": sup.ID, "current_stock": 3, "min_stock": 5, "unit_price": 4.5}
	code, env = f.do("POST", "/api/v1/inventory", "event_coordinator", body)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para CREATE en el módulo INVENTORY", env.Msg)

	code, env = f.do("POST", "/api/v1/inventory", "manager", body)
	require.Equal(t, 201, code, env.Msg)
	var p model.Product
	env.Decode(t, &p)

	code, env = f.do("POST", "/api/v1/inventory", "manager", body)
	assert.Equal(t, 409, code)
	assert.Equal(t, "El SKU ya existe", env.Msg)

	body["sku"], body["category_id"] = "LIM-002", 999
	code, env = f.do("POST", "/api/v1/inventory", "manager", body)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Categoría inválida", env.Msg)

	code, env = f.do("GET", fmt.Sprintf("/api/v1/inventory/%d", p.ID), "event_coordinator", nil)
	require.Equal(t, 200, code)
	env.Decode(t, &p)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Limpieza", p.Category.Name)
	require.NotNil(t, p.Supplier)

	code, env = f.do("GET", "/api/v1/inventory?low_stock=true", "event_coordinator", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), env.Total)

	code, env = f.do("PUT", fmt.Sprintf("/api/v1/inventory/%d", p.ID), "manager", map[string]any{"min_stock": 2, "current_stock": 500})
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &p)
	assert.Equal(t, 2, p.MinStock)
	assert.Equal(t, 3, p.CurrentStock)

	code, _ = f.do("DELETE", fmt.Sprintf("/api/v1/inventory/%d", p.ID), "manager", nil)
	assert.Equal(t, 403, code)
	code, _ = f.do("DELETE", fmt.Sprintf("/api/v1/inventory/%d", p.ID), "admin", nil)
	assert.Equal(t, 200, code)
	code, env = f.do("GET", fmt.Sprintf("/api/v1/inventory/%d", p.ID), "admin", nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Producto no encontrado", env.Msg)
}

func TestMovementsAdjustStock(t *testing.T) {
	f := setup(t)
	p := f.product(t, "BEB-001", 10, 2)

	cases := []struct {
		kind      string
		qty       int
		wantCode  int
		wantStock int
	}{
		{model.MovementOut, 4, 201, 6},
		{model.MovementSale, 7, 400, 6},
		{model.MovementTransfer, 100, 201, 6},
		{model.MovementPurchase, 5, 201, 11},
		{model.MovementAdjustment, 11, 201, 0},
		{model.MovementIn, 3, 201, 3},
	}
	for _, tc := range cases {
		code, env := f.do("POST", "/api/v1/inventory/movements", "manager",
			map[string]any{"product_id": p.ID, "movement_type": tc.kind, "quantity": tc.qty})
		require.Equal(t, tc.wantCode, code, "%s %d: %s", tc.kind, tc.qty, env.Msg)
		assert.Equal(t, tc.wantStock, f.stock(t, p.ID), tc.kind)
		if code == 400 {
			assert.Equal(t, "Stock insuficiente", env.Msg)
			continue
		}
		var m model.Movement
		env.Decode(t, &m)
		assert.Equal(t, tc.wantStock, m.StockAfter)
	}

	var n int64
	require.NoError(t, f.db.Model(&model.Movement{}).Count(&n).Error)
	assert.Equal(t, int64(5), n)

	code, env := f.do("GET", fmt.Sprintf("/api/v1/inventory/movements?product_id=%d&movement_type=out", p.ID), "event_coordinator", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), env.Total)

	code, env = f.do("POST", "/api/v1/inventory/movements", "event_coordinator",
		map[string]any{"product_id": p.ID, "movement_type": "in", "quantity": 1})
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para UPDATE en el módulo INVENTORY", env.Msg)

	code, env = f.do("POST", "/api/v1/inventory/movements", "manager",
		map[string]any{"product_id": 999, "movement_type": "in", "quantity": 1})
	assert.Equal(t, 404, code)
	assert.Equal(t, "Producto no encontrado", env.Msg)

	code, _ = f.do("POST", "/api/v1/inventory/movements", "manager",
		map[string]any{"product_id": p.ID, "movement_type": "gift", "quantity": 1})
	assert.Equal(t, 400, code)
}

func TestItemRequests(t *testing.T) {
	f := setup(t)
	p := f.product(t, "BEB-002", 5, 1)

	code, env := f.do("POST", "/api/v1/inventory/requests", "manager", map[string]any{"product_id": p.ID, "quantity": 2})
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para REQUEST_ITEMS en el módulo INVENTORY", env.Msg)

	code, env = f.do("POST", "/api/v1/inventory/requests", "event_coordinator", map[string]any{"product_id": p.ID, "quantity": 2, "reason": "Cena anual"})
	require.Equal(t, 201, code, env.Msg)
	var small model.ItemRequest
	env.Decode(t, &small)
	code, env = f.do("POST", "/api/v1/inventory/requests", "event_coordinator", map[string]any{"product_id": p.ID, "quantity": 50})
	require.Equal(t, 201, code, env.Msg)
	var big model.ItemRequest
	env.Decode(t, &big)

	approve := map[string]any{"status": "approved"}
	code, _ = f.do("PUT", fmt.Sprintf("/api/v1/inventory/requests/%d/approve", small.ID), "event_coordinator", approve)
	assert.Equal(t, 403, code)

	code, env = f.do("PUT", fmt.Sprintf("/api/v1/inventory/requests/%d/approve", small.ID), "manager", approve)
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &small)
	assert.Equal(t, model.StatusApproved, small.Status)
	assert.Equal(t, 3, f.stock(t, p.ID))

	var m model.Movement
	require.NoError(t, f.db.Where("reference_number = ?", requestReference(small.ID)).First(&m).Error)
	assert.Equal(t, model.MovementOut, m.MovementType)

	code, env = f.do("PUT", fmt.Sprintf("/api/v1/inventory/requests/%d/approve", small.ID), "manager", approve)
	assert.Equal(t, 400, code)
	assert.Equal(t, "La solicitud ya fue procesada", env.Msg)

	code, env = f.do("PUT", fmt.Sprintf("/api/v1/inventory/requests/%d/approve", big.ID), "manager", approve)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Stock insuficiente", env.Msg)
	got, err := f.repo.FindRequest(t.Context(), big.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	code, _ = f.do("PUT", fmt.Sprintf("/api/v1/inventory/requests/%d/approve", big.ID), "admin", map[string]any{"status": "rejected"})
	assert.Equal(t, 200, code)
	assert.Equal(t, 3, f.stock(t, p.ID))

	code, env = f.do("GET", "/api/v1/inventory/requests?status=pending", "manager", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(0), env.Total)
}

func TestPurchases(t *testing.T) {
	f := setup(t)
	sup := &model.Supplier{Name: "Proveedor Norte", Status: "active"}
	require.NoError(t, f.db.Create(sup).Error)

	body := map[string]any{"supplier_id": sup.ID, "total_amount": 1250.75, "purchase_date": now.AddDate(0, 0, -1)}
	code, env := f.do("POST", "/api/v1/inventory/purchases", "event_coordinator", body)
	require.Equal(t, 201, code, env.Msg)
	var p model.Purchase
	env.Decode(t, &p)
	assert.True(t, strings.HasPrefix(p.PurchaseNumber, "PUR-20260420-"), p.PurchaseNumber)
	assert.Equal(t, model.StatusPending, p.Status)

	body["purchase_number"] = p.PurchaseNumber
	code, _ = f.do("POST", "/api/v1/inventory/purchases", "manager", body)
	assert.Equal(t, 409, code)

	body["purchase_number"], body["purchase_date"] = "", now.AddDate(0, 0, 2)
	code, env = f.do("POST", "/api/v1/inventory/purchases", "manager", body)
	assert.Equal(t, 400, code)
	assert.Equal(t, "La fecha de compra no puede ser futura", env.Msg)

	code, env = f.do("GET", "/api/v1/inventory/purchases", "event_coordinator", nil)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes acceso al módulo PURCHASES", env.Msg)

	code, env = f.do("GET", fmt.Sprintf("/api/v1/inventory/purchases/%d", p.ID), "event_coordinator", nil)
	assert.Equal(t, 403, code)
	assert.Equal(t, "No tienes permisos para READ en el módulo PURCHASES", env.Msg)

	code, env = f.do("GET", "/api/v1/inventory/purchases?status=pending", "manager", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, int64(1), env.Total)

	path := fmt.Sprintf("/api/v1/inventory/purchases/%d", p.ID)
	code, _ = f.do("PUT", path+"/status", "manager", map[string]any{"status": "approved"})
	assert.Equal(t, 400, code)

	code, env = f.do("PUT", path+"/approve", "manager", nil)
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &p)
	assert.Equal(t, model.StatusApproved, p.Status)
	require.NotNil(t, p.ApprovedBy)

	code, env = f.do("PUT", path+"/approve", "admin", nil)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Solo se pueden aprobar compras pendientes", env.Msg)

	code, env = f.do("PUT", path+"/status", "manager", map[string]any{"status": "received"})
	require.Equal(t, 200, code, env.Msg)
	env.Decode(t, &p)
	assert.Equal(t, model.StatusReceived, p.Status)
	require.NotNil(t, p.Supplier)
	assert.Equal(t, "Proveedor Norte", p.Supplier.Name)
}

func TestInventoryReports(t *testing.T) {
	f := setup(t)
	f.product(t, "A", 0, 2)
	f.product(t, "B", 1, 2)
	f.product(t, "C", 10, 2)
	expired := now.AddDate(0, 0, -3)
	require.NoError(t, f.db.Model(&model.Product{}).Where("sku = ?", "C").Update("expiry_date", expired).Error)

	code, env := f.do("GET", "/api/v1/inventory/statistics", "event_coordinator", nil)
	require.Equal(t, 200, code, env.Msg)
	var s Statistics
	env.Decode(t, &s)
	assert.Equal(t, int64(3), s.TotalProducts)
	assert.Equal(t, int64(2), s.LowStockProducts)
	assert.Equal(t, int64(1), s.OutOfStockProducts)
	assert.Equal(t, int64(1), s.ExpiredProducts)
	assert.InDelta(t, 22.0, s.TotalInventoryValue, 0.001)

	code, env = f.do("GET", "/api/v1/inventory/low-stock", "manager", nil)
	require.Equal(t, 200, code)
	var low []model.Product
	env.Decode(t, &low)
	require.Len(t, low, 2)
	assert.Equal(t, "A", low[0].SKU)

	code, env = f.do("GET", "/api/v1/inventory/expired", "manager", nil)
	require.Equal(t, 200, code)
	var exp []model.Product
	env.Decode(t, &exp)
	require.Len(t, exp, 1)
	assert.Equal(t, "C", exp[0].SKU)

	code, env = f.do("GET", "/api/v1/inventory/categories", "event_coordinator", nil)
	require.Equal(t, 200, code)
	var cats []CategorySummary
	env.Decode(t, &cats)
	require.Len(t, cats, 1)
	assert.Equal(t, int64(3), cats[0].ProductCount)
	assert.Equal(t, int64(11), cats[0].TotalStock)
}
