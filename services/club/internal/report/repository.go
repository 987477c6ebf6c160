package report

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/countryclub/pkg/dal"
	"github.com/countryclub/services/club/internal/inventory"
	"github.com/countryclub/services/club/internal/maintenance"
	"github.com/countryclub/services/club/internal/model"
)

const dateLayout = "2006-01-02"

// Repository 报表查询，汇总复用各模块仓储
type Repository struct {
	db          *gorm.DB
	inventory   *inventory.Repository
	maintenance *maintenance.Repository
}

// NewRepository 创建报表仓储
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		inventory:   inventory.NewRepository(db),
		maintenance: maintenance.NewRepository(db),
	}
}

// dateRange 按列筛选日期区间，结束日期包含当天
func dateRange(column string, f *Filter) []dal.Scope {
	var scopes []dal.Scope
	if start, err := time.Parse(dateLayout, f.StartDate); err == nil {
		scopes = append(scopes, dal.WithWhere(column+" >= ?", start))
	}
	if end, err := time.Parse(dateLayout, f.EndDate); err == nil {
		scopes = append(scopes, dal.WithWhere(column+" < ?", end.AddDate(0, 0, 1)))
	}
	if f.Status != "" {
		scopes = append(scopes, dal.WithWhere("status = ?", f.Status))
	}
	return scopes
}

func (r *Repository) count(ctx context.Context, m any, query string, args ...any) (int64, error) {
	var n int64
	db := r.db.WithContext(ctx).Model(m)
	if query != "" {
		db = db.Where(query, args...)
	}
	err := db.Count(&n).Error
	return n, err
}

func (r *Repository) counter(ctx context.Context, m any, column string, since time.Time) (Counter, error) {
	var c Counter
	var err error
	if c.Total, err = r.count(ctx, m, ""); err != nil {
		return c, err
	}
	c.ThisPeriod, err = r.count(ctx, m, column+" >= ?", since)
	return c, err
}

// General 综合统计，since 为本期起点
func (r *Repository) General(ctx context.Context, since time.Time) (*GeneralStatistics, error) {
	var (
		s   GeneralStatistics
		err error
	)
	if s.Members, err = r.counter(ctx, &model.Member{}, "created_at", since); err != nil {
		return nil, err
	}
	if s.Events, err = r.counter(ctx, &model.Event{}, "date", since); err != nil {
		return nil, err
	}
	if s.Maintenance, err = r.counter(ctx, &model.MaintenanceTask{}, "created_at", since); err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&model.Product{}).Select(`
		COUNT(*) AS total_products,
		COALESCE(SUM(current_stock), 0) AS total_stock,
		COALESCE(SUM(CASE WHEN current_stock <= min_stock THEN 1 ELSE 0 END), 0) AS low_stock`).
		Scan(&s.Inventory).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Membership 会员报表
func (r *Repository) Membership(ctx context.Context, f *Filter, now time.Time) (*MembershipReport, error) {
	var rep MembershipReport
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Member{}).Scopes(toGorm(dateRange("start_date", f))...)
	}
	err := q().Select(`
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
		COALESCE(SUM(CASE WHEN status = 'inactive' THEN 1 ELSE 0 END), 0) AS inactive,
		COALESCE(SUM(CASE WHEN status = 'suspended' THEN 1 ELSE 0 END), 0) AS suspended,
		COALESCE(SUM(CASE WHEN status = 'active' AND end_date < ? THEN 1 ELSE 0 END), 0) AS expired`, now).
		Scan(&rep.Summary).Error
	if err != nil {
		return nil, err
	}
	err = q().Order("last_name ASC, first_name ASC").Find(&rep.Members).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Events 活动报表
func (r *Repository) Events(ctx context.Context, f *Filter) (*EventReport, error) {
	var rep EventReport
	q := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Event{}).Scopes(toGorm(dateRange("date", f))...)
	}
	err := q().Select(`
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN status = 'scheduled' THEN 1 ELSE 0 END), 0) AS scheduled,
		COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN status = 'canceled' THEN 1 ELSE 0 END), 0) AS canceled,
		COALESCE(SUM(budget), 0) AS total_budget,
		COALESCE(SUM(actual_cost), 0) AS total_cost`).
		Scan(&rep.Summary).Error
	if err != nil {
		return nil, err
	}
	if err := q().Order("date DESC").Find(&rep.Events).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

// Inventory 库存报表
func (r *Repository) Inventory(ctx context.Context, f *Filter, now time.Time) (*InventoryReport, error) {
	summary, err := r.inventory.Statistics(ctx, now)
	if err != nil {
		return nil, err
	}
	rep := &InventoryReport{Summary: summary}
	q := r.db.WithContext(ctx).Model(&model.Product{}).Preload("Category")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if err := q.Order("name ASC").Find(&rep.Products).Error; err != nil {
		return nil, err
	}
	return rep, nil
}

// Maintenance 维护报表
func (r *Repository) Maintenance(ctx context.Context, f *Filter) (*MaintenanceReport, error) {
	summary, err := r.maintenance.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	rep := &MaintenanceReport{Summary: summary}
	err = r.db.WithContext(ctx).Model(&model.MaintenanceTask{}).
		Scopes(toGorm(dateRange("created_at", f))...).
		Order("created_at DESC").
		Find(&rep.Tasks).Error
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func toGorm(scopes []dal.Scope) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, len(scopes))
	for i, s := range scopes {
		out[i] = s
	}
	return out
}
