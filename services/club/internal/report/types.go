package report

import (
	"github.com/countryclub/services/club/internal/inventory"
	"github.com/countryclub/services/club/internal/maintenance"
	"github.com/countryclub/services/club/internal/model"
)

// Filter 报表筛选，日期格式 2006-01-02
type Filter struct {
	Status    string `query:"status"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// Counter 总数和本期新增
type Counter struct {
	Total      int64 `json:"total"`
	ThisPeriod int64 `json:"this_period"`
}

// InventoryCounter 库存概况
type InventoryCounter struct {
	TotalProducts int64 `json:"total_products"`
	TotalStock    int64 `json:"total_stock"`
	LowStock      int64 `json:"low_stock"`
}

// GeneralStatistics 综合统计
type GeneralStatistics struct {
	Period      string           `json:"period"`
	Members     Counter          `json:"members"`
	Events      Counter          `json:"events"`
	Maintenance Counter          `json:"maintenance"`
	Inventory   InventoryCounter `json:"inventory"`
}

// MembershipSummary 会员报表汇总
type MembershipSummary struct {
	Total     int64 `json:"total_members"`
	Active    int64 `json:"active_members"`
	Inactive  int64 `json:"inactive_members"`
	Suspended int64 `json:"suspended_members"`
	Expired   int64 `json:"expired_members"`
}

// MembershipReport 会员报表
type MembershipReport struct {
	Summary MembershipSummary `json:"summary"`
	Members []model.Member    `json:"members"`
}

// EventSummary 活动报表汇总
type EventSummary struct {
	Total       int64   `json:"total_events"`
	Scheduled   int64   `json:"scheduled_events"`
	Completed   int64   `json:"completed_events"`
	Canceled    int64   `json:"canceled_events"`
	TotalBudget float64 `json:"total_budget"`
	TotalCost   float64 `json:"total_cost"`
}

// EventReport 活动报表
type EventReport struct {
	Summary EventSummary  `json:"summary"`
	Events  []model.Event `json:"events"`
}

// InventoryReport 库存报表
type InventoryReport struct {
	Summary  *inventory.Statistics `json:"summary"`
	Products []model.Product       `json:"products"`
}

// MaintenanceReport 维护报表
type MaintenanceReport struct {
	Summary *maintenance.Statistics `json:"summary"`
	Tasks   []model.MaintenanceTask `json:"tasks"`
}
