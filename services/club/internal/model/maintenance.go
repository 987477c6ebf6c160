package model

import (
	"time"

	"github.com/countryclub/pkg/dal"
)

// 维护任务状态
const (
	TaskPending    = "pending"
	TaskAssigned   = "assigned"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"
)

// 事故状态
const (
	IncidentOpen     = "open"
	IncidentResolved = "resolved"
)

// MaintenanceTask 维护任务
type MaintenanceTask struct {
	dal.Model
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	Priority      string     `gorm:"size:20;default:medium" json:"priority"`
	Category      string     `gorm:"size:50" json:"category"`
	Location      string     `gorm:"size:200" json:"location"`
	AssignedTo    *int64     `gorm:"index" json:"assigned_to"`
	ScheduledDate *time.Time `gorm:"index" json:"scheduled_date"`
	EstimatedCost float64    `json:"estimated_cost"`
	ActualCost    float64    `json:"actual_cost"`
	Status        string     `gorm:"size:20;default:pending;index" json:"status"`
	RequestedBy   int64      `json:"requested_by"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// TableName 表名
func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}

// Incident 事故报告
type Incident struct {
	dal.Model
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Priority     string     `gorm:"size:20;default:medium" json:"priority"`
	Location     string     `gorm:"size:200" json:"location"`
	ReportedBy   int64      `gorm:"index" json:"reported_by"`
	IncidentDate time.Time  `json:"incident_date"`
	Status       string     `gorm:"size:20;default:open;index" json:"status"`
	Resolution   string     `gorm:"type:text" json:"resolution"`
	ResolvedBy   *int64     `json:"resolved_by,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// TableName 表名
func (Incident) TableName() string {
	return "incident_reports"
}
