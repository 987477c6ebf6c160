package maintenance

import (
	"time"
)

// TaskRequest 新增维护任务
type TaskRequest struct {
	Title         string     `json:"title" validate:"required,min=3,max=200"`
	Description   string     `json:"description" validate:"max=2000"`
	Priority      string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category      string     `json:"category" validate:"omitempty,oneof=electrical plumbing hvac structural landscaping equipment general cleaning security other"`
	Location      string     `json:"location" validate:"max=200"`
	AssignedTo    *int64     `json:"assigned_to" validate:"omitempty,gt=0"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	EstimatedCost float64    `json:"estimated_cost" validate:"gte=0"`
}

// TaskUpdateRequest 修改维护任务
type TaskUpdateRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Category      *string    `json:"category" validate:"omitempty,oneof=electrical plumbing hvac structural landscaping equipment general cleaning security other"`
	Location      *string    `json:"location" validate:"omitempty,max=200"`
	AssignedTo    *int64     `json:"assigned_to" validate:"omitempty,gt=0"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	EstimatedCost *float64   `json:"estimated_cost" validate:"omitempty,gte=0"`
	ActualCost    *float64   `json:"actual_cost" validate:"omitempty,gte=0"`
	Status        *string    `json:"status" validate:"omitempty,oneof=pending assigned in_progress completed cancelled"`
}

// Fields 转换为更新字段
func (r *TaskUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Title != nil {
		f["title"] = *r.Title
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.Priority != nil {
		f["priority"] = *r.Priority
	}
	if r.Category != nil {
		f["category"] = *r.Category
	}
	if r.Location != nil {
		f["location"] = *r.Location
	}
	if r.AssignedTo != nil {
		f["assigned_to"] = *r.AssignedTo
	}
	if r.ScheduledDate != nil {
		f["scheduled_date"] = *r.ScheduledDate
	}
	if r.EstimatedCost != nil {
		f["estimated_cost"] = *r.EstimatedCost
	}
	if r.ActualCost != nil {
		f["actual_cost"] = *r.ActualCost
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	return f
}

// TaskListRequest 任务列表筛选
type TaskListRequest struct {
	Search     string `query:"search"`
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	Category   string `query:"category"`
	AssignedTo int64  `query:"assigned_to"`
}

// IncidentRequest 上报事故
type IncidentRequest struct {
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Description  string     `json:"description" validate:"required,min=5,max=2000"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Location     string     `json:"location" validate:"max=200"`
	IncidentDate *time.Time `json:"incident_date"`
}

// ResolveRequest 处理事故
type ResolveRequest struct {
	Resolution string `json:"resolution" validate:"required,min=5,max=2000"`
}

// Statistics 维护任务汇总
type Statistics struct {
	TotalTasks        int64   `json:"total_tasks"`
	CompletedTasks    int64   `json:"completed_tasks"`
	PendingTasks      int64   `json:"pending_tasks"`
	InProgressTasks   int64   `json:"in_progress_tasks"`
	HighPriorityTasks int64   `json:"high_priority_tasks"`
	UrgentTasks       int64   `json:"urgent_tasks"`
	OpenIncidents     int64   `json:"open_incidents"`
	AvgEstimatedCost  float64 `json:"avg_estimated_cost"`
	AvgActualCost     float64 `json:"avg_actual_cost"`
}
