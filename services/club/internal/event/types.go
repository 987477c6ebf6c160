package event

import (
	"time"

	"github.com/countryclub/services/club/internal/model"
)

// CreateRequest 新增活动
type CreateRequest struct {
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	Date         time.Time `json:"date" validate:"required"`
	Description  string    `json:"description"`
	Location     string    `json:"location" validate:"required,min=2,max=200"`
	Budget       float64   `json:"budget" validate:"gte=0"`
	ActualCost   float64   `json:"actual_cost" validate:"gte=0"`
	Status       string    `json:"status" validate:"omitempty,oneof=scheduled ongoing completed canceled"`
	OrganizerID  int64     `json:"organizer_id" validate:"required,gt=0"`
	EventTypeID  int64     `json:"event_type_id" validate:"required,gt=0"`
	MaxAttendees int       `json:"max_attendees" validate:"gte=0"`
}

// UpdateRequest 修改活动
type UpdateRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Date         *time.Time `json:"date"`
	Description  *string    `json:"description"`
	Location     *string    `json:"location" validate:"omitempty,min=2,max=200"`
	Budget       *float64   `json:"budget" validate:"omitempty,gte=0"`
	ActualCost   *float64   `json:"actual_cost" validate:"omitempty,gte=0"`
	Status       *string    `json:"status" validate:"omitempty,oneof=scheduled ongoing completed canceled"`
	OrganizerID  *int64     `json:"organizer_id" validate:"omitempty,gt=0"`
	EventTypeID  *int64     `json:"event_type_id" validate:"omitempty,gt=0"`
	MaxAttendees *int       `json:"max_attendees" validate:"omitempty,gte=0"`
}

// Fields 转换为更新字段
func (r *UpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Date != nil {
		f["date"] = *r.Date
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.Location != nil {
		f["location"] = *r.Location
	}
	if r.Budget != nil {
		f["budget"] = *r.Budget
	}
	if r.ActualCost != nil {
		f["actual_cost"] = *r.ActualCost
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.OrganizerID != nil {
		f["organizer_id"] = *r.OrganizerID
	}
	if r.EventTypeID != nil {
		f["event_type_id"] = *r.EventTypeID
	}
	if r.MaxAttendees != nil {
		f["max_attendees"] = *r.MaxAttendees
	}
	return f
}

// ListRequest 活动列表筛选，日期格式 2006-01-02
type ListRequest struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	EventType int64  `query:"eventType"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// ValidStatus 活动状态是否合法
func ValidStatus(s string) bool {
	switch s {
	case model.EventScheduled, model.EventOngoing, model.EventCompleted, model.EventCanceled:
		return true
	}
	return false
}
