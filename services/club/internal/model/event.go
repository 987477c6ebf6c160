package model

import (
	"time"

	"github.com/countryclub/pkg/dal"
)

// 活动状态
const (
	EventScheduled = "scheduled"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCanceled  = "canceled"
)

// Event 俱乐部活动
type Event struct {
	dal.Model
	Name         string     `gorm:"size:100;not null" json:"name"`
	Date         time.Time  `gorm:"index" json:"date"`
	Description  string     `gorm:"type:text" json:"description"`
	Location     string     `gorm:"size:200" json:"location"`
	Budget       float64    `json:"budget"`
	ActualCost   float64    `json:"actual_cost"`
	Status       string     `gorm:"size:20;default:scheduled;index" json:"status"`
	OrganizerID  int64      `gorm:"index" json:"organizer_id"`
	EventTypeID  int64      `json:"event_type_id"`
	MaxAttendees int        `json:"max_attendees"`
	Approved     bool       `gorm:"default:false" json:"approved"`
	ApprovedBy   *int64     `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

// TableName 表名
func (Event) TableName() string {
	return "events"
}
