package employee

import (
	"time"
)

// CreateRequest 新增员工
type CreateRequest struct {
	FirstName             string    `json:"first_name" validate:"required,min=2,max=100"`
	LastName              string    `json:"last_name" validate:"required,min=2,max=100"`
	DNI                   int64     `json:"DNI" validate:"required,gt=0"`
	HireDate              time.Time `json:"hire_date" validate:"required"`
	Position              string    `json:"position" validate:"required,min=2,max=100"`
	Salary                float64   `json:"salary" validate:"required,gt=0"`
	EmergencyContactName  string    `json:"emergency_contact_name" validate:"required,min=2,max=100"`
	EmergencyContactPhone string    `json:"emergency_contact_phone" validate:"required,min=6,max=20"`
	Phone                 string    `json:"phone" validate:"required,min=6,max=20"`
}

// UpdateRequest 修改员工
type UpdateRequest struct {
	FirstName             *string    `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName              *string    `json:"last_name" validate:"omitempty,min=2,max=100"`
	HireDate              *time.Time `json:"hire_date"`
	Position              *string    `json:"position" validate:"omitempty,min=2,max=100"`
	Salary                *float64   `json:"salary" validate:"omitempty,gt=0"`
	EmergencyContactName  *string    `json:"emergency_contact_name" validate:"omitempty,min=2,max=100"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone" validate:"omitempty,min=6,max=20"`
	Phone                 *string    `json:"phone" validate:"omitempty,min=6,max=20"`
}

// Fields 转换为更新字段
func (r *UpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.FirstName != nil {
		f["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		f["last_name"] = *r.LastName
	}
	if r.HireDate != nil {
		f["hire_date"] = *r.HireDate
	}
	if r.Position != nil {
		f["position"] = *r.Position
	}
	if r.Salary != nil {
		f["salary"] = *r.Salary
	}
	if r.EmergencyContactName != nil {
		f["emergency_contact_name"] = *r.EmergencyContactName
	}
	if r.EmergencyContactPhone != nil {
		f["emergency_contact_phone"] = *r.EmergencyContactPhone
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	return f
}

// ListRequest 员工列表筛选
type ListRequest struct {
	Search   string `query:"search"`
	Position string `query:"position"`
}

// Shift 一个班次，时间格式 15:04
type Shift struct {
	Day   string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

// ScheduleRequest 排班
type ScheduleRequest struct {
	Shifts []Shift `json:"shifts" validate:"required,min=1,dive"`
}
