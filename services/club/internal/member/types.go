package member

import (
	"time"

	"github.com/countryclub/services/club/internal/model"
)

// CreateRequest 新增会员
type CreateRequest struct {
	DNI       int64     `json:"DNI" validate:"required,gt=0"`
	FirstName string    `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string    `json:"last_name" validate:"required,min=2,max=100"`
	Phone     string    `json:"phone" validate:"omitempty,min=5,max=20"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Status    string    `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

// UpdateRequest 修改会员，仅更新非空字段
type UpdateRequest struct {
	FirstName *string    `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone     *string    `json:"phone" validate:"omitempty,min=5,max=20"`
	Email     *string    `json:"email" validate:"omitempty,email"`
	Status    *string    `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
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
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.Email != nil {
		f["email"] = *r.Email
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.StartDate != nil {
		f["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		f["end_date"] = *r.EndDate
	}
	return f
}

// ListRequest 会员列表筛选
type ListRequest struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

// VerifyResponse 会员资格校验结果
type VerifyResponse struct {
	Member *model.Member `json:"member"`
	Active bool          `json:"membership_active"`
}
