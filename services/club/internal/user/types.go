package user

import (
	"time"

	"github.com/countryclub/services/club/internal/model"
)

// ListRequest 用户列表筛选
type ListRequest struct {
	Search string `query:"search"`
	RoleID int64  `query:"role_id"`
	Status string `query:"status"`
}

// UpdateRoleRequest 修改角色请求
type UpdateRoleRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
	RoleID int64 `json:"role_id" validate:"required,gt=0"`
}

// Info 对外暴露的用户信息
type Info struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	RoleID    int64     `json:"role_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToInfo 转换为对外信息
func ToInfo(u *model.User) *Info {
	return &Info{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    u.Status,
		RoleID:    u.RoleID,
		Role:      u.RoleName(),
		CreatedAt: u.CreatedAt,
	}
}
