package auth

import (
	pkgauth "github.com/countryclub/pkg/auth"
	"github.com/countryclub/pkg/permission"
	"github.com/countryclub/services/club/internal/user"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	Phone     string `json:"phone" validate:"omitempty,min=5,max=20"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=100"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	*pkgauth.TokenInfo
	User *user.Info `json:"user"`
}

// PermissionsResponse 当前角色的权限提示，仅供前端展示
type PermissionsResponse struct {
	Role        string                                           `json:"role"`
	Permissions map[permission.Module]map[permission.Action]bool `json:"permissions"`
	Modules     []permission.Module                              `json:"modules"`
}
