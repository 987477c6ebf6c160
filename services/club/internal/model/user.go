package model

import (
	"github.com/countryclub/pkg/dal"
)

// 用户状态
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// 角色ID，与 Roles 种子数据一致
const (
	RoleIDAdmin            int64 = 1
	RoleIDManager          int64 = 2
	RoleIDEventCoordinator int64 = 3
)

// Role 角色
type Role struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

// TableName 表名
func (Role) TableName() string {
	return "roles"
}

// Roles 角色种子数据
func Roles() []Role {
	return []Role{
		{ID: RoleIDAdmin, Name: "admin", Description: "Administrador del sistema"},
		{ID: RoleIDManager, Name: "manager", Description: "Gerente del club"},
		{ID: RoleIDEventCoordinator, Name: "event_coordinator", Description: "Coordinador de eventos"},
	}
}

// User 系统用户
type User struct {
	dal.Model
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Phone     string `gorm:"size:20" json:"phone"`
	Status    string `gorm:"size:20;default:active" json:"status"`
	RoleID    int64  `gorm:"index;not null" json:"role_id"`
	Role      *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// RoleName 角色名，未加载关联时为空
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
