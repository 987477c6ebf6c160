package admin

import (
	"github.com/countryclub/pkg/permission"
)

// ActionEntry 操作及其允许的角色
type ActionEntry struct {
	Action permission.Action `json:"action"`
	Roles  []permission.Role `json:"roles"`
}

// ModuleEntry 模块权限目录
type ModuleEntry struct {
	Module  permission.Module `json:"module"`
	Actions []ActionEntry     `json:"actions"`
}

// CheckRequest 权限核对参数
type CheckRequest struct {
	Role   string `query:"role" validate:"required"`
	Module string `query:"module" validate:"required"`
	Action string `query:"action" validate:"required"`
}

// CheckResult 权限目录与策略镜像的判定结果
type CheckResult struct {
	Role       string `json:"role"`
	Module     string `json:"module"`
	Action     string `json:"action"`
	Allowed    bool   `json:"allowed"`
	Mirrored   bool   `json:"mirrored"`
	Consistent bool   `json:"consistent"`
}

// BindingReport 路由绑定情况
type BindingReport struct {
	Bindings []permission.Binding `json:"bindings"`
	Unknown  []permission.Binding `json:"unknown"`
}
