package permission

import (
	"fmt"
	"strings"
)

// Rule 单条授权规则：(模块, 操作) -> 允许的角色
type Rule struct {
	Module Module `json:"module"`
	Action Action `json:"action"`
	Roles  []Role `json:"roles"`
}

// Catalog 权限目录
// 创建后只读，可在任意数量的请求间并发读取
type Catalog struct {
	entries map[Module]map[Action]map[Role]struct{}
	rules   []Rule
	modules []Module
	actions map[Module][]Action
}

// NewCatalog 根据规则创建权限目录
// 规则会被深拷贝；同一(模块, 操作)出现多次时角色取并集
func NewCatalog(rules []Rule) *Catalog {
	c := &Catalog{
		entries: make(map[Module]map[Action]map[Role]struct{}),
		actions: make(map[Module][]Action),
	}

	for _, r := range rules {
		acts, ok := c.entries[r.Module]
		if !ok {
			acts = make(map[Action]map[Role]struct{})
			c.entries[r.Module] = acts
			c.modules = append(c.modules, r.Module)
		}
		set, ok := acts[r.Action]
		if !ok {
			set = make(map[Role]struct{}, len(r.Roles))
			acts[r.Action] = set
			c.actions[r.Module] = append(c.actions[r.Module], r.Action)
		}
		for _, role := range r.Roles {
			set[role] = struct{}{}
		}
	}

	// 按首次出现顺序重建规则，保证输出稳定
	for _, m := range c.modules {
		for _, a := range c.actions[m] {
			c.rules = append(c.rules, Rule{Module: m, Action: a, Roles: c.orderedRoles(m, a, rules)})
		}
	}

	return c
}

// orderedRoles 按规则中出现的顺序返回角色
func (c *Catalog) orderedRoles(m Module, a Action, rules []Rule) []Role {
	seen := make(map[Role]struct{})
	roles := make([]Role, 0, len(c.entries[m][a]))
	for _, r := range rules {
		if r.Module != m || r.Action != a {
			continue
		}
		for _, role := range r.Roles {
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			roles = append(roles, role)
		}
	}
	return roles
}

// Has 目录中是否定义了(模块, 操作)
func (c *Catalog) Has(module Module, action Action) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[module][action]
	return ok
}

// Contains 角色是否属于(模块, 操作)的允许集合
// 未知的模块、操作或角色一律返回false
func (c *Catalog) Contains(role Role, module Module, action Action) bool {
	if c == nil {
		return false
	}
	set, ok := c.entries[module][action]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// Allowed 返回(模块, 操作)允许的角色副本
func (c *Catalog) Allowed(module Module, action Action) []Role {
	if c == nil {
		return nil
	}
	for _, r := range c.rules {
		if r.Module == module && r.Action == action {
			return append([]Role(nil), r.Roles...)
		}
	}
	return nil
}

// Modules 返回目录中的全部模块
func (c *Catalog) Modules() []Module {
	if c == nil {
		return nil
	}
	return append([]Module(nil), c.modules...)
}

// Actions 返回模块内定义的全部操作
func (c *Catalog) Actions(module Module) []Action {
	if c == nil {
		return nil
	}
	return append([]Action(nil), c.actions[module]...)
}

// Rules 返回全部规则的副本
func (c *Catalog) Rules() []Rule {
	if c == nil {
		return nil
	}
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Module: r.Module, Action: r.Action, Roles: append([]Role(nil), r.Roles...)}
	}
	return out
}

// UnknownBindingError 路由绑定了目录中不存在的(模块, 操作)
type UnknownBindingError struct {
	Bindings []Binding
}

// Error 实现error接口
func (e *UnknownBindingError) Error() string {
	parts := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		parts[i] = fmt.Sprintf("%s.%s", b.Module, b.Action)
	}
	return "unknown permission bindings: " + strings.Join(parts, ", ")
}

// Validate 检查路由绑定是否都存在于目录中
// 只用于启动期告警，不改变运行期判定（未知组合依然拒绝）
func (c *Catalog) Validate(bindings []Binding) error {
	var unknown []Binding
	seen := make(map[Binding]struct{})
	for _, b := range bindings {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		if !c.Has(b.Module, b.Action) {
			unknown = append(unknown, b)
		}
	}
	if len(unknown) > 0 {
		return &UnknownBindingError{Bindings: unknown}
	}
	return nil
}
