package permission

// Evaluator 权限判定器
// 纯函数、无状态，未知输入一律拒绝
type Evaluator struct {
	catalog *Catalog
}

// NewEvaluator 创建权限判定器
func NewEvaluator(catalog *Catalog) *Evaluator {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	return &Evaluator{catalog: catalog}
}

// Catalog 获取权限目录
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// HasPermission 角色是否可以在模块中执行操作
func (e *Evaluator) HasPermission(role Role, module Module, action Action) bool {
	return e.catalog.Contains(role, module, action)
}

// CanAccessModule 角色是否可以访问模块
// 模块可见性完全由READ操作决定，没有READ的模块对所有角色不可见
func (e *Evaluator) CanAccessModule(role Role, module Module) bool {
	return e.HasPermission(role, module, ActionRead)
}

// GetUserPermissions 计算角色在全部模块上的权限矩阵
// 仅供前端展示，不能作为授权依据
func (e *Evaluator) GetUserPermissions(role Role) map[Module]map[Action]bool {
	perms := make(map[Module]map[Action]bool)
	for _, m := range e.catalog.Modules() {
		acts := make(map[Action]bool)
		for _, a := range e.catalog.Actions(m) {
			acts[a] = e.HasPermission(role, m, a)
		}
		perms[m] = acts
	}
	return perms
}

// GetAccessibleModules 获取角色可访问的模块
func (e *Evaluator) GetAccessibleModules(role Role) []Module {
	modules := make([]Module, 0)
	for _, m := range e.catalog.Modules() {
		if e.CanAccessModule(role, m) {
			modules = append(modules, m)
		}
	}
	return modules
}
