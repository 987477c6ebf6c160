package auth

import (
	"fmt"
	"sort"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/countryclub/pkg/permission"
)

// policyModel 角色-模块-动作 精确匹配模型
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// PolicyRows 将权限目录展开为 (role, module, action) 行
func PolicyRows(catalog *permission.Catalog) [][]string {
	var rows [][]string
	for _, rule := range catalog.Rules() {
		for _, role := range rule.Roles {
			rows = append(rows, []string{string(role), string(rule.Module), string(rule.Action)})
		}
	}
	return rows
}

// PolicyService 权限目录的Casbin镜像，仅用于审计和导出，不参与请求鉴权
type PolicyService struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService 从权限目录构建内存Enforcer
func NewPolicyService(catalog *permission.Catalog) (*PolicyService, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if rows := PolicyRows(catalog); len(rows) > 0 {
		if _, err := e.AddPolicies(rows); err != nil {
			return nil, fmt.Errorf("failed to add casbin policies: %w", err)
		}
	}
	return &PolicyService{enforcer: e}, nil
}

// Enforce 权限检查
func (s *PolicyService) Enforce(role, module, action string) bool {
	ok, err := s.enforcer.Enforce(role, module, action)
	return err == nil && ok
}

// Policy 策略行
type Policy struct {
	Role   string `json:"role"`
	Module string `json:"module"`
	Action string `json:"action"`
}

// Policies 返回全部策略，可按角色过滤
func (s *PolicyService) Policies(role string) ([]Policy, error) {
	var (
		rows [][]string
		err  error
	)
	if role != "" {
		rows, err = s.enforcer.GetFilteredPolicy(0, role)
	} else {
		rows, err = s.enforcer.GetPolicy()
	}
	if err != nil {
		return nil, err
	}
	out := make([]Policy, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		out = append(out, Policy{Role: r[0], Module: r[1], Action: r[2]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Module != out[j].Module {
			return out[i].Module < out[j].Module
		}
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Role < out[j].Role
	})
	return out, nil
}

// SyncPolicies 将权限目录写入 casbin_rule 表，供外部审计
// 删除和写入都在同一事务连接上完成，单连接的内存SQLite也不会阻塞
func SyncPolicies(db *gorm.DB, catalog *permission.Catalog) (int, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return 0, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	rows := PolicyRows(catalog)
	rules := make([]gormadapter.CasbinRule, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, gormadapter.CasbinRule{Ptype: "p", V0: r[0], V1: r[1], V2: r[2]})
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ptype = ?", "p").Delete(&gormadapter.CasbinRule{}).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.CreateInBatches(rules, 100).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save casbin policies: %w", err)
	}

	// 通过适配器回读，确认写入的策略可被加载
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return 0, fmt.Errorf("failed to load casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return 0, fmt.Errorf("failed to load casbin policies: %w", err)
	}
	loaded, err := e.GetPolicy()
	if err != nil {
		return 0, err
	}
	return len(loaded), nil
}
