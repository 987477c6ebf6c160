package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasPermissionScenarios(t *testing.T) {
	e := NewEvaluator(DefaultCatalog())

	tests := []struct {
		name   string
		role   Role
		module Module
		action Action
		want   bool
	}{
		{"admin deletes members", RoleAdmin, ModuleMembers, ActionDelete, true},
		{"coordinator cannot delete members", RoleEventCoordinator, ModuleMembers, ActionDelete, false},
		{"coordinator requests items", RoleEventCoordinator, ModuleInventory, ActionRequestItems, true},
		{"admin cannot request items", RoleAdmin, ModuleInventory, ActionRequestItems, false},
		{"manager cannot request items", RoleManager, ModuleInventory, ActionRequestItems, false},
		{"manager cannot create events", RoleManager, ModuleEvents, ActionCreate, false},
		{"coordinator creates events", RoleEventCoordinator, ModuleEvents, ActionCreate, true},
		{"coordinator creates purchases", RoleEventCoordinator, ModulePurchases, ActionCreate, true},
		{"manager cannot manage users", RoleManager, ModuleAdmin, ActionManageUsers, false},
		{"unknown module", RoleAdmin, Module("GOLF"), ActionRead, false},
		{"unknown action", RoleAdmin, ModuleMembers, Action("ARCHIVE"), false},
		{"unknown role", Role("guest"), ModuleMembers, ActionRead, false},
		{"empty role", Role(""), ModuleMembers, ActionRead, false},
		{"module name is case sensitive", RoleAdmin, Module("members"), ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.HasPermission(tt.role, tt.module, tt.action))
		})
	}
}

func TestHasPermissionMatchesCatalogMembership(t *testing.T) {
	c := DefaultCatalog()
	e := NewEvaluator(c)
	candidates := append(Roles(), Role("guest"), Role(""), Role("ADMIN"))

	for _, rule := range c.Rules() {
		allowed := make(map[Role]bool)
		for _, r := range rule.Roles {
			allowed[r] = true
		}
		for _, role := range candidates {
			assert.Equal(t, allowed[role], e.HasPermission(role, rule.Module, rule.Action),
				"%s %s.%s", role, rule.Module, rule.Action)
		}
	}
}

func TestCanAccessModuleIsReadPermission(t *testing.T) {
	c := DefaultCatalog()
	e := NewEvaluator(c)

	modules := append(c.Modules(), Module("UNKNOWN"))
	for _, m := range modules {
		for _, role := range append(Roles(), Role("guest")) {
			assert.Equal(t, e.HasPermission(role, m, ActionRead), e.CanAccessModule(role, m), "%s %s", role, m)
		}
	}

	assert.True(t, e.CanAccessModule(RoleManager, ModuleEvents))
	assert.False(t, e.CanAccessModule(RoleEventCoordinator, ModulePurchases))
	assert.True(t, e.HasPermission(RoleEventCoordinator, ModulePurchases, ActionCreate))
}

func TestModulesWithoutReadAreInaccessible(t *testing.T) {
	e := NewEvaluator(DefaultCatalog())

	for _, m := range []Module{ModuleAdmin, ModuleCommunications, ModuleReports} {
		for _, role := range Roles() {
			assert.False(t, e.CanAccessModule(role, m), "%s %s", role, m)
		}
	}
}

func TestEvaluationIsIdempotent(t *testing.T) {
	e := NewEvaluator(DefaultCatalog())

	first := e.HasPermission(RoleManager, ModuleEmployees, ActionManageSchedules)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, e.HasPermission(RoleManager, ModuleEmployees, ActionManageSchedules))
	}
}

func TestGetUserPermissions(t *testing.T) {
	c := DefaultCatalog()
	e := NewEvaluator(c)

	perms := e.GetUserPermissions(RoleEventCoordinator)
	require.Len(t, perms, len(c.Modules()))

	for _, m := range c.Modules() {
		require.Len(t, perms[m], len(c.Actions(m)))
		for _, a := range c.Actions(m) {
			assert.Equal(t, e.HasPermission(RoleEventCoordinator, m, a), perms[m][a])
		}
	}
	assert.True(t, perms[ModuleInventory][ActionRequestItems])
	assert.False(t, perms[ModuleInventory][ActionApproveRequests])

	unknown := e.GetUserPermissions(Role("guest"))
	for _, acts := range unknown {
		for _, ok := range acts {
			assert.False(t, ok)
		}
	}
}

func TestGetAccessibleModules(t *testing.T) {
	e := NewEvaluator(DefaultCatalog())

	assert.Equal(t, []Module{
		ModuleMembers, ModuleEvents, ModuleMaintenance, ModuleEmployees,
		ModuleInventory, ModuleSuppliers, ModulePurchases,
	}, e.GetAccessibleModules(RoleAdmin))

	assert.Equal(t, []Module{
		ModuleMembers, ModuleEvents, ModuleMaintenance, ModuleEmployees,
		ModuleInventory, ModuleSuppliers,
	}, e.GetAccessibleModules(RoleEventCoordinator))

	assert.Empty(t, e.GetAccessibleModules(Role("guest")))
}

func TestNilCatalogDeniesEverything(t *testing.T) {
	e := NewEvaluator(nil)

	assert.False(t, e.HasPermission(RoleAdmin, ModuleMembers, ActionRead))
	assert.False(t, e.CanAccessModule(RoleAdmin, ModuleMembers))
	assert.Empty(t, e.GetUserPermissions(RoleAdmin))
	assert.Empty(t, e.GetAccessibleModules(RoleAdmin))
}

func TestEvaluatorConcurrentReads(t *testing.T) {
	e := NewEvaluator(DefaultCatalog())

	done := make(chan bool)
	for i := 0; i < 16; i++ {
		go func() {
			for j := 0; j < 500; j++ {
				_ = e.HasPermission(RoleManager, ModuleMembers, ActionUpdate)
				_ = e.GetAccessibleModules(RoleEventCoordinator)
			}
			done <- true
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("guest").Valid())
	assert.False(t, Role("").Valid())
}
