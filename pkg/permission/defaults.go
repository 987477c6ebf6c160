package permission

var (
	all          = []Role{RoleAdmin, RoleManager, RoleEventCoordinator}
	adminManager = []Role{RoleAdmin, RoleManager}
	adminOnly    = []Role{RoleAdmin}
	adminEvents  = []Role{RoleAdmin, RoleEventCoordinator}
)

// clubRules 俱乐部权限表
// 修改权限需要改代码并重新部署
var clubRules = []Rule{
	{ModuleMembers, ActionCreate, adminManager},
	{ModuleMembers, ActionRead, all},
	{ModuleMembers, ActionUpdate, adminManager},
	{ModuleMembers, ActionDelete, adminOnly},
	{ModuleMembers, ActionVerifyMembership, adminManager},
	{ModuleMembers, ActionManagePayments, adminManager},

	{ModuleEvents, ActionCreate, adminEvents},
	{ModuleEvents, ActionRead, all},
	{ModuleEvents, ActionUpdate, adminEvents},
	{ModuleEvents, ActionDelete, adminOnly},
	{ModuleEvents, ActionManageAttendance, adminEvents},
	{ModuleEvents, ActionManageResources, adminEvents},
	{ModuleEvents, ActionApproveEvents, adminManager},

	{ModuleMaintenance, ActionCreate, adminManager},
	{ModuleMaintenance, ActionRead, all},
	{ModuleMaintenance, ActionUpdate, adminManager},
	{ModuleMaintenance, ActionDelete, adminOnly},
	{ModuleMaintenance, ActionCreateTasks, adminManager},
	{ModuleMaintenance, ActionReadTasks, all},
	{ModuleMaintenance, ActionUpdateTasks, adminManager},
	{ModuleMaintenance, ActionDeleteTasks, adminOnly},
	{ModuleMaintenance, ActionManageInventory, adminManager},
	{ModuleMaintenance, ActionCreateIncidents, all},
	{ModuleMaintenance, ActionResolveIncidents, adminManager},

	{ModuleCommunications, ActionSendNotifications, adminManager},
	{ModuleCommunications, ActionReadNotifications, all},
	{ModuleCommunications, ActionCreateSurveys, adminManager},
	{ModuleCommunications, ActionReadSurveys, all},
	{ModuleCommunications, ActionRespondSurveys, all},

	{ModuleReports, ActionGenerateReports, adminManager},
	{ModuleReports, ActionReadReports, all},
	{ModuleReports, ActionExportData, adminManager},
	{ModuleReports, ActionViewAnalytics, adminManager},

	{ModuleAdmin, ActionManageUsers, adminOnly},
	{ModuleAdmin, ActionManageRoles, adminOnly},
	{ModuleAdmin, ActionSystemConfig, adminOnly},
	{ModuleAdmin, ActionViewLogs, adminOnly},
	{ModuleAdmin, ActionBackupData, adminOnly},

	{ModuleEmployees, ActionCreate, adminOnly},
	{ModuleEmployees, ActionRead, all},
	{ModuleEmployees, ActionUpdate, adminOnly},
	{ModuleEmployees, ActionDelete, adminOnly},
	{ModuleEmployees, ActionManageSchedules, adminManager},

	{ModuleInventory, ActionCreate, adminManager},
	{ModuleInventory, ActionRead, all},
	{ModuleInventory, ActionUpdate, adminManager},
	{ModuleInventory, ActionDelete, adminOnly},
	{ModuleInventory, ActionRequestItems, []Role{RoleEventCoordinator}},
	{ModuleInventory, ActionApproveRequests, adminManager},

	{ModuleSuppliers, ActionCreate, adminManager},
	{ModuleSuppliers, ActionRead, all},
	{ModuleSuppliers, ActionUpdate, adminManager},
	{ModuleSuppliers, ActionDelete, adminOnly},

	{ModulePurchases, ActionCreate, all},
	{ModulePurchases, ActionRead, adminManager},
	{ModulePurchases, ActionUpdate, adminManager},
	{ModulePurchases, ActionDelete, adminOnly},
	{ModulePurchases, ActionApprove, adminManager},
}

// DefaultCatalog 创建俱乐部默认权限目录
func DefaultCatalog() *Catalog {
	return NewCatalog(clubRules)
}
