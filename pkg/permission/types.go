package permission

// Role 角色标识
type Role string

// 系统角色
const (
	RoleAdmin            Role = "admin"
	RoleManager          Role = "manager"
	RoleEventCoordinator Role = "event_coordinator"
)

// Roles 返回系统内置角色（按权限从高到低）
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEventCoordinator}
}

// Valid 是否为内置角色
func (r Role) Valid() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Module 功能模块标识
type Module string

// 功能模块
const (
	ModuleMembers        Module = "MEMBERS"
	ModuleEvents         Module = "EVENTS"
	ModuleMaintenance    Module = "MAINTENANCE"
	ModuleCommunications Module = "COMMUNICATIONS"
	ModuleReports        Module = "REPORTS"
	ModuleAdmin          Module = "ADMIN"
	ModuleEmployees      Module = "EMPLOYEES"
	ModuleInventory      Module = "INVENTORY"
	ModuleSuppliers      Module = "SUPPLIERS"
	ModulePurchases      Module = "PURCHASES"
)

// Action 模块内的操作标识
type Action string

// 通用操作
const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// 会员
const (
	ActionVerifyMembership Action = "VERIFY_MEMBERSHIP"
	ActionManagePayments   Action = "MANAGE_PAYMENTS"
)

// 活动
const (
	ActionManageAttendance Action = "MANAGE_ATTENDANCE"
	ActionManageResources  Action = "MANAGE_RESOURCES"
	ActionApproveEvents    Action = "APPROVE_EVENTS"
)

// 维护
const (
	ActionCreateTasks      Action = "CREATE_TASKS"
	ActionReadTasks        Action = "READ_TASKS"
	ActionUpdateTasks      Action = "UPDATE_TASKS"
	ActionDeleteTasks      Action = "DELETE_TASKS"
	ActionManageInventory  Action = "MANAGE_INVENTORY"
	ActionCreateIncidents  Action = "CREATE_INCIDENTS"
	ActionResolveIncidents Action = "RESOLVE_INCIDENTS"
)

// 通讯
const (
	ActionSendNotifications Action = "SEND_NOTIFICATIONS"
	ActionReadNotifications Action = "READ_NOTIFICATIONS"
	ActionCreateSurveys     Action = "CREATE_SURVEYS"
	ActionReadSurveys       Action = "READ_SURVEYS"
	ActionRespondSurveys    Action = "RESPOND_SURVEYS"
)

// 报表
const (
	ActionGenerateReports Action = "GENERATE_REPORTS"
	ActionReadReports     Action = "READ_REPORTS"
	ActionExportData      Action = "EXPORT_DATA"
	ActionViewAnalytics   Action = "VIEW_ANALYTICS"
)

// 系统管理
const (
	ActionManageUsers  Action = "MANAGE_USERS"
	ActionManageRoles  Action = "MANAGE_ROLES"
	ActionSystemConfig Action = "SYSTEM_CONFIG"
	ActionViewLogs     Action = "VIEW_LOGS"
	ActionBackupData   Action = "BACKUP_DATA"
)

// 员工、库存、采购
const (
	ActionManageSchedules Action = "MANAGE_SCHEDULES"
	ActionRequestItems    Action = "REQUEST_ITEMS"
	ActionApproveRequests Action = "APPROVE_REQUESTS"
	ActionApprove         Action = "APPROVE"
)

// Binding 路由绑定的(模块, 操作)对
type Binding struct {
	Module Module `json:"module"`
	Action Action `json:"action"`
}
