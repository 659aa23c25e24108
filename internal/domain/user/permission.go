package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Employee Directory
	PermissionEmployeeViewAll  Permission = "employee.view_all"
	PermissionEmployeeViewTeam Permission = "employee.view_team"
	PermissionEmployeeManage   Permission = "employee.manage"
	PermissionEmployeeImport   Permission = "employee.import"

	// Skills & Assessments
	PermissionSkillView       Permission = "skill.view"
	PermissionSkillManage     Permission = "skill.manage"
	PermissionSkillAssess     Permission = "skill.assess"
	PermissionSkillAssessSelf Permission = "skill.assess_self"
	PermissionPathwayAssign   Permission = "pathway.assign"

	// Level Movements
	PermissionLevelMoveRequest Permission = "levelmove.request"
	PermissionLevelMoveApprove Permission = "levelmove.approve"
	PermissionLevelMoveApply   Permission = "levelmove.apply"

	// Projects
	PermissionProjectManage Permission = "project.manage"

	// Audit & Export
	PermissionAuditView Permission = "audit.view"
	PermissionExportRun Permission = "export.run"

	// Dashboards
	PermissionDashboardView Permission = "dashboard.view"

	// Integration & Administration
	PermissionHRMSSync   Permission = "hrms.sync"
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions. Every role carries at
// least the employee baseline; broader roles only ever add to it.
var RolePermissions = map[Role][]Permission{
	RoleSystemAdmin: {
		// System admin has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionEmployeeViewAll,
		PermissionEmployeeViewTeam,
		PermissionEmployeeManage,
		PermissionEmployeeImport,
		PermissionSkillView,
		PermissionSkillManage,
		PermissionSkillAssess,
		PermissionSkillAssessSelf,
		PermissionPathwayAssign,
		PermissionLevelMoveRequest,
		PermissionLevelMoveApprove,
		PermissionLevelMoveApply,
		PermissionProjectManage,
		PermissionAuditView,
		PermissionExportRun,
		PermissionDashboardView,
		PermissionHRMSSync,
		PermissionUserManage,
	},
	RoleHR: {
		// HR runs people operations end to end, short of system administration
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionEmployeeViewAll,
		PermissionEmployeeViewTeam,
		PermissionEmployeeManage,
		PermissionEmployeeImport,
		PermissionSkillView,
		PermissionSkillManage,
		PermissionSkillAssess,
		PermissionSkillAssessSelf,
		PermissionPathwayAssign,
		PermissionLevelMoveRequest,
		PermissionLevelMoveApprove,
		PermissionLevelMoveApply,
		PermissionProjectManage,
		PermissionAuditView,
		PermissionExportRun,
		PermissionDashboardView,
	},
	RoleCapabilityPartner: {
		// Capability partner develops people within one capability
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionEmployeeViewTeam,
		PermissionSkillView,
		PermissionSkillAssessSelf,
		PermissionPathwayAssign,
		PermissionLevelMoveRequest,
		PermissionDashboardView,
	},
	RoleDeliveryManager: {
		// Delivery manager assesses people across their delivery unit
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionEmployeeViewTeam,
		PermissionSkillView,
		PermissionSkillAssess,
		PermissionSkillAssessSelf,
		PermissionLevelMoveRequest,
		PermissionDashboardView,
	},
	RoleLineManager: {
		// Line manager assesses and requests movements for direct reports
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionEmployeeViewTeam,
		PermissionSkillView,
		PermissionSkillAssess,
		PermissionSkillAssessSelf,
		PermissionLevelMoveRequest,
		PermissionDashboardView,
	},
	RoleEmployee: {
		// Employee has basic access
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionSkillView,
		PermissionSkillAssessSelf,
		PermissionLevelMoveRequest,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
