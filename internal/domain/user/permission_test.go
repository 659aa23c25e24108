package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		name       string
		role       Role
		permission Permission
		want       bool
	}{
		{"admin can manage users", RoleSystemAdmin, PermissionUserManage, true},
		{"admin can trigger sync", RoleSystemAdmin, PermissionHRMSSync, true},
		{"hr can view audit", RoleHR, PermissionAuditView, true},
		{"hr can export", RoleHR, PermissionExportRun, true},
		{"hr cannot trigger sync", RoleHR, PermissionHRMSSync, false},
		{"hr cannot manage users", RoleHR, PermissionUserManage, false},
		{"capability partner assigns pathways", RoleCapabilityPartner, PermissionPathwayAssign, true},
		{"capability partner cannot assess others", RoleCapabilityPartner, PermissionSkillAssess, false},
		{"capability partner cannot export", RoleCapabilityPartner, PermissionExportRun, false},
		{"delivery manager assesses", RoleDeliveryManager, PermissionSkillAssess, true},
		{"delivery manager cannot approve movements", RoleDeliveryManager, PermissionLevelMoveApprove, false},
		{"line manager assesses", RoleLineManager, PermissionSkillAssess, true},
		{"line manager cannot view audit", RoleLineManager, PermissionAuditView, false},
		{"employee self-assesses", RoleEmployee, PermissionSkillAssessSelf, true},
		{"employee requests movement", RoleEmployee, PermissionLevelMoveRequest, true},
		{"employee cannot manage employees", RoleEmployee, PermissionEmployeeManage, false},
		{"employee cannot view team", RoleEmployee, PermissionEmployeeViewTeam, false},
		{"unknown role gets nothing", Role("contractor"), PermissionViewOwnProfile, false},
		{"empty role gets nothing", Role(""), PermissionSkillView, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HasPermission(c.role, c.permission))
		})
	}
}

// Wider roles must never lose a permission the employee baseline grants.
func TestRolePermissionsContainEmployeeBaseline(t *testing.T) {
	baseline := RolePermissions[RoleEmployee]
	assert.NotEmpty(t, baseline)

	for role := range RolePermissions {
		for _, p := range baseline {
			assert.True(t, HasPermission(role, p),
				"role %s is missing baseline permission %s", role, p)
		}
	}
}

func TestRoleRegistryComplete(t *testing.T) {
	assert.Len(t, AllRoles, len(RoleIDs))

	seen := map[int]Role{}
	for _, role := range AllRoles {
		id, ok := RoleIDs[role]
		assert.True(t, ok, "role %s has no numeric ID", role)
		_, dup := seen[id]
		assert.False(t, dup, "role ID %d assigned twice", id)
		seen[id] = role

		_, hasPerms := RolePermissions[role]
		assert.True(t, hasPerms, "role %s has no permission set", role)
	}

	assert.False(t, IsValidRole(Role("owner")))
	assert.True(t, IsValidRole(RoleLineManager))
}
