package user

import "time"

type Role string

const (
	RoleSystemAdmin       Role = "system_admin"       // Platform administration - full access
	RoleHR                Role = "hr"                 // People operations - full employee visibility
	RoleCapabilityPartner Role = "capability_partner" // Guides a capability (discipline) across teams
	RoleDeliveryManager   Role = "delivery_manager"   // Runs a delivery unit and its projects
	RoleLineManager       Role = "line_manager"       // Direct manager of a set of employees
	RoleEmployee          Role = "employee"           // Regular employee
)

// RoleIDs carries the fixed numeric identifiers the HRMS exchange format
// uses for roles. The catalog is immutable; new roles get new IDs.
var RoleIDs = map[Role]int{
	RoleSystemAdmin:       1,
	RoleHR:                2,
	RoleCapabilityPartner: 3,
	RoleDeliveryManager:   4,
	RoleLineManager:       5,
	RoleEmployee:          6,
}

// AllRoles lists every registered role. Order matches the numeric IDs.
var AllRoles = []Role{
	RoleSystemAdmin,
	RoleHR,
	RoleCapabilityPartner,
	RoleDeliveryManager,
	RoleLineManager,
	RoleEmployee,
}

// IsValidRole reports whether the role exists in the registry. Unknown
// roles are never granted anything.
func IsValidRole(role Role) bool {
	_, ok := RoleIDs[role]
	return ok
}

type User struct {
	ID             string
	Email          string
	PasswordHash   *string
	Role           Role
	EmployeeID     *string
	ServiceAccount bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin checks if user is a system administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleSystemAdmin
}

// IsHR checks if user belongs to people operations
func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

// IsManagerial checks if user holds any people-management role
func (u *User) IsManagerial() bool {
	switch u.Role {
	case RoleSystemAdmin, RoleHR, RoleCapabilityPartner, RoleDeliveryManager, RoleLineManager:
		return true
	}
	return false
}

// CanSeeEveryone checks if user bypasses relationship checks entirely
func (u *User) CanSeeEveryone() bool {
	return u.IsAdmin() || u.IsHR()
}
