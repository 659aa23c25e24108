package user

import (
	"context"
)

// UserService covers account administration. Role changes and
// deactivation are admin operations; the service account is immutable
// through this surface.
type UserService interface {
	// GetMe returns the caller's account and their own employee record
	GetMe(ctx context.Context) (MeResponse, error)

	// UpdateUserRole reassigns a user's role (user.manage)
	UpdateUserRole(ctx context.Context, req UpdateUserRoleRequest) (UserResponse, error)

	// DeactivateUser deactivates an account and revokes its sessions (user.manage)
	DeactivateUser(ctx context.Context, id string) error
}
