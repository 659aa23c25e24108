package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	GetServiceAccount(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, req UpdateUserRoleRequest) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Deactivate(ctx context.Context, userID string) error
}
