package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrUserInactive             = errors.New("user account is deactivated")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
	ErrInvalidPasswordLength    = errors.New("password must be at least 8 characters")
	ErrInvalidRole              = errors.New("invalid role")
	ErrAdminPrivilegeRequired   = errors.New("admin privilege required")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrEmployeeAlreadyLinked    = errors.New("employee already linked to an account")
	ErrServiceAccountImmutable  = errors.New("service account cannot be modified through this endpoint")
	ErrCannotDeactivateSelf     = errors.New("cannot deactivate your own account")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
)
