package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmployeeCodeUnknown = errors.New("no employee record matches this code and email")
	ErrAlreadyRegistered   = errors.New("employee already has an account")
	ErrUserNotFound        = errors.New("user not found")
)
