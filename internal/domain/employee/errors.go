package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrEmailExists             = errors.New("email already registered")
	ErrInvalidBand             = errors.New("band must be one of A, B, C, L1, L2")
	ErrSelfManager             = errors.New("employee cannot be their own manager")
	ErrManagerCycle            = errors.New("manager chain would form a cycle")
	ErrManagerNotFound         = errors.New("line manager not found")
	ErrEmployeeAlreadyInactive = errors.New("employee is already deactivated")
	ErrCannotDeactivateSelf    = errors.New("cannot deactivate your own employee record")
	ErrBandChangeNotAuthorized = errors.New("band and pathway change only through the level movement workflow")
	ErrFutureJoiningDate       = errors.New("joining date cannot be in the future")
)
