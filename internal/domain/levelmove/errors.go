package levelmove

import "errors"

var (
	ErrMovementNotFound    = errors.New("level movement not found")
	ErrMovementNotPending  = errors.New("level movement is not pending")
	ErrMovementNotApproved = errors.New("level movement is not approved")
	ErrSameBand            = errors.New("target band equals current band")
	ErrBandNotAdjacent     = errors.New("target band must be the next band up")
	ErrMovementExists      = errors.New("employee already has a pending level movement")
	ErrRequestNotAllowed   = errors.New("only the employee or their manager can request a movement")
)
