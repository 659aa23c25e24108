package audit

import "errors"

var (
	ErrEntryImmutable = errors.New("audit entries cannot be modified or deleted")
	ErrInvalidWindow  = errors.New("audit query window must be between 1 and 365 days")
)
