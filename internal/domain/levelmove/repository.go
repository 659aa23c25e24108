package levelmove

import "context"

type LevelMovementRepository interface {
	Create(ctx context.Context, m LevelMovement) (LevelMovement, error)
	GetByID(ctx context.Context, id string) (LevelMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]LevelMovement, error)
	ExistsPendingForEmployee(ctx context.Context, employeeID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status, decidedBy string, reason *string) error
	MarkApplied(ctx context.Context, id string) error

	// ApplyBandChange is the single write path for employees.band and
	// employees.pathway after onboarding. It requires a valid
	// authorization minted from an approved movement.
	ApplyBandChange(ctx context.Context, authz Authorization) error
}
