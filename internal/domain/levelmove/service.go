package levelmove

import "context"

// LevelMovementService runs the request / approve / apply workflow that
// owns every band and pathway change.
type LevelMovementService interface {
	// Request opens a movement for an employee (self, or a manager's report)
	Request(ctx context.Context, req RequestMovementRequest) (MovementResponse, error)

	// Approve marks a pending movement approved (levelmove.approve)
	Approve(ctx context.Context, id string) (MovementResponse, error)

	// Reject closes a pending movement with a reason
	Reject(ctx context.Context, id string, req RejectMovementRequest) (MovementResponse, error)

	// Apply writes the new band and pathway under a workflow authorization
	// and runs baseline assignment for the new pathway
	Apply(ctx context.Context, id string) (MovementResponse, error)

	// List returns movements visible to the caller
	List(ctx context.Context, filter MovementFilter) ([]MovementResponse, error)
}
