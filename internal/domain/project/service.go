package project

import "context"

// AssignmentService defines business logic for project assignments.
type AssignmentService interface {
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, employeeID, supervisorID string) ([]AssignmentResponse, error)
	EndAssignment(ctx context.Context, id string) error
}
