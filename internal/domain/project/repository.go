package project

import "context"

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	GetByID(ctx context.Context, id string) (Assignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Assignment, error)
	ListBySupervisor(ctx context.Context, supervisorID string) ([]Assignment, error)
	ExistsActiveSupervision(ctx context.Context, supervisorID, employeeID string) (bool, error)
	Deactivate(ctx context.Context, id string) error
	UpsertByProjectAndEmployee(ctx context.Context, a Assignment) (Assignment, bool, error)
}
