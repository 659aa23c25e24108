package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCode(ctx context.Context, employeeCode string) (bool, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListByLineManager(ctx context.Context, managerID string) ([]Employee, error)
	ListByCapability(ctx context.Context, capability string) ([]Employee, error)
	ListByDeliveryUnit(ctx context.Context, deliveryUnit string) ([]Employee, error)

	// AssignPathway is the sanctioned pathway write outside the level
	// movement workflow, used by pathway assignment with baselines.
	AssignPathway(ctx context.Context, id string, pathway string) error

	// UpsertByCode inserts or refreshes a record keyed by employee code.
	// Band and pathway are written on insert only; afterwards they belong
	// to the level movement workflow.
	UpsertByCode(ctx context.Context, emp Employee) (Employee, bool, error)
}
