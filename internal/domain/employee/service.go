package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for employee operations. Read
// paths return masked payloads shaped by the access decision engine.
type EmployeeService interface {
	// GetEmployee retrieves a single employee, masked for the caller
	GetEmployee(ctx context.Context, id string) (map[string]any, error)

	// GetOwnProfile retrieves the caller's own employee record
	GetOwnProfile(ctx context.Context) (map[string]any, error)

	// CreateEmployee creates a new employee (employee.manage)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (map[string]any, error)

	// UpdateEmployee updates non-privileged fields (band and pathway excluded)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (map[string]any, error)

	// DeactivateEmployee soft-deactivates an employee (employee.manage)
	DeactivateEmployee(ctx context.Context, id string) error

	// ListEmployees lists the population visible to the caller, each row masked
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// ImportEmployees ingests a CSV, collecting per-row errors instead of aborting
	ImportEmployees(ctx context.Context, r io.Reader) (ImportResult, error)

	// ExportEmployees renders the visible population as CSV and audits the export
	ExportEmployees(ctx context.Context, filter EmployeeFilter) ([]byte, error)
}
