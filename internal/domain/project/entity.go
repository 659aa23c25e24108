package project

import "time"

// Assignment places an employee on a project under a supervising manager.
// The supervisor link is what grants PROJECT_SUPERVISOR authority.
type Assignment struct {
	ID           string
	EmployeeID   string
	ProjectCode  string
	ProjectName  string
	SupervisorID string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeName   string
	SupervisorName string
}
