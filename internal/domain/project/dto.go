package project

import (
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	EmployeeID   string `json:"employee_id"`
	ProjectCode  string `json:"project_code"`
	ProjectName  string `json:"project_name"`
	SupervisorID string `json:"supervisor_id"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ProjectCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_code",
			Message: "project_code is required",
		})
	}

	if validator.IsEmpty(r.ProjectName) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_name",
			Message: "project_name is required",
		})
	}

	if validator.IsEmpty(r.SupervisorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "supervisor_id",
			Message: "supervisor_id is required",
		})
	}

	if r.EmployeeID != "" && r.EmployeeID == r.SupervisorID {
		errs = append(errs, validator.ValidationError{
			Field:   "supervisor_id",
			Message: "employee cannot supervise their own assignment",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	ProjectCode    string `json:"project_code"`
	ProjectName    string `json:"project_name"`
	SupervisorID   string `json:"supervisor_id"`
	SupervisorName string `json:"supervisor_name"`
	Active         bool   `json:"active"`
	CreatedAt      string `json:"created_at"`
}

func (a *Assignment) ToResponse() AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		ProjectCode:    a.ProjectCode,
		ProjectName:    a.ProjectName,
		SupervisorID:   a.SupervisorID,
		SupervisorName: a.SupervisorName,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
