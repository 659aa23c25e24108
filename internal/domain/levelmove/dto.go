package levelmove

import (
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

type RequestMovementRequest struct {
	EmployeeID string  `json:"employee_id"`
	ToBand     string  `json:"to_band"`
	Pathway    string  `json:"pathway"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *RequestMovementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ToBand) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_band",
			Message: "to_band is required",
		})
	} else if !employee.IsValidBand(employee.Band(r.ToBand)) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_band",
			Message: "to_band must be one of A, B, C, L1, L2",
		})
	}

	if validator.IsEmpty(r.Pathway) {
		errs = append(errs, validator.ValidationError{
			Field:   "pathway",
			Message: "pathway is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectMovementRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectMovementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MovementFilter struct {
	EmployeeID  string `json:"employee_id"`
	RequestedBy string `json:"requested_by"`
	Status      string `json:"status"`
	Limit       int    `json:"limit"`
}

func (f *MovementFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if f.Status != "" {
		valid := []string{string(StatusPending), string(StatusApproved), string(StatusApplied), string(StatusRejected)}
		if !validator.IsInSlice(f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "invalid status",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MovementResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeCode string  `json:"employee_code"`
	FromBand     string  `json:"from_band"`
	ToBand       string  `json:"to_band"`
	Pathway      string  `json:"pathway"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason,omitempty"`
	RequestedBy  string  `json:"requested_by"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	AppliedAt    *string `json:"applied_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func (m *LevelMovement) ToResponse() MovementResponse {
	resp := MovementResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		EmployeeCode: m.EmployeeCode,
		FromBand:     string(m.FromBand),
		ToBand:       string(m.ToBand),
		Pathway:      m.Pathway,
		Status:       string(m.Status),
		Reason:       m.Reason,
		RequestedBy:  m.RequestedBy,
		DecidedBy:    m.DecidedBy,
		CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.DecidedAt != nil {
		s := m.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.DecidedAt = &s
	}
	if m.AppliedAt != nil {
		s := m.AppliedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.AppliedAt = &s
	}
	return resp
}
