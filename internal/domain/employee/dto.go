package employee

import (
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

var performanceRatings = []string{"outstanding", "exceeds_expectations", "meets_expectations", "needs_improvement"}

type CreateEmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Department    string  `json:"department"`
	Capability    string  `json:"capability"`
	Band          string  `json:"band"`
	Team          string  `json:"team"`
	Pathway       *string `json:"pathway,omitempty"`
	DeliveryUnit  string  `json:"delivery_unit"`
	LineManagerID *string `json:"line_manager_id,omitempty"`
	JoiningDate   string  `json:"joining_date"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	NationalID    *string `json:"national_id,omitempty"`
	SalaryBand    *string `json:"salary_band,omitempty"`
	BaseSalary    *string `json:"base_salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Capability) {
		errs = append(errs, validator.ValidationError{
			Field:   "capability",
			Message: "capability is required",
		})
	}

	if validator.IsEmpty(r.Band) {
		errs = append(errs, validator.ValidationError{
			Field:   "band",
			Message: "band is required",
		})
	} else if !IsValidBand(Band(r.Band)) {
		errs = append(errs, validator.ValidationError{
			Field:   "band",
			Message: "band must be one of A, B, C, L1, L2",
		})
	}

	if validator.IsEmpty(r.DeliveryUnit) {
		errs = append(errs, validator.ValidationError{
			Field:   "delivery_unit",
			Message: "delivery_unit is required",
		})
	}

	if validator.IsEmpty(r.JoiningDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "joining_date",
			Message: "joining_date must be in YYYY-MM-DD format",
		})
	}

	if r.LineManagerID != nil && !validator.IsValidUUID(*r.LineManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "line_manager_id",
			Message: "line_manager_id must be a valid UUID",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if r.BaseSalary != nil && !validator.IsValidMoney(*r.BaseSalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest carries the fields HR and managers may edit
// directly. Band and pathway are deliberately absent; they change only
// through the level movement workflow.
type UpdateEmployeeRequest struct {
	FullName          *string `json:"full_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Department        *string `json:"department,omitempty"`
	Capability        *string `json:"capability,omitempty"`
	Team              *string `json:"team,omitempty"`
	DeliveryUnit      *string `json:"delivery_unit,omitempty"`
	LineManagerID     *string `json:"line_manager_id,omitempty"`
	CapabilityLeadID  *string `json:"capability_lead_id,omitempty"`
	JoiningDate       *string `json:"joining_date,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	NationalID        *string `json:"national_id,omitempty"`
	SalaryBand        *string `json:"salary_band,omitempty"`
	BaseSalary        *string `json:"base_salary,omitempty"`
	PerformanceRating *string `json:"performance_rating,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.LineManagerID != nil && *r.LineManagerID != "" && !validator.IsValidUUID(*r.LineManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "line_manager_id",
			Message: "line_manager_id must be a valid UUID",
		})
	}

	if r.CapabilityLeadID != nil && *r.CapabilityLeadID != "" && !validator.IsValidUUID(*r.CapabilityLeadID) {
		errs = append(errs, validator.ValidationError{
			Field:   "capability_lead_id",
			Message: "capability_lead_id must be a valid UUID",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if r.BaseSalary != nil && !validator.IsValidMoney(*r.BaseSalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must be a non-negative number",
		})
	}

	if r.PerformanceRating != nil && !validator.IsInSlice(*r.PerformanceRating, performanceRatings) {
		errs = append(errs, validator.ValidationError{
			Field:   "performance_rating",
			Message: "invalid performance rating",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search       string `json:"search"`
	Department   string `json:"department"`
	Capability   string `json:"capability"`
	Band         string `json:"band"`
	DeliveryUnit string `json:"delivery_unit"`
	Team         string `json:"team"`
	Active       *bool  `json:"active"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Band != "" && !IsValidBand(Band(f.Band)) {
		errs = append(errs, validator.ValidationError{
			Field:   "band",
			Message: "band must be one of A, B, C, L1, L2",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResponseMap flattens the record into the response payload. Every key
// here must be classified in access.EmployeeFieldTiers; the catalog
// completeness test enforces that.
func (e *Employee) ResponseMap() map[string]any {
	payload := map[string]any{
		access.FieldID:           e.ID,
		access.FieldEmployeeCode: e.EmployeeCode,
		access.FieldFullName:     e.FullName,
		access.FieldEmail:        e.Email,
		access.FieldDepartment:   e.Department,
		access.FieldCapability:   e.Capability,
		access.FieldBand:         string(e.Band),
		access.FieldTeam:         e.Team,
		access.FieldDeliveryUnit: e.DeliveryUnit,
		access.FieldActive:       e.Active,
		access.FieldCreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		access.FieldUpdatedAt:    e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		access.FieldJoiningDate:  e.JoiningDate.Format("2006-01-02"),
	}

	payload[access.FieldPathway] = nilable(e.Pathway)
	payload[access.FieldLineManagerID] = nilable(e.LineManagerID)
	payload[access.FieldPhoneNumber] = nilable(e.PhoneNumber)
	payload[access.FieldNationalID] = nilable(e.NationalID)
	payload[access.FieldSalaryBand] = nilable(e.SalaryBand)
	payload[access.FieldPerformanceRating] = nilable(e.PerformanceRating)

	if e.BaseSalary != nil {
		payload[access.FieldBaseSalary] = e.BaseSalary.String()
	} else {
		payload[access.FieldBaseSalary] = nil
	}
	if e.AvgSkillRating != nil {
		payload[access.FieldSkillRating] = *e.AvgSkillRating
	} else {
		payload[access.FieldSkillRating] = nil
	}

	return payload
}

// Masked builds the response payload with every field outside the visible
// set replaced by the redaction marker. Keys are never dropped, so the
// response shape stays stable for clients.
func (e *Employee) Masked(visible map[string]bool) map[string]any {
	payload := e.ResponseMap()
	for field := range payload {
		if !visible[field] {
			payload[field] = access.RedactionMarker
		}
	}
	return payload
}

func nilable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

type ListEmployeesResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Showing    string           `json:"showing"`
	Employees  []map[string]any `json:"employees"`
}

// ImportRowError reports one rejected row of a bulk import.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a partial-success bulk import.
type ImportResult struct {
	RowsProcessed int              `json:"rows_processed"`
	Created       int              `json:"created"`
	Errors        []ImportRowError `json:"errors"`
}
