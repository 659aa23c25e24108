package skill

import (
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/proficiency"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

type CreateSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (r *CreateSkillRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreatePathwayRequest struct {
	Name string `json:"name"`
}

func (r *CreatePathwayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetRequirementRequest struct {
	Band          string `json:"band"`
	SkillID       string `json:"skill_id"`
	RequiredLevel string `json:"required_level"`
}

func (r *SetRequirementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !employee.IsValidBand(employee.Band(r.Band)) {
		errs = append(errs, validator.ValidationError{
			Field:   "band",
			Message: "band must be one of A, B, C, L1, L2",
		})
	}

	if validator.IsEmpty(r.SkillID) {
		errs = append(errs, validator.ValidationError{
			Field:   "skill_id",
			Message: "skill_id is required",
		})
	}

	if validator.IsEmpty(r.RequiredLevel) {
		errs = append(errs, validator.ValidationError{
			Field:   "required_level",
			Message: "required_level is required",
		})
	} else if !proficiency.IsValid(proficiency.Level(r.RequiredLevel)) {
		errs = append(errs, validator.ValidationError{
			Field:   "required_level",
			Message: "required_level must be one of beginner, developing, intermediate, advanced, expert",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssessRequest struct {
	Level string `json:"level"`
}

func (r *AssessRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Level) {
		errs = append(errs, validator.ValidationError{
			Field:   "level",
			Message: "level is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignPathwayRequest struct {
	Pathway      string `json:"pathway"`
	SkipExisting bool   `json:"skip_existing"`
}

func (r *AssignPathwayRequest) Validate() error {
	var errs validator.ValidationErrors

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

type SkillResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

func (s *Skill) ToResponse() SkillResponse {
	return SkillResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type PathwayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (p *Pathway) ToResponse() PathwayResponse {
	return PathwayResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type AssessmentResponse struct {
	SkillID      string           `json:"skill_id"`
	SkillName    string           `json:"skill_name"`
	Category     string           `json:"category"`
	Level        string           `json:"level"`
	LevelInfo    proficiency.Info `json:"level_info"`
	AssessorID   *string          `json:"assessor_id"`
	AssessorRole string           `json:"assessor_role"`
	Type         string           `json:"type"`
	UpdatedAt    string           `json:"updated_at"`
}

func (a *SkillAssessment) ToResponse() AssessmentResponse {
	return AssessmentResponse{
		SkillID:      a.SkillID,
		SkillName:    a.SkillName,
		Category:     a.SkillCategory,
		Level:        string(a.Level),
		LevelInfo:    a.Level.Describe(),
		AssessorID:   a.AssessorID,
		AssessorRole: a.AssessorRole,
		Type:         string(a.Type),
		UpdatedAt:    a.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type HistoryResponse struct {
	PreviousLevel *string `json:"previous_level"`
	NewLevel      string  `json:"new_level"`
	AssessorRole  string  `json:"assessor_role"`
	Type          string  `json:"type"`
	RecordedAt    string  `json:"recorded_at"`
}

func (h *AssessmentHistory) ToResponse() HistoryResponse {
	var previous *string
	if h.PreviousLevel != nil {
		level := string(*h.PreviousLevel)
		previous = &level
	}
	return HistoryResponse{
		PreviousLevel: previous,
		NewLevel:      string(h.NewLevel),
		AssessorRole:  h.AssessorRole,
		Type:          string(h.Type),
		RecordedAt:    h.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// BaselineResult summarizes a pathway assignment.
type BaselineResult struct {
	Pathway            string `json:"pathway"`
	AssessmentsCreated int    `json:"assessments_created"`
	Skipped            int    `json:"skipped"`
}

type SkillGap struct {
	SkillID       string `json:"skill_id"`
	SkillName     string `json:"skill_name"`
	RequiredLevel string `json:"required_level"`
	CurrentLevel  string `json:"current_level"`
	Gap           int    `json:"gap"`
}

type ReadinessResponse struct {
	EmployeeID    string     `json:"employee_id"`
	TargetBand    string     `json:"target_band"`
	Score         float64    `json:"score"`
	TotalRequired int        `json:"total_required"`
	MetCount      int        `json:"met_count"`
	Gaps          []SkillGap `json:"gaps"`
}
