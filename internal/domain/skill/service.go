package skill

import (
	"context"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
)

// SkillService defines business logic for the skill catalog, assessments,
// baselines and readiness scoring.
type SkillService interface {
	CreateSkill(ctx context.Context, req CreateSkillRequest) (SkillResponse, error)
	ListSkills(ctx context.Context, category string) ([]SkillResponse, error)
	CreatePathway(ctx context.Context, req CreatePathwayRequest) (PathwayResponse, error)
	ListPathways(ctx context.Context) ([]PathwayResponse, error)
	TagSkill(ctx context.Context, skillID, pathwayID string) error
	SetRequirement(ctx context.Context, req SetRequirementRequest) error

	// Assess records a rating after checking assessment authority, appending
	// a history row before the current one changes
	Assess(ctx context.Context, employeeID, skillID string, req AssessRequest) (AssessmentResponse, error)

	// ListAssessments returns the target's current ratings, access-checked
	ListAssessments(ctx context.Context, employeeID string) ([]AssessmentResponse, error)

	ListHistory(ctx context.Context, employeeID, skillID string) ([]HistoryResponse, error)

	// AssignPathway sets the employee's pathway and creates baseline
	// assessments for every skill tagged to it
	AssignPathway(ctx context.Context, employeeID string, req AssignPathwayRequest) (BaselineResult, error)

	// AssignBaseline creates band-level baseline assessments for the
	// employee's current pathway without changing the assignment
	AssignBaseline(ctx context.Context, emp employee.Employee, pathwayName string, skipExisting bool) (BaselineResult, error)

	// Readiness scores the employee against a target band's requirements
	Readiness(ctx context.Context, employeeID string, targetBand string) (ReadinessResponse, error)
}
