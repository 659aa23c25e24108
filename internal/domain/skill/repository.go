package skill

import (
	"context"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
)

type SkillRepository interface {
	CreateSkill(ctx context.Context, s Skill) (Skill, error)
	GetSkillByID(ctx context.Context, id string) (Skill, error)
	ListSkills(ctx context.Context, category string) ([]Skill, error)
	CreatePathway(ctx context.Context, p Pathway) (Pathway, error)
	GetPathwayByID(ctx context.Context, id string) (Pathway, error)
	GetPathwayByName(ctx context.Context, name string) (Pathway, error)
	ListPathways(ctx context.Context) ([]Pathway, error)
	TagSkillToPathway(ctx context.Context, skillID, pathwayID string) error
	ListSkillsByPathway(ctx context.Context, pathwayID string) ([]Skill, error)
	UpsertRequirement(ctx context.Context, req BandRequirement) error
	ListRequirementsByBand(ctx context.Context, band employee.Band) ([]BandRequirement, error)
}

// AssessmentRepository persists current ratings and their append-only
// history. There is deliberately no update or delete for history rows.
type AssessmentRepository interface {
	GetCurrent(ctx context.Context, employeeID, skillID string) (SkillAssessment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SkillAssessment, error)
	Upsert(ctx context.Context, a SkillAssessment) (SkillAssessment, error)
	AppendHistory(ctx context.Context, h AssessmentHistory) error
	ListHistory(ctx context.Context, employeeID, skillID string, limit int) ([]AssessmentHistory, error)
}
