package skill

import (
	"time"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/proficiency"
)

type Skill struct {
	ID        string
	Name      string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Pathway struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AssessmentType string

const (
	AssessmentTypeBaseline AssessmentType = "baseline"
	AssessmentTypeManager  AssessmentType = "manager"
	AssessmentTypeSelf     AssessmentType = "self"
)

// SystemAssessorRole stamps baseline rows generated by the system rather
// than a person.
const SystemAssessorRole = "SYSTEM"

// SkillAssessment is the single current rating per (employee, skill).
// Every change to it appends an AssessmentHistory row first.
type SkillAssessment struct {
	ID           string
	EmployeeID   string
	SkillID      string
	Level        proficiency.Level
	AssessorID   *string
	AssessorRole string
	Type         AssessmentType
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	SkillName     string
	SkillCategory string
}

// AssessmentHistory records one prior value of a current assessment.
// Append-only; the storage layer refuses updates and deletes.
type AssessmentHistory struct {
	ID            int64
	EmployeeID    string
	SkillID       string
	PreviousLevel *proficiency.Level
	NewLevel      proficiency.Level
	AssessorID    *string
	AssessorRole  string
	Type          AssessmentType
	RecordedAt    time.Time
}

// BandRequirement is one required skill level for promotion into a band.
type BandRequirement struct {
	Band          employee.Band
	SkillID       string
	RequiredLevel proficiency.Level

	// DTO / Join
	SkillName string
}

// BaselineLevelByBand fixes the assessment level a band starts from when
// a pathway is assigned.
var BaselineLevelByBand = map[employee.Band]proficiency.Level{
	employee.BandA:  proficiency.LevelBeginner,
	employee.BandB:  proficiency.LevelDeveloping,
	employee.BandC:  proficiency.LevelIntermediate,
	employee.BandL1: proficiency.LevelAdvanced,
	employee.BandL2: proficiency.LevelExpert,
}

// BaselineLevel returns the starting level for a band, falling back to
// the lowest level for bands outside the catalog.
func BaselineLevel(band employee.Band) proficiency.Level {
	if level, ok := BaselineLevelByBand[band]; ok {
		return level
	}
	return proficiency.LevelBeginner
}
