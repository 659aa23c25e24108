package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

// assessmentRepositoryImpl persists the single current rating per
// employee and skill plus its history. History rows are insert-only
// here and the schema enforces the same with a trigger.
type assessmentRepositoryImpl struct {
	db *database.DB
}

func NewAssessmentRepository(db *database.DB) skill.AssessmentRepository {
	return &assessmentRepositoryImpl{db: db}
}

// GetCurrent implements skill.AssessmentRepository.
func (r *assessmentRepositoryImpl) GetCurrent(ctx context.Context, employeeID, skillID string) (skill.SkillAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.skill_id, a.current_level, a.assessor_id, a.assessor_role,
			a.assessment_type, a.created_at, a.updated_at, s.name, s.category
		FROM skill_assessments a
		JOIN skills s ON s.id = a.skill_id
		WHERE a.employee_id = $1 AND a.skill_id = $2
	`

	var found skill.SkillAssessment
	err := q.QueryRow(ctx, query, employeeID, skillID).Scan(
		&found.ID, &found.EmployeeID, &found.SkillID, &found.Level, &found.AssessorID,
		&found.AssessorRole, &found.Type, &found.CreatedAt, &found.UpdatedAt,
		&found.SkillName, &found.SkillCategory,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return skill.SkillAssessment{}, skill.ErrAssessmentNotFound
		}
		return skill.SkillAssessment{}, fmt.Errorf("failed to get assessment: %w", err)
	}

	return found, nil
}

// ListByEmployee implements skill.AssessmentRepository.
func (r *assessmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]skill.SkillAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.skill_id, a.current_level, a.assessor_id, a.assessor_role,
			a.assessment_type, a.created_at, a.updated_at, s.name, s.category
		FROM skill_assessments a
		JOIN skills s ON s.id = a.skill_id
		WHERE a.employee_id = $1
		ORDER BY s.name ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []skill.SkillAssessment
	for rows.Next() {
		var a skill.SkillAssessment
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.SkillID, &a.Level, &a.AssessorID,
			&a.AssessorRole, &a.Type, &a.CreatedAt, &a.UpdatedAt,
			&a.SkillName, &a.SkillCategory,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}

// Upsert implements skill.AssessmentRepository.
func (r *assessmentRepositoryImpl) Upsert(ctx context.Context, a skill.SkillAssessment) (skill.SkillAssessment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO skill_assessments (employee_id, skill_id, current_level, assessor_id, assessor_role, assessment_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, skill_id) DO UPDATE SET
			current_level = EXCLUDED.current_level,
			assessor_id = EXCLUDED.assessor_id,
			assessor_role = EXCLUDED.assessor_role,
			assessment_type = EXCLUDED.assessment_type,
			updated_at = NOW()
		RETURNING id, employee_id, skill_id, current_level, assessor_id, assessor_role,
			assessment_type, created_at, updated_at
	`

	var upserted skill.SkillAssessment
	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.SkillID, a.Level, a.AssessorID, a.AssessorRole, a.Type,
	).Scan(
		&upserted.ID, &upserted.EmployeeID, &upserted.SkillID, &upserted.Level, &upserted.AssessorID,
		&upserted.AssessorRole, &upserted.Type, &upserted.CreatedAt, &upserted.UpdatedAt,
	)
	if err != nil {
		return skill.SkillAssessment{}, fmt.Errorf("failed to upsert assessment: %w", err)
	}

	return upserted, nil
}

// AppendHistory implements skill.AssessmentRepository.
func (r *assessmentRepositoryImpl) AppendHistory(ctx context.Context, h skill.AssessmentHistory) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO assessment_history (employee_id, skill_id, previous_level, new_level, assessor_id, assessor_role, assessment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		h.EmployeeID, h.SkillID, h.PreviousLevel, h.NewLevel, h.AssessorID, h.AssessorRole, h.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to append assessment history: %w", err)
	}
	return nil
}

// ListHistory implements skill.AssessmentRepository.
func (r *assessmentRepositoryImpl) ListHistory(ctx context.Context, employeeID, skillID string, limit int) ([]skill.AssessmentHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, skill_id, previous_level, new_level, assessor_id, assessor_role,
			assessment_type, recorded_at
		FROM assessment_history
		WHERE employee_id = $1 AND skill_id = $2
		ORDER BY recorded_at DESC, id DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, employeeID, skillID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment history: %w", err)
	}
	defer rows.Close()

	var entries []skill.AssessmentHistory
	for rows.Next() {
		var h skill.AssessmentHistory
		err := rows.Scan(
			&h.ID, &h.EmployeeID, &h.SkillID, &h.PreviousLevel, &h.NewLevel,
			&h.AssessorID, &h.AssessorRole, &h.Type, &h.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
