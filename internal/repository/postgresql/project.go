package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) project.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentColumns = `a.id, a.employee_id, a.project_code, a.project_name, a.supervisor_id,
		a.active, a.created_at, a.updated_at, e.full_name, s.full_name`

func scanAssignment(row pgx.Row) (project.Assignment, error) {
	var a project.Assignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.ProjectCode, &a.ProjectName, &a.SupervisorID,
		&a.Active, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName, &a.SupervisorName,
	)
	return a, err
}

// Create implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, a project.Assignment) (project.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH a AS (
			INSERT INTO project_assignments (employee_id, project_code, project_name, supervisor_id, active)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + assignmentColumns + `
		FROM a
		JOIN employees e ON e.id = a.employee_id
		JOIN employees s ON s.id = a.supervisor_id
	`

	created, err := scanAssignment(q.QueryRow(ctx, query,
		a.EmployeeID, a.ProjectCode, a.ProjectName, a.SupervisorID, a.Active,
	))
	if err != nil {
		return project.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return created, nil
}

// GetByID implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByID(ctx context.Context, id string) (project.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM project_assignments a
		JOIN employees e ON e.id = a.employee_id
		JOIN employees s ON s.id = a.supervisor_id
		WHERE a.id = $1
	`

	found, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return project.Assignment{}, project.ErrAssignmentNotFound
		}
		return project.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return found, nil
}

// ListByEmployee implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]project.Assignment, error) {
	return r.listWhere(ctx, "a.employee_id = $1", employeeID)
}

// ListBySupervisor implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListBySupervisor(ctx context.Context, supervisorID string) ([]project.Assignment, error) {
	return r.listWhere(ctx, "a.supervisor_id = $1", supervisorID)
}

func (r *assignmentRepositoryImpl) listWhere(ctx context.Context, condition string, arg interface{}) ([]project.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT `+assignmentColumns+`
		FROM project_assignments a
		JOIN employees e ON e.id = a.employee_id
		JOIN employees s ON s.id = a.supervisor_id
		WHERE %s
		ORDER BY a.created_at DESC
	`, condition)

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []project.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ExistsActiveSupervision implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) ExistsActiveSupervision(ctx context.Context, supervisorID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_assignments WHERE supervisor_id = $1 AND employee_id = $2 AND active = TRUE)`,
		supervisorID, employeeID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Deactivate implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE project_assignments
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return project.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to deactivate assignment: %w", err)
	}
	return nil
}

// UpsertByProjectAndEmployee implements project.AssignmentRepository.
func (r *assignmentRepositoryImpl) UpsertByProjectAndEmployee(ctx context.Context, a project.Assignment) (project.Assignment, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH a AS (
			INSERT INTO project_assignments (employee_id, project_code, project_name, supervisor_id, active)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (project_code, employee_id) DO UPDATE SET
				project_name = EXCLUDED.project_name,
				supervisor_id = EXCLUDED.supervisor_id,
				active = EXCLUDED.active,
				updated_at = NOW()
			RETURNING *, (xmax = 0) AS inserted
		)
		SELECT ` + assignmentColumns + `, a.inserted
		FROM a
		JOIN employees e ON e.id = a.employee_id
		JOIN employees s ON s.id = a.supervisor_id
	`

	var upserted project.Assignment
	var inserted bool
	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.ProjectCode, a.ProjectName, a.SupervisorID, a.Active,
	).Scan(
		&upserted.ID, &upserted.EmployeeID, &upserted.ProjectCode, &upserted.ProjectName,
		&upserted.SupervisorID, &upserted.Active, &upserted.CreatedAt, &upserted.UpdatedAt,
		&upserted.EmployeeName, &upserted.SupervisorName, &inserted,
	)
	if err != nil {
		return project.Assignment{}, false, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	return upserted, inserted, nil
}
