package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/levelmove"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

type levelMovementRepositoryImpl struct {
	db *database.DB
}

func NewLevelMovementRepository(db *database.DB) levelmove.LevelMovementRepository {
	return &levelMovementRepositoryImpl{db: db}
}

const movementColumns = `m.id, m.employee_id, m.from_band, m.to_band, m.pathway, m.status, m.reason,
		m.requested_by, m.decided_by, m.decided_at, m.applied_at, m.created_at, m.updated_at,
		e.full_name, e.employee_code`

func scanMovement(row pgx.Row) (levelmove.LevelMovement, error) {
	var m levelmove.LevelMovement
	err := row.Scan(
		&m.ID, &m.EmployeeID, &m.FromBand, &m.ToBand, &m.Pathway, &m.Status, &m.Reason,
		&m.RequestedBy, &m.DecidedBy, &m.DecidedAt, &m.AppliedAt, &m.CreatedAt, &m.UpdatedAt,
		&m.EmployeeName, &m.EmployeeCode,
	)
	return m, err
}

// Create implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) Create(ctx context.Context, m levelmove.LevelMovement) (levelmove.LevelMovement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH m AS (
			INSERT INTO level_movements (employee_id, from_band, to_band, pathway, status, reason, requested_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + movementColumns + `
		FROM m
		JOIN employees e ON e.id = m.employee_id
	`

	created, err := scanMovement(q.QueryRow(ctx, query,
		m.EmployeeID, m.FromBand, m.ToBand, m.Pathway, m.Status, m.Reason, m.RequestedBy,
	))
	if err != nil {
		return levelmove.LevelMovement{}, fmt.Errorf("failed to create level movement: %w", err)
	}

	return created, nil
}

// GetByID implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) GetByID(ctx context.Context, id string) (levelmove.LevelMovement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + movementColumns + `
		FROM level_movements m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.id = $1
	`

	found, err := scanMovement(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return levelmove.LevelMovement{}, levelmove.ErrMovementNotFound
		}
		return levelmove.LevelMovement{}, fmt.Errorf("failed to get level movement: %w", err)
	}

	return found, nil
}

// List implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) List(ctx context.Context, filter levelmove.MovementFilter) ([]levelmove.LevelMovement, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("m.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.RequestedBy != "" {
		conditions = append(conditions, fmt.Sprintf("m.requested_by = $%d", argIdx))
		args = append(args, filter.RequestedBy)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT `+movementColumns+`
		FROM level_movements m
		JOIN employees e ON e.id = m.employee_id
		WHERE %s
		ORDER BY m.created_at DESC
		LIMIT $%d
	`, strings.Join(conditions, " AND "), argIdx)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list level movements: %w", err)
	}
	defer rows.Close()

	var movements []levelmove.LevelMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan level movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movements, nil
}

// ExistsPendingForEmployee implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) ExistsPendingForEmployee(ctx context.Context, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM level_movements WHERE employee_id = $1 AND status IN ($2, $3))`,
		employeeID, levelmove.StatusPending, levelmove.StatusApproved,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateStatus implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) UpdateStatus(ctx context.Context, id string, status levelmove.Status, decidedBy string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE level_movements
		SET status = $1, decided_by = $2, decided_at = NOW(), reason = COALESCE($3, reason), updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, status, decidedBy, reason, id, levelmove.StatusPending).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return levelmove.ErrMovementNotPending
		}
		return fmt.Errorf("failed to update movement status: %w", err)
	}
	return nil
}

// MarkApplied implements levelmove.LevelMovementRepository.
func (r *levelMovementRepositoryImpl) MarkApplied(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE level_movements
		SET status = $1, applied_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, levelmove.StatusApplied, id, levelmove.StatusApproved).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return levelmove.ErrMovementNotApproved
		}
		return fmt.Errorf("failed to mark movement applied: %w", err)
	}
	return nil
}

// ApplyBandChange implements levelmove.LevelMovementRepository. This is
// the only statement in the codebase that writes employees.band or
// employees.pathway after onboarding.
func (r *levelMovementRepositoryImpl) ApplyBandChange(ctx context.Context, authz levelmove.Authorization) error {
	if !authz.Valid() {
		return levelmove.ErrMovementNotApproved
	}
	m := authz.Movement()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET band = $1, pathway = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, m.ToBand, m.Pathway, m.EmployeeID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("employee %s not found for band change: %w", m.EmployeeID, err)
		}
		return fmt.Errorf("failed to apply band change: %w", err)
	}
	return nil
}
