package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// avgRatingJoin folds the current assessment levels of an employee into
// a single numeric average, NULL when nothing has been assessed yet.
const avgRatingJoin = `
	LEFT JOIN (
		SELECT employee_id, AVG(level_rank(current_level))::float8 AS avg_skill_rating
		FROM skill_assessments
		GROUP BY employee_id
	) sa ON sa.employee_id = e.id`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.email, e.department, e.capability, e.band,
			e.team, e.pathway, e.delivery_unit, e.line_manager_id, e.capability_lead_id,
			e.joining_date, e.phone_number, e.national_id, e.salary_band, e.base_salary,
			e.performance_rating, e.active, e.created_at, e.updated_at,
			sa.avg_skill_rating
		FROM employees e` + avgRatingJoin + `
		WHERE e.id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department,
		&emp.Capability, &emp.Band, &emp.Team, &emp.Pathway, &emp.DeliveryUnit,
		&emp.LineManagerID, &emp.CapabilityLeadID, &emp.JoiningDate, &emp.PhoneNumber,
		&emp.NationalID, &emp.SalaryBand, &emp.BaseSalary, &emp.PerformanceRating,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.AvgSkillRating,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.email, e.department, e.capability, e.band,
			e.team, e.pathway, e.delivery_unit, e.line_manager_id, e.capability_lead_id,
			e.joining_date, e.phone_number, e.national_id, e.salary_band, e.base_salary,
			e.performance_rating, e.active, e.created_at, e.updated_at,
			sa.avg_skill_rating
		FROM employees e` + avgRatingJoin + `
		WHERE e.employee_code = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, employeeCode).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department,
		&emp.Capability, &emp.Band, &emp.Team, &emp.Pathway, &emp.DeliveryUnit,
		&emp.LineManagerID, &emp.CapabilityLeadID, &emp.JoiningDate, &emp.PhoneNumber,
		&emp.NationalID, &emp.SalaryBand, &emp.BaseSalary, &emp.PerformanceRating,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.AvgSkillRating,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, email, department, capability, band,
			team, pathway, delivery_unit, line_manager_id, capability_lead_id,
			joining_date, phone_number, national_id, salary_band, base_salary,
			performance_rating, active
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18
		)
		RETURNING id, employee_code, full_name, email, department, capability, band,
			team, pathway, delivery_unit, line_manager_id, capability_lead_id,
			joining_date, phone_number, national_id, salary_band, base_salary,
			performance_rating, active, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.FullName, newEmployee.Email, newEmployee.Department,
		newEmployee.Capability, newEmployee.Band, newEmployee.Team, newEmployee.Pathway,
		newEmployee.DeliveryUnit, newEmployee.LineManagerID, newEmployee.CapabilityLeadID,
		newEmployee.JoiningDate, newEmployee.PhoneNumber, newEmployee.NationalID,
		newEmployee.SalaryBand, newEmployee.BaseSalary, newEmployee.PerformanceRating,
		newEmployee.Active,
	).Scan(
		&created.ID, &created.EmployeeCode, &created.FullName, &created.Email, &created.Department,
		&created.Capability, &created.Band, &created.Team, &created.Pathway, &created.DeliveryUnit,
		&created.LineManagerID, &created.CapabilityLeadID, &created.JoiningDate, &created.PhoneNumber,
		&created.NationalID, &created.SalaryBand, &created.BaseSalary, &created.PerformanceRating,
		&created.Active, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByCode(ctx context.Context, employeeCode string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = $1)`, employeeCode).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository. Band and pathway have
// no update path here; they change through the level movement workflow.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Capability != nil {
		updates["capability"] = *req.Capability
	}
	if req.Team != nil {
		updates["team"] = *req.Team
	}
	if req.DeliveryUnit != nil {
		updates["delivery_unit"] = *req.DeliveryUnit
	}
	if req.LineManagerID != nil {
		if *req.LineManagerID == "" {
			updates["line_manager_id"] = nil
		} else {
			updates["line_manager_id"] = *req.LineManagerID
		}
	}
	if req.CapabilityLeadID != nil {
		if *req.CapabilityLeadID == "" {
			updates["capability_lead_id"] = nil
		} else {
			updates["capability_lead_id"] = *req.CapabilityLeadID
		}
	}
	if req.JoiningDate != nil {
		updates["joining_date"] = *req.JoiningDate
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.NationalID != nil {
		updates["national_id"] = *req.NationalID
	}
	if req.SalaryBand != nil {
		updates["salary_band"] = *req.SalaryBand
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
	}
	if req.PerformanceRating != nil {
		updates["performance_rating"] = *req.PerformanceRating
	}

	if len(updates) == 0 {
		return nil // No updates provided
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING id", strings.Join(setClauses, ", "), i)
	args = append(args, id)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee with id %s: %w", id, err)
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	// Build WHERE conditions
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIdx))
		args = append(args, filter.Department)
		argIdx++
	}
	if filter.Capability != "" {
		conditions = append(conditions, fmt.Sprintf("e.capability = $%d", argIdx))
		args = append(args, filter.Capability)
		argIdx++
	}
	if filter.Band != "" {
		conditions = append(conditions, fmt.Sprintf("e.band = $%d", argIdx))
		args = append(args, filter.Band)
		argIdx++
	}
	if filter.DeliveryUnit != "" {
		conditions = append(conditions, fmt.Sprintf("e.delivery_unit = $%d", argIdx))
		args = append(args, filter.DeliveryUnit)
		argIdx++
	}
	if filter.Team != "" {
		conditions = append(conditions, fmt.Sprintf("e.team = $%d", argIdx))
		args = append(args, filter.Team)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("e.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	err := q.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Main query with pagination
	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT e.id, e.employee_code, e.full_name, e.email, e.department, e.capability, e.band,
			e.team, e.pathway, e.delivery_unit, e.line_manager_id, e.capability_lead_id,
			e.joining_date, e.phone_number, e.national_id, e.salary_band, e.base_salary,
			e.performance_rating, e.active, e.created_at, e.updated_at,
			sa.avg_skill_rating
		FROM employees e%s
		WHERE %s
		ORDER BY e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, avgRatingJoin, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department,
			&emp.Capability, &emp.Band, &emp.Team, &emp.Pathway, &emp.DeliveryUnit,
			&emp.LineManagerID, &emp.CapabilityLeadID, &emp.JoiningDate, &emp.PhoneNumber,
			&emp.NationalID, &emp.SalaryBand, &emp.BaseSalary, &emp.PerformanceRating,
			&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.AvgSkillRating,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListByLineManager implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByLineManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return e.listWhere(ctx, "e.line_manager_id = $1 AND e.active = TRUE", managerID)
}

// ListByCapability implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByCapability(ctx context.Context, capability string) ([]employee.Employee, error) {
	return e.listWhere(ctx, "e.capability = $1 AND e.active = TRUE", capability)
}

// ListByDeliveryUnit implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByDeliveryUnit(ctx context.Context, deliveryUnit string) ([]employee.Employee, error) {
	return e.listWhere(ctx, "e.delivery_unit = $1 AND e.active = TRUE", deliveryUnit)
}

func (e *employeeRepositoryImpl) listWhere(ctx context.Context, condition string, arg interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT e.id, e.employee_code, e.full_name, e.email, e.department, e.capability, e.band,
			e.team, e.pathway, e.delivery_unit, e.line_manager_id, e.capability_lead_id,
			e.joining_date, e.phone_number, e.national_id, e.salary_band, e.base_salary,
			e.performance_rating, e.active, e.created_at, e.updated_at,
			sa.avg_skill_rating
		FROM employees e%s
		WHERE %s
		ORDER BY e.full_name ASC
	`, avgRatingJoin, condition)

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.Department,
			&emp.Capability, &emp.Band, &emp.Team, &emp.Pathway, &emp.DeliveryUnit,
			&emp.LineManagerID, &emp.CapabilityLeadID, &emp.JoiningDate, &emp.PhoneNumber,
			&emp.NationalID, &emp.SalaryBand, &emp.BaseSalary, &emp.PerformanceRating,
			&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
			&emp.AvgSkillRating,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// AssignPathway implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) AssignPathway(ctx context.Context, id string, pathway string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET pathway = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, pathway, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to assign pathway for employee with id %s: %w", id, err)
	}
	return nil
}

// UpsertByCode implements employee.EmployeeRepository. Band and pathway
// are written on insert only so that movements applied locally survive
// the next sync.
func (e *employeeRepositoryImpl) UpsertByCode(ctx context.Context, emp employee.Employee) (employee.Employee, bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, email, department, capability, band,
			team, pathway, delivery_unit, line_manager_id, joining_date, active
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (employee_code) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			department = EXCLUDED.department,
			capability = EXCLUDED.capability,
			team = EXCLUDED.team,
			delivery_unit = EXCLUDED.delivery_unit,
			line_manager_id = EXCLUDED.line_manager_id,
			joining_date = EXCLUDED.joining_date,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id, employee_code, full_name, email, department, capability, band,
			team, pathway, delivery_unit, line_manager_id, capability_lead_id,
			joining_date, phone_number, national_id, salary_band, base_salary,
			performance_rating, active, created_at, updated_at,
			(xmax = 0) AS inserted
	`

	var upserted employee.Employee
	var inserted bool
	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.Department, emp.Capability,
		emp.Band, emp.Team, emp.Pathway, emp.DeliveryUnit, emp.LineManagerID,
		emp.JoiningDate, emp.Active,
	).Scan(
		&upserted.ID, &upserted.EmployeeCode, &upserted.FullName, &upserted.Email, &upserted.Department,
		&upserted.Capability, &upserted.Band, &upserted.Team, &upserted.Pathway, &upserted.DeliveryUnit,
		&upserted.LineManagerID, &upserted.CapabilityLeadID, &upserted.JoiningDate, &upserted.PhoneNumber,
		&upserted.NationalID, &upserted.SalaryBand, &upserted.BaseSalary, &upserted.PerformanceRating,
		&upserted.Active, &upserted.CreatedAt, &upserted.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return employee.Employee{}, false, fmt.Errorf("failed to upsert employee %s: %w", emp.EmployeeCode, err)
	}

	return upserted, inserted, nil
}
