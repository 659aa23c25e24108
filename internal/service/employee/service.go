package employee

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	accessservice "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
)

// exportBatchLimit bounds how many rows one export walks. Exports ignore
// the list pagination cap.
const exportBatchLimit = 10000

// importColumns are the required CSV columns of a bulk import. Optional
// columns: team, pathway, phone_number, line_manager_code.
var importColumns = []string{
	"employee_code", "full_name", "email", "department",
	"capability", "band", "delivery_unit", "joining_date",
}

type EmployeeServiceImpl struct {
	db            *database.DB
	employeeRepo  employee.EmployeeRepository
	userRepo      user.UserRepository
	refreshTokens postgresql.RefreshTokenRepository
	engine        accessservice.Engine
	auditService  audit.Service
	cache         *cache.Cache
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	refreshTokens postgresql.RefreshTokenRepository,
	engine accessservice.Engine,
	auditService audit.Service,
	cacheClient *cache.Cache,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:            db,
		employeeRepo:  employeeRepo,
		userRepo:      userRepo,
		refreshTokens: refreshTokens,
		engine:        engine,
		auditService:  auditService,
		cache:         cacheClient,
	}
}

// viewerFromContext rebuilds the caller principal from the token claims.
// No user lookup happens here; the decision engine loads the employee
// record itself when a relationship check needs it.
func viewerFromContext(ctx context.Context) (user.User, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.User{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	viewer := user.User{ID: userID, Role: user.Role(roleStr), Active: true}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		viewer.EmployeeID = &employeeID
	}
	return viewer, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (map[string]any, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(id) {
		return nil, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	decision, err := s.engine.Decide(ctx, viewer, emp, access.ActionView)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return nil, access.Denied(decision)
	}

	if err := s.auditService.RecordDecision(ctx, viewer.ID, decision, access.ActionView, audit.TargetTypeEmployee, emp.ID, audit.IPFromContext(ctx)); err != nil {
		return nil, err
	}

	return emp.Masked(decision.VisibleSet()), nil
}

// GetOwnProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetOwnProfile(ctx context.Context) (map[string]any, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if viewer.EmployeeID == nil {
		return nil, access.ErrViewerNotLinked
	}

	emp, err := s.employeeRepo.GetByID(ctx, *viewer.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	decision, err := s.engine.Decide(ctx, viewer, emp, access.ActionView)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return nil, access.Denied(decision)
	}

	if err := s.auditService.RecordDecision(ctx, viewer.ID, decision, access.ActionView, audit.TargetTypeEmployee, emp.ID, audit.IPFromContext(ctx)); err != nil {
		return nil, err
	}

	return emp.Masked(decision.VisibleSet()), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (map[string]any, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionEmployeeManage) {
		return nil, user.ErrInsufficientPermissions
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Check if employee code already exists
	exists, err := s.employeeRepo.ExistsByCode(ctx, req.EmployeeCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee code existence: %w", err)
	}
	if exists {
		return nil, employee.ErrEmployeeCodeExists
	}

	joiningDate, _ := validator.IsValidDate(req.JoiningDate)
	if joiningDate.After(time.Now()) {
		return nil, employee.ErrFutureJoiningDate
	}

	var lineManagerID *string
	if req.LineManagerID != nil && *req.LineManagerID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, *req.LineManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, employee.ErrManagerNotFound
			}
			return nil, fmt.Errorf("failed to resolve line manager: %w", err)
		}
		lineManagerID = req.LineManagerID
	}

	newEmp := employee.Employee{
		EmployeeCode:  req.EmployeeCode,
		FullName:      req.FullName,
		Email:         req.Email,
		Department:    req.Department,
		Capability:    req.Capability,
		Band:          employee.Band(req.Band),
		Team:          req.Team,
		Pathway:       req.Pathway,
		DeliveryUnit:  req.DeliveryUnit,
		LineManagerID: lineManagerID,
		JoiningDate:   joiningDate,
		PhoneNumber:   req.PhoneNumber,
		NationalID:    req.NationalID,
		SalaryBand:    req.SalaryBand,
		Active:        true,
	}
	if req.BaseSalary != nil {
		amount, _ := decimal.NewFromString(*req.BaseSalary)
		newEmp.BaseSalary = &amount
	}

	created, err := s.employeeRepo.Create(ctx, newEmp)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	if err := s.auditService.Record(ctx, audit.Entry{
		UserID:         viewer.ID,
		Action:         "create",
		TargetType:     audit.TargetTypeEmployee,
		TargetID:       created.ID,
		FieldsAccessed: sensitiveCreateFields(req),
		IPAddress:      audit.IPFromContext(ctx),
	}); err != nil {
		return nil, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}

	return created.ResponseMap(), nil
}

// sensitiveCreateFields lists the audit-triggering fields a create request
// carries, for the fields_accessed column of the create entry.
func sensitiveCreateFields(req employee.CreateEmployeeRequest) []string {
	var fields []string
	if req.NationalID != nil {
		fields = append(fields, access.FieldNationalID)
	}
	if req.SalaryBand != nil {
		fields = append(fields, access.FieldSalaryBand)
	}
	if req.BaseSalary != nil {
		fields = append(fields, access.FieldBaseSalary)
	}
	return fields
}

// UpdateEmployee implements employee.EmployeeService. Holders of
// employee.manage edit everything here; everyone else may only touch
// their own contact details. Band and pathway have no write path in this
// request at all.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (map[string]any, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(id) {
		return nil, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if !user.HasPermission(viewer.Role, user.PermissionEmployeeManage) {
		isSelf := viewer.EmployeeID != nil && *viewer.EmployeeID == id
		if !isSelf || !user.HasPermission(viewer.Role, user.PermissionEditOwnProfile) {
			return nil, user.ErrInsufficientPermissions
		}
		if touchesRestrictedFields(req) {
			return nil, user.ErrInsufficientPermissions
		}
	}

	if req.LineManagerID != nil && *req.LineManagerID != "" {
		if *req.LineManagerID == id {
			return nil, employee.ErrSelfManager
		}
		if err := s.ensureNoManagerCycle(ctx, id, *req.LineManagerID); err != nil {
			return nil, err
		}
	}

	decision, err := s.engine.Decide(ctx, viewer, emp, access.ActionUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return nil, access.Denied(decision)
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Update(txCtx, id, req); err != nil {
			return err
		}

		updated, err = s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to reload employee: %w", err)
		}

		return s.auditService.RecordDecision(txCtx, viewer.ID, decision, access.ActionUpdate, audit.TargetTypeEmployee, id, audit.IPFromContext(ctx))
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}

	return updated.Masked(decision.VisibleSet()), nil
}

// touchesRestrictedFields reports whether the update goes beyond the
// self-service surface. Self-service edits are limited to contact details.
func touchesRestrictedFields(req employee.UpdateEmployeeRequest) bool {
	return req.FullName != nil || req.Email != nil || req.Department != nil ||
		req.Capability != nil || req.Team != nil || req.DeliveryUnit != nil ||
		req.LineManagerID != nil || req.CapabilityLeadID != nil || req.JoiningDate != nil ||
		req.NationalID != nil || req.SalaryBand != nil || req.BaseSalary != nil ||
		req.PerformanceRating != nil
}

// ensureNoManagerCycle walks the proposed manager's chain upward and
// rejects the assignment when it leads back to the employee. The visited
// set guards against pre-existing loops upstream.
func (s *EmployeeServiceImpl) ensureNoManagerCycle(ctx context.Context, employeeID, managerID string) error {
	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrManagerNotFound
		}
		return fmt.Errorf("failed to resolve line manager: %w", err)
	}

	visited := map[string]bool{}
	for {
		if manager.ID == employeeID {
			return employee.ErrManagerCycle
		}
		if visited[manager.ID] {
			return nil
		}
		visited[manager.ID] = true

		if manager.LineManagerID == nil {
			return nil
		}
		next, err := s.employeeRepo.GetByID(ctx, *manager.LineManagerID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk manager chain: %w", err)
		}
		manager = next
	}
}

// DeactivateEmployee implements employee.EmployeeService. The linked
// account is deactivated and its sessions revoked in the same
// transaction.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(viewer.Role, user.PermissionEmployeeManage) {
		return user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return employee.ErrEmployeeAlreadyInactive
	}
	if viewer.EmployeeID != nil && *viewer.EmployeeID == id {
		return employee.ErrCannotDeactivateSelf
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Deactivate(txCtx, id); err != nil {
			return err
		}

		linked, err := s.userRepo.GetByEmployeeID(txCtx, id)
		if err == nil {
			if err := s.userRepo.Deactivate(txCtx, linked.ID); err != nil {
				return fmt.Errorf("failed to deactivate linked account: %w", err)
			}
			if err := s.refreshTokens.RevokeAllForUser(txCtx, linked.ID); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to look up linked account: %w", err)
		}

		return s.auditService.Record(txCtx, audit.Entry{
			UserID:         viewer.ID,
			Action:         "deactivate",
			TargetType:     audit.TargetTypeEmployee,
			TargetID:       id,
			FieldsAccessed: []string{access.FieldActive},
			IPAddress:      audit.IPFromContext(ctx),
		})
	})
	if err != nil {
		return err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}
	return nil
}

// ListEmployees implements employee.EmployeeService. Full-roster listing
// needs employee.view_all; everyone else sees the population their
// standing relationships cover, one masked row per employee. A single
// aggregated audit entry covers the whole page.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	var (
		rows  []employee.Employee
		total int64
	)
	if user.HasPermission(viewer.Role, user.PermissionEmployeeViewAll) {
		rows, total, err = s.employeeRepo.List(ctx, filter)
		if err != nil {
			return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
	} else {
		population, err := s.scopedPopulation(ctx, viewer)
		if err != nil {
			return employee.ListEmployeesResponse{}, err
		}
		total = int64(len(population))
		rows = paginate(population, filter.Page, filter.Limit)
	}

	sensitive := map[string]bool{}
	payloads := make([]map[string]any, 0, len(rows))
	for _, emp := range rows {
		decision, err := s.engine.Decide(ctx, viewer, emp, access.ActionList)
		if err != nil {
			return employee.ListEmployeesResponse{}, fmt.Errorf("failed to evaluate access: %w", err)
		}
		if !decision.Allowed {
			continue
		}
		for _, field := range decision.SensitiveFields() {
			sensitive[field] = true
		}
		payloads = append(payloads, emp.Masked(decision.VisibleSet()))
	}

	if len(sensitive) > 0 {
		fields := make([]string, 0, len(sensitive))
		for field := range sensitive {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		if err := s.auditService.Record(ctx, audit.Entry{
			UserID:         viewer.ID,
			Action:         strings.ToLower(string(access.ActionList)),
			TargetType:     audit.TargetTypeEmployee,
			TargetID:       "all",
			FieldsAccessed: fields,
			IPAddress:      audit.IPFromContext(ctx),
		}); err != nil {
			return employee.ListEmployeesResponse{}, err
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  payloads,
	}, nil
}

// scopedPopulation returns the roster slice the caller has standing
// relationships with. Project supervision grants record-level access but
// does not widen the roster.
func (s *EmployeeServiceImpl) scopedPopulation(ctx context.Context, viewer user.User) ([]employee.Employee, error) {
	if viewer.EmployeeID == nil {
		return nil, access.ErrViewerNotLinked
	}
	viewerEmp, err := s.employeeRepo.GetByID(ctx, *viewer.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, access.ErrViewerNotLinked
		}
		return nil, fmt.Errorf("failed to get viewer employee record: %w", err)
	}

	switch viewer.Role {
	case user.RoleLineManager:
		reports, err := s.employeeRepo.ListByLineManager(ctx, viewerEmp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list direct reports: %w", err)
		}
		return append([]employee.Employee{viewerEmp}, reports...), nil
	case user.RoleCapabilityPartner:
		peers, err := s.employeeRepo.ListByCapability(ctx, viewerEmp.Capability)
		if err != nil {
			return nil, fmt.Errorf("failed to list capability: %w", err)
		}
		return peers, nil
	case user.RoleDeliveryManager:
		members, err := s.employeeRepo.ListByDeliveryUnit(ctx, viewerEmp.DeliveryUnit)
		if err != nil {
			return nil, fmt.Errorf("failed to list delivery unit: %w", err)
		}
		return members, nil
	default:
		return []employee.Employee{viewerEmp}, nil
	}
}

func paginate(rows []employee.Employee, page, limit int) []employee.Employee {
	start := (page - 1) * limit
	if start >= len(rows) {
		return nil
	}
	return rows[start:min(start+limit, len(rows))]
}

// ImportEmployees implements employee.EmployeeService. Bad rows are
// collected and reported; the import never aborts at the first failure.
func (s *EmployeeServiceImpl) ImportEmployees(ctx context.Context, r io.Reader) (employee.ImportResult, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return employee.ImportResult{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionEmployeeImport) {
		return employee.ImportResult{}, user.ErrInsufficientPermissions
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return employee.ImportResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, column := range importColumns {
		if _, ok := colIdx[column]; !ok {
			return employee.ImportResult{}, validator.ValidationErrors{validator.ValidationError{
				Field:   column,
				Message: "column is required",
			}}
		}
	}

	result := employee.ImportResult{Errors: []employee.ImportRowError{}}
	line := 1 // header line
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		result.RowsProcessed++
		if err != nil {
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: err.Error()})
			continue
		}

		field := func(name string) string {
			idx, ok := colIdx[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		req := employee.CreateEmployeeRequest{
			EmployeeCode: field("employee_code"),
			FullName:     field("full_name"),
			Email:        field("email"),
			Department:   field("department"),
			Capability:   field("capability"),
			Band:         field("band"),
			Team:         field("team"),
			DeliveryUnit: field("delivery_unit"),
			JoiningDate:  field("joining_date"),
		}
		if pathway := field("pathway"); pathway != "" {
			req.Pathway = &pathway
		}
		if phone := field("phone_number"); phone != "" {
			req.PhoneNumber = &phone
		}

		if err := req.Validate(); err != nil {
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: err.Error()})
			continue
		}

		joiningDate, _ := validator.IsValidDate(req.JoiningDate)
		if joiningDate.After(time.Now()) {
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: employee.ErrFutureJoiningDate.Error()})
			continue
		}

		exists, err := s.employeeRepo.ExistsByCode(ctx, req.EmployeeCode)
		if err != nil {
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: "failed to check employee code"})
			continue
		}
		if exists {
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: employee.ErrEmployeeCodeExists.Error()})
			continue
		}

		var lineManagerID *string
		if managerCode := field("line_manager_code"); managerCode != "" {
			manager, err := s.employeeRepo.GetByEmployeeCode(ctx, managerCode)
			if err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: "unknown line_manager_code"})
				} else {
					result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: "failed to resolve line manager"})
				}
				continue
			}
			lineManagerID = &manager.ID
		}

		newEmp := employee.Employee{
			EmployeeCode:  req.EmployeeCode,
			FullName:      req.FullName,
			Email:         req.Email,
			Department:    req.Department,
			Capability:    req.Capability,
			Band:          employee.Band(req.Band),
			Team:          req.Team,
			Pathway:       req.Pathway,
			DeliveryUnit:  req.DeliveryUnit,
			LineManagerID: lineManagerID,
			JoiningDate:   joiningDate,
			PhoneNumber:   req.PhoneNumber,
			Active:        true,
		}
		if _, err := s.employeeRepo.Create(ctx, newEmp); err != nil {
			slog.Warn("Failed to import employee row", "row", line, "employee_code", req.EmployeeCode, "error", err)
			result.Errors = append(result.Errors, employee.ImportRowError{Row: line, Message: "failed to create employee"})
			continue
		}
		result.Created++
	}

	if err := s.auditService.Record(ctx, audit.Entry{
		UserID:     viewer.ID,
		Action:     "import",
		TargetType: audit.TargetTypeEmployee,
		TargetID:   "all",
		IPAddress:  audit.IPFromContext(ctx),
	}); err != nil {
		return employee.ImportResult{}, err
	}

	if result.Created > 0 {
		if err := s.cache.Bump(ctx); err != nil {
			slog.Warn("Failed to bump cache version", "error", err)
		}
	}
	return result, nil
}

// ExportEmployees implements employee.EmployeeService. Every row passes
// the decision engine and ships masked; the run is always audited as an
// export regardless of which fields were visible.
func (s *EmployeeServiceImpl) ExportEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionExportRun) {
		return nil, user.ErrInsufficientPermissions
	}

	filter.Page = 1
	filter.Limit = exportBatchLimit

	rows, _, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for export: %w", err)
	}

	columns := access.AllFields()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	sensitive := map[string]bool{}
	for _, emp := range rows {
		decision, err := s.engine.Decide(ctx, viewer, emp, access.ActionExport)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate access: %w", err)
		}
		if !decision.Allowed {
			continue
		}
		for _, field := range decision.SensitiveFields() {
			sensitive[field] = true
		}

		payload := emp.Masked(decision.VisibleSet())
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = csvValue(payload[column])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	fields := make([]string, 0, len(sensitive))
	for field := range sensitive {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	if err := s.auditService.Record(ctx, audit.Entry{
		UserID:         viewer.ID,
		Action:         strings.ToLower(string(access.ActionExport)),
		TargetType:     audit.TargetTypeExport,
		TargetID:       "employees",
		FieldsAccessed: fields,
		IPAddress:      audit.IPFromContext(ctx),
	}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func csvValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
