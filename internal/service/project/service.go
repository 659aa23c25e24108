package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
	accessservice "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
)

type AssignmentServiceImpl struct {
	assignmentRepo project.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
	engine         accessservice.Engine
	auditService   audit.Service
}

func NewAssignmentService(
	assignmentRepo project.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	engine accessservice.Engine,
	auditService audit.Service,
) project.AssignmentService {
	return &AssignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		engine:         engine,
		auditService:   auditService,
	}
}

// viewerFromContext rebuilds the caller principal from the token claims.
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

// CreateAssignment implements project.AssignmentService. Assigning a
// supervisor grants them record access to the employee, so the write
// lands in the audit trail.
func (s *AssignmentServiceImpl) CreateAssignment(ctx context.Context, req project.CreateAssignmentRequest) (project.AssignmentResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return project.AssignmentResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionProjectManage) {
		return project.AssignmentResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return project.AssignmentResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return project.AssignmentResponse{}, employee.ErrEmployeeNotFound
	}
	if !validator.IsValidUUID(req.SupervisorID) {
		return project.AssignmentResponse{}, project.ErrSupervisorNotFound
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return project.AssignmentResponse{}, employee.ErrEmployeeNotFound
		}
		return project.AssignmentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.SupervisorID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return project.AssignmentResponse{}, project.ErrSupervisorNotFound
		}
		return project.AssignmentResponse{}, fmt.Errorf("failed to get supervisor: %w", err)
	}

	created, err := s.assignmentRepo.Create(ctx, project.Assignment{
		EmployeeID:   req.EmployeeID,
		ProjectCode:  req.ProjectCode,
		ProjectName:  req.ProjectName,
		SupervisorID: req.SupervisorID,
		Active:       true,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return project.AssignmentResponse{}, project.ErrAssignmentExists
			}
		}
		return project.AssignmentResponse{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	if err := s.auditService.Record(ctx, audit.Entry{
		UserID:     viewer.ID,
		Action:     "create",
		TargetType: audit.TargetTypeAssignment,
		TargetID:   created.ID,
		IPAddress:  audit.IPFromContext(ctx),
	}); err != nil {
		return project.AssignmentResponse{}, err
	}

	return created.ToResponse(), nil
}

// ListAssignments implements project.AssignmentService. An employee
// filter takes precedence over a supervisor filter; with neither, the
// caller sees the assignments they are on or supervising.
func (s *AssignmentServiceImpl) ListAssignments(ctx context.Context, employeeID, supervisorID string) ([]project.AssignmentResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var assignments []project.Assignment
	switch {
	case employeeID != "":
		assignments, err = s.listForEmployee(ctx, viewer, employeeID)
	case supervisorID != "":
		assignments, err = s.listForSupervisor(ctx, viewer, supervisorID)
	default:
		assignments, err = s.listOwn(ctx, viewer)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]project.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, a.ToResponse())
	}
	return responses, nil
}

func (s *AssignmentServiceImpl) listForEmployee(ctx context.Context, viewer user.User, employeeID string) ([]project.Assignment, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	decision, err := s.engine.Decide(ctx, viewer, target, access.ActionView)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return nil, access.Denied(decision)
	}

	assignments, err := s.assignmentRepo.ListByEmployee(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentServiceImpl) listForSupervisor(ctx context.Context, viewer user.User, supervisorID string) ([]project.Assignment, error) {
	if !validator.IsValidUUID(supervisorID) {
		return nil, project.ErrSupervisorNotFound
	}
	if !viewer.CanSeeEveryone() {
		if viewer.EmployeeID == nil || *viewer.EmployeeID != supervisorID {
			return nil, user.ErrInsufficientPermissions
		}
	}

	assignments, err := s.assignmentRepo.ListBySupervisor(ctx, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentServiceImpl) listOwn(ctx context.Context, viewer user.User) ([]project.Assignment, error) {
	if viewer.EmployeeID == nil || *viewer.EmployeeID == "" {
		return nil, access.ErrViewerNotLinked
	}

	own, err := s.assignmentRepo.ListByEmployee(ctx, *viewer.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	supervised, err := s.assignmentRepo.ListBySupervisor(ctx, *viewer.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervised assignments: %w", err)
	}

	seen := make(map[string]bool, len(own))
	for _, a := range own {
		seen[a.ID] = true
	}
	for _, a := range supervised {
		if !seen[a.ID] {
			own = append(own, a)
			seen[a.ID] = true
		}
	}
	return own, nil
}

// EndAssignment implements project.AssignmentService.
func (s *AssignmentServiceImpl) EndAssignment(ctx context.Context, id string) error {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(viewer.Role, user.PermissionProjectManage) {
		return user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return project.ErrAssignmentNotFound
	}

	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, project.ErrAssignmentNotFound) {
			return project.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.assignmentRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, project.ErrAssignmentNotFound) {
			return project.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to end assignment: %w", err)
	}

	return s.auditService.Record(ctx, audit.Entry{
		UserID:     viewer.ID,
		Action:     "deactivate",
		TargetType: audit.TargetTypeAssignment,
		TargetID:   id,
		IPAddress:  audit.IPFromContext(ctx),
	})
}
