package hrmssync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/auth"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/hrms"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

// defaultPageSize bounds upstream fetches when no page size is configured.
const defaultPageSize = 200

// Counts summarizes one sync pass.
type Counts struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// Summary is the outcome of one sync run. Per-record failures land in
// Errors without stopping the run.
type Summary struct {
	RunID       string   `json:"run_id"`
	Employees   Counts   `json:"employees"`
	Assignments Counts   `json:"assignments"`
	Errors      []string `json:"errors,omitempty"`
}

// Syncer pulls the upstream HRMS roster and assignment list into the
// local store.
type Syncer interface {
	// Run executes a sync pass. Called by the scheduler with no caller
	// identity on the context.
	Run(ctx context.Context) (Summary, error)

	// Trigger runs a pass on behalf of an authenticated caller (hrms.sync)
	Trigger(ctx context.Context) (Summary, error)
}

type SyncerImpl struct {
	client              hrms.Client
	employeeRepo        employee.EmployeeRepository
	assignmentRepo      project.AssignmentRepository
	authService         auth.AuthService
	auditService        audit.Service
	cache               *cache.Cache
	metrics             *metrics.Metrics
	serviceAccountEmail string
	pageSize            int
}

func NewSyncer(
	client hrms.Client,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo project.AssignmentRepository,
	authService auth.AuthService,
	auditService audit.Service,
	cacheClient *cache.Cache,
	m *metrics.Metrics,
	serviceAccountEmail string,
	pageSize int,
) Syncer {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &SyncerImpl{
		client:              client,
		employeeRepo:        employeeRepo,
		assignmentRepo:      assignmentRepo,
		authService:         authService,
		auditService:        auditService,
		cache:               cacheClient,
		metrics:             m,
		serviceAccountEmail: serviceAccountEmail,
		pageSize:            pageSize,
	}
}

// managerLink defers a line manager assignment until every employee of
// the run has been upserted, so forward references resolve.
type managerLink struct {
	employeeCode string
	managerCode  string
}

// Trigger implements Syncer.
func (s *SyncerImpl) Trigger(ctx context.Context) (Summary, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return Summary{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionHRMSSync) {
		return Summary{}, user.ErrInsufficientPermissions
	}
	return s.Run(ctx)
}

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

// Run implements Syncer. Sequential and best-effort: each record stands
// alone, nothing rolls back across records, and the summary reports what
// happened.
func (s *SyncerImpl) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}

	slog.Info("Starting HRMS sync", "run_id", summary.RunID)

	principalID, err := s.authService.EnsureServiceAccount(ctx, s.serviceAccountEmail)
	if err != nil {
		s.metrics.RecordSyncRun("failure")
		return summary, fmt.Errorf("failed to ensure service account: %w", err)
	}

	links := s.syncEmployees(ctx, &summary)
	s.linkManagers(ctx, links, &summary)
	s.syncAssignments(ctx, &summary)

	if err := s.auditService.Record(ctx, audit.Entry{
		UserID:     principalID,
		Action:     "hrms_sync",
		TargetType: audit.TargetTypeEmployee,
		TargetID:   "all",
		IPAddress:  audit.IPFromContext(ctx),
	}); err != nil {
		s.metrics.RecordSyncRun("failure")
		return summary, err
	}

	if summary.Employees.Upserted > 0 || summary.Assignments.Upserted > 0 {
		if err := s.cache.Bump(ctx); err != nil {
			slog.Warn("Failed to bump cache version", "run_id", summary.RunID, "error", err)
		}
	}

	switch {
	case summary.Employees.Fetched == 0 && len(summary.Errors) > 0:
		s.metrics.RecordSyncRun("failure")
	case len(summary.Errors) > 0:
		s.metrics.RecordSyncRun("partial")
	default:
		s.metrics.RecordSyncRun("success")
	}

	slog.Info("HRMS sync finished",
		"run_id", summary.RunID,
		"employees_fetched", summary.Employees.Fetched,
		"employees_upserted", summary.Employees.Upserted,
		"employees_failed", summary.Employees.Failed,
		"assignments_fetched", summary.Assignments.Fetched,
		"assignments_upserted", summary.Assignments.Upserted,
		"assignments_failed", summary.Assignments.Failed,
	)

	return summary, nil
}

// syncEmployees pages through the upstream roster and upserts each record
// by employee code. Manager codes are collected for a second pass.
func (s *SyncerImpl) syncEmployees(ctx context.Context, summary *Summary) []managerLink {
	var links []managerLink

	for page := 1; ; page++ {
		fetched, err := s.client.FetchEmployees(ctx, page, s.pageSize)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("employees page %d: %v", page, err))
			return links
		}

		for _, record := range fetched.Records {
			summary.Employees.Fetched++
			if err := s.upsertEmployee(ctx, record); err != nil {
				summary.Employees.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: %v", record.EmployeeCode, err))
				continue
			}
			summary.Employees.Upserted++
			if record.LineManagerCode != nil && *record.LineManagerCode != "" {
				links = append(links, managerLink{
					employeeCode: record.EmployeeCode,
					managerCode:  *record.LineManagerCode,
				})
			}
		}

		if page >= fetched.TotalPages {
			return links
		}
	}
}

func (s *SyncerImpl) upsertEmployee(ctx context.Context, record hrms.Record) error {
	if record.EmployeeCode == "" {
		return fmt.Errorf("employee_code is empty")
	}
	band := employee.Band(record.Band)
	if !employee.IsValidBand(band) {
		return fmt.Errorf("unknown band %q", record.Band)
	}
	joiningDate, ok := validator.IsValidDate(record.JoiningDate)
	if !ok {
		return fmt.Errorf("invalid joining_date %q", record.JoiningDate)
	}

	_, _, err := s.employeeRepo.UpsertByCode(ctx, employee.Employee{
		EmployeeCode: record.EmployeeCode,
		FullName:     record.FullName,
		Email:        record.Email,
		Department:   record.Department,
		Capability:   record.Capability,
		Band:         band,
		Team:         record.Team,
		DeliveryUnit: record.DeliveryUnit,
		JoiningDate:  joiningDate,
		Active:       record.Active,
	})
	if err != nil {
		return err
	}
	return nil
}

// linkManagers resolves the collected manager codes now that the whole
// roster is present.
func (s *SyncerImpl) linkManagers(ctx context.Context, links []managerLink, summary *Summary) {
	for _, link := range links {
		if link.employeeCode == link.managerCode {
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: is their own line manager", link.employeeCode))
			continue
		}

		emp, err := s.employeeRepo.GetByEmployeeCode(ctx, link.employeeCode)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: %v", link.employeeCode, err))
			continue
		}
		manager, err := s.employeeRepo.GetByEmployeeCode(ctx, link.managerCode)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: unknown line_manager_code %q", link.employeeCode, link.managerCode))
			continue
		}
		if emp.LineManagerID != nil && *emp.LineManagerID == manager.ID {
			continue
		}

		if err := s.employeeRepo.Update(ctx, emp.ID, employee.UpdateEmployeeRequest{
			LineManagerID: &manager.ID,
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("employee %s: failed to link manager: %v", link.employeeCode, err))
		}
	}
}

// syncAssignments pages through the upstream assignment list after the
// roster pass, so employee and supervisor codes resolve locally.
func (s *SyncerImpl) syncAssignments(ctx context.Context, summary *Summary) {
	for page := 1; ; page++ {
		fetched, err := s.client.FetchAssignments(ctx, page, s.pageSize)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("assignments page %d: %v", page, err))
			return
		}

		for _, record := range fetched.Records {
			summary.Assignments.Fetched++
			if err := s.upsertAssignment(ctx, record); err != nil {
				summary.Assignments.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("assignment %s/%s: %v", record.ProjectCode, record.EmployeeCode, err))
				continue
			}
			summary.Assignments.Upserted++
		}

		if page >= fetched.TotalPages {
			return
		}
	}
}

func (s *SyncerImpl) upsertAssignment(ctx context.Context, record hrms.AssignmentRecord) error {
	if record.EmployeeCode == record.SupervisorCode {
		return project.ErrSelfSupervision
	}

	emp, err := s.employeeRepo.GetByEmployeeCode(ctx, record.EmployeeCode)
	if err != nil {
		return fmt.Errorf("unknown employee_code %q", record.EmployeeCode)
	}
	supervisor, err := s.employeeRepo.GetByEmployeeCode(ctx, record.SupervisorCode)
	if err != nil {
		return fmt.Errorf("unknown supervisor_code %q", record.SupervisorCode)
	}

	_, _, err = s.assignmentRepo.UpsertByProjectAndEmployee(ctx, project.Assignment{
		EmployeeID:   emp.ID,
		ProjectCode:  record.ProjectCode,
		ProjectName:  record.ProjectName,
		SupervisorID: supervisor.ID,
		Active:       record.Active,
	})
	if err != nil {
		return err
	}
	return nil
}
