package skill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/proficiency"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	accessservice "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
)

// historyLimit bounds how many history rows one listing returns, most
// recent first.
const historyLimit = 100

type SkillServiceImpl struct {
	db             *database.DB
	skillRepo      skill.SkillRepository
	assessmentRepo skill.AssessmentRepository
	employeeRepo   employee.EmployeeRepository
	engine         accessservice.Engine
	auditService   audit.Service
	cache          *cache.Cache
}

func NewSkillService(
	db *database.DB,
	skillRepo skill.SkillRepository,
	assessmentRepo skill.AssessmentRepository,
	employeeRepo employee.EmployeeRepository,
	engine accessservice.Engine,
	auditService audit.Service,
	cacheClient *cache.Cache,
) skill.SkillService {
	return &SkillServiceImpl{
		db:             db,
		skillRepo:      skillRepo,
		assessmentRepo: assessmentRepo,
		employeeRepo:   employeeRepo,
		engine:         engine,
		auditService:   auditService,
		cache:          cacheClient,
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

// CreateSkill implements skill.SkillService.
func (s *SkillServiceImpl) CreateSkill(ctx context.Context, req skill.CreateSkillRequest) (skill.SkillResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return skill.SkillResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillManage) {
		return skill.SkillResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return skill.SkillResponse{}, err
	}

	created, err := s.skillRepo.CreateSkill(ctx, skill.Skill{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return skill.SkillResponse{}, skill.ErrSkillNameExists
			}
		}
		return skill.SkillResponse{}, fmt.Errorf("failed to create skill: %w", err)
	}

	return created.ToResponse(), nil
}

// ListSkills implements skill.SkillService.
func (s *SkillServiceImpl) ListSkills(ctx context.Context, category string) ([]skill.SkillResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillView) {
		return nil, user.ErrInsufficientPermissions
	}

	skills, err := s.skillRepo.ListSkills(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	responses := make([]skill.SkillResponse, 0, len(skills))
	for _, found := range skills {
		responses = append(responses, found.ToResponse())
	}
	return responses, nil
}

// CreatePathway implements skill.SkillService.
func (s *SkillServiceImpl) CreatePathway(ctx context.Context, req skill.CreatePathwayRequest) (skill.PathwayResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return skill.PathwayResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillManage) {
		return skill.PathwayResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return skill.PathwayResponse{}, err
	}

	created, err := s.skillRepo.CreatePathway(ctx, skill.Pathway{Name: req.Name})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return skill.PathwayResponse{}, skill.ErrPathwayNameExists
			}
		}
		return skill.PathwayResponse{}, fmt.Errorf("failed to create pathway: %w", err)
	}

	return created.ToResponse(), nil
}

// ListPathways implements skill.SkillService.
func (s *SkillServiceImpl) ListPathways(ctx context.Context) ([]skill.PathwayResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillView) {
		return nil, user.ErrInsufficientPermissions
	}

	pathways, err := s.skillRepo.ListPathways(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathways: %w", err)
	}

	responses := make([]skill.PathwayResponse, 0, len(pathways))
	for _, found := range pathways {
		responses = append(responses, found.ToResponse())
	}
	return responses, nil
}

// TagSkill implements skill.SkillService.
func (s *SkillServiceImpl) TagSkill(ctx context.Context, skillID, pathwayID string) error {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillManage) {
		return user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(skillID) {
		return skill.ErrSkillNotFound
	}
	if !validator.IsValidUUID(pathwayID) {
		return skill.ErrPathwayNotFound
	}

	if _, err := s.skillRepo.GetSkillByID(ctx, skillID); err != nil {
		if errors.Is(err, skill.ErrSkillNotFound) {
			return skill.ErrSkillNotFound
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}
	if _, err := s.skillRepo.GetPathwayByID(ctx, pathwayID); err != nil {
		if errors.Is(err, skill.ErrPathwayNotFound) {
			return skill.ErrPathwayNotFound
		}
		return fmt.Errorf("failed to get pathway: %w", err)
	}

	if err := s.skillRepo.TagSkillToPathway(ctx, skillID, pathwayID); err != nil {
		if errors.Is(err, skill.ErrSkillAlreadyTagged) {
			return skill.ErrSkillAlreadyTagged
		}
		return fmt.Errorf("failed to tag skill to pathway: %w", err)
	}
	return nil
}

// SetRequirement implements skill.SkillService.
func (s *SkillServiceImpl) SetRequirement(ctx context.Context, req skill.SetRequirementRequest) error {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(viewer.Role, user.PermissionSkillManage) {
		return user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if !validator.IsValidUUID(req.SkillID) {
		return skill.ErrSkillNotFound
	}

	if _, err := s.skillRepo.GetSkillByID(ctx, req.SkillID); err != nil {
		if errors.Is(err, skill.ErrSkillNotFound) {
			return skill.ErrSkillNotFound
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}

	if err := s.skillRepo.UpsertRequirement(ctx, skill.BandRequirement{
		Band:          employee.Band(req.Band),
		SkillID:       req.SkillID,
		RequiredLevel: proficiency.Level(req.RequiredLevel),
	}); err != nil {
		return fmt.Errorf("failed to set band requirement: %w", err)
	}
	return nil
}

// Assess implements skill.SkillService. Anything the caller sends as a
// level is parsed tolerantly; authority is not.
func (s *SkillServiceImpl) Assess(ctx context.Context, employeeID, skillID string, req skill.AssessRequest) (skill.AssessmentResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return skill.AssessmentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return skill.AssessmentResponse{}, err
	}
	if !validator.IsValidUUID(employeeID) {
		return skill.AssessmentResponse{}, employee.ErrEmployeeNotFound
	}
	if !validator.IsValidUUID(skillID) {
		return skill.AssessmentResponse{}, skill.ErrSkillNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return skill.AssessmentResponse{}, employee.ErrEmployeeNotFound
		}
		return skill.AssessmentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	assessed, err := s.skillRepo.GetSkillByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, skill.ErrSkillNotFound) {
			return skill.AssessmentResponse{}, skill.ErrSkillNotFound
		}
		return skill.AssessmentResponse{}, fmt.Errorf("failed to get skill: %w", err)
	}

	assessmentType := skill.AssessmentTypeManager
	if viewer.EmployeeID != nil && *viewer.EmployeeID == target.ID {
		if !user.HasPermission(viewer.Role, user.PermissionSkillAssessSelf) {
			return skill.AssessmentResponse{}, user.ErrInsufficientPermissions
		}
		assessmentType = skill.AssessmentTypeSelf
	} else {
		if !user.HasPermission(viewer.Role, user.PermissionSkillAssess) {
			return skill.AssessmentResponse{}, user.ErrInsufficientPermissions
		}
		if err := s.engine.CanAssess(ctx, viewer, target); err != nil {
			return skill.AssessmentResponse{}, err
		}
	}

	level := proficiency.Parse(req.Level)

	var current skill.SkillAssessment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var previous *proficiency.Level
		prev, err := s.assessmentRepo.GetCurrent(txCtx, target.ID, assessed.ID)
		if err == nil {
			previous = &prev.Level
		} else if !errors.Is(err, skill.ErrAssessmentNotFound) {
			return err
		}

		if err := s.assessmentRepo.AppendHistory(txCtx, skill.AssessmentHistory{
			EmployeeID:    target.ID,
			SkillID:       assessed.ID,
			PreviousLevel: previous,
			NewLevel:      level,
			AssessorID:    &viewer.ID,
			AssessorRole:  string(viewer.Role),
			Type:          assessmentType,
		}); err != nil {
			return err
		}

		current, err = s.assessmentRepo.Upsert(txCtx, skill.SkillAssessment{
			EmployeeID:   target.ID,
			SkillID:      assessed.ID,
			Level:        level,
			AssessorID:   &viewer.ID,
			AssessorRole: string(viewer.Role),
			Type:         assessmentType,
		})
		if err != nil {
			return err
		}

		return s.auditService.Record(txCtx, audit.Entry{
			UserID:         viewer.ID,
			Action:         strings.ToLower(string(access.ActionAssess)),
			TargetType:     audit.TargetTypeAssessment,
			TargetID:       target.ID,
			FieldsAccessed: []string{access.FieldSkillRating},
			IPAddress:      audit.IPFromContext(ctx),
		})
	})
	if err != nil {
		return skill.AssessmentResponse{}, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}

	current.SkillName = assessed.Name
	current.SkillCategory = assessed.Category
	return current.ToResponse(), nil
}

// ListAssessments implements skill.SkillService.
func (s *SkillServiceImpl) ListAssessments(ctx context.Context, employeeID string) ([]skill.AssessmentResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
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
	if !decision.VisibleSet()[access.FieldSkillRating] {
		return nil, access.ErrNoAuthorityRelationship
	}

	assessments, err := s.assessmentRepo.ListByEmployee(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]skill.AssessmentResponse, 0, len(assessments))
	for _, found := range assessments {
		responses = append(responses, found.ToResponse())
	}
	return responses, nil
}

// ListHistory implements skill.SkillService.
func (s *SkillServiceImpl) ListHistory(ctx context.Context, employeeID, skillID string) ([]skill.HistoryResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	if !validator.IsValidUUID(skillID) {
		return nil, skill.ErrSkillNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.skillRepo.GetSkillByID(ctx, skillID); err != nil {
		if errors.Is(err, skill.ErrSkillNotFound) {
			return nil, skill.ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	decision, err := s.engine.Decide(ctx, viewer, target, access.ActionView)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return nil, access.Denied(decision)
	}
	if !decision.VisibleSet()[access.FieldSkillRating] {
		return nil, access.ErrNoAuthorityRelationship
	}

	history, err := s.assessmentRepo.ListHistory(ctx, target.ID, skillID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment history: %w", err)
	}

	responses := make([]skill.HistoryResponse, 0, len(history))
	for _, found := range history {
		responses = append(responses, found.ToResponse())
	}
	return responses, nil
}

// AssignPathway implements skill.SkillService. Capability partners only
// reach employees inside their own capability; admin and HR reach anyone.
func (s *SkillServiceImpl) AssignPathway(ctx context.Context, employeeID string, req skill.AssignPathwayRequest) (skill.BaselineResult, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return skill.BaselineResult{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionPathwayAssign) {
		return skill.BaselineResult{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return skill.BaselineResult{}, err
	}
	if !validator.IsValidUUID(employeeID) {
		return skill.BaselineResult{}, employee.ErrEmployeeNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return skill.BaselineResult{}, employee.ErrEmployeeNotFound
		}
		return skill.BaselineResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if viewer.Role == user.RoleCapabilityPartner {
		if viewer.EmployeeID == nil || *viewer.EmployeeID == "" {
			return skill.BaselineResult{}, access.ErrViewerNotLinked
		}
		viewerEmp, err := s.employeeRepo.GetByID(ctx, *viewer.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return skill.BaselineResult{}, access.ErrViewerNotLinked
			}
			return skill.BaselineResult{}, fmt.Errorf("failed to get viewer employee: %w", err)
		}
		if viewerEmp.Capability == "" || viewerEmp.Capability != target.Capability {
			return skill.BaselineResult{}, access.ErrNoAuthorityRelationship
		}
	}

	pathway, err := s.skillRepo.GetPathwayByName(ctx, req.Pathway)
	if err != nil {
		if errors.Is(err, skill.ErrPathwayNotFound) {
			return skill.BaselineResult{}, skill.ErrPathwayNotFound
		}
		return skill.BaselineResult{}, fmt.Errorf("failed to get pathway: %w", err)
	}

	var result skill.BaselineResult
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.AssignPathway(txCtx, target.ID, pathway.Name); err != nil {
			return err
		}

		result, err = s.assignBaseline(txCtx, target, pathway, req.SkipExisting)
		if err != nil {
			return err
		}

		return s.auditService.Record(txCtx, audit.Entry{
			UserID:         viewer.ID,
			Action:         "pathway_assign",
			TargetType:     audit.TargetTypeEmployee,
			TargetID:       target.ID,
			FieldsAccessed: []string{access.FieldPathway},
			IPAddress:      audit.IPFromContext(ctx),
		})
	})
	if err != nil {
		return skill.BaselineResult{}, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}

	return result, nil
}

// AssignBaseline implements skill.SkillService. Runs inside the caller's
// transaction when the context carries one.
func (s *SkillServiceImpl) AssignBaseline(ctx context.Context, emp employee.Employee, pathwayName string, skipExisting bool) (skill.BaselineResult, error) {
	pathway, err := s.skillRepo.GetPathwayByName(ctx, pathwayName)
	if err != nil {
		if errors.Is(err, skill.ErrPathwayNotFound) {
			return skill.BaselineResult{}, skill.ErrPathwayNotFound
		}
		return skill.BaselineResult{}, fmt.Errorf("failed to get pathway: %w", err)
	}
	return s.assignBaseline(ctx, emp, pathway, skipExisting)
}

// assignBaseline writes one SYSTEM baseline assessment per skill tagged to
// the pathway, at the level the employee's band maps to. History first,
// current row second, per skill.
func (s *SkillServiceImpl) assignBaseline(ctx context.Context, emp employee.Employee, pathway skill.Pathway, skipExisting bool) (skill.BaselineResult, error) {
	tagged, err := s.skillRepo.ListSkillsByPathway(ctx, pathway.ID)
	if err != nil {
		return skill.BaselineResult{}, fmt.Errorf("failed to list pathway skills: %w", err)
	}

	level := skill.BaselineLevel(emp.Band)
	result := skill.BaselineResult{Pathway: pathway.Name}

	for _, taggedSkill := range tagged {
		var previous *proficiency.Level
		prev, err := s.assessmentRepo.GetCurrent(ctx, emp.ID, taggedSkill.ID)
		if err == nil {
			if skipExisting {
				result.Skipped++
				continue
			}
			previous = &prev.Level
		} else if !errors.Is(err, skill.ErrAssessmentNotFound) {
			return skill.BaselineResult{}, err
		}

		if err := s.assessmentRepo.AppendHistory(ctx, skill.AssessmentHistory{
			EmployeeID:    emp.ID,
			SkillID:       taggedSkill.ID,
			PreviousLevel: previous,
			NewLevel:      level,
			AssessorRole:  skill.SystemAssessorRole,
			Type:          skill.AssessmentTypeBaseline,
		}); err != nil {
			return skill.BaselineResult{}, err
		}

		if _, err := s.assessmentRepo.Upsert(ctx, skill.SkillAssessment{
			EmployeeID:   emp.ID,
			SkillID:      taggedSkill.ID,
			Level:        level,
			AssessorRole: skill.SystemAssessorRole,
			Type:         skill.AssessmentTypeBaseline,
		}); err != nil {
			return skill.BaselineResult{}, err
		}
		result.AssessmentsCreated++
	}

	return result, nil
}

// Readiness implements skill.SkillService.
func (s *SkillServiceImpl) Readiness(ctx context.Context, employeeID string, targetBand string) (skill.ReadinessResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return skill.ReadinessResponse{}, err
	}

	band := employee.Band(targetBand)
	if !employee.IsValidBand(band) {
		return skill.ReadinessResponse{}, validator.ValidationErrors{{
			Field:   "band",
			Message: "band must be one of A, B, C, L1, L2",
		}}
	}
	if !validator.IsValidUUID(employeeID) {
		return skill.ReadinessResponse{}, employee.ErrEmployeeNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return skill.ReadinessResponse{}, employee.ErrEmployeeNotFound
		}
		return skill.ReadinessResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	decision, err := s.engine.Decide(ctx, viewer, target, access.ActionView)
	if err != nil {
		return skill.ReadinessResponse{}, fmt.Errorf("failed to evaluate access: %w", err)
	}
	if !decision.Allowed {
		return skill.ReadinessResponse{}, access.Denied(decision)
	}

	resp := skill.ReadinessResponse{
		EmployeeID: target.ID,
		TargetBand: string(band),
		Gaps:       []skill.SkillGap{},
	}

	if target.Band.AtCeiling() {
		resp.Score = 100
		return resp, nil
	}

	requirements, err := s.skillRepo.ListRequirementsByBand(ctx, band)
	if err != nil {
		return skill.ReadinessResponse{}, fmt.Errorf("failed to list band requirements: %w", err)
	}
	if len(requirements) == 0 {
		resp.Score = 100
		return resp, nil
	}

	assessments, err := s.assessmentRepo.ListByEmployee(ctx, target.ID)
	if err != nil {
		return skill.ReadinessResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}
	levels := make(map[string]proficiency.Level, len(assessments))
	for _, a := range assessments {
		levels[a.SkillID] = a.Level
	}

	resp.TotalRequired = len(requirements)
	for _, requirement := range requirements {
		actual, ok := levels[requirement.SkillID]
		if !ok {
			actual = proficiency.LevelBeginner
		}
		if proficiency.MeetsRequirement(actual, requirement.RequiredLevel) {
			resp.MetCount++
			continue
		}
		resp.Gaps = append(resp.Gaps, skill.SkillGap{
			SkillID:       requirement.SkillID,
			SkillName:     requirement.SkillName,
			RequiredLevel: string(requirement.RequiredLevel),
			CurrentLevel:  string(actual),
			Gap:           proficiency.Gap(actual, requirement.RequiredLevel),
		})
	}

	score := float64(resp.MetCount) / float64(resp.TotalRequired) * 100
	resp.Score = math.Round(score*10) / 10
	return resp, nil
}
