package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
)

// Engine is the single authorization path for employee data. Every read,
// export and assessment authority check goes through it; service accounts
// included, there is no bypass.
type Engine interface {
	// Relationships resolves every authority link the viewer holds over the
	// target, strongest first. An empty slice means none.
	Relationships(ctx context.Context, viewer employee.Employee, target employee.Employee) ([]access.Relationship, error)

	// Decide folds role, relationships and the field catalog into an access
	// decision for (viewer, target, action).
	Decide(ctx context.Context, viewer user.User, target employee.Employee, action access.Action) (access.Decision, error)

	// CanAssess reports whether the viewer holds assessment authority over
	// the target.
	CanAssess(ctx context.Context, viewer user.User, target employee.Employee) error
}

type EngineImpl struct {
	employeeRepo employee.EmployeeRepository
	projectRepo  project.AssignmentRepository
	metrics      *metrics.Metrics
}

func NewEngine(employeeRepo employee.EmployeeRepository, projectRepo project.AssignmentRepository, m *metrics.Metrics) Engine {
	return &EngineImpl{
		employeeRepo: employeeRepo,
		projectRepo:  projectRepo,
		metrics:      m,
	}
}

// selfVisibleFields is the self policy: everything public and internal
// plus the salary band, never the base salary.
func selfVisibleFields() []string {
	fields := append(access.FieldsByTier(access.TierPublic), access.FieldsByTier(access.TierInternal)...)
	return append(fields, access.FieldSalaryBand)
}

// managerVisibleFields is what a manager-type relationship exposes on top
// of the public tier. Narrower than the internal tier: phone numbers and
// reporting lines stay hidden from managers, and performance ratings are
// reserved for direct reports.
func managerVisibleFields(directReport bool) []string {
	fields := append(access.FieldsByTier(access.TierPublic), access.FieldSkillRating, access.FieldJoiningDate)
	if directReport {
		fields = append(fields, access.FieldPerformanceRating)
	}
	return fields
}

// Relationships implements Engine.
func (e *EngineImpl) Relationships(ctx context.Context, viewer employee.Employee, target employee.Employee) ([]access.Relationship, error) {
	var rels []access.Relationship

	if viewer.ID == target.ID {
		rels = append(rels, access.RelationshipSelf)
	}
	if target.LineManagerID != nil && *target.LineManagerID == viewer.ID {
		rels = append(rels, access.RelationshipDirectReport)
	}

	supervises, err := e.projectRepo.ExistsActiveSupervision(ctx, viewer.ID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project supervision: %w", err)
	}
	if supervises {
		rels = append(rels, access.RelationshipProjectSupervisor)
	}

	sameCapability := viewer.Capability != "" && viewer.Capability == target.Capability
	if target.CapabilityLeadID != nil && *target.CapabilityLeadID == viewer.ID {
		sameCapability = true
	}
	if sameCapability {
		rels = append(rels, access.RelationshipSameCapability)
	}
	if viewer.DeliveryUnit != "" && viewer.DeliveryUnit == target.DeliveryUnit {
		rels = append(rels, access.RelationshipSameDeliveryUnit)
	}

	return rels, nil
}

// Decide implements Engine.
func (e *EngineImpl) Decide(ctx context.Context, viewer user.User, target employee.Employee, action access.Action) (access.Decision, error) {
	decision, err := e.decide(ctx, viewer, target)
	if err != nil {
		return access.Decision{}, err
	}
	e.metrics.RecordDecision(string(action), decision.Allowed)
	return decision, nil
}

func (e *EngineImpl) decide(ctx context.Context, viewer user.User, target employee.Employee) (access.Decision, error) {
	// Unknown roles degrade to the most restrictive outcome.
	if !user.IsValidRole(viewer.Role) {
		return access.Deny(access.ErrNoAuthorityRelationship.Error()), nil
	}

	// Admin and HR see everyone; the relationship graph is not consulted.
	if viewer.CanSeeEveryone() {
		return access.Allow(nil, access.AllFields()), nil
	}

	if viewer.EmployeeID == nil || *viewer.EmployeeID == "" {
		return access.Deny(access.ErrViewerNotLinked.Error()), nil
	}

	viewerEmp, err := e.employeeRepo.GetByID(ctx, *viewer.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return access.Deny(access.ErrViewerNotLinked.Error()), nil
		}
		return access.Decision{}, fmt.Errorf("failed to get viewer employee: %w", err)
	}

	rels, err := e.Relationships(ctx, viewerEmp, target)
	if err != nil {
		return access.Decision{}, err
	}

	if access.Holds(rels, access.RelationshipSelf) {
		return access.Allow(rels, selfVisibleFields()), nil
	}

	isDirectReport := access.Holds(rels, access.RelationshipDirectReport)
	if isDirectReport || access.Holds(rels, access.RelationshipProjectSupervisor) {
		if viewer.Role == user.RoleLineManager || viewer.Role == user.RoleDeliveryManager {
			return access.Allow(rels, managerVisibleFields(isDirectReport)), nil
		}
	}

	if access.Holds(rels, access.RelationshipSameCapability) && viewer.Role == user.RoleCapabilityPartner {
		return access.Allow(rels, managerVisibleFields(false)), nil
	}

	if access.Holds(rels, access.RelationshipSameDeliveryUnit) && viewer.Role == user.RoleDeliveryManager {
		return access.Allow(rels, managerVisibleFields(false)), nil
	}

	return access.Deny(access.ErrNoAuthorityRelationship.Error()), nil
}

// CanAssess implements Engine. Authority follows the reporting and
// supervision links: the direct manager, a project supervisor, or a
// delivery manager sharing the target's delivery unit. Admin and HR may
// assess anyone.
func (e *EngineImpl) CanAssess(ctx context.Context, viewer user.User, target employee.Employee) error {
	allowed, err := e.canAssess(ctx, viewer, target)
	if err != nil {
		return err
	}
	e.metrics.RecordDecision(string(access.ActionAssess), allowed)
	if !allowed {
		return access.ErrAssessmentNotAllowed
	}
	return nil
}

func (e *EngineImpl) canAssess(ctx context.Context, viewer user.User, target employee.Employee) (bool, error) {
	if viewer.CanSeeEveryone() {
		return true, nil
	}
	if viewer.EmployeeID == nil || *viewer.EmployeeID == "" {
		return false, nil
	}

	viewerEmp, err := e.employeeRepo.GetByID(ctx, *viewer.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get viewer employee: %w", err)
	}

	rels, err := e.Relationships(ctx, viewerEmp, target)
	if err != nil {
		return false, err
	}

	if access.Holds(rels, access.RelationshipDirectReport) || access.Holds(rels, access.RelationshipProjectSupervisor) {
		return true, nil
	}
	if viewer.Role == user.RoleDeliveryManager && access.Holds(rels, access.RelationshipSameDeliveryUnit) {
		return true, nil
	}

	return false, nil
}
