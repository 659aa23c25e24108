package levelmove

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/levelmove"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/cache"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	accessservice "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
)

type LevelMovementServiceImpl struct {
	db           *database.DB
	movementRepo levelmove.LevelMovementRepository
	employeeRepo employee.EmployeeRepository
	skillRepo    skill.SkillRepository
	skillService skill.SkillService
	engine       accessservice.Engine
	auditService audit.Service
	cache        *cache.Cache
}

func NewLevelMovementService(
	db *database.DB,
	movementRepo levelmove.LevelMovementRepository,
	employeeRepo employee.EmployeeRepository,
	skillRepo skill.SkillRepository,
	skillService skill.SkillService,
	engine accessservice.Engine,
	auditService audit.Service,
	cacheClient *cache.Cache,
) levelmove.LevelMovementService {
	return &LevelMovementServiceImpl{
		db:           db,
		movementRepo: movementRepo,
		employeeRepo: employeeRepo,
		skillRepo:    skillRepo,
		skillService: skillService,
		engine:       engine,
		auditService: auditService,
		cache:        cacheClient,
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

// Request implements levelmove.LevelMovementService. Employees open
// movements for themselves; managers open them for people they hold
// assessment authority over.
func (s *LevelMovementServiceImpl) Request(ctx context.Context, req levelmove.RequestMovementRequest) (levelmove.MovementResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionLevelMoveRequest) {
		return levelmove.MovementResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		return levelmove.MovementResponse{}, employee.ErrEmployeeNotFound
	}

	target, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return levelmove.MovementResponse{}, employee.ErrEmployeeNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	self := viewer.EmployeeID != nil && *viewer.EmployeeID == target.ID
	if !self && !viewer.CanSeeEveryone() {
		if err := s.engine.CanAssess(ctx, viewer, target); err != nil {
			if errors.Is(err, access.ErrAssessmentNotAllowed) {
				return levelmove.MovementResponse{}, levelmove.ErrRequestNotAllowed
			}
			return levelmove.MovementResponse{}, err
		}
	}

	toBand := employee.Band(req.ToBand)
	if toBand == target.Band {
		return levelmove.MovementResponse{}, levelmove.ErrSameBand
	}
	if toBand.Rank() != target.Band.Rank()+1 {
		return levelmove.MovementResponse{}, levelmove.ErrBandNotAdjacent
	}

	open, err := s.movementRepo.ExistsPendingForEmployee(ctx, target.ID)
	if err != nil {
		return levelmove.MovementResponse{}, fmt.Errorf("failed to check open movements: %w", err)
	}
	if open {
		return levelmove.MovementResponse{}, levelmove.ErrMovementExists
	}

	if _, err := s.skillRepo.GetPathwayByName(ctx, req.Pathway); err != nil {
		if errors.Is(err, skill.ErrPathwayNotFound) {
			return levelmove.MovementResponse{}, skill.ErrPathwayNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get pathway: %w", err)
	}

	created, err := s.movementRepo.Create(ctx, levelmove.LevelMovement{
		EmployeeID:  target.ID,
		FromBand:    target.Band,
		ToBand:      toBand,
		Pathway:     req.Pathway,
		Status:      levelmove.StatusPending,
		Reason:      req.Reason,
		RequestedBy: viewer.ID,
	})
	if err != nil {
		return levelmove.MovementResponse{}, fmt.Errorf("failed to create level movement: %w", err)
	}

	return created.ToResponse(), nil
}

// Approve implements levelmove.LevelMovementService.
func (s *LevelMovementServiceImpl) Approve(ctx context.Context, id string) (levelmove.MovementResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionLevelMoveApprove) {
		return levelmove.MovementResponse{}, user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
	}

	movement, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, levelmove.ErrMovementNotFound) {
			return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get level movement: %w", err)
	}
	if movement.Status != levelmove.StatusPending {
		return levelmove.MovementResponse{}, levelmove.ErrMovementNotPending
	}

	if err := s.movementRepo.UpdateStatus(ctx, id, levelmove.StatusApproved, viewer.ID, nil); err != nil {
		if errors.Is(err, levelmove.ErrMovementNotPending) {
			return levelmove.MovementResponse{}, levelmove.ErrMovementNotPending
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to approve level movement: %w", err)
	}

	approved, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		return levelmove.MovementResponse{}, fmt.Errorf("failed to reload level movement: %w", err)
	}
	return approved.ToResponse(), nil
}

// Reject implements levelmove.LevelMovementService.
func (s *LevelMovementServiceImpl) Reject(ctx context.Context, id string, req levelmove.RejectMovementRequest) (levelmove.MovementResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionLevelMoveApprove) {
		return levelmove.MovementResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !validator.IsValidUUID(id) {
		return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
	}

	movement, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, levelmove.ErrMovementNotFound) {
			return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get level movement: %w", err)
	}
	if movement.Status != levelmove.StatusPending {
		return levelmove.MovementResponse{}, levelmove.ErrMovementNotPending
	}

	if err := s.movementRepo.UpdateStatus(ctx, id, levelmove.StatusRejected, viewer.ID, &req.Reason); err != nil {
		if errors.Is(err, levelmove.ErrMovementNotPending) {
			return levelmove.MovementResponse{}, levelmove.ErrMovementNotPending
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to reject level movement: %w", err)
	}

	rejected, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		return levelmove.MovementResponse{}, fmt.Errorf("failed to reload level movement: %w", err)
	}
	return rejected.ToResponse(), nil
}

// Apply implements levelmove.LevelMovementService. The band and pathway
// write, the baseline assignment and the status flip commit together or
// not at all.
func (s *LevelMovementServiceImpl) Apply(ctx context.Context, id string) (levelmove.MovementResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return levelmove.MovementResponse{}, err
	}
	if !user.HasPermission(viewer.Role, user.PermissionLevelMoveApply) {
		return levelmove.MovementResponse{}, user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
	}

	movement, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, levelmove.ErrMovementNotFound) {
			return levelmove.MovementResponse{}, levelmove.ErrMovementNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get level movement: %w", err)
	}

	authz, err := levelmove.NewAuthorization(movement)
	if err != nil {
		return levelmove.MovementResponse{}, err
	}

	target, err := s.employeeRepo.GetByID(ctx, movement.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return levelmove.MovementResponse{}, employee.ErrEmployeeNotFound
		}
		return levelmove.MovementResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.movementRepo.ApplyBandChange(txCtx, authz); err != nil {
			return err
		}

		target.Band = movement.ToBand
		if _, err := s.skillService.AssignBaseline(txCtx, target, movement.Pathway, true); err != nil {
			return err
		}

		if err := s.movementRepo.MarkApplied(txCtx, movement.ID); err != nil {
			return err
		}

		return s.auditService.Record(txCtx, audit.Entry{
			UserID:         viewer.ID,
			Action:         "band_change",
			TargetType:     audit.TargetTypeEmployee,
			TargetID:       movement.EmployeeID,
			FieldsAccessed: []string{access.FieldBand, access.FieldPathway},
			IPAddress:      audit.IPFromContext(ctx),
		})
	})
	if err != nil {
		return levelmove.MovementResponse{}, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		slog.Warn("Failed to bump cache version", "error", err)
	}

	applied, err := s.movementRepo.GetByID(ctx, movement.ID)
	if err != nil {
		return levelmove.MovementResponse{}, fmt.Errorf("failed to reload level movement: %w", err)
	}
	return applied.ToResponse(), nil
}

// List implements levelmove.LevelMovementService. Callers without full
// visibility see their own movements and the ones they requested.
func (s *LevelMovementServiceImpl) List(ctx context.Context, filter levelmove.MovementFilter) ([]levelmove.MovementResponse, error) {
	viewer, err := viewerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var movements []levelmove.LevelMovement
	if viewer.CanSeeEveryone() {
		movements, err = s.movementRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list level movements: %w", err)
		}
	} else {
		movements, err = s.listVisible(ctx, viewer, filter)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]levelmove.MovementResponse, 0, len(movements))
	for _, m := range movements {
		responses = append(responses, m.ToResponse())
	}
	return responses, nil
}

// listVisible merges the caller's own movements with the ones they filed,
// newest first, deduplicated.
func (s *LevelMovementServiceImpl) listVisible(ctx context.Context, viewer user.User, filter levelmove.MovementFilter) ([]levelmove.LevelMovement, error) {
	var movements []levelmove.LevelMovement

	if viewer.EmployeeID != nil && *viewer.EmployeeID != "" {
		own, err := s.movementRepo.List(ctx, levelmove.MovementFilter{
			EmployeeID: *viewer.EmployeeID,
			Status:     filter.Status,
			Limit:      filter.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list own movements: %w", err)
		}
		movements = own
	}

	filed, err := s.movementRepo.List(ctx, levelmove.MovementFilter{
		RequestedBy: viewer.ID,
		Status:      filter.Status,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requested movements: %w", err)
	}

	seen := make(map[string]bool, len(movements))
	for _, m := range movements {
		seen[m.ID] = true
	}
	for _, m := range filed {
		if !seen[m.ID] {
			movements = append(movements, m)
			seen[m.ID] = true
		}
	}

	if filter.EmployeeID != "" {
		var scoped []levelmove.LevelMovement
		for _, m := range movements {
			if m.EmployeeID == filter.EmployeeID {
				scoped = append(scoped, m)
			}
		}
		movements = scoped
	}

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].CreatedAt.After(movements[j].CreatedAt)
	})
	if len(movements) > filter.Limit {
		movements = movements[:filter.Limit]
	}
	return movements, nil
}
