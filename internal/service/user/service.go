package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db              *database.DB
	userRepo        user.UserRepository
	employeeService employee.EmployeeService
	refreshTokens   postgresql.RefreshTokenRepository
	auditService    audit.Service
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeService employee.EmployeeService,
	refreshTokens postgresql.RefreshTokenRepository,
	auditService audit.Service,
) user.UserService {
	return &UserServiceImpl{
		db:              db,
		userRepo:        userRepo,
		employeeService: employeeService,
		refreshTokens:   refreshTokens,
		auditService:    auditService,
	}
}

func getClaimsFromContext(ctx context.Context) (userID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.Role(roleStr), nil
}

// GetMe implements user.UserService. The employee payload goes through
// the employee service, so the caller sees their record under the same
// self policy as a direct read.
func (s *UserServiceImpl) GetMe(ctx context.Context) (user.MeResponse, error) {
	userID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return user.MeResponse{}, err
	}

	userData, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.MeResponse{}, user.ErrUserNotFound
		}
		return user.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	resp := user.MeResponse{Account: userData.ToResponse()}

	payload, err := s.employeeService.GetOwnProfile(ctx)
	if err != nil {
		if errors.Is(err, access.ErrViewerNotLinked) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return resp, nil
		}
		return user.MeResponse{}, err
	}
	resp.Employee = payload

	return resp, nil
}

// UpdateUserRole implements user.UserService.
func (s *UserServiceImpl) UpdateUserRole(ctx context.Context, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	callerID, callerRole, err := getClaimsFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !user.HasPermission(callerRole, user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	target, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if target.ServiceAccount {
		return user.UserResponse{}, user.ErrServiceAccountImmutable
	}

	var updated user.User
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.userRepo.UpdateRole(txCtx, req); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}

		if err := s.auditService.Record(txCtx, audit.Entry{
			UserID:         callerID,
			Action:         "role_change",
			TargetType:     audit.TargetTypeUser,
			TargetID:       target.ID,
			FieldsAccessed: []string{"role"},
			IPAddress:      audit.IPFromContext(ctx),
		}); err != nil {
			return err
		}

		updated, err = s.userRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return updated.ToResponse(), nil
}

// DeactivateUser implements user.UserService. Deactivation revokes every
// refresh token in the same transaction, so the account cannot mint new
// access tokens once its current one expires.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, id string) error {
	callerID, callerRole, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !user.HasPermission(callerRole, user.PermissionUserManage) {
		return user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return user.ErrUserNotFound
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target.ServiceAccount {
		return user.ErrServiceAccountImmutable
	}
	if target.ID == callerID {
		return user.ErrCannotDeactivateSelf
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.userRepo.Deactivate(txCtx, id); err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}
		if err := s.refreshTokens.RevokeAllForUser(txCtx, id); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}

		return s.auditService.Record(txCtx, audit.Entry{
			UserID:         callerID,
			Action:         "deactivate",
			TargetType:     audit.TargetTypeUser,
			TargetID:       id,
			FieldsAccessed: []string{"active"},
			IPAddress:      audit.IPFromContext(ctx),
		})
	})
}
