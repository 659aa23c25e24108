package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
)

type AuditServiceImpl struct {
	audit.Repository
	metrics *metrics.Metrics
}

func NewAuditService(repo audit.Repository, m *metrics.Metrics) audit.Service {
	return &AuditServiceImpl{
		Repository: repo,
		metrics:    m,
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

// RecordDecision implements audit.Service. Routine non-sensitive reads are
// not logged to bound log volume; disclosures of sensitive fields and
// exports always are.
func (s *AuditServiceImpl) RecordDecision(ctx context.Context, userID string, decision access.Decision, action access.Action, targetType, targetID, ipAddress string) error {
	if !decision.TouchesSensitive() && action != access.ActionExport {
		return nil
	}

	entry := audit.Entry{
		OccurredAt:     time.Now(),
		UserID:         userID,
		Action:         strings.ToLower(string(action)),
		TargetType:     targetType,
		TargetID:       targetID,
		FieldsAccessed: decision.SensitiveFields(),
		LegalBasis:     audit.LegalBasisLegitimateInterest,
		IPAddress:      ipAddress,
	}
	return s.Record(ctx, entry)
}

// Record implements audit.Service.
func (s *AuditServiceImpl) Record(ctx context.Context, entry audit.Entry) error {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now()
	}
	if entry.LegalBasis == "" {
		entry.LegalBasis = audit.LegalBasisLegitimateInterest
	}

	if err := s.Repository.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	s.metrics.RecordAuditEntry()
	return nil
}

// Query implements audit.Service.
func (s *AuditServiceImpl) Query(ctx context.Context, filter audit.QueryFilter) ([]audit.EntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	_, role, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.HasPermission(role, user.PermissionAuditView) {
		return nil, user.ErrInsufficientPermissions
	}

	entries, err := s.Repository.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}
	return responses, nil
}
