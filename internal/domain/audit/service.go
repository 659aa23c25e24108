package audit

import (
	"context"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
)

// Service records disclosures and serves the audit query surface.
type Service interface {
	// RecordDecision appends an entry when the decision touched sensitive
	// fields or the action is an export; other reads are not logged.
	RecordDecision(ctx context.Context, userID string, decision access.Decision, action access.Action, targetType, targetID, ipAddress string) error

	// Record appends an entry unconditionally.
	Record(ctx context.Context, entry Entry) error

	// Query returns entries most recent first, capped at MaxQueryLimit.
	Query(ctx context.Context, filter QueryFilter) ([]EntryResponse, error)
}
