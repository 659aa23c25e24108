package audit

import (
	"context"
	"time"
)

// Target types recorded in audit entries.
const (
	TargetTypeEmployee   = "employee"
	TargetTypeAssessment = "assessment"
	TargetTypeAssignment = "assignment"
	TargetTypeExport     = "export"
	TargetTypeDashboard  = "dashboard"
	TargetTypeUser       = "user"
)

// Legal bases recorded for GDPR accountability.
const (
	LegalBasisLegitimateInterest = "legitimate_interest"
	LegalBasisContract           = "contract"
	LegalBasisLegalObligation    = "legal_obligation"
)

// Entry is one immutable audit record. Entries are only ever appended;
// the storage layer raises on update or delete.
type Entry struct {
	ID             int64
	OccurredAt     time.Time
	UserID         string
	Action         string
	TargetType     string
	TargetID       string
	FieldsAccessed []string
	LegalBasis     string
	IPAddress      string
}

// IPFromContext returns the client address the HTTP middleware stashed on
// the request context, or "" outside a request.
func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value("client_ip").(string)
	return ip
}
