package audit

import (
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

// MaxQueryLimit caps every audit query regardless of the requested limit.
const MaxQueryLimit = 1000

// DefaultWindowDays bounds queries that do not name a window.
const DefaultWindowDays = 30

// QueryFilter narrows an audit query. Zero values mean "any".
type QueryFilter struct {
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Days       int    `json:"days"`
	Limit      int    `json:"limit"`
}

func (f *QueryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Days == 0 {
		f.Days = DefaultWindowDays
	}
	if f.Days < 0 || f.Days > 365 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be between 1 and 365",
		})
	}

	if f.Limit <= 0 || f.Limit > MaxQueryLimit {
		f.Limit = MaxQueryLimit
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID             int64    `json:"id"`
	OccurredAt     string   `json:"occurred_at"`
	UserID         string   `json:"user_id"`
	Action         string   `json:"action"`
	TargetType     string   `json:"target_type"`
	TargetID       string   `json:"target_id"`
	FieldsAccessed []string `json:"fields_accessed"`
	LegalBasis     string   `json:"legal_basis"`
	IPAddress      string   `json:"ip_address"`
}

func (e *Entry) ToResponse() EntryResponse {
	return EntryResponse{
		ID:             e.ID,
		OccurredAt:     e.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		UserID:         e.UserID,
		Action:         e.Action,
		TargetType:     e.TargetType,
		TargetID:       e.TargetID,
		FieldsAccessed: e.FieldsAccessed,
		LegalBasis:     e.LegalBasis,
		IPAddress:      e.IPAddress,
	}
}
