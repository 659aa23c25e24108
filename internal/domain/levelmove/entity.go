package levelmove

import (
	"time"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusApplied  Status = "applied"
	StatusRejected Status = "rejected"
)

// LevelMovement is one request to move an employee to a new band and
// pathway. Band and pathway writes happen only when a movement is applied.
type LevelMovement struct {
	ID          string
	EmployeeID  string
	FromBand    employee.Band
	ToBand      employee.Band
	Pathway     string
	Status      Status
	Reason      *string
	RequestedBy string
	DecidedBy   *string
	DecidedAt   *time.Time
	AppliedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName string
	EmployeeCode string
}

// Authorization proves that a band change goes through the movement
// workflow. The zero value authorizes nothing; only an approved movement
// mints a valid one.
type Authorization struct {
	movement LevelMovement
}

// NewAuthorization mints a band-change authorization from an approved
// movement.
func NewAuthorization(m LevelMovement) (Authorization, error) {
	if m.Status != StatusApproved {
		return Authorization{}, ErrMovementNotApproved
	}
	if m.ID == "" || m.EmployeeID == "" {
		return Authorization{}, ErrMovementNotApproved
	}
	return Authorization{movement: m}, nil
}

// Movement returns the approved movement backing the authorization.
func (a Authorization) Movement() LevelMovement {
	return a.movement
}

// Valid reports whether the authorization was minted from an approved
// movement rather than constructed as a zero value.
func (a Authorization) Valid() bool {
	return a.movement.ID != "" && a.movement.Status == StatusApproved
}
