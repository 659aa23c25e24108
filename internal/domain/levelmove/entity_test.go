package levelmove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
)

func TestNewAuthorizationRequiresApprovedMovement(t *testing.T) {
	base := LevelMovement{
		ID:         "0198c6a1-0000-7000-8000-00000000000a",
		EmployeeID: "0198c6a1-0000-7000-8000-00000000000b",
		FromBand:   employee.BandB,
		ToBand:     employee.BandC,
		Pathway:    "Cloud",
	}

	for _, status := range []Status{StatusPending, StatusApplied, StatusRejected} {
		m := base
		m.Status = status
		_, err := NewAuthorization(m)
		assert.ErrorIs(t, err, ErrMovementNotApproved, "status %s minted an authorization", status)
	}

	approved := base
	approved.Status = StatusApproved
	authz, err := NewAuthorization(approved)
	require.NoError(t, err)
	assert.True(t, authz.Valid())
	assert.Equal(t, approved.ID, authz.Movement().ID)
}

func TestZeroAuthorizationIsInvalid(t *testing.T) {
	var authz Authorization
	assert.False(t, authz.Valid())

	// an approved status alone is not enough without identifiers
	_, err := NewAuthorization(LevelMovement{Status: StatusApproved})
	assert.ErrorIs(t, err, ErrMovementNotApproved)
}
