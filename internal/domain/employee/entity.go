package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Band string

const (
	BandA  Band = "A"
	BandB  Band = "B"
	BandC  Band = "C"
	BandL1 Band = "L1"
	BandL2 Band = "L2"
)

// AllBands lists the career bands from entry level to ceiling.
var AllBands = []Band{BandA, BandB, BandC, BandL1, BandL2}

var bandRank = map[Band]int{
	BandA:  1,
	BandB:  2,
	BandC:  3,
	BandL1: 4,
	BandL2: 5,
}

func IsValidBand(b Band) bool {
	_, ok := bandRank[b]
	return ok
}

// Rank returns the 1-based position of the band. Unknown bands rank 0.
func (b Band) Rank() int {
	return bandRank[b]
}

// AtCeiling reports whether the band has no band above it.
func (b Band) AtCeiling() bool {
	return b == BandL2
}

type Employee struct {
	ID                string
	EmployeeCode      string
	FullName          string
	Email             string
	Department        string
	Capability        string
	Band              Band
	Team              string
	Pathway           *string
	DeliveryUnit      string
	LineManagerID     *string
	CapabilityLeadID  *string
	JoiningDate       time.Time
	PhoneNumber       *string
	NationalID        *string
	SalaryBand        *string
	BaseSalary        *decimal.Decimal
	PerformanceRating *string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	AvgSkillRating *float64
}
