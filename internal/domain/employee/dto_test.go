package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
)

func sampleEmployee() Employee {
	pathway := "Cloud"
	manager := "0198c6a1-0000-7000-8000-000000000001"
	phone := "+62812345678"
	salaryBand := "SB-3"
	salary := decimal.NewFromInt(95000)
	rating := 3.5

	return Employee{
		ID:             "0198c6a1-0000-7000-8000-000000000002",
		EmployeeCode:   "EMP-001",
		FullName:       "Ayu Lestari",
		Email:          "ayu@skillsphere.io",
		Department:     "Engineering",
		Capability:     "Backend",
		Band:           BandC,
		Team:           "Platform",
		Pathway:        &pathway,
		DeliveryUnit:   "Jakarta",
		LineManagerID:  &manager,
		JoiningDate:    time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
		PhoneNumber:    &phone,
		SalaryBand:     &salaryBand,
		BaseSalary:     &salary,
		Active:         true,
		CreatedAt:      time.Date(2022, 4, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		AvgSkillRating: &rating,
	}
}

// Every key the response payload exposes must carry a classification, or
// the decision engine would be guessing tiers for real data.
func TestResponseMapFullyClassified(t *testing.T) {
	emp := sampleEmployee()
	for field := range emp.ResponseMap() {
		_, ok := access.EmployeeFieldTiers[field]
		assert.True(t, ok, "response field %q has no classification", field)
	}
}

func TestResponseMapCoversCatalog(t *testing.T) {
	emp := sampleEmployee()
	payload := emp.ResponseMap()
	for field := range access.EmployeeFieldTiers {
		_, ok := payload[field]
		assert.True(t, ok, "classified field %q missing from response payload", field)
	}
}

func TestMaskedReplacesValuesKeepsKeys(t *testing.T) {
	emp := sampleEmployee()
	full := emp.ResponseMap()

	visible := map[string]bool{
		access.FieldID:       true,
		access.FieldFullName: true,
		access.FieldBand:     true,
	}
	masked := emp.Masked(visible)

	require.Len(t, masked, len(full))
	for field := range full {
		_, ok := masked[field]
		require.True(t, ok, "masking dropped key %q", field)
	}

	assert.Equal(t, "Ayu Lestari", masked[access.FieldFullName])
	assert.Equal(t, "C", masked[access.FieldBand])
	assert.Equal(t, access.RedactionMarker, masked[access.FieldBaseSalary])
	assert.Equal(t, access.RedactionMarker, masked[access.FieldSalaryBand])
	assert.Equal(t, access.RedactionMarker, masked[access.FieldEmail])
}

func TestBandHelpers(t *testing.T) {
	assert.True(t, IsValidBand(BandA))
	assert.True(t, IsValidBand(BandL2))
	assert.False(t, IsValidBand(Band("D")))
	assert.False(t, IsValidBand(Band("")))

	assert.True(t, BandL2.AtCeiling())
	assert.False(t, BandL1.AtCeiling())

	for i := 1; i < len(AllBands); i++ {
		assert.Greater(t, AllBands[i].Rank(), AllBands[i-1].Rank())
	}
}

func TestCreateEmployeeRequestValidate(t *testing.T) {
	valid := CreateEmployeeRequest{
		EmployeeCode: "EMP-010",
		FullName:     "Budi Santoso",
		Email:        "budi@skillsphere.io",
		Department:   "Engineering",
		Capability:   "Backend",
		Band:         "B",
		DeliveryUnit: "Bandung",
		JoiningDate:  "2023-06-01",
	}
	assert.NoError(t, valid.Validate())

	missing := CreateEmployeeRequest{}
	err := missing.Validate()
	require.Error(t, err)

	badBand := valid
	badBand.Band = "Z"
	assert.Error(t, badBand.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	badDate := valid
	badDate.JoiningDate = "01/06/2023"
	assert.Error(t, badDate.Validate())
}

func TestEmployeeFilterValidateDefaults(t *testing.T) {
	f := EmployeeFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	over := EmployeeFilter{Limit: 500}
	assert.Error(t, over.Validate())

	badBand := EmployeeFilter{Band: "Q"}
	assert.Error(t, badBand.Validate())
}
