package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		field string
		want  Tier
	}{
		{FieldFullName, TierPublic},
		{FieldBand, TierPublic},
		{FieldJoiningDate, TierInternal},
		{FieldPerformanceRating, TierInternal},
		{FieldSalaryBand, TierSensitive},
		{FieldNationalID, TierSensitive},
		{FieldBaseSalary, TierRestricted},
		// unclassified fields stay visible rather than silently hidden
		{"favorite_color", TierPublic},
		{"", TierPublic},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.field), "field %q", c.field)
	}
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive(FieldSalaryBand))
	assert.True(t, IsSensitive(FieldBaseSalary))
	assert.False(t, IsSensitive(FieldFullName))
	assert.False(t, IsSensitive(FieldJoiningDate))
	assert.False(t, IsSensitive("unknown_column"))
}

func TestFieldsByTierPartitionsCatalog(t *testing.T) {
	total := 0
	for _, tier := range []Tier{TierPublic, TierInternal, TierSensitive, TierRestricted} {
		total += len(FieldsByTier(tier))
	}
	assert.Equal(t, len(EmployeeFieldTiers), total)
	assert.Len(t, AllFields(), len(EmployeeFieldTiers))
}

func TestStronger(t *testing.T) {
	assert.True(t, Stronger(RelationshipSelf, RelationshipDirectReport))
	assert.True(t, Stronger(RelationshipDirectReport, RelationshipProjectSupervisor))
	assert.True(t, Stronger(RelationshipProjectSupervisor, RelationshipSameCapability))
	assert.True(t, Stronger(RelationshipSameCapability, RelationshipSameDeliveryUnit))
	assert.True(t, Stronger(RelationshipSameDeliveryUnit, RelationshipNone))
	assert.False(t, Stronger(RelationshipNone, RelationshipSelf))
	assert.False(t, Stronger(Relationship("UNKNOWN"), RelationshipNone))
}

func TestDecisionHelpers(t *testing.T) {
	d := Allow([]Relationship{RelationshipSelf}, []string{FieldSalaryBand, FieldFullName, FieldBand})

	assert.True(t, d.Allowed)
	assert.Equal(t, []string{FieldBand, FieldFullName, FieldSalaryBand}, d.VisibleFields)
	assert.True(t, d.VisibleSet()[FieldFullName])
	assert.False(t, d.VisibleSet()[FieldBaseSalary])
	assert.True(t, d.TouchesSensitive())
	assert.Equal(t, []string{FieldSalaryBand}, d.SensitiveFields())

	denied := Deny("no authority relationship found")
	assert.False(t, denied.Allowed)
	assert.Equal(t, "no authority relationship found", denied.Reason)
	assert.Empty(t, denied.VisibleFields)
	assert.False(t, denied.TouchesSensitive())
}
