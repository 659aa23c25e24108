package access

import "sort"

// Tier is the sensitivity classification of a response field.
type Tier string

const (
	TierPublic     Tier = "public"
	TierInternal   Tier = "internal"
	TierSensitive  Tier = "sensitive"
	TierRestricted Tier = "restricted"
)

// Employee response field names. The decision engine and the masking
// builder both work from these, so additions here must be mirrored in
// employee.Masked.
const (
	FieldID                = "id"
	FieldEmployeeCode      = "employee_code"
	FieldFullName          = "full_name"
	FieldEmail             = "email"
	FieldDepartment        = "department"
	FieldCapability        = "capability"
	FieldBand              = "band"
	FieldTeam              = "team"
	FieldPathway           = "pathway"
	FieldDeliveryUnit      = "delivery_unit"
	FieldActive            = "active"
	FieldCreatedAt         = "created_at"
	FieldUpdatedAt         = "updated_at"
	FieldLineManagerID     = "line_manager_id"
	FieldJoiningDate       = "joining_date"
	FieldSkillRating       = "skill_rating"
	FieldPerformanceRating = "performance_rating"
	FieldPhoneNumber       = "phone_number"
	FieldSalaryBand        = "salary_band"
	FieldNationalID        = "national_id"
	FieldBaseSalary        = "base_salary"
)

// EmployeeFieldTiers classifies every field the employee response schema
// exposes. Exact-match lookup only; the financial and personal filters in
// pkg/redact do substring matching, which is a separate concern.
var EmployeeFieldTiers = map[string]Tier{
	FieldID:                TierPublic,
	FieldEmployeeCode:      TierPublic,
	FieldFullName:          TierPublic,
	FieldEmail:             TierPublic,
	FieldDepartment:        TierPublic,
	FieldCapability:        TierPublic,
	FieldBand:              TierPublic,
	FieldTeam:              TierPublic,
	FieldPathway:           TierPublic,
	FieldDeliveryUnit:      TierPublic,
	FieldActive:            TierPublic,
	FieldCreatedAt:         TierPublic,
	FieldUpdatedAt:         TierPublic,
	FieldLineManagerID:     TierInternal,
	FieldJoiningDate:       TierInternal,
	FieldSkillRating:       TierInternal,
	FieldPerformanceRating: TierInternal,
	FieldPhoneNumber:       TierInternal,
	FieldSalaryBand:        TierSensitive,
	FieldNationalID:        TierSensitive,
	FieldBaseSalary:        TierRestricted,
}

// Classify returns the tier of a field. Fields the catalog does not know
// count as public so that adding a response column never hides data behind
// a stale classification; the catalog completeness test keeps the gap
// from happening silently.
func Classify(field string) Tier {
	if tier, ok := EmployeeFieldTiers[field]; ok {
		return tier
	}
	return TierPublic
}

// IsSensitive reports whether the field sits in a tier that triggers
// audit logging when disclosed.
func IsSensitive(field string) bool {
	tier := Classify(field)
	return tier == TierSensitive || tier == TierRestricted
}

// AllFields returns every classified field name, sorted.
func AllFields() []string {
	fields := make([]string, 0, len(EmployeeFieldTiers))
	for field := range EmployeeFieldTiers {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// FieldsByTier returns the sorted field names classified at the given tier.
func FieldsByTier(tier Tier) []string {
	var fields []string
	for field, t := range EmployeeFieldTiers {
		if t == tier {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)
	return fields
}
