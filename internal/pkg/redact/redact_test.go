package redact

import (
	"reflect"
	"testing"
)

func TestFinancialStripsMatchingKeys(t *testing.T) {
	input := map[string]any{
		"capability":   "Backend",
		"base_salary":  95000,
		"daily_rate":   450.0,
		"total_amount": 12,
		"headcount":    30,
	}
	got := Financial(input)
	want := map[string]any{
		"capability": "Backend",
		"headcount":  30,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Financial() = %v, want %v", got, want)
	}

	// input untouched
	if _, ok := input["base_salary"]; !ok {
		t.Error("Financial() mutated its input")
	}
}

func TestFinancialRecursesNested(t *testing.T) {
	input := map[string]any{
		"unit": "Jakarta",
		"teams": []any{
			map[string]any{
				"team":          "Platform",
				"annual_budget": 100000,
				"members": []map[string]any{
					{"band": "C", "billing_code": "X1"},
				},
			},
		},
	}
	got := Financial(input)

	teams := got["teams"].([]any)
	team := teams[0].(map[string]any)
	if _, ok := team["annual_budget"]; ok {
		t.Error("nested annual_budget survived the financial filter")
	}
	members := team["members"].([]map[string]any)
	if _, ok := members[0]["billing_code"]; ok {
		t.Error("deeply nested billing_code survived the financial filter")
	}
	if members[0]["band"] != "C" {
		t.Error("unrelated nested field was altered")
	}
}

func TestPersonalStripsIdentifiers(t *testing.T) {
	input := map[string]any{
		"full_name":       "Ayu Lestari",
		"email":           "ayu@skillsphere.io",
		"employee_id":     "abc",
		"line_manager_id": "def",
		"phone_number":    "+62812",
		"band":            "C",
		"coverage":        82.5,
	}
	got := Personal(input)
	want := map[string]any{
		"band":     "C",
		"coverage": 82.5,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Personal() = %v, want %v", got, want)
	}
}

// Reapplying a filter to already-filtered data must be a no-op.
func TestFiltersIdempotent(t *testing.T) {
	input := map[string]any{
		"full_name":   "Budi",
		"base_salary": 1,
		"nested": map[string]any{
			"email":      "x@y.z",
			"commission": 2,
			"keep":       true,
		},
	}

	once := Financial(Personal(input))
	twice := Financial(Personal(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filters not idempotent: %v != %v", once, twice)
	}
}

// Filters are total: odd shapes pass through without errors.
func TestFiltersTotal(t *testing.T) {
	if got := Financial(nil); got != nil {
		t.Errorf("Financial(nil) = %v, want nil", got)
	}

	input := map[string]any{
		"weird":   struct{ X int }{1},
		"numbers": []any{1, "two", nil},
		"salary":  nil,
	}
	got := Financial(input)
	if _, ok := got["salary"]; ok {
		t.Error("nil-valued salary key survived")
	}
	if len(got["numbers"].([]any)) != 3 {
		t.Error("scalar slice was altered")
	}
}

func TestRecordsHelpers(t *testing.T) {
	records := []map[string]any{
		{"full_name": "A", "band": "B"},
		{"full_name": "C", "band": "L1"},
	}
	got := PersonalRecords(records)
	if len(got) != 2 {
		t.Fatalf("PersonalRecords() returned %d records, want 2", len(got))
	}
	for i, r := range got {
		if _, ok := r["full_name"]; ok {
			t.Errorf("record %d kept full_name", i)
		}
		if _, ok := r["band"]; !ok {
			t.Errorf("record %d lost band", i)
		}
	}
}
