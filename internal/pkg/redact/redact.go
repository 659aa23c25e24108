package redact

import "strings"

// FinancialTokens flag money-carrying fields. A key matches when it equals
// or contains one of these, case-insensitively.
var FinancialTokens = []string{
	"salary", "rate", "billing", "revenue", "cost", "profit",
	"budget", "invoice", "price", "amount", "pay", "compensation", "bonus",
}

// PersonalTokens flag direct identifiers, stripped to produce anonymized
// aggregate views.
var PersonalTokens = []string{
	"name", "email", "employee_id", "manager_id",
	"phone", "national_id", "dob", "address",
}

// Financial strips money-related fields from the payload, recursing
// through nested maps and slices. The input is never mutated.
func Financial(data map[string]any) map[string]any {
	return stripMap(data, FinancialTokens)
}

// Personal strips direct identifiers from the payload, recursing through
// nested maps and slices. The input is never mutated.
func Personal(data map[string]any) map[string]any {
	return stripMap(data, PersonalTokens)
}

// FinancialRecords strips money-related fields from each record.
func FinancialRecords(records []map[string]any) []map[string]any {
	result := make([]map[string]any, len(records))
	for i, r := range records {
		result[i] = Financial(r)
	}
	return result
}

// PersonalRecords strips direct identifiers from each record.
func PersonalRecords(records []map[string]any) []map[string]any {
	result := make([]map[string]any, len(records))
	for i, r := range records {
		result[i] = Personal(r)
	}
	return result
}

func matches(key string, tokens []string) bool {
	lower := strings.ToLower(key)
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func stripMap(data map[string]any, tokens []string) map[string]any {
	if data == nil {
		return nil
	}
	result := make(map[string]any, len(data))
	for k, v := range data {
		if matches(k, tokens) {
			continue
		}
		result[k] = stripValue(v, tokens)
	}
	return result
}

func stripValue(v any, tokens []string) any {
	switch val := v.(type) {
	case map[string]any:
		return stripMap(val, tokens)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = stripValue(item, tokens)
		}
		return result
	case []map[string]any:
		result := make([]map[string]any, len(val))
		for i, item := range val {
			result[i] = stripMap(item, tokens)
		}
		return result
	default:
		return v
	}
}
