package access

import "sort"

// Action is what the viewer is trying to do with the target record.
type Action string

const (
	ActionView   Action = "VIEW"
	ActionList   Action = "LIST"
	ActionUpdate Action = "UPDATE"
	ActionExport Action = "EXPORT"
	ActionAssess Action = "ASSESS"
)

// RedactionMarker replaces the value of every field the viewer may not
// see. The key stays in the payload so response shape is stable.
const RedactionMarker = "[REDACTED]"

// Decision is the outcome of evaluating (viewer, target, action). It is
// ephemeral; only its audit side effect is persisted.
type Decision struct {
	Allowed       bool
	Relationships []Relationship
	VisibleFields []string
	Reason        string
}

// Allow builds a granting decision with a normalized field list.
func Allow(relationships []Relationship, fields []string) Decision {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)
	return Decision{
		Allowed:       true,
		Relationships: relationships,
		VisibleFields: sorted,
	}
}

// Deny builds a refusing decision carrying the human-readable reason that
// also lands in error responses and audit trails.
func Deny(reason string) Decision {
	return Decision{
		Allowed:       false,
		Relationships: []Relationship{RelationshipNone},
		Reason:        reason,
	}
}

// VisibleSet returns the visible fields as a lookup set.
func (d Decision) VisibleSet() map[string]bool {
	set := make(map[string]bool, len(d.VisibleFields))
	for _, field := range d.VisibleFields {
		set[field] = true
	}
	return set
}

// TouchesSensitive reports whether any visible field sits in an
// audit-triggering tier.
func (d Decision) TouchesSensitive() bool {
	for _, field := range d.VisibleFields {
		if IsSensitive(field) {
			return true
		}
	}
	return false
}

// SensitiveFields returns the visible fields that sit in audit-triggering
// tiers, for the fields_accessed column of the audit entry.
func (d Decision) SensitiveFields() []string {
	var fields []string
	for _, field := range d.VisibleFields {
		if IsSensitive(field) {
			fields = append(fields, field)
		}
	}
	return fields
}
