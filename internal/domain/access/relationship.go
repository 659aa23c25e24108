package access

// Relationship is an authority link between a viewer and a target
// employee. Several may hold at once; resolution keeps them in precedence
// order so the decision engine can reason about the strongest one first.
type Relationship string

const (
	RelationshipSelf              Relationship = "SELF"
	RelationshipDirectReport      Relationship = "DIRECT_REPORT"
	RelationshipProjectSupervisor Relationship = "PROJECT_SUPERVISOR"
	RelationshipSameCapability    Relationship = "SAME_CAPABILITY"
	RelationshipSameDeliveryUnit  Relationship = "SAME_DELIVERY_UNIT"
	RelationshipNone              Relationship = "NONE"
)

// relationshipRank orders relationships from most to least permissive.
var relationshipRank = map[Relationship]int{
	RelationshipSelf:              0,
	RelationshipDirectReport:      1,
	RelationshipProjectSupervisor: 2,
	RelationshipSameCapability:    3,
	RelationshipSameDeliveryUnit:  4,
	RelationshipNone:              5,
}

// Stronger reports whether a takes precedence over b.
func Stronger(a, b Relationship) bool {
	ra, ok := relationshipRank[a]
	if !ok {
		return false
	}
	rb, ok := relationshipRank[b]
	if !ok {
		return true
	}
	return ra < rb
}

// Holds reports whether the relationship appears in the resolved set.
func Holds(set []Relationship, rel Relationship) bool {
	for _, r := range set {
		if r == rel {
			return true
		}
	}
	return false
}
