package access

import "errors"

var (
	ErrNoAuthorityRelationship = errors.New("no authority relationship found")
	ErrViewerNotLinked         = errors.New("account is not linked to an employee record")
	ErrAssessmentNotAllowed    = errors.New("no assessment authority over this employee")
)

// Denied maps a refusing decision to the sentinel behind its reason, so
// callers return a typed error without losing the reason string.
func Denied(d Decision) error {
	if d.Reason == ErrViewerNotLinked.Error() {
		return ErrViewerNotLinked
	}
	return ErrNoAuthorityRelationship
}
