package response

import (
	"errors"
	"net/http"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/access"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/auth"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/levelmove"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/project"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/skill"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account deactivated")
	case errors.Is(err, auth.ErrEmployeeCodeUnknown):
		BadRequest(w, "No employee record matches this code and email", nil)
	case errors.Is(err, auth.ErrAlreadyRegistered):
		Conflict(w, "Employee already has an account")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account deactivated")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrEmployeeAlreadyLinked):
		Conflict(w, "Employee already linked to an account")
	case errors.Is(err, user.ErrServiceAccountImmutable):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCannotDeactivateSelf):
		Conflict(w, "Cannot deactivate your own account")

	// Access control errors carry the deny reason through to the client.
	case errors.Is(err, access.ErrViewerNotLinked):
		Forbidden(w, err.Error())
	case errors.Is(err, access.ErrNoAuthorityRelationship):
		Forbidden(w, err.Error())
	case errors.Is(err, access.ErrAssessmentNotAllowed):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Line manager not found")
	case errors.Is(err, employee.ErrInvalidBand):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrSelfManager):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrManagerCycle):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrFutureJoiningDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already deactivated")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		Conflict(w, "Cannot deactivate your own employee record")
	case errors.Is(err, employee.ErrBandChangeNotAuthorized):
		Forbidden(w, err.Error())

	// Skill domain errors
	case errors.Is(err, skill.ErrSkillNotFound):
		NotFound(w, "Skill not found")
	case errors.Is(err, skill.ErrPathwayNotFound):
		NotFound(w, "Pathway not found")
	case errors.Is(err, skill.ErrAssessmentNotFound):
		NotFound(w, "Assessment not found")
	case errors.Is(err, skill.ErrRequirementNotFound):
		NotFound(w, "Band requirement not found")
	case errors.Is(err, skill.ErrSkillNameExists):
		Conflict(w, "Skill name already exists")
	case errors.Is(err, skill.ErrPathwayNameExists):
		Conflict(w, "Pathway name already exists")
	case errors.Is(err, skill.ErrSkillAlreadyTagged):
		Conflict(w, "Skill already tagged to this pathway")
	case errors.Is(err, skill.ErrHistoryImmutable):
		Conflict(w, err.Error())
	case errors.Is(err, skill.ErrNoPathwayAssigned):
		BadRequest(w, "Employee has no pathway assigned", nil)
	case errors.Is(err, skill.ErrAssessorNotResolved):
		Forbidden(w, err.Error())

	// Level movement errors
	case errors.Is(err, levelmove.ErrMovementNotFound):
		NotFound(w, "Level movement not found")
	case errors.Is(err, levelmove.ErrMovementNotPending):
		Conflict(w, "Level movement is not pending")
	case errors.Is(err, levelmove.ErrMovementNotApproved):
		Conflict(w, "Level movement is not approved")
	case errors.Is(err, levelmove.ErrMovementExists):
		Conflict(w, "Employee already has a pending level movement")
	case errors.Is(err, levelmove.ErrSameBand):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, levelmove.ErrBandNotAdjacent):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, levelmove.ErrRequestNotAllowed):
		Forbidden(w, err.Error())

	// Project assignment errors
	case errors.Is(err, project.ErrAssignmentNotFound):
		NotFound(w, "Project assignment not found")
	case errors.Is(err, project.ErrSupervisorNotFound):
		NotFound(w, "Supervisor not found")
	case errors.Is(err, project.ErrAssignmentExists):
		Conflict(w, "Employee already assigned to this project")
	case errors.Is(err, project.ErrSelfSupervision):
		BadRequest(w, err.Error(), nil)

	// Audit domain errors
	case errors.Is(err, audit.ErrEntryImmutable):
		Conflict(w, err.Error())
	case errors.Is(err, audit.ErrInvalidWindow):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
