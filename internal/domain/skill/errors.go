package skill

import "errors"

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillNameExists     = errors.New("skill name already exists")
	ErrPathwayNotFound     = errors.New("pathway not found")
	ErrPathwayNameExists   = errors.New("pathway name already exists")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrSkillAlreadyTagged  = errors.New("skill already tagged to this pathway")
	ErrHistoryImmutable    = errors.New("assessment history rows cannot be modified")
	ErrNoPathwayAssigned   = errors.New("employee has no pathway assigned")
	ErrRequirementNotFound = errors.New("band requirement not found")
	ErrAssessorNotResolved = errors.New("assessor has no employee record")
)
