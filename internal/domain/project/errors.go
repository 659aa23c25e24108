package project

import "errors"

var (
	ErrAssignmentNotFound = errors.New("project assignment not found")
	ErrAssignmentExists   = errors.New("employee already assigned to this project")
	ErrSupervisorNotFound = errors.New("supervisor not found")
	ErrSelfSupervision    = errors.New("employee cannot supervise their own assignment")
)
