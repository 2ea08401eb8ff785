package usecase

import "errors"

var (
	// ErrProjectNotFound is returned when a project does not exist or is not owned by the caller.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidProject is returned when required project fields are missing.
	ErrInvalidProject = errors.New("invalid project data")
)
