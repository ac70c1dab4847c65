package domain

import "errors"

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrInstanceNotFound     = errors.New("instance not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTemplate      = errors.New("invalid template")

	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrInstanceNotActive      = errors.New("instance is not active")
	ErrDependenciesIncomplete = errors.New("dependencies not completed")
	ErrTemplateInUse          = errors.New("template is referenced by active instances")
)
