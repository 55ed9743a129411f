package domain

import "errors"

// Sentinel errors shared across services and the HTTP error handler. Each maps
// to exactly one HTTP status; see internal/api/error_handler.go.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")

	// ErrRestrictedTaskFields is returned when an assignee with the USER role
	// supplies any task field other than status.
	ErrRestrictedTaskFields = errors.New("users may only update task status")
)
