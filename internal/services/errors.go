package services

import "errors"

// Sentinel errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrNoCV                 = errors.New("No CV found")
	ErrProfileUpdate        = errors.New("upload succeeded, profile update failed")
	ErrConfirmationRequired = errors.New("delete requires a valid confirmation token")
	ErrInvalidTransition    = errors.New("agent is not in a state that accepts this step")
)
