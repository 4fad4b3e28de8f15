package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Validation failures carry a field-specific message wrapped around
	// this sentinel, e.g. "email is required: validation failed".
	ErrValidationFailed = errors.New("validation failed")

	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrSessionNotFound      = errors.New("session not found")

	// Returned when an approval races another approve or reject: the
	// registration exists but is no longer pending.
	ErrRegistrationNotPending = errors.New("registration is not pending")

	ErrInvalidCredentials = errors.New("invalid email or access code")
)
