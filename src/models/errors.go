package models

import "errors"

// Domain-level sentinel errors for business logic
// These errors should not contain HTTP-specific information

var (
	// ErrSessionNotFound indicates that a session with the given ID does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidSessionStatus indicates that a status value is outside the
	// SCHEDULED/WAITING/COMPLETED/CANCELLED enumeration
	ErrInvalidSessionStatus = errors.New("invalid session status")
)
