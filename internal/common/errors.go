// Package common defines shared constants and sentinel errors used across
// the layers of TaskKeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrServiceUnavailable = errors.New("service unavailable")

	// Validation / field-constraint errors.
	ErrValidation = errors.New("validation error")

	// Registration errors.
	ErrAlreadyExists = errors.New("already exists")

	// Auth errors (invalid, malformed or expired token).
	ErrUnauthenticated = errors.New("unauthenticated")
)
