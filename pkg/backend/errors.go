package backend

import "errors"

// Sentinel errors recovered into status codes at the HTTP boundary.
var (
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("domain is already taken")
	ErrForbidden     = errors.New("permission denied")
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("icon storage is not configured")
)
