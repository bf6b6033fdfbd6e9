package domain

import "errors"

// Login-time credential failures. Absent user, inactive account, and password
// mismatch all collapse to ErrInvalidCredentials so the response never leaks
// which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTooManyAttempts is returned when the login throttle trips for a
// username+address pair.
var ErrTooManyAttempts = errors.New("too many login attempts")

// Token failure causes produced by the token issuer and the auth middleware.
// Each cause is internally distinct for logging; the user-facing message comes
// from a fixed translation table in the API layer.
var (
	ErrTokenMissing   = errors.New("authorization token missing")
	ErrTokenMalformed = errors.New("authorization token malformed")
	ErrTokenSignature = errors.New("authorization token signature invalid")
	ErrTokenExpired   = errors.New("authorization token expired")
	ErrUnknownSubject = errors.New("token subject unknown")
)

// Post-authentication failures.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
)

// Domain-write failures.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrEntityNotFound    = errors.New("entity not found")
	ErrEntityExists      = errors.New("entity already exists")
	ErrWeakPassword      = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidEntityType = errors.New("unknown entity type")
)
