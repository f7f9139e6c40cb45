// Package common defines shared constants and sentinel errors used across
// ticketstore layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal        = errors.New("internal error")
	ErrUnauthenticated = errors.New("unauthenticated")

	// Credential errors. ErrInvalidCredentials covers a wrong password,
	// ErrMissingCredential a request with no usable Authorization header.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("missing bearer token")

	// Token lifecycle errors. Expired means the signature checked out but
	// the validity window has passed; invalid covers everything else.
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Request payload validation errors.
	ErrValidation = errors.New("validation error")
)
