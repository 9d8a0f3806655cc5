package domain

import "errors"

var (
	// ErrMalformedRequest signals missing or structurally invalid client input.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// secret. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")

	ErrForbidden             = errors.New("access forbidden")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountExists         = errors.New("account already exists")
	ErrInvalidApprovalStatus = errors.New("invalid approval status")

	// ErrStoreUnavailable wraps failures reaching the credential or session
	// backing store. Surfaced as a generic server error, never retried here.
	ErrStoreUnavailable = errors.New("backing store unavailable")
)
