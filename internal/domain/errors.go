package domain

import "errors"

// Sentinel errors shared across the workflow. Repositories translate
// storage-native failures (sql.ErrNoRows, unique violations) into these so
// services and controllers never see a driver error.
var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates missing or malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden indicates the authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a duplicate write for an (event, user) pair:
	// either a pre-check found the row or the unique constraint rejected the
	// insert. Both are surfaced identically as a conflict.
	ErrAlreadyExists = errors.New("already exists")

	// ErrOrderingViolation indicates a participation step attempted out of
	// order, e.g. attendance before registration.
	ErrOrderingViolation = errors.New("ordering violation")
)
