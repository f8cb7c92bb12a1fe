package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid executor context")

	// Payment errors
	ErrGatewayUnavailable = errors.New("checkout gateway unavailable")
	ErrMissingReference   = errors.New("checkout reported success without a reference")
	// ErrRecordingFailed marks the worst branch of the flow: the provider
	// verified the charge as settled but the local record could not be
	// written. Money has moved without a matching row.
	ErrRecordingFailed = errors.New("verified payment could not be recorded")

	ErrUserLocked = errors.New("another payment attempt is in progress for this user")
)
