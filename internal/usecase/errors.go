package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrOperationRejected marks a business-rule violation: the request was
	// well-formed but the league rules forbid it (deadline passed, round
	// conflict, duplicate override). Always wrapped with a reason.
	ErrOperationRejected     = errors.New("operation rejected")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
