package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates a precondition on the operation's input failed.
	// State is left unchanged.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates an operation requiring a signed-in user was
	// invoked without one.
	ErrUnauthenticated = errors.New("authentication required")
)
