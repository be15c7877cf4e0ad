package usecase

import "errors"

// Services wrap these with %w; the HTTP layer maps each to a status code.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
