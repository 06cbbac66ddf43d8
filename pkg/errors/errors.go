package errors

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrAuth          = errors.New("invalid credentials")
	ErrNotFound      = errors.New("report not found")
	ErrInvalidAction = errors.New("invalid action")
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrPrecondition  = errors.New("version precondition failed")
	ErrConfiguration = errors.New("missing configuration")
)
