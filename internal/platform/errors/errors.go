package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidation       = errors.New("validation failed")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrPersistence      = errors.New("persistence failure")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnavailable      = errors.New("unavailable")
)
