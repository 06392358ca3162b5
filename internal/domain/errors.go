package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyJoined     = errors.New("already joined event")
	ErrUnavailable       = errors.New("service unavailable")
)
