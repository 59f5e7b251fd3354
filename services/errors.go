package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("you do not own this question")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyVoted       = errors.New("you already voted on this question")
	ErrThrottled          = errors.New("too many failed login attempts, try again later")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
