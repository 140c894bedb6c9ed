package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEventType = errors.New("invalid event_type")
	ErrInvalidURL       = errors.New("invalid url")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
