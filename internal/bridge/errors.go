package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both missing bridges and bridges owned by someone else.
	ErrNotFound = errors.New("entry not found")
	// ErrServer marks any failure whose cause must not reach the client.
	ErrServer = errors.New("server error")
)

// ValidationError reports rejected user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// serverError tags err with ErrServer while keeping the cause for logs.
func serverError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrServer, op, err)
}
