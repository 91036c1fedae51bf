package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a field that failed a type, shape, required or format check.
// Nothing is persisted when a save returns a ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for field with the given message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UniqueConstraintError is returned by a store when a unique index is violated,
// e.g. an event slug or a (event_id, email) booking pair that already exists.
type UniqueConstraintError struct {
	Collection string
	Index      string
	Err        error
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%s: duplicate value for unique index %s", e.Collection, e.Index)
}

func (e *UniqueConstraintError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when a required configuration value is missing.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration %s", e.Key)
}

// ConnectionError wraps a failure to establish the database connection.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
