package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates a setting with an unacceptable value.
var ErrValidationFailed = errors.New("config: validation failed")

// ValidationError describes one invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "logging.level".
	Path string
	// Value is the rejected value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s = %v: %s", e.Path, e.Value, e.Message)
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
