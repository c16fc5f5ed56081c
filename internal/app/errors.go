// Package app wires configuration, the dispatch engine, scripts and
// layouts into the operations of the actkit command.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoLayout indicates an operation that needs a layout file.
	ErrNoLayout = errors.New("app: no layout file")

	// ErrNotLoaded indicates an operation before Load succeeded.
	ErrNotLoaded = errors.New("app: layout not loaded")
)

// InitError reports a component that failed to initialize.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("app: initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
