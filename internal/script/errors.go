package script

import "errors"

var (
	// ErrClosed is returned when operating on a closed runtime.
	ErrClosed = errors.New("script: runtime is closed")

	// ErrTimeout is returned when a call runs longer than the timeout.
	ErrTimeout = errors.New("script: execution timeout")

	// ErrCallLimit is returned when a call makes too many ui calls.
	ErrCallLimit = errors.New("script: call limit exceeded")

	// ErrNoFunction is returned when a callback names no Lua function.
	ErrNoFunction = errors.New("script: no such function")

	// ErrNoHost is returned by ui.set and ui.add before a host is attached.
	ErrNoHost = errors.New("script: no layout attached")
)
