// Package hook provides extensible pre/post dispatch hooks for the dispatch engine.
package hook

import (
	"errors"

	"github.com/dshills/actkit/dispatcher/handler"
)

// ErrDispatchVetoed indicates a pre-dispatch hook refused the operation.
var ErrDispatchVetoed = errors.New("hook: dispatch vetoed")

// Hook is the base interface for all dispatch hooks.
type Hook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority.
	// Higher values run first for pre-hooks, last for post-hooks.
	// Standard priorities:
	//   1000+ = system/critical hooks
	//   500-999 = framework hooks
	//   0-499 = user hooks
	Priority() int
}

// PreDispatchHook is called before an operation is dispatched.
type PreDispatchHook interface {
	Hook

	// PreDispatch is called before dispatch.
	// It may modify the operation's actions.
	// A non-nil error vetoes the dispatch.
	PreDispatch(op *handler.Operation) error
}

// PostDispatchHook is called after an operation is dispatched.
type PostDispatchHook interface {
	Hook

	// PostDispatch is called after dispatch completes, on success and on failure.
	PostDispatch(op *handler.Operation, out *handler.Outcome)
}

// PreDispatchFunc wraps a function as a PreDispatchHook.
type PreDispatchFunc struct {
	name     string
	priority int
	fn       func(op *handler.Operation) error
}

// NewPreDispatchFunc creates a new PreDispatchFunc hook.
func NewPreDispatchFunc(name string, priority int, fn func(op *handler.Operation) error) *PreDispatchFunc {
	return &PreDispatchFunc{
		name:     name,
		priority: priority,
		fn:       fn,
	}
}

// Name implements Hook.
func (f *PreDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PreDispatchFunc) Priority() int { return f.priority }

// PreDispatch implements PreDispatchHook.
func (f *PreDispatchFunc) PreDispatch(op *handler.Operation) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(op)
}

// PostDispatchFunc wraps a function as a PostDispatchHook.
type PostDispatchFunc struct {
	name     string
	priority int
	fn       func(op *handler.Operation, out *handler.Outcome)
}

// NewPostDispatchFunc creates a new PostDispatchFunc hook.
func NewPostDispatchFunc(name string, priority int, fn func(op *handler.Operation, out *handler.Outcome)) *PostDispatchFunc {
	return &PostDispatchFunc{
		name:     name,
		priority: priority,
		fn:       fn,
	}
}

// Name implements Hook.
func (f *PostDispatchFunc) Name() string { return f.name }

// Priority implements Hook.
func (f *PostDispatchFunc) Priority() int { return f.priority }

// PostDispatch implements PostDispatchHook.
func (f *PostDispatchFunc) PostDispatch(op *handler.Operation, out *handler.Outcome) {
	if f.fn != nil {
		f.fn(op, out)
	}
}

// CombinedHook implements both PreDispatchHook and PostDispatchHook.
type CombinedHook interface {
	PreDispatchHook
	PostDispatchHook
}
