// Package handler defines the contract implemented by per-type action
// handlers and the definitions used to register them.
package handler

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

// ErrDecline is returned by a callback that leaves its action for a
// less-derived handler.
var ErrDecline = errors.New("handler: action declined")

// Handler runs the lifecycle of one type during one dispatch.
// A new Handler is created for every dispatch and never reused, so it may
// keep per-dispatch state in its fields.
type Handler interface {
	// Create builds the instance. Only called on the most-derived
	// handler of a Create dispatch.
	Create(ctx *Context) (toolkit.Object, error)

	// Before runs before the handler's setters and callbacks.
	Before(ctx *Context) error

	// After runs once the handler's setters and callbacks are applied.
	After(ctx *Context) error
}

// Base provides the default hooks. Embed it in handler structs.
type Base struct{}

// Create default-constructs the served type.
func (Base) Create(ctx *Context) (toolkit.Object, error) {
	return ctx.Type.New(), nil
}

// Before does nothing.
func (Base) Before(*Context) error { return nil }

// After does nothing.
func (Base) After(*Context) error { return nil }

// Context is the view a handler has of the running dispatch.
type Context struct {
	// Method is the dispatch method.
	Method Method

	// Type is the type the handler is registered for.
	Type *toolkit.Type

	// Target is the effective (most-derived) type of the dispatch.
	Target *toolkit.Type

	// Widget is the live instance. Nil only inside Create.
	Widget toolkit.Object

	// Actions holds the actions not yet consumed. Hooks may pop entries.
	Actions action.Map

	// Logger is scoped to the dispatch operation.
	Logger zerolog.Logger
}

// IsCreate reports whether the dispatch constructs the widget.
func (c *Context) IsCreate() bool { return c.Method == Create }

// IsConfigure reports whether the dispatch mutates an existing widget.
func (c *Context) IsConfigure() bool { return c.Method == Configure }

// IsCompose reports whether the dispatch attaches children.
func (c *Context) IsCompose() bool { return c.Method == Compose }
