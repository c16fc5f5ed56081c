package handler

import (
	"time"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

// Method is the kind of dispatch operation.
type Method uint8

const (
	// Create instantiates the target type and configures it.
	Create Method = iota
	// Configure mutates an existing instance.
	Configure
	// Compose attaches children to an existing container.
	Compose
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Create:
		return "create"
	case Configure:
		return "configure"
	case Compose:
		return "compose"
	default:
		return "unknown"
	}
}

// Operation is one request to the dispatch engine. Exactly one of Type
// (for Create) or Widget (for Configure and Compose) is set.
type Operation struct {
	Method  Method
	Type    *toolkit.Type
	Widget  toolkit.Object
	Actions action.Map
}

// Outcome describes a finished dispatch.
type Outcome struct {
	// ID identifies the operation in logs.
	ID string

	// Target is the effective type, nil if it could not be resolved.
	Target *toolkit.Type

	// Widget is the resulting instance, nil on error.
	Widget toolkit.Object

	// Handlers lists the handler types that ran, in order.
	Handlers []*toolkit.Type

	// Err is the dispatch error, if any.
	Err error

	// Duration is the wall time of the dispatch.
	Duration time.Duration
}

// OK reports whether the dispatch succeeded.
func (o *Outcome) OK() bool {
	return o.Err == nil
}
