package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// Registration errors.
var (
	// ErrDuplicateRegistration indicates the type already has a handler.
	ErrDuplicateRegistration = errors.New("dispatcher: duplicate registration")

	// ErrInvalidHandler indicates a definition that breaks the handler contract.
	ErrInvalidHandler = errors.New("dispatcher: invalid handler")

	// ErrMissingSetterMethod indicates a setter names a method the type lacks.
	ErrMissingSetterMethod = errors.New("dispatcher: missing setter method")

	// ErrRegistryFrozen indicates a registration after Seal.
	ErrRegistryFrozen = errors.New("dispatcher: registry is sealed")
)

// Dispatch errors.
var (
	// ErrInvalidInvocation indicates an operation with both or neither of a
	// type and an instance, or a method that does not fit the target.
	ErrInvalidInvocation = errors.New("dispatcher: invalid invocation")

	// ErrUnsupportedType indicates the most-derived type has no handler.
	ErrUnsupportedType = errors.New("dispatcher: unsupported type")

	// ErrConflictingActions indicates mutually exclusive actions were requested.
	ErrConflictingActions = errors.New("dispatcher: conflicting actions")

	// ErrUnknownActions indicates actions no handler on the chain consumed.
	ErrUnknownActions = errors.New("dispatcher: unknown actions")

	// ErrHandlerPanic indicates a handler panicked and was recovered.
	ErrHandlerPanic = errors.New("dispatcher: handler panic")
)

// RegistrationError describes a rejected handler definition.
type RegistrationError struct {
	Kind   error
	Type   *toolkit.Type
	Action string
	Detail string
}

func (e *RegistrationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Type != nil {
		sb.WriteString(" for ")
		sb.WriteString(e.Type.Name())
	}
	if e.Action != "" {
		fmt.Fprintf(&sb, " (action %q)", e.Action)
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap returns the sentinel.
func (e *RegistrationError) Unwrap() error {
	return e.Kind
}

func regErr(kind error, t *toolkit.Type, action, format string, args ...any) *RegistrationError {
	return &RegistrationError{Kind: kind, Type: t, Action: action, Detail: fmt.Sprintf(format, args...)}
}

// DispatchError describes a failed dispatch.
type DispatchError struct {
	Kind   error
	Method handler.Method
	// Type is the effective type, nil when it could not be resolved.
	Type *toolkit.Type
	// Handler is the handler type that failed, if any.
	Handler *toolkit.Type
	// Actions lists the offending action names, sorted.
	Actions []string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *DispatchError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	sb.WriteString(" for ")
	sb.WriteString(e.Method.String())
	if e.Type != nil {
		sb.WriteString(" on ")
		sb.WriteString(e.Type.Name())
	}
	if e.Handler != nil && e.Handler != e.Type {
		fmt.Fprintf(&sb, " (handler %s)", e.Handler.Name())
	}
	if len(e.Actions) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Actions, ", "))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the sentinel and the cause.
func (e *DispatchError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Handler stages reported by HandlerError.
const (
	StageCreate   = "create"
	StageBefore   = "before"
	StageSetter   = "setter"
	StageCallback = "callback"
	StageAfter    = "after"
	StagePanic    = "panic"
)

// HandlerError is a failure raised by handler code during dispatch.
type HandlerError struct {
	Handler *toolkit.Type
	Stage   string
	// Action is set for setter and callback failures.
	Action string
	Err    error
}

func (e *HandlerError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("dispatcher: %s %s %q: %v", e.Handler.Name(), e.Stage, e.Action, e.Err)
	}
	return fmt.Sprintf("dispatcher: %s %s: %v", e.Handler.Name(), e.Stage, e.Err)
}

// Unwrap returns the handler's error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
