package handler

import (
	"strings"
	"unicode"

	"github.com/dshills/actkit/toolkit"
)

// CallbackFunc handles one action for a handler instance.
type CallbackFunc func(h Handler, ctx *Context, arg any) error

// SetterSpec binds an action to a single-argument method of the target type.
type SetterSpec struct {
	Action string
	// Method is the Go method name. Empty derives it from Action.
	Method string
}

// MethodName returns the method the setter calls: Method if set,
// otherwise "Set" followed by the camel-cased action name
// ("default_width" -> "SetDefaultWidth").
func (s SetterSpec) MethodName() string {
	if s.Method != "" {
		return s.Method
	}
	return "Set" + CamelCase(s.Action)
}

// CamelCase converts a snake_case action name to CamelCase.
func CamelCase(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Definition describes the handler registered for one type.
type Definition struct {
	// Type is the served type.
	Type *toolkit.Type

	// New creates a fresh handler for each dispatch.
	New func() Handler

	// Setters is the setter table.
	Setters []SetterSpec

	// Callbacks maps action names to callbacks.
	Callbacks map[string]CallbackFunc

	// Conflicts lists action pairs that cannot be requested together.
	Conflicts [][2]string
}

// Actions returns every action the definition consumes, setters first.
func (d *Definition) Actions() []string {
	out := make([]string, 0, len(d.Setters)+len(d.Callbacks))
	for _, s := range d.Setters {
		out = append(out, s.Action)
	}
	for name := range d.Callbacks {
		out = append(out, name)
	}
	return out
}

// Builder assembles a Definition with callbacks typed to the handler.
type Builder[H Handler] struct {
	def *Definition
}

// Define starts a definition for typ whose handlers are built by newFn.
func Define[H Handler](typ *toolkit.Type, newFn func() H) *Builder[H] {
	return &Builder[H]{
		def: &Definition{
			Type:      typ,
			New:       func() Handler { return newFn() },
			Callbacks: make(map[string]CallbackFunc),
		},
	}
}

// Set adds setters whose methods are derived from the action names.
func (b *Builder[H]) Set(actions ...string) *Builder[H] {
	for _, a := range actions {
		b.def.Setters = append(b.def.Setters, SetterSpec{Action: a})
	}
	return b
}

// SetVia adds a setter calling the named method.
func (b *Builder[H]) SetVia(action, method string) *Builder[H] {
	b.def.Setters = append(b.def.Setters, SetterSpec{Action: action, Method: method})
	return b
}

// Callback binds an action to a handler method, usually a method
// expression such as (*WindowHandler).OnActionResize.
func (b *Builder[H]) Callback(action string, fn func(H, *Context, any) error) *Builder[H] {
	if fn == nil {
		b.def.Callbacks[action] = nil
		return b
	}
	b.def.Callbacks[action] = func(h Handler, ctx *Context, arg any) error {
		return fn(h.(H), ctx, arg)
	}
	return b
}

// Conflict declares two actions that cannot be requested together.
func (b *Builder[H]) Conflict(first, second string) *Builder[H] {
	b.def.Conflicts = append(b.def.Conflicts, [2]string{first, second})
	return b
}

// Definition returns the assembled definition.
func (b *Builder[H]) Definition() *Definition {
	return b.def
}
