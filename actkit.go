// Package actkit configures widgets from declarative action maps.
//
// An action map names the state a widget should end up in:
//
//	win, err := actkit.New(actkit.WindowType, actkit.Actions{
//		"title":         "Hi",
//		"default_width": 200,
//		"connect":       map[string]any{"destroy": onDestroy},
//	})
//
// Each action is routed to the handler of the most-derived type on the
// widget's ancestor chain that recognizes it. Actions no handler consumes
// are reported as errors.
//
// Handler tables for new widget families are written against Define and
// Base and served next to the standard ones by an engine built with
// WithDefinitions:
//
//	type gaugeHandler struct{ actkit.Base }
//
//	def := actkit.Define(gaugeType, func() *gaugeHandler { return &gaugeHandler{} }).
//		Set("level").
//		Definition()
//	e, err := actkit.NewEngine(actkit.WithDefinitions(def))
package actkit

import (
	"sync"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/internal/handlers"
	"github.com/dshills/actkit/toolkit"
)

// Actions maps action names to their arguments.
type Actions = action.Map

// Widget is any toolkit object.
type Widget = toolkit.Object

// Type identifies a widget type or a capability.
type Type = toolkit.Type

// Handler contract for handler-table authors.
type (
	Handler    = handler.Handler
	Base       = handler.Base
	Context    = handler.Context
	Definition = handler.Definition

	// Builder assembles a Definition.
	Builder[H Handler] = handler.Builder[H]
)

// ErrDecline is returned by a callback that leaves its action for a
// less-derived handler.
var ErrDecline = handler.ErrDecline

// Standard types.
var (
	ObjectType         = toolkit.ObjectType
	WidgetType         = toolkit.WidgetType
	ContainerType      = toolkit.ContainerType
	BinType            = toolkit.BinType
	WindowType         = toolkit.WindowType
	ScrolledWindowType = toolkit.ScrolledWindowType
	ButtonType         = toolkit.ButtonType
	BoxType            = toolkit.BoxType
	VBoxType           = toolkit.VBoxType
	HBoxType           = toolkit.HBoxType
	TreeViewType       = toolkit.TreeViewType
	LabelType          = toolkit.LabelType
	EntryType          = toolkit.EntryType
	StatusIconType     = toolkit.StatusIconType
	AdjustmentType     = toolkit.AdjustmentType

	SortableCapability = toolkit.SortableCapability
)

// Lookup returns the type declared under name.
func Lookup(name string) (*Type, bool) {
	return toolkit.Lookup(name)
}

// Define starts a handler definition for typ, a type or a capability.
func Define[H Handler](typ *Type, newFn func() H) *Builder[H] {
	return handler.Define(typ, newFn)
}

type engineOptions struct {
	defs     []*Definition
	dispatch []dispatcher.Option
}

// Option configures NewEngine.
type Option func(*engineOptions)

// WithDefinitions serves defs next to the standard handlers.
func WithDefinitions(defs ...*Definition) Option {
	return func(o *engineOptions) { o.defs = append(o.defs, defs...) }
}

// WithEngineOptions passes options to the dispatch engine.
func WithEngineOptions(opts ...dispatcher.Option) Option {
	return func(o *engineOptions) { o.dispatch = append(o.dispatch, opts...) }
}

var (
	defaultOnce   sync.Once
	defaultEngine *dispatcher.Engine
	defaultErr    error
)

// Default returns the process-wide engine serving the standard handlers.
// It is built on first use.
func Default() (*dispatcher.Engine, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = NewEngine()
	})
	return defaultEngine, defaultErr
}

// NewEngine builds an engine serving the standard handlers and any given
// with WithDefinitions.
func NewEngine(opts ...Option) (*dispatcher.Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	reg := dispatcher.NewRegistry()
	if err := handlers.Register(reg); err != nil {
		return nil, err
	}
	for _, def := range o.defs {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	table, err := reg.Seal()
	if err != nil {
		return nil, err
	}
	return dispatcher.New(table, o.dispatch...), nil
}

// New creates a widget of typ configured by actions.
func New(typ *Type, actions Actions) (Widget, error) {
	e, err := Default()
	if err != nil {
		return nil, err
	}
	return e.Create(typ, actions)
}

// Set configures an existing widget.
func Set(w Widget, actions Actions) (Widget, error) {
	e, err := Default()
	if err != nil {
		return nil, err
	}
	return e.Configure(w, actions)
}

// Add attaches children to a container.
func Add(container Widget, actions Actions) (Widget, error) {
	e, err := Default()
	if err != nil {
		return nil, err
	}
	return e.Compose(container, actions)
}
