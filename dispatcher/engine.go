package dispatcher

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/dispatcher/hook"
	"github.com/dshills/actkit/toolkit"
)

// Engine runs Create, Configure and Compose operations against a sealed
// Table. It holds no per-operation state and is safe for concurrent use
// as long as the widgets involved are not shared between goroutines.
type Engine struct {
	table   *Table
	config  Config
	logger  zerolog.Logger
	hooks   *hook.Manager
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the engine configuration.
func WithConfig(c Config) Option {
	return func(e *Engine) { e.config = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHooks sets the hook manager.
func WithHooks(m *hook.Manager) Option {
	return func(e *Engine) { e.hooks = m }
}

// New creates an engine dispatching through table.
func New(table *Table, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "dispatcher").Logger()
	if e.hooks == nil {
		e.hooks = hook.NewManager()
	}
	if e.config.EnableMetrics {
		e.metrics = NewMetrics()
	}
	return e
}

// Table returns the dispatch table.
func (e *Engine) Table() *Table { return e.table }

// Hooks returns the hook manager.
func (e *Engine) Hooks() *hook.Manager { return e.hooks }

// Metrics returns the metrics collector, nil unless enabled.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Create builds an instance of typ configured with actions.
func (e *Engine) Create(typ *toolkit.Type, actions action.Map) (toolkit.Object, error) {
	return e.Dispatch(handler.Operation{Method: handler.Create, Type: typ, Actions: actions})
}

// Configure applies actions to an existing instance and returns it.
func (e *Engine) Configure(obj toolkit.Object, actions action.Map) (toolkit.Object, error) {
	return e.Dispatch(handler.Operation{Method: handler.Configure, Widget: obj, Actions: actions})
}

// Compose applies child-attaching actions to a container and returns it.
func (e *Engine) Compose(container toolkit.Object, actions action.Map) (toolkit.Object, error) {
	return e.Dispatch(handler.Operation{Method: handler.Compose, Widget: container, Actions: actions})
}

// Dispatch runs op and returns the resulting widget. On error the widget
// is nil. Handlers that ran before the failure may have modified the
// widget already; nothing is rolled back.
func (e *Engine) Dispatch(op handler.Operation) (toolkit.Object, error) {
	out := e.Execute(op)
	return out.Widget, out.Err
}

// Execute runs op and reports its full outcome.
func (e *Engine) Execute(op handler.Operation) *handler.Outcome {
	start := time.Now()
	out := &handler.Outcome{ID: uuid.NewString()}
	if op.Actions == nil {
		op.Actions = action.Map{}
	}
	log := e.logger.With().Str("op", out.ID).Stringer("method", op.Method).Logger()

	if err := e.hooks.RunPreDispatch(&op); err != nil {
		out.Err = err
	} else {
		out.Widget, out.Err = e.run(&op, out, log)
	}

	out.Duration = time.Since(start)
	if out.Err != nil {
		out.Widget = nil
	}
	e.hooks.RunPostDispatch(&op, out)
	e.record(&op, out, log)
	return out
}

func (e *Engine) run(op *handler.Operation, out *handler.Outcome, log zerolog.Logger) (toolkit.Object, error) {
	target, err := resolveTarget(op)
	if err != nil {
		return nil, err
	}
	out.Target = target

	p, ok := e.table.plans[target]
	if !ok {
		return nil, &DispatchError{Kind: ErrUnsupportedType, Method: op.Method, Type: target}
	}
	if !isNil(op.Widget) && reflect.TypeOf(op.Widget) != p.goType {
		return nil, &DispatchError{
			Kind: ErrInvalidInvocation, Method: op.Method, Type: target,
			Cause: fmt.Errorf("instance is %T, type %s builds %s", op.Widget, target.Name(), p.goType),
		}
	}
	if c, found := p.checkConflicts(op.Actions); found {
		return nil, &DispatchError{
			Kind: ErrConflictingActions, Method: op.Method, Type: target,
			Handler: c.handler, Actions: sortedPair(c.pair),
		}
	}

	ctx := &handler.Context{
		Method:  op.Method,
		Target:  target,
		Widget:  op.Widget,
		Actions: op.Actions,
		Logger:  log,
	}

	for i, s := range p.steps {
		typ := s.binding.def.Type
		h := s.binding.def.New()
		ctx.Type = typ
		out.Handlers = append(out.Handlers, typ)

		if i == 0 && op.Method == handler.Create {
			obj, err := e.create(h, ctx, p)
			if err != nil {
				return nil, err
			}
			ctx.Widget = obj
		}

		if err := e.guard(typ, func() error { return route(s, h, ctx) }); err != nil {
			return nil, e.wrap(op.Method, target, err)
		}
	}

	if len(op.Actions) > 0 {
		return nil, &DispatchError{
			Kind: ErrUnknownActions, Method: op.Method, Type: target,
			Actions: op.Actions.Keys(),
		}
	}
	return ctx.Widget, nil
}

// create runs the Create hook of the most-derived handler and checks the
// instance it returns.
func (e *Engine) create(h handler.Handler, ctx *handler.Context, p *plan) (toolkit.Object, error) {
	typ := ctx.Type
	var obj toolkit.Object
	err := e.guard(typ, func() error {
		var err error
		obj, err = h.Create(ctx)
		return err
	})
	if err != nil {
		if _, ok := err.(*HandlerError); !ok {
			err = &HandlerError{Handler: typ, Stage: StageCreate, Err: err}
		}
		return nil, e.wrap(ctx.Method, p.target, err)
	}
	if isNil(obj) {
		return nil, &DispatchError{
			Kind: ErrInvalidHandler, Method: ctx.Method, Type: p.target, Handler: typ,
			Cause: fmt.Errorf("create returned no instance"),
		}
	}
	if obj.Type() != p.target || reflect.TypeOf(obj) != p.goType {
		return nil, &DispatchError{
			Kind: ErrInvalidHandler, Method: ctx.Method, Type: p.target, Handler: typ,
			Cause: fmt.Errorf("create returned %s (%T)", obj.Type(), obj),
		}
	}
	return obj, nil
}

// guard runs fn, converting a panic into ErrHandlerPanic when recovery is on.
func (e *Engine) guard(typ *toolkit.Type, fn func() error) (err error) {
	if !e.config.RecoverFromPanic {
		return fn()
	}
	defer func() {
		if r := recover(); r != nil {
			if e.metrics != nil {
				e.metrics.RecordPanic()
			}
			e.logger.Error().
				Str("handler", typ.Name()).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("handler panic recovered")
			err = &HandlerError{Handler: typ, Stage: StagePanic, Err: fmt.Errorf("%w: %v", ErrHandlerPanic, r)}
		}
	}()
	return fn()
}

// wrap lifts a handler failure into a DispatchError when the handler
// reported one of the dispatch sentinels itself.
func (e *Engine) wrap(method handler.Method, target *toolkit.Type, err error) error {
	he, ok := err.(*HandlerError)
	if !ok {
		return err
	}
	for _, kind := range []error{ErrConflictingActions, ErrUnknownActions, ErrInvalidInvocation} {
		if !errors.Is(he.Err, kind) {
			continue
		}
		de := &DispatchError{Kind: kind, Method: method, Type: target, Handler: he.Handler}
		if he.Err != kind {
			de.Cause = he.Err
		}
		return de
	}
	return err
}

func (e *Engine) record(op *handler.Operation, out *handler.Outcome, log zerolog.Logger) {
	typeName := ""
	if out.Target != nil {
		typeName = out.Target.Name()
	}
	if e.metrics != nil {
		e.metrics.RecordDispatch(typeName, op.Method, out.Duration, out.Err)
	}
	if !e.config.LogDispatch {
		return
	}
	if out.Err != nil {
		log.Warn().Str("type", typeName).Err(out.Err).Msg("dispatch failed")
		return
	}
	handlers := make([]string, len(out.Handlers))
	for i, t := range out.Handlers {
		handlers[i] = t.Name()
	}
	log.Debug().
		Str("type", typeName).
		Strs("handlers", handlers).
		Dur("duration", out.Duration).
		Msg("dispatched")
}

// resolveTarget returns the effective type of op.
func resolveTarget(op *handler.Operation) (*toolkit.Type, error) {
	invalid := func(detail string) error {
		return &DispatchError{Kind: ErrInvalidInvocation, Method: op.Method, Cause: fmt.Errorf("%s", detail)}
	}

	hasType := op.Type != nil
	hasWidget := !isNil(op.Widget)
	switch {
	case hasType && hasWidget:
		return nil, invalid("both a type and an instance given")
	case !hasType && !hasWidget:
		return nil, invalid("neither a type nor an instance given")
	}

	switch op.Method {
	case handler.Create:
		if !hasType {
			return nil, invalid("create needs a type")
		}
		return op.Type, nil
	case handler.Configure, handler.Compose:
		if !hasWidget {
			return nil, invalid(op.Method.String() + " needs an instance")
		}
		t := op.Widget.Type()
		if t == nil {
			return nil, invalid("instance has no type")
		}
		return t, nil
	default:
		return nil, invalid("unknown method")
	}
}

func sortedPair(p [2]string) []string {
	if p[0] > p[1] {
		return []string{p[1], p[0]}
	}
	return []string{p[0], p[1]}
}
