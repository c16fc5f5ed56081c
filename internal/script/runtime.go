package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

const uiModule = "ui"

// Default limits of one top-level call.
const (
	DefaultTimeout   = time.Second
	DefaultCallLimit = 10_000
)

// Host is the layout a script acts on.
type Host interface {
	// Apply configures the widget with the given id.
	Apply(id string, actions action.Map) error
	// Compose attaches children to the container with the given id.
	Compose(id string, actions action.Map) error
	// IDOf returns the layout id of obj.
	IDOf(obj toolkit.Object) (string, bool)
}

// Runtime owns one sandboxed Lua state.
type Runtime struct {
	L       *lua.LState
	sandbox *sandbox
	bridge  *bridge

	timeout time.Duration
	logger  zerolog.Logger
	host    Host
	onQuit  func()

	depth  int
	quit   bool
	closed bool
	errs   []error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout bounds the run time of one top-level call; 0 disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) { r.timeout = d }
}

// WithCallLimit bounds the ui calls of one top-level call; 0 disables it.
func WithCallLimit(n int) Option {
	return func(r *Runtime) { r.sandbox.callLimit = n }
}

// WithLogger sets the logger used by ui.log and for callback failures.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithQuit sets the function run by ui.quit.
func WithQuit(fn func()) Option {
	return func(r *Runtime) { r.onQuit = fn }
}

// New creates a runtime with the ui module installed.
func New(opts ...Option) *Runtime {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	r := &Runtime{
		L:       L,
		sandbox: newSandbox(L, DefaultCallLimit),
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	r.bridge = &bridge{L: L, fn: r.luaCallback, object: r.objectValue}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("component", "script").Logger()

	r.sandbox.install()
	r.installUI()
	return r
}

// SetHost attaches the layout reached by ui.set and ui.add.
func (r *Runtime) SetHost(h Host) {
	r.host = h
}

// LoadFile runs a script file.
func (r *Runtime) LoadFile(path string) error {
	fn, err := r.L.LoadFile(path)
	if err != nil {
		return fmt.Errorf("script: loading %s: %w", path, err)
	}
	return r.call(fn)
}

// LoadString runs a chunk of Lua source.
func (r *Runtime) LoadString(code string) error {
	fn, err := r.L.LoadString(code)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return r.call(fn)
}

// HasFunction reports whether a global function is defined under name.
func (r *Runtime) HasFunction(name string) bool {
	_, ok := r.L.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Callback returns a signal callback calling the global function name as
// name(widget_id, signal, ...). The function is looked up on every call
// so reloaded scripts take effect.
func (r *Runtime) Callback(name, signal string) (toolkit.Callback, error) {
	if !r.HasFunction(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoFunction, name)
	}
	return func(obj toolkit.Object, args ...any) {
		fn, ok := r.L.GetGlobal(name).(*lua.LFunction)
		if !ok {
			r.report(fmt.Errorf("%w: %s", ErrNoFunction, name))
			return
		}
		r.invoke(fn, name, obj, signal, args)
	}, nil
}

// Call calls the global function name with Go arguments.
func (r *Runtime) Call(name string, args ...any) error {
	fn, ok := r.L.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoFunction, name)
	}
	lv := make([]lua.LValue, len(args))
	for i, a := range args {
		lv[i] = r.bridge.toLua(a)
	}
	return r.call(fn, lv...)
}

// QuitRequested reports whether a script called ui.quit.
func (r *Runtime) QuitRequested() bool {
	return r.quit
}

// Errors returns the failures of callbacks run so far.
func (r *Runtime) Errors() []error {
	return append([]error(nil), r.errs...)
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// call runs fn. Limits apply to the outermost call only; callbacks fired
// by ui calls share the budget of the call that triggered them.
func (r *Runtime) call(fn *lua.LFunction, args ...lua.LValue) error {
	if r.closed {
		return ErrClosed
	}

	var ctx context.Context
	if r.depth == 0 {
		r.sandbox.reset()
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(context.Background(), r.timeout)
			defer cancel()
			r.L.SetContext(ctx)
			defer r.L.RemoveContext()
		}
	}
	r.depth++
	defer func() { r.depth-- }()

	err := r.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err == nil {
		return nil
	}
	switch {
	case ctx != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case r.sandbox.exceeded():
		return fmt.Errorf("%w: %v", ErrCallLimit, err)
	default:
		return fmt.Errorf("script: %w", err)
	}
}

func (r *Runtime) invoke(fn *lua.LFunction, name string, obj toolkit.Object, signal string, args []any) {
	lv := make([]lua.LValue, 0, len(args)+2)
	lv = append(lv, r.objectValue(obj), lua.LString(signal))
	for _, a := range args {
		lv = append(lv, r.bridge.toLua(a))
	}
	if err := r.call(fn, lv...); err != nil {
		r.report(fmt.Errorf("%s on %s: %w", name, signal, err))
	}
}

func (r *Runtime) report(err error) {
	r.errs = append(r.errs, err)
	r.logger.Error().Err(err).Msg("callback failed")
}

// luaCallback turns a Lua function value into a signal callback. The
// signal name is not known to it and is passed as nil.
func (r *Runtime) luaCallback(fn *lua.LFunction) any {
	return toolkit.Callback(func(obj toolkit.Object, args ...any) {
		lv := make([]lua.LValue, 0, len(args)+2)
		lv = append(lv, r.objectValue(obj), lua.LNil)
		for _, a := range args {
			lv = append(lv, r.bridge.toLua(a))
		}
		if err := r.call(fn, lv...); err != nil {
			r.report(fmt.Errorf("inline callback: %w", err))
		}
	})
}

func (r *Runtime) objectValue(obj toolkit.Object) lua.LValue {
	if obj == nil {
		return lua.LNil
	}
	if r.host != nil {
		if id, ok := r.host.IDOf(obj); ok {
			return lua.LString(id)
		}
	}
	return lua.LString(obj.ID())
}

func (r *Runtime) installUI() {
	mod := r.L.SetFuncs(r.L.NewTable(), map[string]lua.LGFunction{
		"set":  r.uiApply(func(h Host, id string, m action.Map) error { return h.Apply(id, m) }),
		"add":  r.uiApply(func(h Host, id string, m action.Map) error { return h.Compose(id, m) }),
		"log":  r.uiLog,
		"quit": r.uiQuit,
	})
	r.L.SetGlobal(uiModule, mod)
}

// uiApply returns ui.set or ui.add. They return true, or nil and a
// message when the layout rejects the actions.
func (r *Runtime) uiApply(apply func(Host, string, action.Map) error) lua.LGFunction {
	return func(L *lua.LState) int {
		id := L.CheckString(1)
		tbl := L.CheckTable(2)
		if r.sandbox.charge() {
			L.RaiseError("%s", ErrCallLimit.Error())
			return 0
		}
		if r.host == nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(ErrNoHost.Error()))
			return 2
		}
		actions, err := r.bridge.toActions(tbl)
		if err == nil {
			err = apply(r.host, id, actions)
		}
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	}
}

func (r *Runtime) uiLog(L *lua.LState) int {
	msg := L.CheckString(1)
	if r.sandbox.charge() {
		L.RaiseError("%s", ErrCallLimit.Error())
		return 0
	}
	r.logger.Info().Str("source", "lua").Msg(msg)
	return 0
}

func (r *Runtime) uiQuit(L *lua.LState) int {
	r.quit = true
	if r.onQuit != nil {
		r.onQuit()
	}
	return 0
}
