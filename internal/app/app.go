package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/actkit"
	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/dispatcher/hook"
	"github.com/dshills/actkit/internal/config"
	"github.com/dshills/actkit/internal/layout"
	"github.com/dshills/actkit/internal/logging"
	"github.com/dshills/actkit/internal/preview"
	"github.com/dshills/actkit/internal/script"
	"github.com/dshills/actkit/internal/watch"
	"github.com/dshills/actkit/toolkit"
)

// ReadyFunction is the script function called once a layout is built.
const ReadyFunction = "ready"

// slowDispatch is the duration above which dispatches are logged.
const slowDispatch = 10 * time.Millisecond

// Options configures an Application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultFile.
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// Layout is the layout document.
	Layout string
	// Script is an optional Lua file providing callbacks.
	Script string
}

// Application holds the components shared by every command.
type Application struct {
	opts   Options
	cfg    config.Config
	log    zerolog.Logger
	engine *dispatcher.Engine
	audit  *hook.AuditHook

	mu      sync.Mutex
	tree    *layout.Tree
	runtime *script.Runtime
	retired []*script.Runtime

	preview atomic.Pointer[preview.Preview]
}

// New loads configuration and builds the dispatch engine.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}
	return NewWithConfig(opts, cfg)
}

// NewWithConfig builds an application from an already loaded configuration.
func NewWithConfig(opts Options, cfg config.Config) (*Application, error) {
	a := &Application{
		opts:  opts,
		cfg:   cfg,
		log:   cfg.Logger(),
		audit: hook.NewAuditHook(256),
	}

	hooks := hook.NewManager()
	hooks.Register(a.audit)
	if cfg.Dispatch.Metrics {
		timing := logging.Component(a.log, "timing")
		hooks.Register(hook.NewTimingHook(func(m handler.Method, target *toolkit.Type, d time.Duration) {
			if d >= slowDispatch {
				timing.Warn().Stringer("method", m).Str("type", typeName(target)).Dur("duration", d).Msg("slow dispatch")
			}
		}))
	}

	engine, err := actkit.NewEngine(actkit.WithEngineOptions(
		dispatcher.WithConfig(cfg.DispatcherConfig()),
		dispatcher.WithLogger(a.log),
		dispatcher.WithHooks(hooks),
	))
	if err != nil {
		return nil, &InitError{Component: "dispatcher", Err: err}
	}
	a.engine = engine
	return a, nil
}

// Config returns the configuration.
func (a *Application) Config() config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() zerolog.Logger { return a.log }

// Engine returns the dispatch engine.
func (a *Application) Engine() *dispatcher.Engine { return a.engine }

// Audit returns the dispatch history.
func (a *Application) Audit() *hook.AuditHook { return a.audit }

// Tree returns the current layout, or nil before Load.
func (a *Application) Tree() *layout.Tree {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tree
}

// Load builds the layout, running the script first when one is set. On
// failure the previous layout stays current.
func (a *Application) Load() (*layout.Tree, error) {
	if a.opts.Layout == "" {
		return nil, ErrNoLayout
	}
	doc, err := layout.Load(a.opts.Layout)
	if err != nil {
		return nil, err
	}

	builderOpts := []layout.BuilderOption{layout.WithLogger(a.log)}
	var rt *script.Runtime
	if a.opts.Script != "" {
		rt = a.newRuntime()
		if err := rt.LoadFile(a.opts.Script); err != nil {
			rt.Close()
			return nil, err
		}
		builderOpts = append(builderOpts, layout.WithCallbacks(rt))
	}

	tree, err := layout.NewBuilder(a.engine, builderOpts...).Build(doc)
	if err != nil {
		if rt != nil {
			rt.Close()
		}
		return nil, err
	}
	if rt != nil {
		rt.SetHost(tree)
		if rt.HasFunction(ReadyFunction) {
			if err := rt.Call(ReadyFunction); err != nil {
				rt.Close()
				return nil, err
			}
		}
	}

	a.mu.Lock()
	if a.runtime != nil {
		// A running preview may still be inside a callback of the old
		// runtime, so it is closed on Shutdown.
		a.retired = append(a.retired, a.runtime)
	}
	a.tree, a.runtime = tree, rt
	a.mu.Unlock()

	a.log.Info().Str("layout", a.opts.Layout).Int("widgets", tree.Len()).Msg("layout loaded")
	return tree, nil
}

func typeName(t *toolkit.Type) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

func (a *Application) newRuntime() *script.Runtime {
	s := a.cfg.Script
	return script.New(
		script.WithTimeout(time.Duration(s.TimeoutMS)*time.Millisecond),
		script.WithCallLimit(s.CallLimit),
		script.WithLogger(a.log),
		script.WithQuit(func() {
			if p := a.preview.Load(); p != nil {
				p.Quit()
			}
		}),
	)
}

// Describe returns the current layout as JSON.
func (a *Application) Describe() ([]byte, error) {
	tree := a.Tree()
	if tree == nil {
		return nil, ErrNotLoaded
	}
	return layout.Describe(tree)
}

// Preview shows the layout on screen until the root window closes or ctx
// is done. With watch set, edits to the layout or script files rebuild
// the tree in place.
func (a *Application) Preview(ctx context.Context, screen tcell.Screen, watchFiles bool) error {
	tree := a.Tree()
	if tree == nil {
		return ErrNotLoaded
	}
	theme, err := preview.ThemeByName(a.cfg.Preview.Theme)
	if err != nil {
		return err
	}

	p := preview.New(screen, tree.Root,
		preview.WithTheme(theme),
		preview.WithLogger(logging.Component(a.log, "preview")),
	)
	a.preview.Store(p)
	defer a.preview.Store(nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if watchFiles {
		w, err := a.watch(ctx, p)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
	}

	err = p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Application) watch(ctx context.Context, p *preview.Preview) (*watch.Watcher, error) {
	w, err := watch.New(
		watch.WithDelay(time.Duration(a.cfg.Preview.DebounceMS)*time.Millisecond),
		watch.WithLogger(logging.Component(a.log, "watch")),
	)
	if err != nil {
		return nil, &InitError{Component: "watcher", Err: err}
	}
	for _, path := range []string{a.opts.Layout, a.opts.Script} {
		if path == "" {
			continue
		}
		if err := w.Add(path); err != nil {
			_ = w.Close()
			return nil, &InitError{Component: "watcher", Err: err}
		}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-w.Changes():
				if !ok {
					return
				}
				a.log.Debug().Strs("paths", c.Paths).Msg("reloading")
				tree, err := a.Load()
				if err != nil {
					a.log.Error().Err(err).Msg("reload failed")
					continue
				}
				p.Reload(tree.Root)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				a.log.Warn().Err(err).Msg("watch error")
			}
		}
	}()
	return w, nil
}

// Metrics returns the engine metrics, or false when metrics are disabled.
func (a *Application) Metrics() (dispatcher.MetricsSnapshot, bool) {
	m := a.engine.Metrics()
	if m == nil {
		return dispatcher.MetricsSnapshot{}, false
	}
	return m.Snapshot(), true
}

// Shutdown releases every script runtime.
func (a *Application) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rt := range a.retired {
		rt.Close()
	}
	a.retired = nil
	if a.runtime != nil {
		a.runtime.Close()
		a.runtime = nil
	}
}
