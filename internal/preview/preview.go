package preview

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/actkit/toolkit"
)

// Option configures a Preview.
type Option func(*Preview)

// WithTheme sets the drawing theme.
func WithTheme(t Theme) Option {
	return func(p *Preview) { p.theme = t }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Preview) { p.log = l }
}

// Preview runs an interactive view of a widget tree.
type Preview struct {
	screen   tcell.Screen
	root     toolkit.Object
	renderer *Renderer
	theme    Theme
	log      zerolog.Logger

	reload chan toolkit.Object
}

// New creates a preview of root on an initialized screen.
func New(screen tcell.Screen, root toolkit.Object, opts ...Option) *Preview {
	p := &Preview{
		screen: screen,
		root:   root,
		theme:  DefaultTheme(),
		log:    zerolog.Nop(),
		reload: make(chan toolkit.Object, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.renderer = NewRenderer(screen, p.theme)
	return p
}

// Root returns the tree being shown.
func (p *Preview) Root() toolkit.Object {
	return p.root
}

// Renderer returns the renderer.
func (p *Preview) Renderer() *Renderer {
	return p.renderer
}

// Reload replaces the tree shown by a running preview. Only the most
// recent pending tree is kept. Safe for concurrent use.
func (p *Preview) Reload(root toolkit.Object) {
	for {
		select {
		case p.reload <- root:
			return
		default:
		}
		select {
		case <-p.reload:
		default:
		}
	}
}

// Quit stops a running preview. Safe for concurrent use.
func (p *Preview) Quit() {
	if err := p.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		p.log.Debug().Err(err).Msg("quit event dropped")
	}
}

// Draw renders the current tree.
func (p *Preview) Draw() {
	p.renderer.Draw(p.root)
}

// Run draws the tree and processes events until the root is destroyed,
// Quit is called or ctx is done.
func (p *Preview) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	p.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case root := <-p.reload:
			p.log.Debug().Msg("tree reloaded")
			p.root = root
			p.Draw()
		case ev := <-events:
			if !p.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// HandleEvent processes one event and reports whether the preview
// should keep running.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		p.screen.Sync()
		p.Draw()
	case *tcell.EventInterrupt:
		return false
	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyEscape, e.Key() == tcell.KeyRune && e.Rune() == 'q':
			p.close()
			return false
		case e.Key() == tcell.KeyTab:
			p.renderer.FocusNext()
			p.Draw()
		case e.Key() == tcell.KeyBacktab:
			p.renderer.FocusPrev()
			p.Draw()
		case e.Key() == tcell.KeyEnter:
			if b := p.renderer.Focused(); b != nil && b.Sensitive() {
				b.Clicked()
			}
			if p.rootDestroyed() {
				return false
			}
			p.Draw()
		}
	}
	return !p.rootDestroyed()
}

func (p *Preview) close() {
	switch root := p.root.(type) {
	case *toolkit.Window:
		if !root.Destroyed() {
			root.Close()
		}
	case toolkit.WidgetLike:
		root.AsWidget().Destroy()
	}
}

func (p *Preview) rootDestroyed() bool {
	w, ok := p.root.(toolkit.WidgetLike)
	return ok && w.AsWidget().Destroyed()
}
