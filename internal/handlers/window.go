package handlers

import (
	"fmt"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// WindowHandler serves Window.
type WindowHandler struct {
	handler.Base
}

// sizedWindow is the part of Window the size actions drive. Types
// embedding Window may override it.
type sizedWindow interface {
	DefaultSize() (int, int)
	SetDefaultSize(width, height int)
	Resize(width, height int)
}

func window(ctx *handler.Context) sizedWindow {
	return ctx.Widget.(sizedWindow)
}

// Create builds a window of the popped "type" (toplevel by default).
func (h *WindowHandler) Create(ctx *handler.Context) (toolkit.Object, error) {
	kind := toolkit.WindowToplevel
	if v, ok := ctx.Actions.Pop("type"); ok {
		switch k := v.(type) {
		case toolkit.WindowKind:
			kind = k
		default:
			s, err := action.String(v)
			if err != nil {
				return nil, err
			}
			if kind, err = toolkit.ParseWindowKind(s); err != nil {
				return nil, fmt.Errorf("%w: %w", action.ErrInvalidArgument, err)
			}
		}
	}
	return toolkit.NewWindow(kind), nil
}

// Before applies the default size on creation, ahead of every other action.
func (h *WindowHandler) Before(ctx *handler.Context) error {
	if !ctx.IsCreate() {
		return nil
	}
	width, err := action.Int(ctx.Actions.PopOr("default_width", -1))
	if err != nil {
		return err
	}
	height, err := action.Int(ctx.Actions.PopOr("default_height", -1))
	if err != nil {
		return err
	}
	window(ctx).SetDefaultSize(width, height)
	return nil
}

// OnActionResize takes a (width, height) pair. A window being created
// gets it as its default size, an existing one is resized.
func (h *WindowHandler) OnActionResize(ctx *handler.Context, arg any) error {
	width, height, err := action.Size(arg)
	if err != nil {
		return err
	}
	win := window(ctx)
	if ctx.IsCreate() {
		win.SetDefaultSize(width, height)
	} else {
		win.Resize(width, height)
	}
	return nil
}

// OnActionDefaultWidth changes the default width of an existing window.
func (h *WindowHandler) OnActionDefaultWidth(ctx *handler.Context, arg any) error {
	width, err := action.Int(arg)
	if err != nil {
		return err
	}
	win := window(ctx)
	_, height := win.DefaultSize()
	win.SetDefaultSize(width, height)
	return nil
}

// OnActionDefaultHeight changes the default height of an existing window.
func (h *WindowHandler) OnActionDefaultHeight(ctx *handler.Context, arg any) error {
	height, err := action.Int(arg)
	if err != nil {
		return err
	}
	win := window(ctx)
	width, _ := win.DefaultSize()
	win.SetDefaultSize(width, height)
	return nil
}

func windowDefinition() *handler.Definition {
	return handler.Define(toolkit.WindowType, func() *WindowHandler { return &WindowHandler{} }).
		Set("title").
		SetVia("border", "SetBorderWidth").
		Callback("resize", (*WindowHandler).OnActionResize).
		Callback("default_width", (*WindowHandler).OnActionDefaultWidth).
		Callback("default_height", (*WindowHandler).OnActionDefaultHeight).
		Definition()
}
