package handlers

import (
	"fmt"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// ScrolledWindowHandler serves ScrolledWindow.
type ScrolledWindowHandler struct {
	handler.Base
}

// Create builds the window around the popped "hadjustment" and
// "vadjustment". Missing ones are created fresh.
func (h *ScrolledWindowHandler) Create(ctx *handler.Context) (toolkit.Object, error) {
	hadj, err := adjustment(ctx.Actions.PopOr("hadjustment", nil))
	if err != nil {
		return nil, fmt.Errorf("hadjustment: %w", err)
	}
	vadj, err := adjustment(ctx.Actions.PopOr("vadjustment", nil))
	if err != nil {
		return nil, fmt.Errorf("vadjustment: %w", err)
	}
	return toolkit.NewScrolledWindow(hadj, vadj), nil
}

// OnActionPolicy sets both scrollbar policies from one name, or from an
// (horizontal, vertical) pair of names.
func (h *ScrolledWindowHandler) OnActionPolicy(ctx *handler.Context, arg any) error {
	names, err := action.List(arg)
	if err != nil {
		name, serr := action.String(arg)
		if serr != nil {
			return err
		}
		names = []any{name, name}
	}
	if len(names) != 2 {
		return fmt.Errorf("%w: want 2 policies, got %d", action.ErrInvalidArgument, len(names))
	}
	var policies [2]toolkit.ScrollPolicy
	for i, v := range names {
		if p, ok := v.(toolkit.ScrollPolicy); ok {
			policies[i] = p
			continue
		}
		name, err := action.String(v)
		if err != nil {
			return err
		}
		if policies[i], err = toolkit.ParseScrollPolicy(name); err != nil {
			return fmt.Errorf("%w: %w", action.ErrInvalidArgument, err)
		}
	}
	ctx.Widget.(*toolkit.ScrolledWindow).SetPolicy(policies[0], policies[1])
	return nil
}

func adjustment(v any) (*toolkit.Adjustment, error) {
	if v == nil {
		return nil, nil
	}
	a, ok := v.(*toolkit.Adjustment)
	if !ok || a == nil {
		return nil, fmt.Errorf("%w: want adjustment, got %T", action.ErrInvalidArgument, v)
	}
	return a, nil
}

func scrolledWindowDefinition() *handler.Definition {
	return handler.Define(toolkit.ScrolledWindowType, func() *ScrolledWindowHandler { return &ScrolledWindowHandler{} }).
		Set("hadjustment", "vadjustment").
		Callback("policy", (*ScrolledWindowHandler).OnActionPolicy).
		Definition()
}

// AdjustmentHandler serves Adjustment. Setters run in name order, so the
// value is clamped against the bounds given with it.
type AdjustmentHandler struct {
	handler.Base
}

func adjustmentDefinition() *handler.Definition {
	return handler.Define(toolkit.AdjustmentType, func() *AdjustmentHandler { return &AdjustmentHandler{} }).
		Set("lower", "upper", "step_increment", "page_increment", "page_size", "value").
		Definition()
}
