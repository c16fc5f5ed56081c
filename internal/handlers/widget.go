package handlers

import (
	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// WidgetHandler serves every widget. Widgets are shown on creation unless
// the actions hide them.
type WidgetHandler struct {
	handler.Base
}

// Before shows a newly created widget.
func (h *WidgetHandler) Before(ctx *handler.Context) error {
	if ctx.IsCreate() {
		asWidget(ctx).Show()
	}
	return nil
}

// OnActionShow shows the widget for true and hides it for false.
func (h *WidgetHandler) OnActionShow(ctx *handler.Context, arg any) error {
	show, err := action.Bool(arg)
	if err != nil {
		return err
	}
	setVisible(asWidget(ctx), show)
	return nil
}

// OnActionHide hides the widget for true and shows it for false.
func (h *WidgetHandler) OnActionHide(ctx *handler.Context, arg any) error {
	hide, err := action.Bool(arg)
	if err != nil {
		return err
	}
	setVisible(asWidget(ctx), !hide)
	return nil
}

func asWidget(ctx *handler.Context) *toolkit.Widget {
	return ctx.Widget.(toolkit.WidgetLike).AsWidget()
}

func setVisible(w *toolkit.Widget, visible bool) {
	if visible {
		w.Show()
	} else {
		w.Hide()
	}
}

func widgetDefinition() *handler.Definition {
	return handler.Define(toolkit.WidgetType, func() *WidgetHandler { return &WidgetHandler{} }).
		Set("name", "sensitive", "tooltip_text").
		Callback("show", (*WidgetHandler).OnActionShow).
		Callback("hide", (*WidgetHandler).OnActionHide).
		Conflict("show", "hide").
		Definition()
}

// LabelHandler serves Label.
type LabelHandler struct {
	handler.Base
}

func labelDefinition() *handler.Definition {
	return handler.Define(toolkit.LabelType, func() *LabelHandler { return &LabelHandler{} }).
		Set("text", "selectable").
		Definition()
}

// EntryHandler serves Entry.
type EntryHandler struct {
	handler.Base
}

// Create builds an entry limited to the popped "max" length (0 = unlimited).
func (h *EntryHandler) Create(ctx *handler.Context) (toolkit.Object, error) {
	maxLen, err := action.Int(ctx.Actions.PopOr("max", 0))
	if err != nil {
		return nil, err
	}
	return toolkit.NewEntry(maxLen), nil
}

func entryDefinition() *handler.Definition {
	return handler.Define(toolkit.EntryType, func() *EntryHandler { return &EntryHandler{} }).
		SetVia("max", "SetMaxLength").
		Set("text").
		Definition()
}

// ButtonHandler serves Button.
type ButtonHandler struct {
	handler.Base
}

// Create builds a button with the popped "label", if any.
func (h *ButtonHandler) Create(ctx *handler.Context) (toolkit.Object, error) {
	v, ok := ctx.Actions.Pop("label")
	if !ok {
		return toolkit.NewButton(), nil
	}
	label, err := action.String(v)
	if err != nil {
		return nil, err
	}
	return toolkit.NewButtonWithLabel(label), nil
}

func buttonDefinition() *handler.Definition {
	return handler.Define(toolkit.ButtonType, func() *ButtonHandler { return &ButtonHandler{} }).
		Set("label").
		Definition()
}
