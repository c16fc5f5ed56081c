package toolkit

// WidgetLike is implemented by every type embedding Widget.
type WidgetLike interface {
	Object
	AsWidget() *Widget
}

// Widget is the base of all visible elements.
type Widget struct {
	ObjectBase

	visible   bool
	sensitive bool
	destroyed bool
	name      string
	tooltip   string
	parent    Object
}

// InitWidget initializes the widget state of a type embedding Widget.
func (w *Widget) InitWidget(t *Type, self Object) {
	w.InitObject(t, self)
	w.sensitive = true
}

// AsWidget implements WidgetLike.
func (w *Widget) AsWidget() *Widget {
	return w
}

// Show makes the widget visible and emits "show" on a state change.
func (w *Widget) Show() {
	if w.visible || w.destroyed {
		return
	}
	w.visible = true
	w.Emit("show")
}

// Hide makes the widget invisible and emits "hide" on a state change.
func (w *Widget) Hide() {
	if !w.visible {
		return
	}
	w.visible = false
	w.Emit("hide")
}

// Visible reports whether the widget is shown.
func (w *Widget) Visible() bool {
	return w.visible
}

// SetName sets the widget name.
func (w *Widget) SetName(name string) {
	w.name = name
}

// Name returns the widget name.
func (w *Widget) Name() string {
	return w.name
}

// SetSensitive sets whether the widget accepts input.
func (w *Widget) SetSensitive(sensitive bool) {
	w.sensitive = sensitive
}

// Sensitive reports whether the widget accepts input.
func (w *Widget) Sensitive() bool {
	return w.sensitive
}

// SetTooltipText sets the tooltip.
func (w *Widget) SetTooltipText(text string) {
	w.tooltip = text
}

// TooltipText returns the tooltip.
func (w *Widget) TooltipText() string {
	return w.tooltip
}

// Parent returns the container holding the widget, or nil.
func (w *Widget) Parent() Object {
	return w.parent
}

// Destroy hides the widget, detaches it from its parent and emits "destroy".
// Containers destroy their children first.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	if c, ok := w.self.(ContainerLike); ok {
		for _, child := range c.AsContainer().Children() {
			if cw, ok := child.(WidgetLike); ok {
				cw.AsWidget().Destroy()
			}
		}
	}
	if p, ok := w.parent.(ContainerLike); ok {
		_ = p.AsContainer().remove(w.self)
	}
	w.visible = false
	w.destroyed = true
	w.Emit("destroy")
}

// Destroyed reports whether Destroy was called.
func (w *Widget) Destroyed() bool {
	return w.destroyed
}

// NewWidget creates a plain widget.
func NewWidget() *Widget {
	w := &Widget{}
	w.InitWidget(WidgetType, w)
	return w
}
