package toolkit

import "fmt"

// WindowKind distinguishes toplevel windows from popups.
type WindowKind string

const (
	WindowToplevel WindowKind = "toplevel"
	WindowPopup    WindowKind = "popup"
)

// ParseWindowKind parses a window kind name.
func ParseWindowKind(s string) (WindowKind, error) {
	switch WindowKind(s) {
	case WindowToplevel, WindowPopup:
		return WindowKind(s), nil
	default:
		return "", fmt.Errorf("toolkit: unknown window kind %q", s)
	}
}

// Window is a toplevel or popup window holding one child.
type Window struct {
	Bin

	kind          WindowKind
	title         string
	defaultWidth  int
	defaultHeight int
	width         int
	height        int
}

// NewWindow creates a window of the given kind with no default size.
func NewWindow(kind WindowKind) *Window {
	w := &Window{
		kind:          kind,
		defaultWidth:  -1,
		defaultHeight: -1,
		width:         -1,
		height:        -1,
	}
	w.InitWidget(WindowType, w)
	return w
}

// Kind returns the window kind.
func (w *Window) Kind() WindowKind {
	return w.kind
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.title = title
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// SetDefaultSize sets the size used when the window is first shown.
// -1 leaves a dimension unset.
func (w *Window) SetDefaultSize(width, height int) {
	w.defaultWidth = width
	w.defaultHeight = height
	if w.width < 0 {
		w.width = width
	}
	if w.height < 0 {
		w.height = height
	}
}

// DefaultSize returns the default size.
func (w *Window) DefaultSize() (int, int) {
	return w.defaultWidth, w.defaultHeight
}

// Resize sets the current size.
func (w *Window) Resize(width, height int) {
	w.width = width
	w.height = height
	w.Emit("configure-event", width, height)
}

// Size returns the current size, -1 for unset dimensions.
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Close emits "delete-event" and destroys the window.
func (w *Window) Close() {
	w.Emit("delete-event")
	w.Destroy()
}
