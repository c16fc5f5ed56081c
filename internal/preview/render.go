package preview

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/actkit/internal/layout"
	"github.com/dshills/actkit/toolkit"
)

type rect struct {
	x, y, w, h int
}

func (r rect) inset(n int) rect {
	return rect{r.x + n, r.y + n, r.w - 2*n, r.h - 2*n}
}

func (r rect) below(rows int) rect {
	return rect{r.x, r.y + rows, r.w, r.h - rows}
}

func (r rect) empty() bool {
	return r.w <= 0 || r.h <= 0
}

// Renderer draws a widget tree onto a screen.
type Renderer struct {
	screen tcell.Screen
	theme  Theme

	buttons []*toolkit.Button
	focus   int
}

// NewRenderer creates a renderer drawing on screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Draw renders root over the whole screen and shows it.
func (r *Renderer) Draw(root toolkit.Object) {
	r.screen.Clear()
	r.buttons = r.buttons[:0]
	w, h := r.screen.Size()
	if root != nil {
		r.draw(root, rect{0, 0, w, h})
	}
	r.moveFocus(0)
	r.screen.Show()
}

// Focused returns the focused button of the last draw, or nil.
func (r *Renderer) Focused() *toolkit.Button {
	if len(r.buttons) == 0 {
		return nil
	}
	return r.buttons[r.focus]
}

// FocusNext moves focus to the next button, wrapping around.
func (r *Renderer) FocusNext() {
	r.moveFocus(1)
}

// FocusPrev moves focus to the previous button, wrapping around.
func (r *Renderer) FocusPrev() {
	r.moveFocus(-1)
}

func (r *Renderer) moveFocus(delta int) {
	n := len(r.buttons)
	if n == 0 {
		r.focus = 0
		return
	}
	r.focus = ((r.focus+delta)%n + n) % n
}

// draw renders obj into area and returns the rows it used.
func (r *Renderer) draw(obj toolkit.Object, area rect) int {
	if area.empty() || !visible(obj) {
		return 0
	}

	switch v := obj.(type) {
	case *toolkit.Window:
		r.frame(area, v.Title())
		r.drawChildren(layout.Children(v), area.inset(1+min(v.BorderWidth(), 1)), true, 0)
		return area.h
	case *toolkit.Label:
		r.text(area, v.Text(), r.style(v.AsWidget(), r.theme.Text))
		return 1
	case *toolkit.Button:
		style := r.theme.Button
		if len(r.buttons) == r.focus {
			style = r.theme.Focus
		}
		r.buttons = append(r.buttons, v)
		r.text(area, "[ "+v.Label()+" ]", r.style(v.AsWidget(), style))
		return 1
	case *toolkit.Entry:
		width := area.w
		if m := v.MaxLength(); m > 0 && m+2 < width {
			width = m + 2
		}
		field := v.Text() + strings.Repeat(" ", max(width-2-uniseg.StringWidth(v.Text()), 0))
		r.text(rect{area.x, area.y, width, 1}, "["+field+"]", r.style(v.AsWidget(), r.theme.Entry))
		return 1
	case *toolkit.TreeView:
		return r.treeView(v, area)
	case *toolkit.StatusIcon:
		r.text(area, "("+v.IconName()+") "+v.TooltipText(), r.theme.Text)
		return 1
	case boxLike:
		return r.drawChildren(layout.Children(v), area, v.Orientation() == toolkit.Vertical, v.Spacing())
	case toolkit.ContainerLike:
		return r.drawChildren(layout.Children(v), area, true, 0)
	default:
		return 0
	}
}

type boxLike interface {
	toolkit.ContainerLike
	Orientation() toolkit.Orientation
	Spacing() int
}

// drawChildren lays children out along one axis. A non-zero spacing
// leaves one blank row or column between children.
func (r *Renderer) drawChildren(children []toolkit.Object, area rect, vertical bool, spacing int) int {
	gap := 0
	if spacing > 0 {
		gap = 1
	}

	var shown []toolkit.Object
	for _, c := range children {
		if visible(c) {
			shown = append(shown, c)
		}
	}
	if len(shown) == 0 || area.empty() {
		return 0
	}

	if vertical {
		used := 0
		for i, c := range shown {
			if i > 0 && used > 0 {
				used += gap
			}
			used += r.draw(c, area.below(used))
		}
		return min(used, area.h)
	}

	width := (area.w - gap*(len(shown)-1)) / len(shown)
	tallest := 0
	for i, c := range shown {
		col := rect{area.x + i*(width+gap), area.y, width, area.h}
		tallest = max(tallest, r.draw(c, col))
	}
	return tallest
}

func (r *Renderer) treeView(tv *toolkit.TreeView, area rect) int {
	cols := tv.Columns()
	if len(cols) == 0 {
		return 0
	}
	width := area.w / len(cols)
	rows := 0
	if tv.HeadersVisible() {
		for i, col := range cols {
			r.text(rect{area.x + i*width, area.y, width - 1, 1}, col.Title, r.theme.Header)
		}
		rows++
	}
	model := tv.Model()
	if model == nil {
		return rows
	}
	for row := 0; row < model.NRows() && rows < area.h; row++ {
		for i, col := range cols {
			cell := rect{area.x + i*width, area.y + rows, width - 1, 1}
			r.text(cell, model.Value(row, col.TextColumn), r.theme.Text)
		}
		rows++
	}
	return rows
}

// frame draws a border around area with title centered in the top edge.
func (r *Renderer) frame(area rect, title string) {
	if area.w < 2 || area.h < 2 {
		return
	}
	s := r.theme.Frame
	right, bottom := area.x+area.w-1, area.y+area.h-1
	for x := area.x + 1; x < right; x++ {
		r.screen.SetContent(x, area.y, tcell.RuneHLine, nil, s)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, s)
	}
	for y := area.y + 1; y < bottom; y++ {
		r.screen.SetContent(area.x, y, tcell.RuneVLine, nil, s)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, s)
	}
	r.screen.SetContent(area.x, area.y, tcell.RuneULCorner, nil, s)
	r.screen.SetContent(right, area.y, tcell.RuneURCorner, nil, s)
	r.screen.SetContent(area.x, bottom, tcell.RuneLLCorner, nil, s)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, s)

	if title == "" {
		return
	}
	title = " " + title + " "
	tw := uniseg.StringWidth(title)
	if tw > area.w-2 {
		tw = area.w - 2
	}
	x := area.x + (area.w-tw)/2
	r.text(rect{x, area.y, tw, 1}, title, r.theme.Title)
}

// text draws s on the first row of area, clipped to its width.
func (r *Renderer) text(area rect, s string, style tcell.Style) {
	if area.empty() {
		return
	}
	x := area.x
	limit := area.x + area.w
	for _, c := range s {
		cw := uniseg.StringWidth(string(c))
		if cw == 0 {
			continue
		}
		if x+cw > limit {
			return
		}
		r.screen.SetContent(x, area.y, c, nil, style)
		x += cw
	}
}

func (r *Renderer) style(w *toolkit.Widget, s tcell.Style) tcell.Style {
	if !w.Sensitive() {
		return r.theme.Disabled
	}
	return s
}

func visible(obj toolkit.Object) bool {
	switch v := obj.(type) {
	case toolkit.WidgetLike:
		w := v.AsWidget()
		return w.Visible() && !w.Destroyed()
	case *toolkit.StatusIcon:
		return v.Visible()
	default:
		return false
	}
}
