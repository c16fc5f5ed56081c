package layout

import (
	"github.com/tidwall/sjson"

	"github.com/dshills/actkit/toolkit"
)

// Describe renders the tree as JSON, one object per widget with its
// class, id, visibility, notable properties and children.
func Describe(t *Tree) ([]byte, error) {
	return describe(t, t.Root)
}

func describe(t *Tree, obj toolkit.Object) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, v)
		}
	}

	set("class", obj.Type().Name())
	if id, ok := t.IDOf(obj); ok {
		set("id", id)
	}
	if p, ok := t.PathOf(obj); ok {
		set("path", p)
	}
	if w, ok := obj.(toolkit.WidgetLike); ok {
		set("visible", w.AsWidget().Visible())
		if name := w.AsWidget().Name(); name != "" {
			set("name", name)
		}
	}

	switch v := obj.(type) {
	case *toolkit.Window:
		set("title", v.Title())
		w, h := v.DefaultSize()
		set("default_size", []int{w, h})
	case *toolkit.Label:
		set("text", v.Text())
	case *toolkit.Button:
		set("label", v.Label())
	case *toolkit.Entry:
		set("text", v.Text())
	case *toolkit.StatusIcon:
		set("icon_name", v.IconName())
	case *toolkit.TreeView:
		titles := make([]string, 0)
		for _, col := range v.Columns() {
			titles = append(titles, col.Title)
		}
		set("columns", titles)
		if m := v.Model(); m != nil {
			set("rows", m.NRows())
		}
		if col, order, ok := v.SortColumnID(); ok {
			set("sort_column_id", []any{col, order.String()})
		}
	case *toolkit.ScrolledWindow:
		h, vert := v.Policy()
		set("policy", []string{h.String(), vert.String()})
	}
	if err != nil {
		return nil, err
	}

	for _, child := range Children(obj) {
		raw, err := describe(t, child)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "children.-1", raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Children returns the children of obj in visual order.
func Children(obj toolkit.Object) []toolkit.Object {
	type ordered interface {
		Ordered() []toolkit.Object
	}
	if o, ok := obj.(ordered); ok {
		return o.Ordered()
	}
	if c, ok := obj.(toolkit.ContainerLike); ok {
		return c.AsContainer().Children()
	}
	return nil
}

// Walk calls fn for obj and every descendant, parents first.
func Walk(obj toolkit.Object, fn func(obj toolkit.Object, depth int)) {
	walk(obj, 0, fn)
}

func walk(obj toolkit.Object, depth int, fn func(toolkit.Object, int)) {
	fn(obj, depth)
	for _, child := range Children(obj) {
		walk(child, depth+1, fn)
	}
}
