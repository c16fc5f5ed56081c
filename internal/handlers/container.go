package handlers

import (
	"fmt"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// ContainerHandler serves every container.
type ContainerHandler struct {
	handler.Base
}

func containerDefinition() *handler.Definition {
	return handler.Define(toolkit.ContainerType, func() *ContainerHandler { return &ContainerHandler{} }).
		Set("border_width").
		SetVia("child", "Add").
		Definition()
}

// BinHandler serves Bin. It only contributes the lifecycle.
type BinHandler struct {
	handler.Base
}

func binDefinition() *handler.Definition {
	return handler.Define(toolkit.BinType, func() *BinHandler { return &BinHandler{} }).Definition()
}

// packer is implemented by Box and the types embedding it.
type packer interface {
	toolkit.ContainerLike
	PackStart(child toolkit.Object, expand, fill bool, padding int) error
	PackEnd(child toolkit.Object, expand, fill bool, padding int) error
}

// packSpec holds the packing applied to children of one dispatch.
type packSpec struct {
	expand  bool
	fill    bool
	padding int
	end     bool
}

func defaultPack() packSpec {
	return packSpec{expand: true, fill: true}
}

// apply overrides s with the packing keys found in t. Keys not in t are
// left as they are; other keys are an error.
func (s *packSpec) apply(t map[string]any) error {
	for key, v := range t {
		var err error
		switch key {
		case "expand":
			s.expand, err = action.Bool(v)
		case "fill":
			s.fill, err = action.Bool(v)
		case "padding":
			s.padding, err = action.Int(v)
		case "order":
			err = s.setOrder(v)
		default:
			err = fmt.Errorf("%w: unknown packing key %q", action.ErrInvalidArgument, key)
		}
		if err != nil {
			return fmt.Errorf("packing %s: %w", key, err)
		}
	}
	return nil
}

func (s *packSpec) setOrder(v any) error {
	order, err := action.String(v)
	if err != nil {
		return err
	}
	switch order {
	case "start":
		s.end = false
	case "end":
		s.end = true
	default:
		return fmt.Errorf("%w: order must be start or end, got %q", action.ErrInvalidArgument, order)
	}
	return nil
}

// BoxHandler serves Box. Packing defaults popped by Before apply to every
// child of the same dispatch; a child given as [widget, {packing}]
// overrides them for itself.
type BoxHandler struct {
	handler.Base
	pack packSpec
}

// Before pops the packing defaults.
func (h *BoxHandler) Before(ctx *handler.Context) error {
	h.pack = defaultPack()
	defaults := make(map[string]any)
	for _, key := range []string{"expand", "fill", "padding", "order"} {
		if v, ok := ctx.Actions.Pop(key); ok {
			defaults[key] = v
		}
	}
	return h.pack.apply(defaults)
}

// OnActionChildren packs a list of children. Configure replaces the
// current children, Create and Compose append.
func (h *BoxHandler) OnActionChildren(ctx *handler.Context, arg any) error {
	items, err := action.List(arg)
	if err != nil {
		return err
	}
	box, ok := ctx.Widget.(packer)
	if !ok {
		return fmt.Errorf("%w: %s cannot pack children", action.ErrInvalidArgument, ctx.Target.Name())
	}

	if ctx.IsConfigure() {
		c := box.AsContainer()
		for _, child := range c.Children() {
			if err := c.Remove(child); err != nil {
				return err
			}
		}
	}

	for i, item := range items {
		child, spec, err := h.childSpec(item)
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		if spec.end {
			err = box.PackEnd(child, spec.expand, spec.fill, spec.padding)
		} else {
			err = box.PackStart(child, spec.expand, spec.fill, spec.padding)
		}
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		if w, ok := child.(toolkit.WidgetLike); ok {
			w.AsWidget().Show()
		}
	}
	return nil
}

// childSpec splits a children item into the child and its packing.
func (h *BoxHandler) childSpec(item any) (toolkit.Object, packSpec, error) {
	spec := h.pack
	if pair, err := action.List(item); err == nil {
		if len(pair) != 2 {
			return nil, spec, fmt.Errorf("%w: want [widget, packing], got %d items", action.ErrInvalidArgument, len(pair))
		}
		overrides, err := action.Table(pair[1])
		if err != nil {
			return nil, spec, err
		}
		if err := spec.apply(overrides); err != nil {
			return nil, spec, err
		}
		item = pair[0]
	}
	child, err := action.Object(item)
	if err != nil {
		return nil, spec, err
	}
	return child, spec, nil
}

func boxDefinition() *handler.Definition {
	return handler.Define(toolkit.BoxType, func() *BoxHandler { return &BoxHandler{} }).
		Set("homogeneous", "spacing").
		Callback("children", (*BoxHandler).OnActionChildren).
		Definition()
}

// VBoxHandler serves VBox.
type VBoxHandler struct {
	handler.Base
}

func vboxDefinition() *handler.Definition {
	return handler.Define(toolkit.VBoxType, func() *VBoxHandler { return &VBoxHandler{} }).Definition()
}

// HBoxHandler serves HBox.
type HBoxHandler struct {
	handler.Base
}

func hboxDefinition() *handler.Definition {
	return handler.Define(toolkit.HBoxType, func() *HBoxHandler { return &HBoxHandler{} }).Definition()
}
