package toolkit

// ContainerLike is implemented by every type embedding Container.
type ContainerLike interface {
	WidgetLike
	AsContainer() *Container
}

// Packing describes how a Box lays out one child.
type Packing struct {
	Expand  bool
	Fill    bool
	Padding int
	End     bool
}

type slot struct {
	child   Object
	packing Packing
}

// Container is a widget holding child widgets.
type Container struct {
	Widget

	borderWidth int
	slots       []slot
}

// AsContainer implements ContainerLike.
func (c *Container) AsContainer() *Container {
	return c
}

// SetBorderWidth sets the border width around the children.
func (c *Container) SetBorderWidth(width int) {
	if width < 0 {
		width = 0
	}
	c.borderWidth = width
}

// BorderWidth returns the border width.
func (c *Container) BorderWidth() int {
	return c.borderWidth
}

// Add attaches a child widget.
func (c *Container) Add(child Object) error {
	return c.attach(child, Packing{Expand: true, Fill: true})
}

// Remove detaches a child widget.
func (c *Container) Remove(child Object) error {
	return c.remove(child)
}

// Children returns the children in attachment order.
func (c *Container) Children() []Object {
	out := make([]Object, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.child
	}
	return out
}

// Packing returns the packing recorded for child.
func (c *Container) Packing(child Object) (Packing, bool) {
	for _, s := range c.slots {
		if s.child == child {
			return s.packing, true
		}
	}
	return Packing{}, false
}

func (c *Container) attach(child Object, p Packing) error {
	if c.destroyed {
		return ErrDestroyed
	}
	wl, ok := child.(WidgetLike)
	if !ok {
		return ErrNotWidget
	}
	w := wl.AsWidget()
	if w.destroyed {
		return ErrDestroyed
	}
	if w.parent != nil {
		return ErrHasParent
	}
	for cur := Object(c.self); cur != nil; {
		if cur == child {
			return ErrCycle
		}
		cw, ok := cur.(WidgetLike)
		if !ok {
			break
		}
		cur = cw.AsWidget().parent
	}
	w.parent = c.self
	c.slots = append(c.slots, slot{child: child, packing: p})
	return nil
}

func (c *Container) remove(child Object) error {
	for i, s := range c.slots {
		if s.child != child {
			continue
		}
		c.slots = append(c.slots[:i], c.slots[i+1:]...)
		if wl, ok := child.(WidgetLike); ok {
			wl.AsWidget().parent = nil
		}
		return nil
	}
	return ErrNotChild
}

// Bin is a container holding at most one child.
type Bin struct {
	Container
}

// Add attaches the single child.
func (b *Bin) Add(child Object) error {
	if len(b.slots) > 0 {
		return ErrBinOccupied
	}
	return b.Container.Add(child)
}

// Child returns the child, or nil.
func (b *Bin) Child() Object {
	if len(b.slots) == 0 {
		return nil
	}
	return b.slots[0].child
}

// NewContainer creates a plain container.
func NewContainer() *Container {
	c := &Container{}
	c.InitWidget(ContainerType, c)
	return c
}

// NewBin creates a plain single-child container.
func NewBin() *Bin {
	b := &Bin{}
	b.InitWidget(BinType, b)
	return b
}
