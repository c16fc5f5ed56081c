package toolkit

// Orientation is the packing axis of a Box.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Box packs children along one axis.
type Box struct {
	Container

	orientation Orientation
	homogeneous bool
	spacing     int
}

// NewBox creates a horizontal box.
func NewBox() *Box {
	b := &Box{}
	b.InitWidget(BoxType, b)
	return b
}

// NewVBox creates a vertical box.
func NewVBox() *VBox {
	b := &VBox{}
	b.orientation = Vertical
	b.InitWidget(VBoxType, b)
	return b
}

// NewHBox creates a horizontal box.
func NewHBox() *HBox {
	b := &HBox{}
	b.InitWidget(HBoxType, b)
	return b
}

// Orientation returns the packing axis.
func (b *Box) Orientation() Orientation {
	return b.orientation
}

// SetHomogeneous sets whether children get equal space.
func (b *Box) SetHomogeneous(homogeneous bool) {
	b.homogeneous = homogeneous
}

// Homogeneous reports whether children get equal space.
func (b *Box) Homogeneous() bool {
	return b.homogeneous
}

// SetSpacing sets the gap between children.
func (b *Box) SetSpacing(spacing int) {
	if spacing < 0 {
		spacing = 0
	}
	b.spacing = spacing
}

// Spacing returns the gap between children.
func (b *Box) Spacing() int {
	return b.spacing
}

// Add packs child at the start with default packing.
func (b *Box) Add(child Object) error {
	return b.PackStart(child, true, true, 0)
}

// PackStart packs child after the start-packed children.
func (b *Box) PackStart(child Object, expand, fill bool, padding int) error {
	return b.attach(child, Packing{Expand: expand, Fill: fill, Padding: padding})
}

// PackEnd packs child before the end-packed children.
func (b *Box) PackEnd(child Object, expand, fill bool, padding int) error {
	return b.attach(child, Packing{Expand: expand, Fill: fill, Padding: padding, End: true})
}

// Ordered returns the children in visual order: start-packed children in
// packing order followed by end-packed children in reverse packing order.
func (b *Box) Ordered() []Object {
	var start, end []Object
	for _, s := range b.slots {
		if s.packing.End {
			end = append(end, s.child)
		} else {
			start = append(start, s.child)
		}
	}
	for i := len(end) - 1; i >= 0; i-- {
		start = append(start, end[i])
	}
	return start
}

// VBox is a vertical Box.
type VBox struct {
	Box
}

// HBox is a horizontal Box.
type HBox struct {
	Box
}
