package toolkit

// Button is a clickable widget with a label.
type Button struct {
	Bin

	label string
}

// NewButton creates a button without a label.
func NewButton() *Button {
	b := &Button{}
	b.InitWidget(ButtonType, b)
	return b
}

// NewButtonWithLabel creates a button showing label.
func NewButtonWithLabel(label string) *Button {
	b := NewButton()
	b.label = label
	return b
}

// SetLabel sets the label text.
func (b *Button) SetLabel(label string) {
	b.label = label
}

// Label returns the label text.
func (b *Button) Label() string {
	return b.label
}

// Clicked emits "clicked" if the button is sensitive.
func (b *Button) Clicked() {
	if !b.sensitive || b.destroyed {
		return
	}
	b.Emit("clicked")
}
