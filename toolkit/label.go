package toolkit

// Label displays a line of text.
type Label struct {
	Widget

	text       string
	selectable bool
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	l := &Label{text: text}
	l.InitWidget(LabelType, l)
	return l
}

// SetText sets the label text.
func (l *Label) SetText(text string) {
	l.text = text
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetSelectable sets whether the text can be selected.
func (l *Label) SetSelectable(selectable bool) {
	l.selectable = selectable
}

// Selectable reports whether the text can be selected.
func (l *Label) Selectable() bool {
	return l.selectable
}
