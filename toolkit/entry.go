package toolkit

// Entry is a single-line text input.
type Entry struct {
	Widget

	text      []rune
	maxLength int
}

// NewEntry creates an entry limited to maxLength runes; 0 means unlimited.
func NewEntry(maxLength int) *Entry {
	e := &Entry{}
	e.InitWidget(EntryType, e)
	e.SetMaxLength(maxLength)
	return e
}

// SetText replaces the text, truncated to the maximum length, and emits "changed".
func (e *Entry) SetText(text string) {
	e.text = e.clip([]rune(text))
	e.Emit("changed")
}

// Text returns the current text.
func (e *Entry) Text() string {
	return string(e.text)
}

// SetMaxLength sets the maximum length and truncates the current text.
func (e *Entry) SetMaxLength(n int) {
	if n < 0 {
		n = 0
	}
	e.maxLength = n
	e.text = e.clip(e.text)
}

// MaxLength returns the maximum length, 0 when unlimited.
func (e *Entry) MaxLength() int {
	return e.maxLength
}

// Activate emits "activate".
func (e *Entry) Activate() {
	e.Emit("activate")
}

func (e *Entry) clip(text []rune) []rune {
	if e.maxLength > 0 && len(text) > e.maxLength {
		return text[:e.maxLength]
	}
	return text
}
