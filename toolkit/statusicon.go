package toolkit

// StatusIcon is an icon in the system tray. It is an Object, not a Widget.
type StatusIcon struct {
	ObjectBase

	tooltip  string
	iconName string
	visible  bool
}

// NewStatusIcon creates a visible status icon without an image.
func NewStatusIcon() *StatusIcon {
	s := &StatusIcon{visible: true}
	s.InitObject(StatusIconType, s)
	return s
}

// SetTooltipText sets the tooltip.
func (s *StatusIcon) SetTooltipText(text string) {
	s.tooltip = text
}

// TooltipText returns the tooltip.
func (s *StatusIcon) TooltipText() string {
	return s.tooltip
}

// SetIconName sets the themed icon name.
func (s *StatusIcon) SetIconName(name string) {
	s.iconName = name
}

// IconName returns the themed icon name.
func (s *StatusIcon) IconName() string {
	return s.iconName
}

// SetVisible sets whether the icon is shown.
func (s *StatusIcon) SetVisible(visible bool) {
	s.visible = visible
}

// Visible reports whether the icon is shown.
func (s *StatusIcon) Visible() bool {
	return s.visible
}

// Activate emits "activate".
func (s *StatusIcon) Activate() {
	s.Emit("activate")
}
