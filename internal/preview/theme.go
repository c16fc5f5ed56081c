package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the styles the renderer draws with.
type Theme struct {
	Frame    tcell.Style
	Title    tcell.Style
	Text     tcell.Style
	Button   tcell.Style
	Focus    tcell.Style
	Entry    tcell.Style
	Header   tcell.Style
	Disabled tcell.Style
}

// DefaultTheme uses colors.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Frame:    base.Foreground(tcell.ColorSteelBlue),
		Title:    base.Foreground(tcell.ColorWhite).Bold(true),
		Text:     base,
		Button:   base.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
		Focus:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		Entry:    base.Underline(true),
		Header:   base.Bold(true),
		Disabled: base.Dim(true),
	}
}

// MonoTheme uses attributes only.
func MonoTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Frame:    base,
		Title:    base.Bold(true),
		Text:     base,
		Button:   base,
		Focus:    base.Reverse(true),
		Entry:    base.Underline(true),
		Header:   base.Bold(true),
		Disabled: base.Dim(true),
	}
}

// ThemeByName returns the theme called name.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "mono":
		return MonoTheme(), nil
	default:
		return Theme{}, fmt.Errorf("preview: unknown theme %q", name)
	}
}
