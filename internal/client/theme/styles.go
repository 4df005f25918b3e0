package theme

import (
	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/charmbracelet/lipgloss"
)

type Palette struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#1F6FEB"),
		Accent:     lipgloss.Color("#2DA44E"),
		Muted:      lipgloss.Color("#6E7781"),
		Border:     lipgloss.Color("#D0D7DE"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#E6EDF3"),
		Primary:    lipgloss.Color("#58A6FF"),
		Accent:     lipgloss.Color("#3FB950"),
		Muted:      lipgloss.Color("#8B949E"),
		Border:     lipgloss.Color("#30363D"),
	}

	colorError   = lipgloss.Color("#E5534B")
	colorWarning = lipgloss.Color("#D29922")
)

// Styles are the CLI's text styles for one effective theme.
type Styles struct {
	Dark    bool
	Palette Palette

	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Box     lipgloss.Style
}

// NewStyles builds styles for effective. Anything but dark gets the light
// palette.
func NewStyles(effective models.Theme) Styles {
	dark := effective == models.ThemeDark
	pal := lightPalette
	if dark {
		pal = darkPalette
	}

	return Styles{
		Dark:    dark,
		Palette: pal,

		Title:   lipgloss.NewStyle().Foreground(pal.Primary).Bold(true),
		Prompt:  lipgloss.NewStyle().Foreground(pal.Accent).Bold(true),
		Body:    lipgloss.NewStyle().Foreground(pal.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(pal.Muted),
		Success: lipgloss.NewStyle().Foreground(pal.Accent),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pal.Border).
			Padding(0, 1),
	}
}

// Styles returns styles for the currently applied theme.
func (p *Presenter) Styles() Styles {
	return NewStyles(p.Scheme())
}
