// Package theme maps the dark-mode flag to a fixed palette and turns that
// palette into the Lip Gloss styles used by every widget and the chart.
package theme

import "github.com/charmbracelet/lipgloss"

// Config is the only theme state: light or dark.
type Config struct {
	IsDark bool
}

// Toggled returns the opposite theme.
func (c Config) Toggled() Config {
	return Config{IsDark: !c.IsDark}
}

// Name is "dark" or "light".
func (c Config) Name() string {
	if c.IsDark {
		return "dark"
	}
	return "light"
}

// Palette is the four-color set defining one theme.
type Palette struct {
	Background       lipgloss.Color
	Foreground       lipgloss.Color
	ButtonBackground lipgloss.Color
	ButtonForeground lipgloss.Color
}

var (
	light = Palette{
		Background:       lipgloss.Color("#FFFFFF"),
		Foreground:       lipgloss.Color("#000000"),
		ButtonBackground: lipgloss.Color("#E0E0E0"),
		ButtonForeground: lipgloss.Color("#000000"),
	}

	dark = Palette{
		Background:       lipgloss.Color("#2E2E2E"),
		Foreground:       lipgloss.Color("#FFFFFF"),
		ButtonBackground: lipgloss.Color("#4A4A4A"),
		ButtonForeground: lipgloss.Color("#FFFFFF"),
	}
)

// Fixed colors shared by both themes.
const (
	lineColor  = lipgloss.Color("#1F77B4")
	errorColor = lipgloss.Color("#FF0000")
	okColor    = lipgloss.Color("#00A000")
	helpColor  = lipgloss.Color("#626262")
)

// Compute returns the palette for cfg.
func Compute(cfg Config) Palette {
	if cfg.IsDark {
		return dark
	}
	return light
}

// Styles holds one style per themed surface.
type Styles struct {
	Palette Palette

	Window          lipgloss.Style
	Label           lipgloss.Style
	Input           lipgloss.Style
	InputPrompt     lipgloss.Style
	Button          lipgloss.Style
	ButtonFocused   lipgloss.Style
	Checkbox        lipgloss.Style
	CheckboxFocused lipgloss.Style
	Status          lipgloss.Style
	Error           lipgloss.Style
	Help            lipgloss.Style

	ChartFace      lipgloss.Style
	ChartTick      lipgloss.Style
	ChartSpine     lipgloss.Style
	ChartAxisLabel lipgloss.Style
	ChartTitle     lipgloss.Style
	ChartLine      lipgloss.Style
	Tooltip        lipgloss.Style
}

// Apply builds the full style set from p. The result depends only on p.
func Apply(p Palette) Styles {
	base := lipgloss.NewStyle().
		Background(p.Background).
		Foreground(p.Foreground)

	button := lipgloss.NewStyle().
		Background(p.ButtonBackground).
		Foreground(p.ButtonForeground).
		Padding(0, 2)

	return Styles{
		Palette: p,

		Window:          base.Padding(1, 2),
		Label:           base,
		Input:           base,
		InputPrompt:     base.Bold(true),
		Button:          button,
		ButtonFocused:   button.Bold(true).Underline(true),
		Checkbox:        base,
		CheckboxFocused: base.Bold(true),
		Status:          base.Foreground(okColor),
		Error:           base.Foreground(errorColor),
		Help:            base.Foreground(helpColor),

		ChartFace:      base,
		ChartTick:      base,
		ChartSpine:     base,
		ChartAxisLabel: base,
		ChartTitle:     base.Bold(true),
		ChartLine:      lipgloss.NewStyle().Background(p.Background).Foreground(lineColor),
		Tooltip: lipgloss.NewStyle().
			Background(p.ButtonBackground).
			Foreground(p.ButtonForeground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Foreground).
			BorderBackground(p.Background).
			Padding(0, 1),
	}
}

// For is Apply(Compute(cfg)).
func For(cfg Config) Styles {
	return Apply(Compute(cfg))
}
