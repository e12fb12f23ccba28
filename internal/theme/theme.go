// Package theme defines the color palettes and lipgloss styles used by
// every renderable surface in lazycloud.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color values for one palette. Colors are hex strings so
// palettes stay declarative; views convert through the accessors or the
// prebuilt Styles bundle.
type Theme struct {
	Name string

	// Base layers, darkest to lightest
	Base     string
	Mantle   string
	Crust    string
	Surface0 string
	Surface1 string
	Surface2 string

	// Text
	Text     string
	Subtext  string
	Overlay0 string
	Overlay1 string

	// Accents
	Mauve    string
	Lavender string
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Teal     string
	Sky      string
	Blue     string
}

// Semantic accessors. Views ask for intent, not palette slots.

func (t Theme) Primary() lipgloss.Color     { return lipgloss.Color(t.Blue) }
func (t Theme) Success() lipgloss.Color     { return lipgloss.Color(t.Green) }
func (t Theme) Warning() lipgloss.Color     { return lipgloss.Color(t.Yellow) }
func (t Theme) Danger() lipgloss.Color      { return lipgloss.Color(t.Red) }
func (t Theme) Info() lipgloss.Color        { return lipgloss.Color(t.Sky) }
func (t Theme) Border() lipgloss.Color      { return lipgloss.Color(t.Surface1) }
func (t Theme) BorderFocus() lipgloss.Color { return lipgloss.Color(t.Lavender) }
func (t Theme) SelectionBg() lipgloss.Color { return lipgloss.Color(t.Surface1) }
func (t Theme) Header() lipgloss.Color      { return lipgloss.Color(t.Yellow) }
func (t Theme) Highlight() lipgloss.Color   { return lipgloss.Color(t.Mauve) }

// Styles returns the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Subtext)),

		Faint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Overlay0)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Mauve)).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Lavender)),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Yellow)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface1)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Green)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Yellow)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Red)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Sky)),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Surface1)),

		BorderFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Lavender)),
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Faint    lipgloss.Style
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style

	Border      lipgloss.Style
	BorderFocus lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Catppuccin Mocha":     mochaTheme(),
	"Catppuccin Macchiato": macchiatoTheme(),
	"Catppuccin Frappé":    frappeTheme(),
	"Catppuccin Latte":     latteTheme(),
}

var themeOrder = []string{
	"Catppuccin Mocha",
	"Catppuccin Macchiato",
	"Catppuccin Frappé",
	"Catppuccin Latte",
}

// DefaultName is the theme used when no preference is stored.
const DefaultName = "Catppuccin Mocha"

// Get returns a theme by name, falling back to the default.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return mochaTheme()
}

// Next returns the next theme name in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names in display order.
func Names() []string {
	return themeOrder
}

func mochaTheme() Theme {
	// Catppuccin Mocha palette: https://catppuccin.com/palette
	return Theme{
		Name: "Catppuccin Mocha",

		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Crust:    "#11111b",
		Surface0: "#313244",
		Surface1: "#45475a",
		Surface2: "#585b70",

		Text:     "#cdd6f4",
		Subtext:  "#a6adc8", // subtext0
		Overlay0: "#6c7086",
		Overlay1: "#7f849c",

		Mauve:    "#cba6f7",
		Lavender: "#b4befe",
		Red:      "#f38ba8",
		Peach:    "#fab387",
		Yellow:   "#f9e2af",
		Green:    "#a6e3a1",
		Teal:     "#94e2d5",
		Sky:      "#89dceb",
		Blue:     "#89b4fa",
	}
}

func macchiatoTheme() Theme {
	// Catppuccin Macchiato palette: https://catppuccin.com/palette
	return Theme{
		Name: "Catppuccin Macchiato",

		Base:     "#24273a",
		Mantle:   "#1e2030",
		Crust:    "#181926",
		Surface0: "#363a4f",
		Surface1: "#494d64",
		Surface2: "#5b6078",

		Text:     "#cad3f5",
		Subtext:  "#a5adcb", // subtext0
		Overlay0: "#6e738d",
		Overlay1: "#8087a2",

		Mauve:    "#c6a0f6",
		Lavender: "#b7bdf8",
		Red:      "#ed8796",
		Peach:    "#f5a97f",
		Yellow:   "#eed49f",
		Green:    "#a6da95",
		Teal:     "#8bd5ca",
		Sky:      "#91d7e3",
		Blue:     "#8aadf4",
	}
}

func frappeTheme() Theme {
	// Catppuccin Frappé palette: https://catppuccin.com/palette
	return Theme{
		Name: "Catppuccin Frappé",

		Base:     "#303446",
		Mantle:   "#292c3c",
		Crust:    "#232634",
		Surface0: "#414559",
		Surface1: "#51576d",
		Surface2: "#626880",

		Text:     "#c6d0f5",
		Subtext:  "#a5adce", // subtext0
		Overlay0: "#737994",
		Overlay1: "#838ba7",

		Mauve:    "#ca9ee6",
		Lavender: "#babbf1",
		Red:      "#e78284",
		Peach:    "#ef9f76",
		Yellow:   "#e5c890",
		Green:    "#a6d189",
		Teal:     "#81c8be",
		Sky:      "#99d1db",
		Blue:     "#8caaee",
	}
}

func latteTheme() Theme {
	// Catppuccin Latte palette (light): https://catppuccin.com/palette
	return Theme{
		Name: "Catppuccin Latte",

		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Crust:    "#dce0e8",
		Surface0: "#ccd0da",
		Surface1: "#bcc0cc",
		Surface2: "#acb0be",

		Text:     "#4c4f69",
		Subtext:  "#6c6f85", // subtext0
		Overlay0: "#9ca0b0",
		Overlay1: "#8c8fa1",

		Mauve:    "#8839ef",
		Lavender: "#7287fd",
		Red:      "#d20f39",
		Peach:    "#fe640b",
		Yellow:   "#df8e1d",
		Green:    "#40a02b",
		Teal:     "#179299",
		Sky:      "#04a5e5",
		Blue:     "#1e66f5",
	}
}
