package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the viewer after a screen phosphor.
type Theme struct {
	Name    string
	Beam    lipgloss.Color
	Frame   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	// Gauge gradient endpoints.
	GaugeFrom string
	GaugeTo   string
}

var (
	ThemeP1 = Theme{
		Name:      "p1",
		Beam:      lipgloss.Color("#33ff66"),
		Frame:     lipgloss.Color("#1f5f2f"),
		Accent:    lipgloss.Color("#aaffaa"),
		Text:      lipgloss.Color("#d0ffd0"),
		Muted:     lipgloss.Color("#4f7f5f"),
		Warning:   lipgloss.Color("#ff5f5f"),
		GaugeFrom: "#1f8f3f",
		GaugeTo:   "#66ff99",
	}

	ThemeP3 = Theme{
		Name:      "p3",
		Beam:      lipgloss.Color("#ffb000"),
		Frame:     lipgloss.Color("#7f5800"),
		Accent:    lipgloss.Color("#ffd27f"),
		Text:      lipgloss.Color("#ffe8c0"),
		Muted:     lipgloss.Color("#8f7040"),
		Warning:   lipgloss.Color("#ff4444"),
		GaugeFrom: "#FF8C00",
		GaugeTo:   "#FF5F1F",
	}

	ThemeP4 = Theme{
		Name:      "p4",
		Beam:      lipgloss.Color("#f0f0ff"),
		Frame:     lipgloss.Color("#666677"),
		Accent:    lipgloss.Color("#88aaff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888899"),
		Warning:   lipgloss.Color("#ff5f87"),
		GaugeFrom: "#5f5fff",
		GaugeTo:   "#d7d7ff",
	}

	ThemeP11 = Theme{
		Name:      "p11",
		Beam:      lipgloss.Color("#33ccff"),
		Frame:     lipgloss.Color("#1f4f6f"),
		Accent:    lipgloss.Color("#99e6ff"),
		Text:      lipgloss.Color("#e0f6ff"),
		Muted:     lipgloss.Color("#4f7f99"),
		Warning:   lipgloss.Color("#ffcc00"),
		GaugeFrom: "#0077be",
		GaugeTo:   "#00ffff",
	}

	Themes = []Theme{ThemeP1, ThemeP3, ThemeP4, ThemeP11}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
