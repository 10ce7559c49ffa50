package viz

import "github.com/charmbracelet/lipgloss"

// Theme assigns colors to the roles used by the live view.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Liquid lipgloss.Color // activated populations, positive S
	Ice    lipgloss.Color // ice latch, qi
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
	Alert  lipgloss.Color // clamps, negative S
}

var (
	ThemeStorm = Theme{
		Name:   "storm",
		Title:  lipgloss.Color("#00cccc"),
		Liquid: lipgloss.Color("#00ff88"),
		Ice:    lipgloss.Color("#88ccff"),
		Text:   lipgloss.Color("#e0e0f0"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ffcc00"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#00ff00"),
		Liquid: lipgloss.Color("#88ff88"),
		Ice:    lipgloss.Color("#ccffcc"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Liquid: lipgloss.Color("#cccccc"),
		Ice:    lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeStorm

	Themes = []Theme{ThemeStorm, ThemeRetro, ThemeMinimal}
)

// GetTheme returns a theme by name, or the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeStorm
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
