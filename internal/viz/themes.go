package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the preset browser. Glamour names the
// glamour style used for the code pane.
type Theme struct {
	Name    string
	Glamour string

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	// ThemeStudio is the default: slate panels with cyan and fuchsia
	// highlights.
	ThemeStudio = Theme{
		Name: "studio", Glamour: "dracula",
		Primary: "#22d3ee", Secondary: "#e879f9", Accent: "#facc15",
		Background: "#0f172a", Text: "#e2e8f0", Muted: "#64748b",
		Success: "#4ade80", Warning: "#fb923c", Error: "#f87171",
	}
	ThemePhosphor = Theme{
		Name: "phosphor", Glamour: "dark",
		Primary: "#39ff14", Secondary: "#2bd40f", Accent: "#b6ff9e",
		Background: "#041004", Text: "#39ff14", Muted: "#1f6b12",
		Success: "#b6ff9e", Warning: "#e6ff3b", Error: "#ff3b3b",
	}
	// ThemePaper has no glamour colours so it stays readable on light
	// terminals.
	ThemePaper = Theme{
		Name: "paper", Glamour: "notty",
		Primary: "#1e293b", Secondary: "#475569", Accent: "#2563eb",
		Background: "#f8fafc", Text: "#0f172a", Muted: "#94a3b8",
		Success: "#15803d", Warning: "#b45309", Error: "#b91c1c",
	}
	ThemeNeon = Theme{
		Name: "neon", Glamour: "dracula",
		Primary: "#f472b6", Secondary: "#a78bfa", Accent: "#22d3ee",
		Background: "#12001f", Text: "#fdf4ff", Muted: "#7e5a9b",
		Success: "#34d399", Warning: "#fbbf24", Error: "#fb7185",
	}
	ThemeDusk = Theme{
		Name: "dusk", Glamour: "pink",
		Primary: "#fb923c", Secondary: "#f9a8d4", Accent: "#fde047",
		Background: "#1c1017", Text: "#fff7ed", Muted: "#9a7b88",
		Success: "#86efac", Warning: "#fcd34d", Error: "#f43f5e",
	}

	// Themes is the cycle order used by the theme key.
	Themes = []Theme{ThemeStudio, ThemePhosphor, ThemePaper, ThemeNeon, ThemeDusk}
)

// GetTheme looks a theme up by name, falling back to studio.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeStudio
}

// NextTheme returns the theme after t in the cycle order.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

var categoryColors = map[string]lipgloss.Color{
	"cyan":    "#22d3ee",
	"magenta": "#e879f9",
	"yellow":  "#facc15",
	"green":   "#4ade80",
	"orange":  "#fb923c",
	"purple":  "#a78bfa",
	"blue":    "#60a5fa",
	"pink":    "#f472b6",
}

// CategoryColor resolves a catalog colour tag. Unknown tags get the accent.
func (t Theme) CategoryColor(tag string) lipgloss.Color {
	if c, ok := categoryColors[tag]; ok {
		return c
	}
	return t.Accent
}

func ThemeNames() []string {
	out := make([]string, 0, len(Themes))
	for _, t := range Themes {
		out = append(out, t.Name)
	}
	return out
}
