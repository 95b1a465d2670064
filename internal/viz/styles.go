package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles derived from a theme.
type Styles struct {
	Panel     lipgloss.Style
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Selected  lipgloss.Style
	Key       lipgloss.Style
	Playing   lipgloss.Style
	Idle      lipgloss.Style
	Alert     lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Key:      lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Playing:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Idle:     lipgloss.NewStyle().Foreground(t.Muted),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.Error).
			Foreground(t.Text).
			Padding(1, 2),
		Added:     lipgloss.NewStyle().Foreground(t.Success),
		Removed:   lipgloss.NewStyle().Foreground(t.Error).Strikethrough(true),
		SparkHigh: lipgloss.NewStyle().Foreground(t.Success),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Warning),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText blends each rune's colour from start to end in Lab space.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	start, err1 := colorful.Hex(string(startColor))
	end, err2 := colorful.Hex(string(endColor))
	if err1 != nil || err2 != nil {
		return text
	}

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := lipgloss.Color(start.BlendLab(end, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(c)))
	}

	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders percent of width as a solid bar.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return s.SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return s.SparkMid.Render(bar)
	}
	return s.SparkLow.Render(bar)
}

// Sparkline renders the last width values scaled to their range.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return s.Subtle.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		return s.SparkMid.Render(strings.Repeat(string(chars[0]), len(values)))
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		idx := max(0, min(int(norm*float64(len(chars)-1)), len(chars)-1))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.SparkMid.Render(c))
		default:
			result.WriteString(s.SparkLow.Render(c))
		}
	}

	return result.String()
}

// Separator draws a rule with a centred diamond.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
