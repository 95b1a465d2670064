package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/motion"
)

const (
	zonePlay  = "btn:play"
	zoneReset = "btn:reset"
	zoneYoyo  = "btn:yoyo"
	zoneCode  = "btn:code"
	zoneEdit  = "btn:edit"

	sideWidth = 32
)

func categoryZone(id string) string { return "cat:" + id }
func variantZone(id string) string  { return "var:" + id }

// quickRef is the footer cheat sheet of easing choices.
var quickRef = []struct {
	icon, title, ease, hint, color string
}{
	{"⟶", "Invisible → Visible", "back.out(1.7)", "Skip anticipation phase", "cyan"},
	{"◈", "Visible → Visible", "back.inOut(1.4)", "Show full journey", "magenta"},
	{"⟵", "Visible → Invisible", "power2.in", "Accelerate out", "yellow"},
}

func (a *App) View() string {
	var s strings.Builder
	s.WriteString(a.viewHeader() + "\n")
	s.WriteString(a.viewCategories() + "\n\n")

	side := lipgloss.JoinVertical(lipgloss.Left, a.viewVariants(), a.viewProperties())
	stage := a.viewStage()
	if a.showCode {
		stage = lipgloss.JoinVertical(lipgloss.Left, stage, a.viewCode())
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, side, " ", stage) + "\n")
	s.WriteString(a.viewQuickRef() + "\n")
	s.WriteString(a.viewHints())

	out := s.String()
	switch {
	case a.alert != nil:
		out = a.overlay(a.viewAlert())
	case a.showHelp:
		out = a.overlay(a.viewHelp())
	}
	return zone.Scan(out)
}

func (a *App) overlay(box string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func (a *App) viewHeader() string {
	title := GradientText("EASELAB", a.theme.Primary, a.theme.Secondary)
	sub := a.styles.Subtle.Render("motion design presets")

	var status string
	switch {
	case a.loadErr != nil:
		status = a.styles.SparkLow.Render("engine failed: " + a.loadErr.Error())
	case !a.player.EngineLoaded():
		status = a.styles.SparkMid.Render(AnimatedSpinner(a.frame) + " loading engine…")
	default:
		status = a.styles.Playing.Render("● engine ready")
	}
	return title + "  " + sub + "  " + status
}

func (a *App) viewCategories() string {
	current := a.player.Category().ID
	parts := make([]string, 0, len(catalog.IDs()))
	for i, c := range catalog.Categories() {
		label := fmt.Sprintf("%d %s %s", i+1, c.Icon, c.Label)
		color := a.theme.CategoryColor(c.Color)
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(color)
		if c.ID == current {
			st = st.Bold(true).Foreground(a.theme.Background).Background(color)
		}
		parts = append(parts, zone.Mark(categoryZone(c.ID), st.Render(label)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	desc := a.styles.Subtle.Render(a.player.Category().Description)
	return bar + "\n" + desc
}

func (a *App) viewVariants() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("VARIANTS") + "\n")
	current := a.player.Variant().ID
	for _, v := range a.player.Category().Variants() {
		line := "  " + v.Label
		if v.ID == current {
			line = a.styles.Selected.Render("▸ " + v.Label)
		} else {
			line = a.styles.Idle.Render(line)
		}
		b.WriteString(zone.Mark(variantZone(v.ID), line) + "\n")
	}
	return a.styles.Panel.Width(sideWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) viewProperties() string {
	v := a.player.Variant()
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("PROPERTIES") + "\n")
	b.WriteString(a.styles.Label.Render("EASING") + a.styles.Value.Render(v.Ease) + "\n")
	b.WriteString(a.styles.Label.Render("DURATION") + a.styles.Value.Render(fmt.Sprintf("%gs", v.Duration)) + "\n")

	mode := "single"
	switch {
	case a.player.Editable():
		mode = "editable"
	case a.player.Yoyo():
		mode = "yoyo"
	}
	b.WriteString(a.styles.Label.Render("MODE") + a.styles.Value.Render(mode) + "\n")
	if v.Stagger {
		b.WriteString(a.styles.Label.Render("TARGETS") + a.styles.Value.Render(fmt.Sprintf("%d items", len(a.player.Stage().Items))) + "\n")
	}

	phase := a.styles.Idle.Render(a.player.Phase().String())
	if a.player.Playing() {
		phase = a.styles.Playing.Render(a.player.Phase().String())
	}
	b.WriteString(a.styles.Label.Render("STATE") + phase)

	for _, k := range a.animatedKeys(2) {
		b.WriteString("\n" + a.styles.Label.Render(string(k)) + a.styles.Sparkline(a.history[k], sideWidth-12))
	}
	return a.styles.Panel.Width(sideWidth).Render(b.String())
}

// animatedKeys returns up to n recorded properties that changed.
func (a *App) animatedKeys(n int) []motion.Key {
	var out []motion.Key
	for _, k := range []motion.Key{motion.KeyX, motion.KeyY, motion.KeyScaleX, motion.KeyRotation, motion.KeyRotateX, motion.KeyRotateY, motion.KeyOpacity} {
		h := a.history[k]
		if len(h) < 2 {
			continue
		}
		lo, hi := h[0], h[0]
		for _, v := range h {
			lo, hi = min(lo, v), max(hi, v)
		}
		if hi-lo > 1e-6 {
			out = append(out, k)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

func (a *App) viewStage() string {
	p := a.player
	DrawStage(a.canvas, a.camera, p.Stage().Snapshot(), p.Variant().Stagger)

	fill := a.lead().Fill.Clamped().Hex()
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(fill)).Render(strings.TrimRight(a.canvas.String(), "\n"))

	progress := 0.0
	if p.Playing() {
		total := p.Options().SettleDelay + p.GuardTimeout()
		if total > 0 {
			progress = float64(p.Clock()-a.playStart) / float64(total)
		}
	}
	bar := a.styles.ProgressBar(progress, a.canvas.Width)

	return a.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.viewButtons(), body, bar))
}

func (a *App) viewButtons() string {
	p := a.player
	btn := func(id, label string, on bool) string {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(a.theme.Text).Background(a.theme.Muted)
		if on {
			st = st.Foreground(a.theme.Background).Background(a.theme.Secondary)
		}
		return zone.Mark(id, st.Render(label))
	}

	playLabel := "▶ PLAY"
	if p.Playing() {
		playLabel = "● PLAYING"
	}
	codeLabel := "SHOW CODE"
	if a.showCode {
		codeLabel = "HIDE CODE"
	}

	parts := []string{btn(zonePlay, playLabel, p.Playing()), " ", btn(zoneReset, "↺ RESET", false), " ", btn(zoneCode, codeLabel, a.showCode)}
	if p.Editable() {
		parts = append(parts, " ", btn(zoneEdit, "✎ EDIT", p.Editing()))
	} else {
		parts = append(parts, " ", btn(zoneYoyo, "⟲ YOYO", p.Yoyo()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) viewCode() string {
	p := a.player
	orig := p.Variant().Code

	var body, footer string
	switch {
	case p.Editing():
		body = a.editor.View()
		footer = a.editStatus(orig, p.Buffer()) + "  " + a.hintLine(keys.editing())
	case p.Dirty():
		body = RenderWordDiff(orig, p.Buffer(), a.styles)
		footer = a.editStatus(orig, p.Buffer())
	default:
		body = a.code.Render(p.Buffer())
	}

	title := a.styles.Title.Render("CODE")
	if footer != "" {
		return a.styles.Panel.Render(title + "\n" + body + "\n" + footer)
	}
	return a.styles.Panel.Render(title + "\n" + body)
}

func (a *App) editStatus(orig, edited string) string {
	st := DiffLines(orig, edited)
	if !st.Changed() {
		return a.styles.Subtle.Render("unchanged")
	}
	return a.styles.Added.Render(fmt.Sprintf("+%d", st.Added)) + " " +
		a.styles.Removed.UnsetStrikethrough().Render(fmt.Sprintf("-%d", st.Removed)) +
		a.styles.Subtle.Render(" lines vs preset")
}

func (a *App) viewQuickRef() string {
	cards := make([]string, len(quickRef))
	for i, q := range quickRef {
		color := a.theme.CategoryColor(q.color)
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1).
			Width(30).
			Render(q.icon + " " + lipgloss.NewStyle().Bold(true).Render(q.title) + "\n" +
				lipgloss.NewStyle().Foreground(color).Render(q.ease) + "\n" +
				a.styles.Subtle.Render(q.hint))
		cards[i] = card
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) viewHints() string {
	return a.hintLine([]key.Binding{keys.PrevCat, keys.NextVar, keys.Play, keys.Reset, keys.Help, keys.Quit})
}

func (a *App) hintLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, a.styles.Key.Render(h.Key)+" "+a.styles.Subtle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("KEYS") + "\n\n")
	for _, k := range keys.browse() {
		h := k.Help()
		b.WriteString(fmt.Sprintf("%s %s\n", a.styles.Key.Width(8).Render(h.Key), a.styles.Value.Render(h.Desc)))
	}
	b.WriteString("\n" + a.styles.Subtle.Render("1-8 jump to a category · click to select"))
	return a.styles.Panel.Padding(1, 2).Render(b.String())
}

func (a *App) viewAlert() string {
	msg := a.alert.Error()
	return a.styles.Alert.Width(min(70, max(30, a.width-10))).Render(
		a.styles.SparkLow.Bold(true).Render("Code error") + "\n\n" + msg + "\n\n" +
			a.styles.Subtle.Render("esc to dismiss"))
}
