package viz

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/motion"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, opts Options) *App {
	t.Helper()
	a := NewApp(opts)
	a.Update(engineLoadedMsg{engine: engine.New()})
	require.True(t, a.Player().EngineLoaded())
	return a
}

// run feeds ticks spaced step apart, starting a fresh tick sequence.
func run(a *App, ticks int, step time.Duration) {
	now := time.Unix(0, 0)
	a.lastTick = time.Time{}
	for i := 0; i <= ticks; i++ {
		a.Update(TickMsg(now))
		now = now.Add(step)
	}
}

func TestAppPlayRefusedBeforeEngineLoads(t *testing.T) {
	a := NewApp(Options{})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.Player().Playing())
	assert.Contains(t, a.View(), "loading engine")
}

func TestAppEngineLoadFailure(t *testing.T) {
	a := NewApp(Options{})
	a.Update(engineLoadedMsg{err: errors.New("boom")})
	assert.False(t, a.Player().EngineLoaded())
	assert.Contains(t, a.View(), "engine failed: boom")
}

func TestAppKeyNavigation(t *testing.T) {
	a := loaded(t, Options{})
	assert.Equal(t, "entering", a.Player().Category().ID)
	assert.Equal(t, "fadeUp", a.Player().Variant().ID)

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "fadeScale", a.Player().Variant().ID)

	a.Update(tea.KeyMsg{Type: tea.KeyUp})
	a.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "popIn", a.Player().Variant().ID, "wraps to the last variant")

	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "exiting", a.Player().Category().ID)
	assert.Equal(t, "fadeOut", a.Player().Variant().ID)

	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "stagger", a.Player().Category().ID)

	a.Update(runes("3"))
	assert.Equal(t, "transform", a.Player().Category().ID)
	a.Update(runes("9"))
	assert.Equal(t, "transform", a.Player().Category().ID)
}

func TestAppPlayRunsToCompletion(t *testing.T) {
	a := loaded(t, Options{SettleDelay: 50 * time.Millisecond, GuardPadding: 100 * time.Millisecond})
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.Player().Playing())

	run(a, 5, 20*time.Millisecond)
	assert.True(t, a.Player().Playing())
	assert.NotEmpty(t, a.history[motion.KeyY])

	run(a, 20, 50*time.Millisecond)
	assert.False(t, a.Player().Playing())
	assert.True(t, a.Player().Stage().Box.Style.Opacity > 0.99)
}

func TestAppSelectionWhilePlayingIgnored(t *testing.T) {
	a := loaded(t, Options{})
	a.Update(runes("p"))
	require.True(t, a.Player().Playing())

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "entering", a.Player().Category().ID)
	assert.Equal(t, "fadeUp", a.Player().Variant().ID)
}

func TestAppTickClampsLongGaps(t *testing.T) {
	a := loaded(t, Options{})
	a.Update(TickMsg(time.Unix(0, 0)))
	a.Update(TickMsg(time.Unix(10, 0)))
	assert.Equal(t, maxFrameStep, a.Player().Clock())
}

func TestAppEditedCodeFailureRaisesAlert(t *testing.T) {
	a := loaded(t, Options{Editable: true})
	a.Update(runes("e"))
	require.True(t, a.Player().Editing())
	assert.True(t, a.showCode)

	a.editor.SetValue(`gsap.to(`)
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, a.Player().Editing())
	require.True(t, a.Player().Playing())

	run(a, 3, 30*time.Millisecond)
	var serr *motion.ScriptError
	require.ErrorAs(t, a.Alert(), &serr)
	assert.Equal(t, "fadeUp", serr.Variant)
	assert.Contains(t, a.View(), "Code error")

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NoError(t, a.Alert())
}

func TestAppRevertRestoresPreset(t *testing.T) {
	a := loaded(t, Options{Editable: true})
	a.Update(runes("e"))
	a.Update(runes("x"))
	assert.True(t, a.Player().Dirty())

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.False(t, a.Player().Dirty())
	assert.Equal(t, a.Player().Variant().Code, a.editor.Value())
}

func TestAppEditDisabledWhenReadOnly(t *testing.T) {
	a := loaded(t, Options{})
	a.Update(runes("e"))
	assert.False(t, a.Player().Editing())
}

func TestAppToggles(t *testing.T) {
	a := loaded(t, Options{ShowCode: true})
	a.Update(runes("y"))
	assert.True(t, a.Player().Yoyo())
	a.Update(runes("c"))
	assert.False(t, a.showCode)

	before := a.theme.Name
	a.Update(runes("t"))
	assert.NotEqual(t, before, a.theme.Name)

	a.Update(runes("?"))
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "KEYS")
	a.Update(runes("p"))
	assert.False(t, a.Player().Playing(), "keys go to the help overlay")
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.showHelp)
}

func TestAppView(t *testing.T) {
	a := loaded(t, Options{ShowCode: true})
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	v := a.View()
	for _, want := range []string{"VARIANTS", "Fade + Slide Up", "back.out(1.7)", "engine ready", "Invisible → Visible", "CODE"} {
		assert.Contains(t, v, want)
	}
}

func TestAppInitialSelection(t *testing.T) {
	a := NewApp(Options{Category: "threeD", Variant: "flip", Yoyo: true})
	assert.Equal(t, "threeD", a.Player().Category().ID)
	assert.Equal(t, "flip", a.Player().Variant().ID)
	assert.True(t, a.Player().Yoyo())

	a = NewApp(Options{Category: "nope"})
	assert.Equal(t, "entering", a.Player().Category().ID)
}
