package viz

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/player"
)

const (
	DefaultFPS         = 60
	DefaultLoadLatency = 400 * time.Millisecond
	maxFrameStep       = 100 * time.Millisecond
	historyCapacity    = 180
)

// Options configures the preset browser.
type Options struct {
	Theme        string
	FPS          int
	ShowCode     bool
	Editable     bool
	Yoyo         bool
	Category     string
	Variant      string
	SettleDelay  time.Duration
	GuardPadding time.Duration
	// LoadLatency is how long the engine takes to become available.
	LoadLatency time.Duration
}

type TickMsg time.Time

type engineLoadedMsg struct {
	engine *engine.Engine
	err    error
}

// App is the Bubble Tea model of the preset browser. It owns the controller,
// the engine and the stage; all of them are touched only from Update.
type App struct {
	opts   Options
	player *player.Player
	theme  Theme
	styles Styles
	canvas *Canvas
	camera *Camera
	code   *codeRenderer
	editor textarea.Model

	width, height int
	showCode      bool
	showHelp      bool
	alert         error
	loadErr       error
	frame         int
	lastTick      time.Time
	playStart     time.Duration
	history       map[motion.Key][]float64
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.LoadLatency < 0 {
		opts.LoadLatency = 0
	}
	a := &App{
		opts:     opts,
		theme:    GetTheme(opts.Theme),
		canvas:   NewCanvas(56, 14),
		camera:   NewCamera(),
		width:    120,
		height:   40,
		showCode: opts.ShowCode,
		history:  make(map[motion.Key][]float64),
	}
	a.styles = NewStyles(a.theme)
	a.code = newCodeRenderer(a.theme.Glamour, 60)

	a.player = player.New(player.NewStage(), player.Options{
		Editable:     opts.Editable,
		SettleDelay:  opts.SettleDelay,
		GuardPadding: opts.GuardPadding,
		OnError:      a.onError,
	})
	if opts.Category != "" {
		if err := a.player.SelectCategory(opts.Category); err != nil {
			log.Warn(log.CatUI, "initial category ignored", "err", err)
		}
	}
	if opts.Variant != "" {
		if err := a.player.SelectVariant(opts.Variant); err != nil {
			log.Warn(log.CatUI, "initial variant ignored", "err", err)
		}
	}
	a.player.SetYoyo(opts.Yoyo)

	a.editor = textarea.New()
	a.editor.ShowLineNumbers = true
	a.editor.CharLimit = 0
	a.editor.SetWidth(60)
	a.editor.SetHeight(10)
	a.editor.SetValue(a.player.Buffer())
	a.editor.Blur()
	return a
}

// Player exposes the controller, mainly for tests.
func (a *App) Player() *player.Player { return a.player }

func (a *App) Alert() error { return a.alert }

func (a *App) Init() tea.Cmd {
	return tea.Batch(loadEngine(a.opts.LoadLatency), a.tick())
}

func loadEngine(latency time.Duration) tea.Cmd {
	return func() tea.Msg {
		eng, err := engine.Load(context.Background(), latency)
		return engineLoadedMsg{engine: eng, err: err}
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case engineLoadedMsg:
		if msg.err != nil {
			a.loadErr = msg.err
			log.ErrorErr(log.CatUI, "engine load failed", msg.err)
			return a, nil
		}
		a.player.SetEngine(msg.engine)
		return a, nil

	case TickMsg:
		a.advance(time.Time(msg))
		return a, a.tick()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			return a, a.click(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if a.player.Editing() {
			return a, a.editKey(msg)
		}
		return a, a.browseKey(msg)
	}

	if a.player.Editing() {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) advance(now time.Time) {
	a.frame++
	var dt time.Duration
	if !a.lastTick.IsZero() {
		dt = max(0, min(now.Sub(a.lastTick), maxFrameStep))
	}
	a.lastTick = now
	if dt == 0 {
		return
	}

	a.player.Advance(dt)
	if a.player.Playing() {
		a.record()
	}
}

// record samples the visible lead target for the property sparklines.
func (a *App) record() {
	s := a.lead()
	for _, k := range []motion.Key{motion.KeyX, motion.KeyY, motion.KeyScaleX, motion.KeyRotation, motion.KeyRotateX, motion.KeyRotateY, motion.KeyOpacity} {
		h := append(a.history[k], s.Get(k).Num)
		if len(h) > historyCapacity {
			h = h[len(h)-historyCapacity:]
		}
		a.history[k] = h
	}
}

func (a *App) lead() motion.Style {
	st := a.player.Stage()
	if a.player.Variant().Stagger && len(st.Items) > 0 {
		return st.Items[0].Style
	}
	return st.Box.Style
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	stageCols := max(24, min(w-44, 100))
	stageRows := max(8, min(h/2-4, 30))
	a.canvas = NewCanvas(stageCols, stageRows)

	codeWidth := max(30, w-44)
	a.code = newCodeRenderer(a.theme.Glamour, codeWidth)
	a.editor.SetWidth(codeWidth)
}

func (a *App) onError(err error) {
	a.alert = err
}

func (a *App) browseKey(msg tea.KeyMsg) tea.Cmd {
	if a.alert != nil {
		if key.Matches(msg, keys.Dismiss, keys.Play) {
			a.alert = nil
		}
		return nil
	}
	if a.showHelp {
		if key.Matches(msg, keys.Help, keys.Dismiss) {
			a.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.PrevCat):
		a.stepCategory(-1)
	case key.Matches(msg, keys.NextCat):
		a.stepCategory(1)
	case key.Matches(msg, keys.PrevVar):
		a.stepVariant(-1)
	case key.Matches(msg, keys.NextVar):
		a.stepVariant(1)
	case key.Matches(msg, keys.Play):
		a.play()
	case key.Matches(msg, keys.Reset):
		a.reset()
	case key.Matches(msg, keys.Yoyo):
		a.player.ToggleYoyo()
	case key.Matches(msg, keys.ToggleCode):
		a.showCode = !a.showCode
	case key.Matches(msg, keys.Edit):
		return a.edit()
	case key.Matches(msg, keys.Theme):
		a.setTheme(NextTheme(a.theme))
	case key.Matches(msg, keys.ZoomIn):
		a.camera.ZoomIn()
	case key.Matches(msg, keys.ZoomOut):
		a.camera.ZoomOut()
	case key.Matches(msg, keys.Help):
		a.showHelp = true
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil {
			ids := catalog.IDs()
			if n >= 1 && n <= len(ids) {
				a.selectCategory(ids[n-1])
			}
		}
	}
	return nil
}

func (a *App) editKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Leave):
		a.player.ExitEdit()
		a.editor.Blur()
		return nil
	case key.Matches(msg, keys.Run):
		a.syncBuffer()
		a.player.ExitEdit()
		a.editor.Blur()
		a.play()
		return nil
	case key.Matches(msg, keys.Revert):
		a.player.Revert()
		a.editor.SetValue(a.player.Buffer())
		return nil
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.syncBuffer()
	return cmd
}

func (a *App) syncBuffer() {
	if err := a.player.SetBuffer(a.editor.Value()); err != nil {
		log.Debug(log.CatUI, "buffer not stored", "err", err)
	}
}

func (a *App) edit() tea.Cmd {
	if err := a.player.Edit(); err != nil {
		return nil
	}
	a.showCode = true
	a.editor.SetValue(a.player.Buffer())
	return a.editor.Focus()
}

func (a *App) stepCategory(dir int) {
	ids := catalog.IDs()
	a.selectCategory(ids[wrap(indexOf(ids, a.player.Category().ID)+dir, len(ids))])
}

func (a *App) stepVariant(dir int) {
	ids := a.player.Category().VariantIDs()
	if len(ids) == 0 {
		return
	}
	a.selectVariant(ids[wrap(indexOf(ids, a.player.Variant().ID)+dir, len(ids))])
}

// Selection failures, including selections while playing, are ignored.
func (a *App) selectCategory(id string) {
	if err := a.player.SelectCategory(id); err != nil {
		log.Debug(log.CatUI, "category selection ignored", "id", id, "err", err)
		return
	}
	a.afterSelect()
}

func (a *App) selectVariant(id string) {
	if err := a.player.SelectVariant(id); err != nil {
		log.Debug(log.CatUI, "variant selection ignored", "id", id, "err", err)
		return
	}
	a.afterSelect()
}

func (a *App) afterSelect() {
	a.editor.SetValue(a.player.Buffer())
	a.clearHistory()
}

func (a *App) play() {
	err := a.player.Play()
	switch {
	case err == nil:
		a.playStart = a.player.Clock()
		a.alert = nil
		a.clearHistory()
	case errors.Is(err, motion.ErrEngineNotLoaded), errors.Is(err, motion.ErrPlaying):
		log.Debug(log.CatUI, "play refused", "err", err)
	default:
		log.Warn(log.CatUI, "play refused", "err", err)
	}
}

func (a *App) reset() {
	if err := a.player.Reset(); err == nil {
		a.clearHistory()
	}
}

func (a *App) clearHistory() {
	for k := range a.history {
		delete(a.history, k)
	}
}

func (a *App) setTheme(t Theme) {
	a.theme = t
	a.styles = NewStyles(t)
	a.code = newCodeRenderer(t.Glamour, a.code.width)
}

func (a *App) click(msg tea.MouseMsg) tea.Cmd {
	for _, id := range catalog.IDs() {
		if z := zone.Get(categoryZone(id)); z != nil && z.InBounds(msg) {
			a.selectCategory(id)
			return nil
		}
	}
	for _, id := range a.player.Category().VariantIDs() {
		if z := zone.Get(variantZone(id)); z != nil && z.InBounds(msg) {
			a.selectVariant(id)
			return nil
		}
	}
	buttons := []struct {
		id string
		do func() tea.Cmd
	}{
		{zonePlay, func() tea.Cmd { a.play(); return nil }},
		{zoneReset, func() tea.Cmd { a.reset(); return nil }},
		{zoneYoyo, func() tea.Cmd { a.player.ToggleYoyo(); return nil }},
		{zoneCode, func() tea.Cmd { a.showCode = !a.showCode; return nil }},
		{zoneEdit, a.edit},
	}
	for _, b := range buttons {
		if z := zone.Get(b.id); z != nil && z.InBounds(msg) {
			return b.do()
		}
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Run starts the browser full screen with mouse support.
func Run(opts Options) error {
	zone.NewGlobal()
	_, err := tea.NewProgram(NewApp(opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
