// Package player implements the playback controller: the current selection,
// the playing guard, the yoyo toggle, the editable code buffer and the timed
// playback sequence that runs presets against a stage.
//
// The controller keeps a virtual clock. Advance moves it forward, firing the
// settle and completion timers at their exact due times and ticking the
// engine in between, so playback is deterministic at any frame rate.
package player

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/easelab/internal/catalog"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/script"
)

const (
	DefaultSettleDelay  = 50 * time.Millisecond
	DefaultGuardPadding = 500 * time.Millisecond
)

// ErrReadOnly indicates a code edit on a controller built without editing.
var ErrReadOnly = errors.New("player: code editing disabled")

// Phase is the playback state.
type Phase int

const (
	Idle Phase = iota
	Resetting
	Playing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Resetting:
		return "resetting"
	case Playing:
		return "playing"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Options configures a Player.
type Options struct {
	// Editable enables the code buffer. Editable controllers have no yoyo mode.
	Editable     bool
	SettleDelay  time.Duration
	GuardPadding time.Duration
	// Compiler compiles edited code. A private cache is used when nil.
	Compiler *script.Compiler
	// OnError receives failures of edited code.
	OnError func(error)
}

// Ticker is implemented by engines that advance with the controller clock.
type Ticker interface {
	Tick(dt float64)
}

// State is a comparable copy of the selection and playback state.
type State struct {
	Category string
	Variant  string
	Phase    Phase
	Playing  bool
	Yoyo     bool
	Editing  bool
	Buffer   string
}

type timer struct {
	at   time.Duration
	seq  int
	fire func()
}

// Player is the playback controller. It is not safe for concurrent use.
type Player struct {
	opts     Options
	stage    *Stage
	engine   motion.Engine
	compiler *script.Compiler

	category catalog.Category
	variant  catalog.Variant
	phase    Phase
	playing  bool
	yoyo     bool
	editing  bool
	buffer   string
	lastErr  error

	clock  time.Duration
	timers []timer
	seq    int
	gen    uint64
}

// New returns an idle controller selecting the first variant of the first
// category, with the stage at baseline.
func New(stage *Stage, opts Options) *Player {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.GuardPadding <= 0 {
		opts.GuardPadding = DefaultGuardPadding
	}
	if stage == nil {
		stage = NewStage()
	}
	p := &Player{opts: opts, stage: stage, compiler: opts.Compiler}
	if p.compiler == nil {
		p.compiler = script.NewCompiler(script.DefaultExpiration, script.DefaultCleanupInterval)
	}
	p.category = catalog.Default()
	p.variant = p.category.First()
	p.buffer = p.variant.Code
	p.reset()
	return p
}

// SetEngine installs the loaded engine. Play is refused until it is set.
func (p *Player) SetEngine(e motion.Engine) {
	p.engine = e
	log.Info(log.CatPlayer, "engine ready")
}

func (p *Player) EngineLoaded() bool { return p.engine != nil }

func (p *Player) Stage() *Stage                                { return p.stage }
func (p *Player) Category() catalog.Category                   { return p.category }
func (p *Player) Variant() catalog.Variant                     { return p.variant }
func (p *Player) Phase() Phase                                 { return p.phase }
func (p *Player) Playing() bool                                { return p.playing }
func (p *Player) Yoyo() bool                                   { return p.yoyo }
func (p *Player) Editable() bool                               { return p.opts.Editable }
func (p *Player) Editing() bool                                { return p.editing }
func (p *Player) Buffer() string                               { return p.buffer }
func (p *Player) LastError() error                             { return p.lastErr }
func (p *Player) Clock() time.Duration                         { return p.clock }
func (p *Player) Compiler() *script.Compiler                   { return p.compiler }
func (p *Player) Options() Options                             { return p.opts }
func (p *Player) ClearError()                                  { p.lastErr = nil }
func (p *Player) Dirty() bool                                  { return p.buffer != p.variant.Code }
func (p *Player) PendingTimers() int                           { return len(p.timers) }
func (p *Player) Generation() uint64                           { return p.gen }
func (p *Player) Resolve(sel string) ([]*motion.Target, error) { return p.stage.Resolve(sel) }

// State returns a copy of the selection and playback state.
func (p *Player) State() State {
	return State{
		Category: p.category.ID,
		Variant:  p.variant.ID,
		Phase:    p.phase,
		Playing:  p.playing,
		Yoyo:     p.yoyo,
		Editing:  p.editing,
		Buffer:   p.buffer,
	}
}

// SelectCategory switches category and selects its first variant. Unknown
// ids and selections during playback are refused without any change.
func (p *Player) SelectCategory(id string) error {
	if p.playing {
		return motion.ErrPlaying
	}
	c, ok := catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", motion.ErrUnknownCategory, id)
	}
	p.category = c
	p.selectVariant(c.First())
	log.Debug(log.CatPlayer, "category selected", "category", id, "variant", p.variant.ID)
	return nil
}

// SelectVariant switches to a variant of the current category.
func (p *Player) SelectVariant(id string) error {
	if p.playing {
		return motion.ErrPlaying
	}
	v, ok := p.category.Variant(id)
	if !ok {
		return fmt.Errorf("%w: %q in %s", motion.ErrUnknownVariant, id, p.category.ID)
	}
	p.selectVariant(v)
	log.Debug(log.CatPlayer, "variant selected", "category", p.category.ID, "variant", id)
	return nil
}

func (p *Player) selectVariant(v catalog.Variant) {
	p.variant = v
	p.buffer = v.Code
	p.editing = false
	p.reset()
}

// Reset returns the targets to baseline. Refused while playing.
func (p *Player) Reset() error {
	if p.playing {
		return motion.ErrPlaying
	}
	p.reset()
	return nil
}

// reset stops engine tracks on every target before writing baseline, so no
// running tween can overwrite the reset.
func (p *Player) reset() {
	if p.engine != nil {
		p.engine.Kill(p.stage.All()...)
	}
	p.stage.resetStyles()
}

// SetYoyo sets yoyo mode. It has no effect on editable controllers.
func (p *Player) SetYoyo(on bool) {
	if p.opts.Editable {
		return
	}
	p.yoyo = on
}

func (p *Player) ToggleYoyo() { p.SetYoyo(!p.yoyo) }

// Edit enters edit mode.
func (p *Player) Edit() error {
	if !p.opts.Editable {
		return ErrReadOnly
	}
	p.editing = true
	return nil
}

// ExitEdit leaves edit mode, keeping the buffer.
func (p *Player) ExitEdit() { p.editing = false }

// SetBuffer replaces the edited code.
func (p *Player) SetBuffer(text string) error {
	if !p.opts.Editable {
		return ErrReadOnly
	}
	p.buffer = text
	return nil
}

// Revert restores the buffer to the variant's code.
func (p *Player) Revert() { p.buffer = p.variant.Code }

// GuardTimeout is how long after the settle delay the playing guard clears.
func (p *Player) GuardTimeout() time.Duration {
	d := p.variant.Duration
	if p.yoyo && !p.opts.Editable {
		d *= 2
	}
	return time.Duration(d*float64(time.Second)) + p.opts.GuardPadding
}

// Play starts the selected preset. It is refused, with no state change and
// no engine call, while playing, before the engine has loaded, or when no
// variant is resolved.
//
// The targets are reset at once. After the settle delay the effect runs:
// stagger presets over the items, yoyo mode through the variant's yoyo form,
// a changed buffer through the script compiler, and otherwise the canonical
// effect. The completion timer is armed here, before any effect runs, and
// belongs to this playback only.
func (p *Player) Play() error {
	switch {
	case p.playing:
		return motion.ErrPlaying
	case p.engine == nil:
		return motion.ErrEngineNotLoaded
	case p.variant.ID == "":
		return motion.ErrNoVariant
	}

	p.gen++
	gen := p.gen
	p.playing = true
	p.phase = Resetting
	p.lastErr = nil
	p.reset()

	guard := p.GuardTimeout()
	p.after(p.opts.SettleDelay+guard, func() { p.complete(gen) })
	p.after(p.opts.SettleDelay, func() { p.run(gen) })

	log.Info(log.CatPlayer, "play", "category", p.category.ID, "variant", p.variant.ID,
		"yoyo", p.yoyo, "edited", p.Dirty(), "guard", guard)
	return nil
}

func (p *Player) complete(gen uint64) {
	if gen != p.gen {
		log.Warn(log.CatPlayer, "stale completion ignored", "gen", gen, "current", p.gen)
		return
	}
	p.playing = false
	p.phase = Idle
	log.Debug(log.CatPlayer, "playback complete", "gen", gen)
}

func (p *Player) run(gen uint64) {
	if gen != p.gen || !p.playing {
		return
	}
	p.phase = Playing

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("effect panicked: %v", r)
			if p.Dirty() {
				p.fail(err)
			} else {
				p.report(err)
			}
		}
	}()

	v := p.variant
	yoyo := p.yoyo && !p.opts.Editable
	switch {
	case v.Stagger:
		eff := v.Effect
		if yoyo {
			eff = v.YoyoEffect()
		}
		p.play(eff)
	case yoyo:
		p.play(v.YoyoEffect())
	case p.Dirty():
		p.playEdited()
	default:
		p.play(v.Effect)
	}
}

func (p *Player) play(eff motion.Effect) {
	if err := eff.Play(p.engine, p.stage.Resolve); err != nil {
		p.report(err)
	}
}

func (p *Player) report(err error) {
	p.lastErr = err
	log.ErrorErr(log.CatPlayer, "effect failed", err, "category", p.category.ID, "variant", p.variant.ID)
	if p.opts.OnError != nil {
		p.opts.OnError(err)
	}
}

func (p *Player) playEdited() {
	compiled, err := p.compiler.Compile(p.buffer)
	if err == nil {
		err = compiled.Play(p.engine, p.stage.Resolve)
	}
	if err != nil {
		p.fail(err)
	}
}

func (p *Player) fail(err error) {
	serr := &motion.ScriptError{
		Category: p.category.ID,
		Variant:  p.variant.ID,
		Source:   p.buffer,
		Wrapped:  err,
	}
	p.lastErr = serr
	log.ErrorErr(log.CatScript, "edited code failed", err, "category", p.category.ID, "variant", p.variant.ID)
	if p.opts.OnError != nil {
		p.opts.OnError(serr)
	}
}

// Advance moves the controller clock forward by dt, firing due timers in
// order and ticking a Ticker engine up to each of them.
func (p *Player) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	end := p.clock + dt
	for len(p.timers) > 0 && p.timers[0].at <= end {
		t := p.timers[0]
		p.timers = p.timers[1:]
		p.tick(t.at - p.clock)
		p.clock = t.at
		t.fire()
	}
	p.tick(end - p.clock)
	p.clock = end
}

func (p *Player) tick(d time.Duration) {
	if t, ok := p.engine.(Ticker); ok && d > 0 {
		t.Tick(d.Seconds())
	}
}

func (p *Player) after(d time.Duration, fire func()) {
	p.seq++
	p.timers = append(p.timers, timer{at: p.clock + d, seq: p.seq, fire: fire})
	sort.SliceStable(p.timers, func(i, j int) bool {
		if p.timers[i].at != p.timers[j].at {
			return p.timers[i].at < p.timers[j].at
		}
		return p.timers[i].seq < p.timers[j].seq
	})
}
