// Package engine implements motion.Engine on top of gween tweens.
//
// Every scheduled tween becomes one track per target. A track owns a single
// gween.Tween running progress from 0 to 1 over the tween duration; property
// values are interpolated from that progress with motion.Mix, which keeps
// colours and shadows on the same curve as numeric properties.
//
// The engine has no clock of its own. Callers advance it with Tick.
package engine

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/motion"
)

// Engine schedules and advances tweens against motion targets.
// It is not safe for concurrent use.
type Engine struct {
	now    float64
	tracks []*track
	eases  map[string]ease.TweenFunc
}

var _ motion.Engine = (*Engine)(nil)

func New() *Engine {
	return &Engine{eases: make(map[string]ease.TweenFunc)}
}

// Now returns the engine time in seconds.
func (e *Engine) Now() float64 { return e.now }

// Active returns the number of tracks that have not finished.
func (e *Engine) Active() int { return len(e.tracks) }

// Idle reports whether no tween is scheduled or running.
func (e *Engine) Idle() bool { return len(e.tracks) == 0 }

// Tick advances engine time by dt seconds and renders every live track.
func (e *Engine) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	e.now += dt
	live := e.tracks[:0]
	for _, t := range e.tracks {
		if !t.advance(e.now) {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.tracks); i++ {
		e.tracks[i] = nil
	}
	e.tracks = live
}

// Set applies props immediately.
func (e *Engine) Set(targets []*motion.Target, props motion.Props) error {
	if err := props.Validate(); err != nil {
		return fmt.Errorf("engine: set: %w", err)
	}
	for _, t := range targets {
		if err := t.Style.Apply(props); err != nil {
			return fmt.Errorf("engine: set %s: %w", t.Name, err)
		}
	}
	return nil
}

// From tweens targets from the given props to their current values. The
// from values are rendered immediately, before any delay.
func (e *Engine) From(targets []*motion.Target, from motion.Props, opts motion.Options) error {
	return e.schedule(e.now, motion.MethodFrom, targets, from, nil, opts)
}

// To tweens targets to the given props, starting from whatever values they
// hold when the tween begins.
func (e *Engine) To(targets []*motion.Target, to motion.Props, opts motion.Options) error {
	return e.schedule(e.now, motion.MethodTo, targets, nil, to, opts)
}

// FromTo tweens between explicit start and end values, rendering the start
// values immediately.
func (e *Engine) FromTo(targets []*motion.Target, from, to motion.Props, opts motion.Options) error {
	return e.schedule(e.now, motion.MethodFromTo, targets, from, to, opts)
}

// Kill stops every track on the given targets, leaving their current values
// in place. With no targets it stops everything.
func (e *Engine) Kill(targets ...*motion.Target) {
	if len(targets) == 0 {
		e.tracks = nil
		return
	}
	kill := make(map[*motion.Target]bool, len(targets))
	for _, t := range targets {
		kill[t] = true
	}
	live := e.tracks[:0]
	for _, t := range e.tracks {
		if !kill[t.target] {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(e.tracks); i++ {
		e.tracks[i] = nil
	}
	e.tracks = live
}

func (e *Engine) lookupEase(name string) (ease.TweenFunc, error) {
	if name == "" {
		name = "power1.out"
	}
	if fn, ok := e.eases[name]; ok {
		return fn, nil
	}
	fn, err := easing.Parse(name)
	if err != nil {
		return nil, err
	}
	e.eases[name] = fn
	return fn, nil
}

func (e *Engine) schedule(base float64, m motion.Method, targets []*motion.Target, from, to motion.Props, opts motion.Options) error {
	if err := from.Validate(); err != nil {
		return fmt.Errorf("engine: %s: %w", m, err)
	}
	if err := to.Validate(); err != nil {
		return fmt.Errorf("engine: %s: %w", m, err)
	}
	if opts.Duration < 0 || opts.Delay < 0 || math.IsNaN(opts.Duration) {
		return fmt.Errorf("engine: %s: %w: negative timing", m, motion.ErrInvalidValue)
	}
	fn, err := e.lookupEase(opts.Ease)
	if err != nil {
		return fmt.Errorf("engine: %s: %w", m, err)
	}

	repeat, yoyo, each := opts.Repeat, opts.Yoyo, 0.0
	if st := opts.Stagger; st != nil {
		each = st.Each
		if st.Repeat != 0 {
			repeat = st.Repeat
		}
		yoyo = yoyo || st.Yoyo
	}

	for i, target := range targets {
		t := &track{
			target:   target,
			start:    base + opts.Delay + each*float64(i),
			duration: opts.Duration,
			passes:   repeat + 1,
			yoyo:     yoyo,
			progress: gween.New(0, 1, float32(opts.Duration), fn),
		}
		if repeat < 0 {
			t.passes = -1
		}
		switch m {
		case motion.MethodFrom:
			t.from, t.fixed = split(from)
			t.to = make(motion.Props, len(t.from))
			for k := range t.from {
				t.to[k] = target.Style.Get(k)
			}
			t.applyFixed()
			t.render(0)
		case motion.MethodTo:
			t.to, t.fixed = split(to)
			t.capture = true
		case motion.MethodFromTo:
			var fixedFrom motion.Props
			t.from, fixedFrom = split(from)
			t.to, t.fixed = split(to)
			for k, v := range fixedFrom {
				if _, ok := t.fixed[k]; !ok {
					t.fixed[k] = v
				}
			}
			// keys only present on one side tween against the current value
			for k := range t.from {
				if _, ok := t.to[k]; !ok {
					t.to[k] = target.Style.Get(k)
				}
			}
			for k := range t.to {
				if _, ok := t.from[k]; !ok {
					t.from[k] = target.Style.Get(k)
				}
			}
			t.applyFixed()
			t.render(0)
		}
		e.tracks = append(e.tracks, t)
	}
	log.Debug(log.CatEngine, "scheduled", "method", m, "targets", len(targets),
		"ease", opts.Ease, "duration", opts.Duration, "at", base)
	return nil
}

// split separates interpolated keys from keys applied as-is.
func split(p motion.Props) (tween, fixed motion.Props) {
	tween, fixed = motion.Props{}, motion.Props{}
	for k, v := range p {
		if k.Tweenable() {
			tween[k] = v
		} else {
			fixed[k] = v
		}
	}
	return tween, fixed
}

type track struct {
	target   *motion.Target
	from, to motion.Props
	fixed    motion.Props
	capture  bool
	start    float64
	duration float64
	passes   int // -1 repeats forever
	yoyo     bool
	progress *gween.Tween
	started  bool
}

// advance renders the track at engine time now and reports whether it is done.
func (t *track) advance(now float64) bool {
	local := now - t.start
	if local < 0 {
		return false
	}
	if !t.started {
		t.started = true
		if t.capture {
			t.from = make(motion.Props, len(t.to))
			for k := range t.to {
				t.from[k] = t.target.Style.Get(k)
			}
		}
		t.applyFixed()
	}

	if t.duration <= 0 {
		t.render(1)
		return true
	}

	pass := int(math.Floor(local / t.duration))
	if t.passes >= 0 && pass >= t.passes {
		if t.yoyo && t.passes%2 == 0 {
			t.render(t.ease(0))
		} else {
			t.render(t.ease(t.duration))
		}
		return true
	}

	elapsed := local - float64(pass)*t.duration
	if t.yoyo && pass%2 == 1 {
		elapsed = t.duration - elapsed
	}
	t.render(t.ease(elapsed))
	return false
}

func (t *track) applyFixed() {
	for _, k := range t.fixed.Keys() {
		_ = t.target.Style.Set(k, t.fixed[k])
	}
}

func (t *track) ease(at float64) float64 {
	v, _ := t.progress.Set(float32(at))
	return float64(v)
}

func (t *track) render(p float64) {
	for _, k := range t.from.Keys() {
		_ = t.target.Style.Set(k, motion.Mix(k, t.from[k], t.to[k], p))
	}
}
