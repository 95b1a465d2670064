// Package capture plays presets headless against the tween engine and samples
// the stage at a fixed timestep.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/log"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/player"
)

// DefaultDt samples at 60 frames per second.
const DefaultDt = time.Second / 60

// ErrYoyoEdited indicates a capture asking for yoyo mode on edited code.
var ErrYoyoEdited = errors.New("capture: yoyo mode is not available for edited code")

type Config struct {
	Category string
	Variant  string
	Yoyo     bool
	// Code replaces the variant's code text when non-empty.
	Code         string
	Dt           time.Duration
	SettleDelay  time.Duration
	GuardPadding time.Duration
}

// Frame is the style of every stage target at one instant, box first.
// Settling frames were sampled after reset but before the effect started.
type Frame struct {
	Time     float64
	Styles   []motion.Style
	Settling bool
}

type Result struct {
	Category string
	Variant  string
	Yoyo     bool
	Edited   bool
	Dt       float64
	Targets  []string
	Frames   []Frame
	Metrics  map[string]float64
	// Err is the failure the effect reported, if any. Playback still runs
	// until its guard clears.
	Err error
}

// Observer is notified of every sampled frame while a capture runs.
type Observer interface {
	OnFrame(f Frame, stagger bool)
}

type Capture struct {
	cfg       Config
	player    *player.Player
	errs      []error
	observers []Observer
}

func New(cfg Config) *Capture {
	if cfg.Dt <= 0 {
		cfg.Dt = DefaultDt
	}
	return &Capture{cfg: cfg}
}

func (c *Capture) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// Setup builds the controller, installs a fresh engine and applies the
// selection.
func (c *Capture) Setup() error {
	if c.cfg.Yoyo && c.cfg.Code != "" {
		return ErrYoyoEdited
	}
	p := player.New(player.NewStage(), player.Options{
		Editable:     c.cfg.Code != "",
		SettleDelay:  c.cfg.SettleDelay,
		GuardPadding: c.cfg.GuardPadding,
		OnError:      func(err error) { c.errs = append(c.errs, err) },
	})
	p.SetEngine(engine.New())

	if c.cfg.Category != "" {
		if err := p.SelectCategory(c.cfg.Category); err != nil {
			return err
		}
	}
	if c.cfg.Variant != "" {
		if err := p.SelectVariant(c.cfg.Variant); err != nil {
			return err
		}
	}
	p.SetYoyo(c.cfg.Yoyo)
	if c.cfg.Code != "" {
		if err := p.SetBuffer(c.cfg.Code); err != nil {
			return err
		}
	}
	c.player = p
	return nil
}

// Run plays the selection once and samples the stage every Dt until the
// playing guard clears.
func (c *Capture) Run(ctx context.Context) (*Result, error) {
	if c.player == nil {
		return nil, fmt.Errorf("capture not setup")
	}
	p := c.player
	c.errs = nil

	if err := p.Play(); err != nil {
		return nil, err
	}
	start := p.Clock()

	res := &Result{
		Category: p.Category().ID,
		Variant:  p.Variant().ID,
		Yoyo:     p.Yoyo(),
		Edited:   p.Dirty(),
		Dt:       c.cfg.Dt.Seconds(),
	}
	for _, t := range p.Stage().All() {
		res.Targets = append(res.Targets, t.Name)
	}

	stagger := p.Variant().Stagger
	started := false
	sample := func() {
		started = started || p.Phase() == player.Playing
		f := Frame{
			Time:     (p.Clock() - start).Seconds(),
			Styles:   p.Stage().Snapshot(),
			Settling: !started,
		}
		res.Frames = append(res.Frames, f)
		for _, o := range c.observers {
			o.OnFrame(f, stagger)
		}
	}
	sample()
	for p.Playing() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.Advance(c.cfg.Dt)
		sample()
	}

	if len(c.errs) > 0 {
		res.Err = c.errs[0]
	}
	res.Metrics = res.summarize()
	log.Info(log.CatPlayer, "capture complete", "category", res.Category, "variant", res.Variant,
		"frames", len(res.Frames), "err", res.Err)
	return res, nil
}

// Player returns the controller driving the capture, nil before Setup.
func (c *Capture) Player() *player.Player {
	return c.player
}
