package metrics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
)

func frames(ys ...float64) []capture.Frame {
	out := make([]capture.Frame, len(ys))
	for i, y := range ys {
		s := motion.Baseline()
		s.Y = y
		out[i] = capture.Frame{Time: float64(i) * 0.1, Styles: []motion.Style{s}}
	}
	return out
}

func feed(m Metric, fs []capture.Frame) float64 {
	for _, f := range fs {
		m.Observe(f)
	}
	return m.Value()
}

func TestOvershoot(t *testing.T) {
	// 60 -> 0 passing 6 units beyond the end
	got := feed(NewOvershoot(0, motion.KeyY), frames(60, 20, -6, -2, 0))
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected overshoot 0.1, got %f", got)
	}

	if got := feed(NewOvershoot(0, motion.KeyY), frames(0, 10, 20)); got != 0 {
		t.Errorf("expected no overshoot for monotonic motion, got %f", got)
	}

	if got := feed(NewOvershoot(0, motion.KeyY), frames(5, 5)); got != 0 {
		t.Errorf("expected zero for a still channel, got %f", got)
	}
}

func settling(fs []capture.Frame, n int) []capture.Frame {
	for i := 0; i < n; i++ {
		fs[i].Settling = true
	}
	return fs
}

func TestSettlingFramesIgnored(t *testing.T) {
	// a from tween: baseline while settling, then 60 -> 0
	fs := settling(frames(0, 0, 60, 20, -6, -2, 0), 2)

	if got := feed(NewOvershoot(0, motion.KeyY), fs); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("expected overshoot 0.1, got %f", got)
	}
	// 60 -> 20 over 0.1s is the fastest real step; the 0 -> 60 jump is not
	if got := feed(NewPeakSpeed(0, motion.KeyY), fs); math.Abs(got-400) > 1e-9 {
		t.Errorf("expected peak speed 400, got %f", got)
	}
	if got := feed(NewSettleTime(0, motion.KeyY, 0.05), fs); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected settle at 0.5s, got %f", got)
	}

	hidden := settling(frames(0, 0, 0), 2)
	for i := range hidden {
		hidden[i].Styles[0].Opacity = 0
	}
	hidden[0].Styles[0].Opacity = 1
	if got := feed(NewVisibility(0), hidden); got != 0 {
		t.Errorf("expected visibility 0, got %f", got)
	}
}

func TestOvershootOnFromPresets(t *testing.T) {
	cases := []struct {
		variant string
		key     motion.Key
		lo, hi  float64
	}{
		{"fadeUp", motion.KeyY, 0.09, 0.11},
		{"popIn", motion.KeyScaleX, 0.15, 0.5},
	}
	for _, tc := range cases {
		c := capture.New(capture.Config{Category: "entering", Variant: tc.variant, Dt: 10 * time.Millisecond})
		if err := c.Setup(); err != nil {
			t.Fatal(err)
		}
		res, err := c.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		m := NewOvershoot(0, tc.key)
		for _, f := range res.Frames {
			m.Observe(f)
		}
		if got := m.Value(); got < tc.lo || got > tc.hi {
			t.Errorf("%s: expected %s overshoot in [%.2f, %.2f], got %f", tc.variant, tc.key, tc.lo, tc.hi, got)
		}
	}
}

func TestSettleTime(t *testing.T) {
	m := NewSettleTime(0, motion.KeyY, 0.05)
	got := feed(m, frames(100, 50, 10, 2, 1, 0))
	if math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected settle at 0.3s, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakSpeed(t *testing.T) {
	got := feed(NewPeakSpeed(0, motion.KeyY), frames(0, 1, 5, 6))
	if math.Abs(got-40) > 1e-9 {
		t.Errorf("expected peak 40/s, got %f", got)
	}
}

func TestVisibilityIgnoresMissingTarget(t *testing.T) {
	v := NewVisibility(3)
	if got := feed(v, frames(0, 1)); got != 1 {
		t.Errorf("expected 1 with no samples, got %f", got)
	}
}

func TestStandardOnCapture(t *testing.T) {
	set := Standard(0, motion.KeyY)
	c := capture.New(capture.Config{Category: "entering", Variant: "fadeUp", Dt: 10 * time.Millisecond})
	c.AddObserver(set)
	if err := c.Setup(); err != nil {
		t.Fatal(err)
	}
	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	live := set.Values()
	if live["y.overshoot"] <= 0 {
		t.Errorf("expected back ease overshoot, got %f", live["y.overshoot"])
	}
	if s := live["y.settle"]; s <= 0 || s > res.Duration() {
		t.Errorf("settle %f outside capture", s)
	}
	if v := live["visibility"]; v <= 0.5 || v >= 1 {
		t.Errorf("expected the fade to hide the box briefly, got %f", v)
	}

	replayed := set.Replay(res)
	for _, name := range set.Names() {
		if math.Abs(replayed[name]-live[name]) > 1e-9 {
			t.Errorf("%s: replay %f differs from live %f", name, replayed[name], live[name])
		}
	}
}
