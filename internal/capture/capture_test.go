package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/motion"
)

func run(t *testing.T, cfg Config) *Result {
	t.Helper()
	c := New(cfg)
	require.NoError(t, c.Setup())
	res, err := c.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestCaptureFadeUp(t *testing.T) {
	res := run(t, Config{Category: "entering", Variant: "fadeUp", Dt: 10 * time.Millisecond})

	assert.Equal(t, "entering", res.Category)
	assert.Equal(t, "fadeUp", res.Variant)
	assert.False(t, res.Edited)
	assert.NoError(t, res.Err)
	assert.Equal(t, "box", res.Targets[0])
	assert.InDelta(t, 1.05, res.Duration(), 1e-9)
	assert.Len(t, res.Frames, 106)

	assert.Equal(t, motion.Baseline(), res.Frames[0].Styles[0])
	assert.Contains(t, res.Animated(), motion.KeyY)
	assert.Contains(t, res.Animated(), motion.KeyOpacity)
	assert.NotContains(t, res.Animated(), motion.KeyRotation)

	assert.InDelta(t, 60, res.Metrics["y.max"], 1e-9)
	assert.Less(t, res.Metrics["y.min"], 0.0, "back ease overshoots past the rest position")

	last := res.Frames[len(res.Frames)-1].Styles[0]
	assert.InDelta(t, 0, last.Y, 1e-9)
	assert.InDelta(t, 1, last.Opacity, 1e-9)
}

func TestCaptureMarksSettlingFrames(t *testing.T) {
	res := run(t, Config{Category: "entering", Variant: "fadeUp", Dt: 10 * time.Millisecond})

	// 0..40ms precede the 50ms settle delay
	assert.Equal(t, 5, res.SettlingFrames())
	for _, f := range res.Frames[:5] {
		assert.True(t, f.Settling)
		assert.Equal(t, motion.Baseline(), f.Styles[0])
	}

	first := res.Frames[5]
	assert.False(t, first.Settling)
	assert.InDelta(t, 0.05, first.Time, 1e-9)
	assert.InDelta(t, 60, first.Styles[0].Y, 1e-9, "from values render as soon as the effect starts")
	for _, f := range res.Frames[5:] {
		assert.False(t, f.Settling)
	}
}

func TestCaptureStaggerAnimatesItemsOnly(t *testing.T) {
	res := run(t, Config{Category: "stagger", Variant: "cascade"})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.AnimatedTargets())
	assert.Equal(t, 2, res.TargetIndex("item-2"))
	assert.Equal(t, -1, res.TargetIndex("nope"))
}

func TestCaptureYoyoReturnsToRest(t *testing.T) {
	res := run(t, Config{Category: "entering", Variant: "fadeUp", Yoyo: true, Dt: 10 * time.Millisecond})
	assert.True(t, res.Yoyo)
	assert.InDelta(t, 1.55, res.Duration(), 1e-9)

	ys := res.Series(0, motion.KeyY)
	assert.InDelta(t, 60, ys[len(ys)-1], 1e-9)
}

func TestCaptureEditedCode(t *testing.T) {
	res := run(t, Config{
		Category: "entering",
		Variant:  "fadeUp",
		Code:     `gsap.to(".element", { x: 100, duration: 0.2 });`,
	})
	assert.True(t, res.Edited)
	assert.NoError(t, res.Err)
	assert.Equal(t, []motion.Key{motion.KeyX}, res.Animated())
	assert.InDelta(t, 100, res.Frames[len(res.Frames)-1].Styles[0].X, 1e-9)
}

func TestCaptureEditedCodeFailure(t *testing.T) {
	res := run(t, Config{Code: `gsap.to(".element", {`})
	var serr *motion.ScriptError
	require.ErrorAs(t, res.Err, &serr)
	assert.Empty(t, res.Animated())
}

func TestCaptureSetupErrors(t *testing.T) {
	err := New(Config{Yoyo: true, Code: "gsap.set(\".element\", {x: 1})"}).Setup()
	assert.ErrorIs(t, err, ErrYoyoEdited)

	err = New(Config{Category: "nope"}).Setup()
	assert.ErrorIs(t, err, motion.ErrUnknownCategory)

	err = New(Config{Category: "hover", Variant: "fadeUp"}).Setup()
	assert.ErrorIs(t, err, motion.ErrUnknownVariant)

	_, err = New(Config{}).Run(context.Background())
	assert.Error(t, err)
}

func TestCaptureCancelled(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.Setup())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChannelsSkipScaleShorthand(t *testing.T) {
	ch := Channels()
	assert.NotContains(t, ch, motion.KeyScale)
	assert.Contains(t, ch, motion.KeyScaleX)
	assert.Len(t, ch, len(motion.Keys())-1)
}

func TestSeriesTextualIsNil(t *testing.T) {
	res := run(t, Config{})
	assert.Nil(t, res.Series(0, motion.KeyBackgroundColor))
	assert.Nil(t, res.Series(99, motion.KeyX))
}

type frameCounter struct {
	frames  int
	stagger bool
}

func (f *frameCounter) OnFrame(_ Frame, stagger bool) {
	f.frames++
	f.stagger = stagger
}

func TestCaptureNotifiesObservers(t *testing.T) {
	c := New(Config{Category: "stagger", Variant: "wave"})
	obs := &frameCounter{}
	c.AddObserver(obs)
	require.NoError(t, c.Setup())
	res, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(res.Frames), obs.frames)
	assert.True(t, obs.stagger)
}
