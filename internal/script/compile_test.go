package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/engine"
	"github.com/san-kum/easelab/internal/motion"
)

func TestCompileFrom(t *testing.T) {
	c, err := Compile(`gsap.from(".element", {
  y: 60,
  opacity: 0,
  ease: "back.out(1.7)",
  duration: 0.5
});`)
	require.NoError(t, err)
	require.Len(t, c.Effects, 1)

	want := motion.Effect{Steps: []motion.Step{{
		Method:   motion.MethodFrom,
		Selector: motion.SelectorElement,
		From:     motion.Props{motion.KeyY: motion.Num(60), motion.KeyOpacity: motion.Num(0)},
		Options:  motion.Options{Ease: "back.out(1.7)", Duration: 0.5},
	}}}
	assert.Equal(t, want, c.Effects[0])
}

func TestCompileStaggerObject(t *testing.T) {
	c, err := Compile(`gsap.to(".items", { y: -20, stagger: { each: 0.1, yoyo: true, repeat: 1 } })`)
	require.NoError(t, err)
	opts := c.Effects[0].Steps[0].Options
	require.NotNil(t, opts.Stagger)
	assert.Equal(t, motion.Stagger{Each: 0.1, Yoyo: true, Repeat: 1}, *opts.Stagger)
	assert.Equal(t, DefaultDuration, opts.Duration)
}

func TestCompileFromToAndSet(t *testing.T) {
	c, err := Compile(`gsap.set(".element", { backgroundColor: "#ff0000" });
gsap.fromTo(".element", { rotateX: -90, transformOrigin: "top center" }, { rotateX: 0, duration: 1, repeat: -1, yoyo: true });`)
	require.NoError(t, err)
	require.Len(t, c.Effects, 2)

	set := c.Effects[0].Steps[0]
	assert.Equal(t, motion.MethodSet, set.Method)
	assert.Equal(t, motion.Text("#ff0000"), set.To[motion.KeyBackgroundColor])
	assert.Zero(t, set.Options)

	ft := c.Effects[1].Steps[0]
	assert.Equal(t, motion.MethodFromTo, ft.Method)
	assert.Equal(t, motion.Text("top center"), ft.From[motion.KeyTransformOrigin])
	assert.Equal(t, -1, ft.Options.Repeat)
	assert.True(t, ft.Options.Yoyo)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
		msg   string
	}{
		{"unknown selector", `gsap.to("#box", { x: 1 })`, motion.ErrUnknownSelector, `selector "#box"`},
		{"unknown property", `gsap.to(".element", { width: 100 })`, motion.ErrUnknownProperty, `"width"`},
		{"string for number", `gsap.to(".element", { x: "100px" })`, motion.ErrInvalidValue, "x expects a number"},
		{"number for colour", `gsap.to(".element", { backgroundColor: 3 })`, motion.ErrInvalidValue, "backgroundColor expects a string"},
		{"bad colour", `gsap.to(".element", { backgroundColor: "teal" })`, nil, "invalid properties"},
		{"unknown ease", `gsap.to(".element", { x: 1, ease: "wobble.out" })`, easing.ErrUnknownEase, `ease "wobble.out"`},
		{"negative duration", `gsap.to(".element", { x: 1, duration: -1 })`, motion.ErrInvalidValue, "duration must be"},
		{"fractional repeat", `gsap.to(".element", { x: 1, repeat: 1.5 })`, motion.ErrInvalidValue, "repeat expects an integer"},
		{"repeat below -1", `gsap.to(".element", { x: 1, repeat: -2 })`, motion.ErrInvalidValue, "repeat expects an integer"},
		{"yoyo not bool", `gsap.to(".element", { x: 1, yoyo: 1 })`, motion.ErrInvalidValue, "yoyo expects true or false"},
		{"stagger string", `gsap.to(".items", { x: 1, stagger: "0.1" })`, motion.ErrInvalidValue, "stagger expects"},
		{"stagger key", `gsap.to(".items", { x: 1, stagger: { amount: 1 } })`, nil, `unknown stagger key "amount"`},
		{"duplicate key", `gsap.to(".element", { x: 1, x: 2 })`, nil, `duplicate key "x"`},
		{"options in fromTo vars", `gsap.fromTo(".element", { x: 0, duration: 1 }, { x: 1 })`, nil, "second object of fromTo"},
		{"options on set", `gsap.set(".element", { x: 0, duration: 1 })`, nil, "set takes no tween options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.input)
			require.Error(t, err)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, se.Error(), tt.msg)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestCompileErrorPosition(t *testing.T) {
	_, err := Compile("gsap.to(\".element\", {\n  x: 1,\n  ease: \"power9.out\"\n})")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, Pos{Line: 3, Col: 9}, se.Pos)
	assert.Contains(t, se.Error(), "line 3, column 9")
}

func TestPlayAgainstRecorder(t *testing.T) {
	c, err := Compile(`gsap.timeline()
  .to(".element", { scale: 1.3, ease: "back.out(4)", duration: 0.2 })
  .to(".element", { scale: 1, ease: "elastic.out(1, 0.4)", duration: 0.6 });`)
	require.NoError(t, err)

	box := motion.NewTarget("box")
	rec := &engine.Recorder{}
	err = c.Play(rec, func(sel string) ([]*motion.Target, error) {
		return []*motion.Target{box}, nil
	})
	require.NoError(t, err)
	require.Len(t, rec.Calls, 2)
	assert.Equal(t, 1, rec.Calls[0].Timeline)
	assert.Equal(t, motion.Num(1.3), rec.Calls[0].To[motion.KeyScale])
	assert.Equal(t, "elastic.out(1, 0.4)", rec.Calls[1].Options.Ease)
}

func TestPlayResolvesBeforeIssuing(t *testing.T) {
	c, err := Compile(`gsap.to(".element", { x: 1 }); gsap.to(".items", { y: 1 })`)
	require.NoError(t, err)

	rec := &engine.Recorder{}
	err = c.Play(rec, func(sel string) ([]*motion.Target, error) {
		if sel == motion.SelectorItems {
			return nil, motion.ErrUnknownSelector
		}
		return []*motion.Target{motion.NewTarget("box")}, nil
	})
	assert.ErrorIs(t, err, motion.ErrUnknownSelector)
	assert.Empty(t, rec.Calls)
}

func TestCompilerCaches(t *testing.T) {
	c := NewCompiler(time.Minute, time.Minute)
	src := `gsap.to(".element", { x: 1 })`

	a, err := c.Compile(src)
	require.NoError(t, err)
	b, err := c.Compile(src)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err1 := c.Compile(`gsap.to(`)
	_, err2 := c.Compile(`gsap.to(`)
	require.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 2, c.Len())

	c.Flush()
	assert.Zero(t, c.Len())
}

func TestDescribe(t *testing.T) {
	c, err := Compile(`gsap.from(".items", { y: 40, opacity: 0, ease: "back.out(1.7)", duration: 0.5, stagger: 0.08 })`)
	require.NoError(t, err)
	lines := Describe(c)
	require.Len(t, lines, 2)
	assert.Equal(t, "#1 tween", lines[0])
	assert.Equal(t, "  from .items from {y: 40, opacity: 0} ease=back.out(1.7) duration=0.5s stagger=0.08s", lines[1])
}
