package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/motion"
	"github.com/san-kum/easelab/internal/script"
)

func TestCategoryOrder(t *testing.T) {
	assert.Equal(t, []string{
		"entering", "exiting", "transform", "hover",
		"feedback", "continuous", "threeD", "stagger",
	}, IDs())
	assert.Equal(t, "entering", Default().ID)
}

func TestVariantOrder(t *testing.T) {
	want := map[string][]string{
		"entering":   {"fadeUp", "fadeScale", "slideRight", "popIn"},
		"exiting":    {"fadeOut", "flyAway", "scaleOut"},
		"transform":  {"expand", "widthExpand", "rotate", "morphColor"},
		"hover":      {"subtle", "playful", "lift"},
		"feedback":   {"shake", "pulse", "success"},
		"continuous": {"float", "pulse", "rotate"},
		"threeD":     {"flip", "foldDown", "tilt"},
		"stagger":    {"cascade", "scaleIn", "wave"},
	}
	for _, c := range Categories() {
		assert.Equal(t, want[c.ID], c.VariantIDs(), c.ID)
		assert.Equal(t, want[c.ID][0], c.First().ID)
		assert.Equal(t, len(want[c.ID]), c.Len())
	}
}

func TestCodeCompilesToEffect(t *testing.T) {
	for _, c := range Categories() {
		for _, v := range c.Variants() {
			t.Run(c.ID+"/"+v.ID, func(t *testing.T) {
				compiled, err := script.Compile(v.Code)
				require.NoError(t, err)
				require.Len(t, compiled.Effects, 1)
				assert.Equal(t, v.Effect, compiled.Effects[0])
			})
		}
	}
}

func TestEveryEaseParses(t *testing.T) {
	for _, c := range Categories() {
		for _, v := range c.Variants() {
			for _, eff := range []motion.Effect{v.Effect, v.Mirror} {
				for _, s := range eff.Steps {
					_, err := easing.Parse(s.Options.Ease)
					assert.NoError(t, err, "%s/%s", c.ID, v.ID)
				}
			}
		}
	}
}

func TestStaggerFlag(t *testing.T) {
	for _, c := range Categories() {
		for _, v := range c.Variants() {
			want := motion.SelectorElement
			if v.Stagger {
				want = motion.SelectorItems
			}
			assert.Equal(t, c.ID == "stagger", v.Stagger, "%s/%s", c.ID, v.ID)
			assert.Equal(t, []string{want}, v.Effect.Selectors(), "%s/%s", c.ID, v.ID)
		}
	}
}

func TestMirrors(t *testing.T) {
	withMirror := map[string]bool{
		"entering/fadeUp": true, "entering/fadeScale": true, "entering/slideRight": true, "entering/popIn": true,
		"transform/expand": true, "transform/widthExpand": true, "transform/rotate": true, "transform/morphColor": true,
		"hover/subtle": true, "hover/playful": true, "hover/lift": true,
		"threeD/flip": true, "threeD/foldDown": true, "threeD/tilt": true,
		"stagger/cascade": true, "stagger/scaleIn": true,
	}
	for _, c := range Categories() {
		for _, v := range c.Variants() {
			id := c.ID + "/" + v.ID
			assert.Equal(t, withMirror[id], v.HasMirror(), id)
			if !v.HasMirror() {
				assert.Equal(t, v.Effect, v.YoyoEffect(), id)
				continue
			}
			for _, s := range v.Mirror.Steps {
				assert.True(t, s.Options.Yoyo, id)
				assert.Equal(t, 1, s.Options.Repeat, id)
			}
		}
	}
}

func TestMirrorEnteringIsExplicitFromTo(t *testing.T) {
	v, err := Find("entering", "fadeUp")
	require.NoError(t, err)
	require.Len(t, v.Mirror.Steps, 1)
	s := v.Mirror.Steps[0]
	assert.Equal(t, motion.MethodFromTo, s.Method)
	assert.Equal(t, motion.Props{motion.KeyY: motion.Num(60), motion.KeyOpacity: motion.Num(0)}, s.From)
	assert.Equal(t, motion.Props{motion.KeyY: motion.Num(0), motion.KeyOpacity: motion.Num(1)}, s.To)
}

func TestFadeUpScenario(t *testing.T) {
	v, err := Find("entering", "fadeUp")
	require.NoError(t, err)
	assert.Equal(t, "back.out(1.7)", v.Ease)
	assert.Equal(t, 0.5, v.Duration)
	s := v.Effect.Steps[0]
	assert.Equal(t, motion.MethodFrom, s.Method)
	assert.Equal(t, motion.Num(60), s.From[motion.KeyY])
	assert.Equal(t, motion.Num(0), s.From[motion.KeyOpacity])
}

func TestFind(t *testing.T) {
	_, err := Find("nope", "fadeUp")
	assert.ErrorIs(t, err, motion.ErrUnknownCategory)
	_, err = Find("entering", "wave")
	assert.ErrorIs(t, err, motion.ErrUnknownVariant)

	c, ok := Lookup("threeD")
	require.True(t, ok)
	assert.Equal(t, "3D", c.Label)
	assert.Equal(t, "⬒", c.Icon)
	_, ok = c.Variant("cascade")
	assert.False(t, ok)
}

func TestCopiesAreIndependent(t *testing.T) {
	v, err := Find("entering", "fadeUp")
	require.NoError(t, err)
	v.Effect.Steps[0].From[motion.KeyY] = motion.Num(999)
	v.Effect.Steps[0].Options.Duration = 9

	again, err := Find("entering", "fadeUp")
	require.NoError(t, err)
	assert.Equal(t, motion.Num(60), again.Effect.Steps[0].From[motion.KeyY])
	assert.Equal(t, 0.5, again.Effect.Steps[0].Options.Duration)
}

func TestDurationMatchesEffect(t *testing.T) {
	single := func(string) int { return 1 }
	for _, c := range Categories() {
		for _, v := range c.Variants() {
			repeats := false
			for _, s := range v.Effect.Steps {
				repeats = repeats || s.Options.Repeat != 0 || (s.Options.Stagger != nil && s.Options.Stagger.Repeat != 0)
			}
			if repeats {
				continue
			}
			assert.InDelta(t, v.Duration, v.Effect.Duration(single), 1e-9, "%s/%s", c.ID, v.ID)
		}
	}
}
