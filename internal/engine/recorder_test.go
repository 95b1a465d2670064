package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/easelab/internal/motion"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	box := motion.NewTarget("box")
	targets := []*motion.Target{box}

	require.NoError(t, r.To(targets, motion.Props{motion.KeyScale: motion.Num(1.3)}, motion.Options{Ease: "back.inOut(1.4)", Duration: 0.5}))
	seq := r.Timeline().
		To(targets, motion.Props{motion.KeyX: motion.Num(-20)}, motion.Options{Duration: 0.1}).
		To(targets, motion.Props{motion.KeyX: motion.Num(300)}, motion.Options{Duration: 0.3})
	require.NoError(t, seq.Err())
	r.Kill(box)

	require.Len(t, r.Calls, 3)
	assert.Equal(t, motion.MethodTo, r.Calls[0].Method)
	assert.Equal(t, []string{"box"}, r.Calls[0].Targets)
	assert.Zero(t, r.Calls[0].Timeline)
	assert.Equal(t, 1, r.Calls[1].Timeline)
	assert.Equal(t, 1, r.Calls[2].Timeline)
	assert.Equal(t, [][]string{{"box"}}, r.Kills)

	// recorder never touches targets
	assert.Equal(t, motion.Baseline(), box.Style)

	r.Reset()
	assert.Empty(t, r.Calls)
	assert.Empty(t, r.Kills)
}

func TestRecorderValidates(t *testing.T) {
	r := &Recorder{}
	err := r.Set([]*motion.Target{motion.NewTarget("box")}, motion.Props{motion.KeyOpacity: motion.Text("x")})
	assert.ErrorIs(t, err, motion.ErrInvalidValue)
	assert.Empty(t, r.Calls)
}
