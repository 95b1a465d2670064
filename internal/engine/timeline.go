package engine

import (
	"math"

	"github.com/san-kum/easelab/internal/motion"
)

// Timeline returns a sequence whose steps run back to back, starting now.
func (e *Engine) Timeline() motion.Sequence {
	return &timeline{engine: e, cursor: e.now}
}

type timeline struct {
	engine *Engine
	cursor float64
	err    error
}

func (tl *timeline) To(targets []*motion.Target, to motion.Props, opts motion.Options) motion.Sequence {
	return tl.add(motion.MethodTo, targets, nil, to, opts)
}

func (tl *timeline) From(targets []*motion.Target, from motion.Props, opts motion.Options) motion.Sequence {
	return tl.add(motion.MethodFrom, targets, from, nil, opts)
}

func (tl *timeline) FromTo(targets []*motion.Target, from, to motion.Props, opts motion.Options) motion.Sequence {
	return tl.add(motion.MethodFromTo, targets, from, to, opts)
}

func (tl *timeline) Err() error { return tl.err }

// End returns the time the last step finishes, or +Inf after an infinite step.
func (tl *timeline) End() float64 { return tl.cursor }

func (tl *timeline) add(m motion.Method, targets []*motion.Target, from, to motion.Props, opts motion.Options) motion.Sequence {
	if tl.err != nil {
		return tl
	}
	if err := tl.engine.schedule(tl.cursor, m, targets, from, to, opts); err != nil {
		tl.err = err
		return tl
	}
	if opts.Infinite() {
		tl.cursor = math.Inf(1)
	} else {
		tl.cursor += opts.Span(len(targets))
	}
	return tl
}
