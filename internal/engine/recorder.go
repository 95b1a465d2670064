package engine

import "github.com/san-kum/easelab/internal/motion"

// Call is one request received by a Recorder.
type Call struct {
	Method   motion.Method
	Targets  []string
	From, To motion.Props
	Options  motion.Options
	// Timeline numbers the sequence the call belongs to, starting at 1.
	// Zero means a standalone call.
	Timeline int
}

// Recorder is a motion.Engine that records requests without animating.
// It backs dry runs and tests.
type Recorder struct {
	Calls  []Call
	Kills  [][]string
	timels int
}

var _ motion.Engine = (*Recorder)(nil)

func (r *Recorder) Set(targets []*motion.Target, props motion.Props) error {
	return r.record(0, motion.MethodSet, targets, nil, props, motion.Options{})
}

func (r *Recorder) From(targets []*motion.Target, from motion.Props, opts motion.Options) error {
	return r.record(0, motion.MethodFrom, targets, from, nil, opts)
}

func (r *Recorder) To(targets []*motion.Target, to motion.Props, opts motion.Options) error {
	return r.record(0, motion.MethodTo, targets, nil, to, opts)
}

func (r *Recorder) FromTo(targets []*motion.Target, from, to motion.Props, opts motion.Options) error {
	return r.record(0, motion.MethodFromTo, targets, from, to, opts)
}

func (r *Recorder) Timeline() motion.Sequence {
	r.timels++
	return &recordedSequence{rec: r, id: r.timels}
}

func (r *Recorder) Kill(targets ...*motion.Target) {
	r.Kills = append(r.Kills, names(targets))
}

// Reset forgets every recorded request.
func (r *Recorder) Reset() {
	r.Calls, r.Kills, r.timels = nil, nil, 0
}

func (r *Recorder) record(tl int, m motion.Method, targets []*motion.Target, from, to motion.Props, opts motion.Options) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	r.Calls = append(r.Calls, Call{
		Method:   m,
		Targets:  names(targets),
		From:     from.Clone(),
		To:       to.Clone(),
		Options:  opts,
		Timeline: tl,
	})
	return nil
}

type recordedSequence struct {
	rec *Recorder
	id  int
	err error
}

func (s *recordedSequence) To(targets []*motion.Target, to motion.Props, opts motion.Options) motion.Sequence {
	if s.err == nil {
		s.err = s.rec.record(s.id, motion.MethodTo, targets, nil, to, opts)
	}
	return s
}

func (s *recordedSequence) From(targets []*motion.Target, from motion.Props, opts motion.Options) motion.Sequence {
	if s.err == nil {
		s.err = s.rec.record(s.id, motion.MethodFrom, targets, from, nil, opts)
	}
	return s
}

func (s *recordedSequence) FromTo(targets []*motion.Target, from, to motion.Props, opts motion.Options) motion.Sequence {
	if s.err == nil {
		s.err = s.rec.record(s.id, motion.MethodFromTo, targets, from, to, opts)
	}
	return s
}

func (s *recordedSequence) Err() error { return s.err }

func names(targets []*motion.Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.Name
	}
	return out
}
