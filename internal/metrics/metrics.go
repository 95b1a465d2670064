// Package metrics measures how a capture moves. Each metric observes frames
// one at a time, so it can ride along a running capture as an observer.
// Settling frames, sampled before the effect starts, are ignored.
package metrics

import (
	"math"
	"sort"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
)

type Metric interface {
	Name() string
	Observe(f capture.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to a group of metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set { return &Set{metrics: ms} }

// Standard returns the default metrics for one target and channel.
func Standard(target int, k motion.Key) *Set {
	return NewSet(
		NewOvershoot(target, k),
		NewSettleTime(target, k, 0.02),
		NewPeakSpeed(target, k),
		NewVisibility(target),
	)
}

func (s *Set) OnFrame(f capture.Frame, _ bool) {
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Replay feeds a finished capture through the set.
func (s *Set) Replay(res *capture.Result) map[string]float64 {
	s.Reset()
	for _, f := range res.Frames {
		s.OnFrame(f, false)
	}
	return s.Values()
}

func sample(f capture.Frame, target int, k motion.Key) (float64, bool) {
	if f.Settling || target < 0 || target >= len(f.Styles) {
		return 0, false
	}
	st := f.Styles[target]
	return st.Get(k).Num, true
}

// Overshoot is the largest excursion past the final value, as a fraction of
// the total travel. Zero for motion that never passes its end.
type Overshoot struct {
	target   int
	key      motion.Key
	first    float64
	last     float64
	values   []float64
	observed bool
}

func NewOvershoot(target int, k motion.Key) *Overshoot {
	return &Overshoot{target: target, key: k}
}

func (o *Overshoot) Name() string { return string(o.key) + ".overshoot" }

func (o *Overshoot) Observe(f capture.Frame) {
	v, ok := sample(f, o.target, o.key)
	if !ok {
		return
	}
	if !o.observed {
		o.first = v
		o.observed = true
	}
	o.last = v
	o.values = append(o.values, v)
}

func (o *Overshoot) Value() float64 {
	travel := o.last - o.first
	if math.Abs(travel) < 1e-9 {
		return 0
	}
	var worst float64
	for _, v := range o.values {
		past := (v - o.last) / travel
		worst = math.Max(worst, past)
	}
	return worst
}

func (o *Overshoot) Reset() {
	o.values = o.values[:0]
	o.observed = false
}

// SettleTime is the first time after which the channel stays within
// tolerance of its final value, tolerance being a fraction of the range.
type SettleTime struct {
	target    int
	key       motion.Key
	tolerance float64
	times     []float64
	values    []float64
}

func NewSettleTime(target int, k motion.Key, tolerance float64) *SettleTime {
	return &SettleTime{target: target, key: k, tolerance: tolerance}
}

func (s *SettleTime) Name() string { return string(s.key) + ".settle" }

func (s *SettleTime) Observe(f capture.Frame) {
	v, ok := sample(f, s.target, s.key)
	if !ok {
		return
	}
	s.times = append(s.times, f.Time)
	s.values = append(s.values, v)
}

func (s *SettleTime) Value() float64 {
	n := len(s.values)
	if n == 0 {
		return 0
	}
	lo, hi := s.values[0], s.values[0]
	for _, v := range s.values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	band := (hi - lo) * s.tolerance
	final := s.values[n-1]
	i := n - 1
	for i > 0 && math.Abs(s.values[i-1]-final) <= band {
		i--
	}
	return s.times[i]
}

func (s *SettleTime) Reset() {
	s.times = s.times[:0]
	s.values = s.values[:0]
}

// PeakSpeed is the largest rate of change between frames, in units per
// second.
type PeakSpeed struct {
	target int
	key    motion.Key
	prev   float64
	prevT  float64
	seen   bool
	peak   float64
}

func NewPeakSpeed(target int, k motion.Key) *PeakSpeed {
	return &PeakSpeed{target: target, key: k}
}

func (p *PeakSpeed) Name() string { return string(p.key) + ".peak_speed" }

func (p *PeakSpeed) Observe(f capture.Frame) {
	v, ok := sample(f, p.target, p.key)
	if !ok {
		return
	}
	if p.seen && f.Time > p.prevT {
		p.peak = math.Max(p.peak, math.Abs(v-p.prev)/(f.Time-p.prevT))
	}
	p.prev, p.prevT, p.seen = v, f.Time, true
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() {
	p.seen = false
	p.peak = 0
}

// Visibility is the fraction of frames in which the target can be seen.
type Visibility struct {
	target  int
	visible int
	samples int
}

func NewVisibility(target int) *Visibility { return &Visibility{target: target} }

func (v *Visibility) Name() string { return "visibility" }

func (v *Visibility) Observe(f capture.Frame) {
	o, ok := sample(f, v.target, motion.KeyOpacity)
	if !ok {
		return
	}
	v.samples++
	if o >= 0.05 {
		v.visible++
	}
}

func (v *Visibility) Value() float64 {
	if v.samples == 0 {
		return 1.0
	}
	return float64(v.visible) / float64(v.samples)
}

func (v *Visibility) Reset() {
	v.visible = 0
	v.samples = 0
}
