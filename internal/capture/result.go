package capture

import (
	"math"

	"github.com/san-kum/easelab/internal/motion"
)

// Channels lists the style properties recorded per target, in column order.
// The scale shorthand is covered by scaleX and scaleY.
func Channels() []motion.Key {
	keys := make([]motion.Key, 0, len(motion.Keys()))
	for _, k := range motion.Keys() {
		if k != motion.KeyScale {
			keys = append(keys, k)
		}
	}
	return keys
}

// Duration is the time of the last frame.
func (r *Result) Duration() float64 {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Time
}

// SettlingFrames counts the leading frames sampled before the effect
// started.
func (r *Result) SettlingFrames() int {
	n := 0
	for n < len(r.Frames) && r.Frames[n].Settling {
		n++
	}
	return n
}

func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Time
	}
	return out
}

// TargetIndex returns the column of a named target, -1 if absent.
func (r *Result) TargetIndex(name string) int {
	for i, t := range r.Targets {
		if t == name {
			return i
		}
	}
	return -1
}

// Series returns a numeric property of one target over time. Textual
// properties yield nil.
func (r *Result) Series(target int, k motion.Key) []float64 {
	if k.Textual() || target < 0 || target >= len(r.Targets) {
		return nil
	}
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		s := f.Styles[target]
		out[i] = s.Get(k).Num
	}
	return out
}

// Animated returns the channels whose value changes on any target.
func (r *Result) Animated() []motion.Key {
	var out []motion.Key
	for _, k := range Channels() {
		if r.varies(k) {
			out = append(out, k)
		}
	}
	return out
}

// AnimatedTargets returns the indexes of targets whose style changes.
func (r *Result) AnimatedTargets() []int {
	var out []int
	for t := range r.Targets {
		for _, f := range r.Frames {
			if f.Styles[t] != r.Frames[0].Styles[t] {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func (r *Result) varies(k motion.Key) bool {
	if len(r.Frames) == 0 {
		return false
	}
	for t := range r.Targets {
		s0 := r.Frames[0].Styles[t]
		first := s0.Get(k)
		for _, f := range r.Frames[1:] {
			s := f.Styles[t]
			if s.Get(k) != first {
				return true
			}
		}
	}
	return false
}

func (r *Result) summarize() map[string]float64 {
	m := map[string]float64{
		"duration": r.Duration(),
		"frames":   float64(len(r.Frames)),
	}
	for _, k := range r.Animated() {
		if k.Textual() {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for t := range r.Targets {
			for _, v := range r.Series(t, k) {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
		m[string(k)+".min"] = lo
		m[string(k)+".max"] = hi
	}
	return m
}
