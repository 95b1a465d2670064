package motion

import (
	"fmt"
	"math"
)

// Placeholder selectors used by catalog code text.
const (
	SelectorElement = ".element"
	SelectorItems   = ".items"
)

// StaggerCount is the fixed size of the stagger target collection.
const StaggerCount = 5

// Stagger offsets the start of each target in a collection.
// Yoyo and Repeat, when set, apply to every per-target tween.
type Stagger struct {
	Each   float64
	Yoyo   bool
	Repeat int
}

// Options controls the timing of a tween.
type Options struct {
	Ease     string
	Duration float64
	Delay    float64
	Repeat   int // -1 repeats forever
	Yoyo     bool
	Stagger  *Stagger
}

// Infinite reports whether the tween never completes.
func (o Options) Infinite() bool {
	return o.Repeat < 0 || (o.Stagger != nil && o.Stagger.Repeat < 0)
}

// Span returns the time from start until the last of count targets finishes.
func (o Options) Span(count int) float64 {
	repeat, offset := o.Repeat, 0.0
	if o.Stagger != nil {
		if o.Stagger.Repeat != 0 {
			repeat = o.Stagger.Repeat
		}
		if count > 1 {
			offset = o.Stagger.Each * float64(count-1)
		}
	}
	if repeat < 0 {
		repeat = 0
	}
	return o.Delay + offset + o.Duration*float64(repeat+1)
}

// Method is the kind of engine call a step issues.
type Method int

const (
	MethodSet Method = iota
	MethodFrom
	MethodTo
	MethodFromTo
)

func (m Method) String() string {
	switch m {
	case MethodSet:
		return "set"
	case MethodFrom:
		return "from"
	case MethodTo:
		return "to"
	case MethodFromTo:
		return "fromTo"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Step is a single engine call against the targets named by Selector.
type Step struct {
	Method   Method
	Selector string
	From     Props
	To       Props
	Options  Options
}

// Effect is a declarative animation: independent steps, or a timeline where
// each step starts when the previous one ends.
type Effect struct {
	Timeline bool
	Steps    []Step
}

func (e Effect) IsZero() bool { return len(e.Steps) == 0 }

// Clone returns a deep copy of the effect.
func (e Effect) Clone() Effect {
	if e.Steps == nil {
		return Effect{Timeline: e.Timeline}
	}
	steps := make([]Step, len(e.Steps))
	for i, s := range e.Steps {
		s.From, s.To = s.From.Clone(), s.To.Clone()
		if s.Options.Stagger != nil {
			st := *s.Options.Stagger
			s.Options.Stagger = &st
		}
		steps[i] = s
	}
	return Effect{Timeline: e.Timeline, Steps: steps}
}

// Duration returns the time until the effect finishes when played against
// count targets per selector, or +Inf for an effect that repeats forever.
func (e Effect) Duration(count func(selector string) int) float64 {
	total := 0.0
	for _, s := range e.Steps {
		if s.Options.Infinite() {
			return math.Inf(1)
		}
		span := s.Options.Span(count(s.Selector))
		if e.Timeline {
			total += span
		} else {
			total = math.Max(total, span)
		}
	}
	return total
}

// Selectors returns the distinct selectors the effect addresses.
func (e Effect) Selectors() []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range e.Steps {
		if !seen[s.Selector] {
			seen[s.Selector] = true
			out = append(out, s.Selector)
		}
	}
	return out
}

// Resolver maps a selector to live targets.
type Resolver func(selector string) ([]*Target, error)

// Sequence is a chainable timeline. The first error sticks and is reported by Err.
type Sequence interface {
	To(targets []*Target, to Props, opts Options) Sequence
	From(targets []*Target, from Props, opts Options) Sequence
	FromTo(targets []*Target, from, to Props, opts Options) Sequence
	Err() error
}

// Engine is the animation engine handle effects are played against.
type Engine interface {
	Set(targets []*Target, props Props) error
	From(targets []*Target, from Props, opts Options) error
	To(targets []*Target, to Props, opts Options) error
	FromTo(targets []*Target, from, to Props, opts Options) error
	Timeline() Sequence
	Kill(targets ...*Target)
}

// Play resolves every selector first, then issues the steps. Nothing is sent
// to the engine if any selector fails to resolve.
func (e Effect) Play(eng Engine, resolve Resolver) error {
	targets := make([][]*Target, len(e.Steps))
	for i, s := range e.Steps {
		t, err := resolve(s.Selector)
		if err != nil {
			return err
		}
		targets[i] = t
	}

	if e.Timeline {
		seq := eng.Timeline()
		for i, s := range e.Steps {
			switch s.Method {
			case MethodFrom:
				seq = seq.From(targets[i], s.From, s.Options)
			case MethodTo:
				seq = seq.To(targets[i], s.To, s.Options)
			case MethodFromTo:
				seq = seq.FromTo(targets[i], s.From, s.To, s.Options)
			default:
				return fmt.Errorf("timeline cannot %s", s.Method)
			}
		}
		return seq.Err()
	}

	for i, s := range e.Steps {
		var err error
		switch s.Method {
		case MethodSet:
			err = eng.Set(targets[i], s.To)
		case MethodFrom:
			err = eng.From(targets[i], s.From, s.Options)
		case MethodTo:
			err = eng.To(targets[i], s.To, s.Options)
		case MethodFromTo:
			err = eng.FromTo(targets[i], s.From, s.To, s.Options)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
