package player

import (
	"fmt"

	"github.com/san-kum/easelab/internal/motion"
)

// Stage owns the demo targets: a single box and the fixed item collection
// used by stagger presets.
type Stage struct {
	Box   *motion.Target
	Items []*motion.Target
}

// NewStage returns a stage with every target at baseline.
func NewStage() *Stage {
	s := &Stage{Box: motion.NewTarget("box")}
	for i := 0; i < motion.StaggerCount; i++ {
		s.Items = append(s.Items, motion.NewTarget(fmt.Sprintf("item-%d", i+1)))
	}
	return s
}

// Resolve maps a placeholder selector to live targets.
func (s *Stage) Resolve(selector string) ([]*motion.Target, error) {
	switch selector {
	case motion.SelectorElement:
		return []*motion.Target{s.Box}, nil
	case motion.SelectorItems:
		out := make([]*motion.Target, len(s.Items))
		copy(out, s.Items)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", motion.ErrUnknownSelector, selector)
}

// Count returns the number of targets a selector addresses, zero if unknown.
func (s *Stage) Count(selector string) int {
	t, err := s.Resolve(selector)
	if err != nil {
		return 0
	}
	return len(t)
}

// All returns the box followed by the items.
func (s *Stage) All() []*motion.Target {
	return append([]*motion.Target{s.Box}, s.Items...)
}

// Snapshot copies the current style of every target, box first.
func (s *Stage) Snapshot() []motion.Style {
	all := s.All()
	out := make([]motion.Style, len(all))
	for i, t := range all {
		out[i] = t.Style
	}
	return out
}

// AtBaseline reports whether every target is at the baseline style.
func (s *Stage) AtBaseline() bool {
	base := motion.Baseline()
	for _, t := range s.All() {
		if t.Style != base {
			return false
		}
	}
	return true
}

func (s *Stage) resetStyles() {
	for _, t := range s.All() {
		t.Style = motion.Baseline()
	}
}
