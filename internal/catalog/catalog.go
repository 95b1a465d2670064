// Package catalog holds the fixed set of animation presets, grouped into
// ordered pattern categories. The data is built once at init and only ever
// handed out as copies.
package catalog

import (
	"fmt"

	"github.com/san-kum/easelab/internal/motion"
)

// Category is a group of related presets.
type Category struct {
	ID          string
	Label       string
	Description string
	Icon        string
	Color       string
	variants    []Variant
}

// Variant is a single preset.
type Variant struct {
	ID       string
	Label    string
	Ease     string
	Duration float64
	Code     string
	Effect   motion.Effect
	// Stagger marks presets that address the item collection with
	// per-item start offsets instead of the single box.
	Stagger bool
	// Mirror is the go-and-return form played in yoyo mode. Zero when the
	// preset has none, in which case the canonical effect plays.
	Mirror motion.Effect
}

// HasMirror reports whether the variant declares a yoyo form.
func (v Variant) HasMirror() bool { return !v.Mirror.IsZero() }

// YoyoEffect returns the effect to play in yoyo mode.
func (v Variant) YoyoEffect() motion.Effect {
	if v.HasMirror() {
		return v.Mirror.Clone()
	}
	return v.Effect.Clone()
}

func (v Variant) clone() Variant {
	v.Effect = v.Effect.Clone()
	v.Mirror = v.Mirror.Clone()
	return v
}

// Variants returns the category's presets in declaration order.
func (c Category) Variants() []Variant {
	out := make([]Variant, len(c.variants))
	for i, v := range c.variants {
		out[i] = v.clone()
	}
	return out
}

// VariantIDs returns the preset ids in declaration order.
func (c Category) VariantIDs() []string {
	out := make([]string, len(c.variants))
	for i, v := range c.variants {
		out[i] = v.ID
	}
	return out
}

// Variant looks up a preset by id.
func (c Category) Variant(id string) (Variant, bool) {
	for _, v := range c.variants {
		if v.ID == id {
			return v.clone(), true
		}
	}
	return Variant{}, false
}

// First returns the first declared preset.
func (c Category) First() Variant {
	return c.variants[0].clone()
}

// Len returns the number of presets in the category.
func (c Category) Len() int { return len(c.variants) }

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IDs returns the category ids in declaration order.
func IDs() []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.ID
	}
	return out
}

// Lookup finds a category by id.
func Lookup(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Default returns the category selected at startup.
func Default() Category { return categories[0] }

// Find resolves a category and preset id pair.
func Find(category, variant string) (Variant, error) {
	c, ok := Lookup(category)
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", motion.ErrUnknownCategory, category)
	}
	v, ok := c.Variant(variant)
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q in %s", motion.ErrUnknownVariant, variant, category)
	}
	return v, nil
}

func step(m motion.Method, sel string, from, to motion.Props, opts motion.Options) motion.Step {
	return motion.Step{Method: m, Selector: sel, From: from, To: to, Options: opts}
}

func from(sel string, p motion.Props, opts motion.Options) motion.Effect {
	return motion.Effect{Steps: []motion.Step{step(motion.MethodFrom, sel, p, nil, opts)}}
}

func to(sel string, p motion.Props, opts motion.Options) motion.Effect {
	return motion.Effect{Steps: []motion.Step{step(motion.MethodTo, sel, nil, p, opts)}}
}

func fromTo(sel string, f, t motion.Props, opts motion.Options) motion.Effect {
	return motion.Effect{Steps: []motion.Step{step(motion.MethodFromTo, sel, f, t, opts)}}
}

func timeline(steps ...motion.Step) motion.Effect {
	return motion.Effect{Timeline: true, Steps: steps}
}

// yoyo returns the effect with every step set to play once forward and once
// back.
func yoyo(e motion.Effect) motion.Effect {
	e = e.Clone()
	for i := range e.Steps {
		e.Steps[i].Options.Yoyo = true
		e.Steps[i].Options.Repeat = 1
	}
	return e
}
