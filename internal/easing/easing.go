// Package easing resolves easing identifiers such as "back.out(1.7)",
// "elastic.out(1, 0.3)" or "power2.inOut" into gween easing functions.
//
// An identifier is family[.direction][(args)]. Direction is one of in, out
// or inOut and defaults to out. Only back (overshoot) and elastic
// (amplitude, period) take arguments.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

var ErrUnknownEase = errors.New("easing: unknown ease")

// Direction selects which end of the curve is eased.
type Direction string

const (
	In    Direction = "in"
	Out   Direction = "out"
	InOut Direction = "inOut"
)

const (
	defaultOvershoot = 1.70158
	defaultAmplitude = 1.0
	defaultPeriod    = 0.3
)

// fixed maps family -> direction -> gween curve for curves without arguments.
var fixed = map[string]map[Direction]ease.TweenFunc{
	"power1": {In: ease.InQuad, Out: ease.OutQuad, InOut: ease.InOutQuad},
	"power2": {In: ease.InCubic, Out: ease.OutCubic, InOut: ease.InOutCubic},
	"power3": {In: ease.InQuart, Out: ease.OutQuart, InOut: ease.InOutQuart},
	"power4": {In: ease.InQuint, Out: ease.OutQuint, InOut: ease.InOutQuint},
	"quad":   {In: ease.InQuad, Out: ease.OutQuad, InOut: ease.InOutQuad},
	"cubic":  {In: ease.InCubic, Out: ease.OutCubic, InOut: ease.InOutCubic},
	"quart":  {In: ease.InQuart, Out: ease.OutQuart, InOut: ease.InOutQuart},
	"quint":  {In: ease.InQuint, Out: ease.OutQuint, InOut: ease.InOutQuint},
	"strong": {In: ease.InQuint, Out: ease.OutQuint, InOut: ease.InOutQuint},
	"sine":   {In: ease.InSine, Out: ease.OutSine, InOut: ease.InOutSine},
	"expo":   {In: ease.InExpo, Out: ease.OutExpo, InOut: ease.InOutExpo},
	"circ":   {In: ease.InCirc, Out: ease.OutCirc, InOut: ease.InOutCirc},
	"bounce": {In: ease.InBounce, Out: ease.OutBounce, InOut: ease.InOutBounce},
}

// Families returns every accepted family name, sorted.
func Families() []string {
	names := []string{"none", "linear", "power0", "back", "elastic"}
	for name := range fixed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec is a parsed easing identifier.
type Spec struct {
	Family    string
	Direction Direction
	Args      []float64
}

func (s Spec) String() string {
	if s.Family == "none" {
		return s.Family
	}
	out := s.Family + "." + string(s.Direction)
	if len(s.Args) > 0 {
		parts := make([]string, len(s.Args))
		for i, a := range s.Args {
			parts[i] = strconv.FormatFloat(a, 'g', -1, 64)
		}
		out += "(" + strings.Join(parts, ", ") + ")"
	}
	return out
}

// ParseSpec splits an identifier into its parts without building the curve.
func ParseSpec(name string) (Spec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, fmt.Errorf("%w: empty name", ErrUnknownEase)
	}
	head, args := name, ""
	if open := strings.IndexByte(name, '('); open >= 0 {
		if !strings.HasSuffix(name, ")") {
			return Spec{}, fmt.Errorf("%w: %q has unbalanced parentheses", ErrUnknownEase, name)
		}
		head, args = name[:open], name[open+1:len(name)-1]
	}

	spec := Spec{Family: head, Direction: Out}
	if dot := strings.IndexByte(head, '.'); dot >= 0 {
		spec.Family, spec.Direction = head[:dot], Direction(head[dot+1:])
	}
	switch spec.Direction {
	case In, Out, InOut:
	default:
		return Spec{}, fmt.Errorf("%w: %q has unknown direction %q", ErrUnknownEase, name, spec.Direction)
	}

	if strings.TrimSpace(args) != "" {
		for _, part := range strings.Split(args, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %q has bad argument %q", ErrUnknownEase, name, part)
			}
			spec.Args = append(spec.Args, v)
		}
	}

	switch spec.Family {
	case "none", "linear", "power0":
		spec.Family = "none"
	case "back":
		if len(spec.Args) > 1 {
			return Spec{}, fmt.Errorf("%w: back takes at most one argument", ErrUnknownEase)
		}
		return spec, nil
	case "elastic":
		if len(spec.Args) > 2 {
			return Spec{}, fmt.Errorf("%w: elastic takes at most two arguments", ErrUnknownEase)
		}
		return spec, nil
	default:
		if _, ok := fixed[spec.Family]; !ok {
			return Spec{}, fmt.Errorf("%w: %q", ErrUnknownEase, name)
		}
	}
	if len(spec.Args) > 0 {
		return Spec{}, fmt.Errorf("%w: %s takes no arguments", ErrUnknownEase, spec.Family)
	}
	return spec, nil
}

// Parse resolves an identifier to a gween easing function.
func Parse(name string) (ease.TweenFunc, error) {
	spec, err := ParseSpec(name)
	if err != nil {
		return nil, err
	}
	return spec.Func(), nil
}

// MustParse is Parse for identifiers known to be valid.
func MustParse(name string) ease.TweenFunc {
	fn, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// Func builds the easing function for a parsed spec.
func (s Spec) Func() ease.TweenFunc {
	switch s.Family {
	case "none":
		return ease.Linear
	case "back":
		overshoot := defaultOvershoot
		if len(s.Args) > 0 {
			overshoot = s.Args[0]
		}
		return fromProgress(directed(s.Direction, backIn(overshoot)))
	case "elastic":
		amplitude, period := defaultAmplitude, defaultPeriod
		if len(s.Args) > 0 {
			amplitude = s.Args[0]
		}
		if len(s.Args) > 1 {
			period = s.Args[1]
		}
		return fromProgress(directed(s.Direction, elasticIn(amplitude, period)))
	}
	return fixed[s.Family][s.Direction]
}

// Progress evaluates fn at normalized time p.
func Progress(fn ease.TweenFunc, p float64) float64 {
	return float64(fn(float32(p), 0, 1, 1))
}

// Sample evaluates fn at n+1 evenly spaced points over [0, 1].
func Sample(fn ease.TweenFunc, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = Progress(fn, float64(i)/float64(n))
	}
	return out
}

type curve func(p float64) float64

// fromProgress adapts a normalized curve to gween's (t, b, c, d) signature.
func fromProgress(f curve) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(f(float64(t/d)))
	}
}

// directed derives out and inOut variants from an ease-in curve.
func directed(dir Direction, in curve) curve {
	switch dir {
	case In:
		return in
	case InOut:
		return func(p float64) float64 {
			if p < 0.5 {
				return in(p*2) / 2
			}
			return 1 - in((1-p)*2)/2
		}
	}
	return func(p float64) float64 { return 1 - in(1-p) }
}

func backIn(overshoot float64) curve {
	return func(p float64) float64 {
		return p * p * ((overshoot+1)*p - overshoot)
	}
}

func elasticIn(amplitude, period float64) curve {
	if amplitude < 1 {
		amplitude = 1
	}
	if period <= 0 {
		period = defaultPeriod
	}
	shift := period / (2 * math.Pi) * math.Asin(1/amplitude)
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		q := p - 1
		return -amplitude * math.Pow(2, 10*q) * math.Sin((q-shift)*2*math.Pi/period)
	}
}
