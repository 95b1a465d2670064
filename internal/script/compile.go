package script

import (
	"fmt"
	"math"

	"github.com/san-kum/easelab/internal/easing"
	"github.com/san-kum/easelab/internal/motion"
)

// DefaultDuration applies to tweens that do not name a duration.
const DefaultDuration = 0.5

var optionKeys = map[string]bool{
	"ease": true, "duration": true, "delay": true,
	"repeat": true, "yoyo": true, "stagger": true,
}

var selectors = map[string]bool{
	motion.SelectorElement: true,
	motion.SelectorItems:   true,
}

// Compiled is a program ready to run against an engine.
type Compiled struct {
	Source  string
	Effects []motion.Effect
}

// Selectors returns the distinct selectors the program addresses.
func (c *Compiled) Selectors() []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range c.Effects {
		for _, s := range e.Selectors() {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Play resolves every selector, then plays each effect in order.
func (c *Compiled) Play(eng motion.Engine, resolve motion.Resolver) error {
	for _, s := range c.Selectors() {
		if _, err := resolve(s); err != nil {
			return err
		}
	}
	for _, e := range c.Effects {
		if err := e.Play(eng, resolve); err != nil {
			return err
		}
	}
	return nil
}

// Compile parses and compiles source into effects, one per statement.
func Compile(source string) (*Compiled, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	out := &Compiled{Source: source}
	for _, stmt := range prog.Statements {
		eff, err := compileStatement(stmt)
		if err != nil {
			return nil, err
		}
		out.Effects = append(out.Effects, eff)
	}
	return out, nil
}

func compileStatement(stmt *Statement) (motion.Effect, error) {
	eff := motion.Effect{Timeline: stmt.Timeline}
	for _, call := range stmt.Calls {
		step, err := compileCall(call)
		if err != nil {
			return motion.Effect{}, err
		}
		eff.Steps = append(eff.Steps, step)
	}
	return eff, nil
}

func compileCall(call *Call) (motion.Step, error) {
	if !selectors[call.Selector] {
		return motion.Step{}, wrapf(call.SelectorPos, motion.ErrUnknownSelector, "selector %q", call.Selector)
	}
	step := motion.Step{Selector: call.Selector}

	var vars *Object
	switch call.Method {
	case "set":
		step.Method = motion.MethodSet
		vars = call.Args[0]
	case "to":
		step.Method = motion.MethodTo
		vars = call.Args[0]
	case "from":
		step.Method = motion.MethodFrom
		vars = call.Args[0]
	case "fromTo":
		step.Method = motion.MethodFromTo
		from, opts, err := compileVars(call.Args[0])
		if err != nil {
			return motion.Step{}, err
		}
		if opts.set {
			return motion.Step{}, errorf(opts.pos, "tween options belong in the second object of fromTo")
		}
		step.From = from
		vars = call.Args[1]
	default:
		return motion.Step{}, errorf(call.Pos, "unknown method %q", call.Method)
	}

	props, opts, err := compileVars(vars)
	if err != nil {
		return motion.Step{}, err
	}
	switch step.Method {
	case motion.MethodSet:
		if opts.set {
			return motion.Step{}, errorf(opts.pos, "set takes no tween options")
		}
		step.To = props
	case motion.MethodFrom:
		step.From = props
	default:
		step.To = props
	}
	if step.Method != motion.MethodSet {
		step.Options = opts.Options
		if !opts.hasDuration {
			step.Options.Duration = DefaultDuration
		}
	}
	return step, nil
}

type options struct {
	motion.Options
	set         bool
	hasDuration bool
	pos         Pos
}

func compileVars(obj *Object) (motion.Props, options, error) {
	props := motion.Props{}
	var opts options
	seen := map[string]bool{}

	for _, f := range obj.Fields {
		if seen[f.Key] {
			return nil, opts, errorf(f.Pos, "duplicate key %q", f.Key)
		}
		seen[f.Key] = true

		if optionKeys[f.Key] {
			if !opts.set {
				opts.set, opts.pos = true, f.Pos
			}
			if err := compileOption(&opts, f); err != nil {
				return nil, opts, err
			}
			continue
		}

		key, ok := motion.LookupKey(f.Key)
		if !ok {
			return nil, opts, wrapf(f.Pos, motion.ErrUnknownProperty, "%q", f.Key)
		}
		v, err := propValue(key, f.Value)
		if err != nil {
			return nil, opts, err
		}
		props[key] = v
	}
	if err := props.Validate(); err != nil {
		return nil, opts, wrapf(obj.Pos, err, "invalid properties")
	}
	return props, opts, nil
}

func propValue(key motion.Key, v Value) (motion.Value, error) {
	if key.Textual() {
		if v.Kind != KindString {
			return motion.Value{}, wrapf(v.Pos, motion.ErrInvalidValue, "%s expects a string, got %s", key, v.Kind)
		}
		return motion.Text(v.Str), nil
	}
	if v.Kind != KindNumber {
		return motion.Value{}, wrapf(v.Pos, motion.ErrInvalidValue, "%s expects a number, got %s", key, v.Kind)
	}
	return motion.Num(v.Num), nil
}

func compileOption(opts *options, f *Field) error {
	v := f.Value
	switch f.Key {
	case "ease":
		if v.Kind != KindString {
			return wrapf(v.Pos, motion.ErrInvalidValue, "ease expects a string, got %s", v.Kind)
		}
		if _, err := easing.ParseSpec(v.Str); err != nil {
			return wrapf(v.Pos, err, "ease %q", v.Str)
		}
		opts.Ease = v.Str
	case "duration":
		n, err := nonNegative(f)
		if err != nil {
			return err
		}
		opts.Duration, opts.hasDuration = n, true
	case "delay":
		n, err := nonNegative(f)
		if err != nil {
			return err
		}
		opts.Delay = n
	case "repeat":
		n, err := repeatCount(f.Key, v)
		if err != nil {
			return err
		}
		opts.Repeat = n
	case "yoyo":
		if v.Kind != KindBool {
			return wrapf(v.Pos, motion.ErrInvalidValue, "yoyo expects true or false, got %s", v.Kind)
		}
		opts.Yoyo = v.Bool
	case "stagger":
		st, err := compileStagger(v)
		if err != nil {
			return err
		}
		opts.Stagger = st
	}
	return nil
}

func nonNegative(f *Field) (float64, error) {
	v := f.Value
	if v.Kind != KindNumber {
		return 0, wrapf(v.Pos, motion.ErrInvalidValue, "%s expects a number, got %s", f.Key, v.Kind)
	}
	if v.Num < 0 || math.IsInf(v.Num, 0) {
		return 0, wrapf(v.Pos, motion.ErrInvalidValue, "%s must be a finite number >= 0", f.Key)
	}
	return v.Num, nil
}

func repeatCount(key string, v Value) (int, error) {
	if v.Kind != KindNumber || v.Num != math.Trunc(v.Num) || v.Num < -1 || v.Num > math.MaxInt32 {
		return 0, wrapf(v.Pos, motion.ErrInvalidValue, "%s expects an integer >= -1", key)
	}
	return int(v.Num), nil
}

func compileStagger(v Value) (*motion.Stagger, error) {
	switch v.Kind {
	case KindNumber:
		if v.Num < 0 {
			return nil, wrapf(v.Pos, motion.ErrInvalidValue, "stagger must be >= 0")
		}
		return &motion.Stagger{Each: v.Num}, nil
	case KindObject:
	default:
		return nil, wrapf(v.Pos, motion.ErrInvalidValue, "stagger expects a number or object, got %s", v.Kind)
	}

	st := &motion.Stagger{}
	seen := map[string]bool{}
	for _, f := range v.Obj.Fields {
		if seen[f.Key] {
			return nil, errorf(f.Pos, "duplicate key %q", f.Key)
		}
		seen[f.Key] = true
		switch f.Key {
		case "each":
			n, err := nonNegative(f)
			if err != nil {
				return nil, err
			}
			st.Each = n
		case "repeat":
			n, err := repeatCount("stagger repeat", f.Value)
			if err != nil {
				return nil, err
			}
			st.Repeat = n
		case "yoyo":
			if f.Value.Kind != KindBool {
				return nil, wrapf(f.Value.Pos, motion.ErrInvalidValue, "yoyo expects true or false, got %s", f.Value.Kind)
			}
			st.Yoyo = f.Value.Bool
		default:
			return nil, errorf(f.Pos, "unknown stagger key %q (want each, repeat or yoyo)", f.Key)
		}
	}
	return st, nil
}

// Describe renders compiled effects one step per line, for check output.
func Describe(c *Compiled) []string {
	var out []string
	for i, e := range c.Effects {
		kind := "tween"
		if e.Timeline {
			kind = "timeline"
		}
		out = append(out, fmt.Sprintf("#%d %s", i+1, kind))
		for _, s := range e.Steps {
			line := fmt.Sprintf("  %s %s", s.Method, s.Selector)
			if len(s.From) > 0 {
				line += " from" + describeProps(s.From)
			}
			if len(s.To) > 0 {
				line += " to" + describeProps(s.To)
			}
			if s.Method != motion.MethodSet {
				o := s.Options
				line += fmt.Sprintf(" ease=%s duration=%gs", orNone(o.Ease), o.Duration)
				if o.Delay > 0 {
					line += fmt.Sprintf(" delay=%gs", o.Delay)
				}
				if o.Repeat != 0 {
					line += fmt.Sprintf(" repeat=%d", o.Repeat)
				}
				if o.Yoyo {
					line += " yoyo"
				}
				if o.Stagger != nil {
					line += fmt.Sprintf(" stagger=%gs", o.Stagger.Each)
					if o.Stagger.Yoyo {
						line += "(yoyo)"
					}
					if o.Stagger.Repeat != 0 {
						line += fmt.Sprintf("(repeat=%d)", o.Stagger.Repeat)
					}
				}
			}
			out = append(out, line)
		}
	}
	return out
}

func describeProps(p motion.Props) string {
	s := " {"
	for i, k := range p.Keys() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %s", k, p[k])
	}
	return s + "}"
}

func orNone(s string) string {
	if s == "" {
		return "default"
	}
	return s
}
