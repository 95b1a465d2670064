package motion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Baseline visual constants for the demo targets.
const (
	BaselineFill   = "#00ffff"
	BaselineShadow = "0 0 40px rgba(0, 255, 255, 0.5)"
	BaselineOrigin = "center center"
)

// Shadow is a parsed box shadow.
type Shadow struct {
	X, Y, Blur float64
	Color      colorful.Color
	Alpha      float64
}

// Style is the visual state of a target.
type Style struct {
	X, Y             float64
	ScaleX, ScaleY   float64
	Rotation         float64
	RotateX, RotateY float64
	Opacity          float64
	Fill             colorful.Color
	Shadow           Shadow
	Origin           string
	Perspective      float64
}

// Target is a demo element animated by an engine.
type Target struct {
	Name  string
	Style Style
}

// NewTarget returns a target at the baseline style.
func NewTarget(name string) *Target {
	return &Target{Name: name, Style: Baseline()}
}

// Baseline returns the resting style every reset returns a target to.
func Baseline() Style {
	fill, _ := colorful.Hex(BaselineFill)
	shadow, _ := ParseShadow(BaselineShadow)
	return Style{
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
		Fill:    fill,
		Shadow:  shadow,
		Origin:  BaselineOrigin,
	}
}

// BaselineProps is Baseline expressed as props, suitable for Engine.Set.
func BaselineProps() Props {
	return Props{
		KeyX:                    Num(0),
		KeyY:                    Num(0),
		KeyScaleX:               Num(1),
		KeyScaleY:               Num(1),
		KeyRotation:             Num(0),
		KeyRotateX:              Num(0),
		KeyRotateY:              Num(0),
		KeyOpacity:              Num(1),
		KeyBackgroundColor:      Text(BaselineFill),
		KeyBoxShadow:            Text(BaselineShadow),
		KeyTransformOrigin:      Text(BaselineOrigin),
		KeyTransformPerspective: Num(0),
	}
}

// Get returns the current value of a property.
func (s *Style) Get(k Key) Value {
	switch k {
	case KeyX:
		return Num(s.X)
	case KeyY:
		return Num(s.Y)
	case KeyScale, KeyScaleX:
		return Num(s.ScaleX)
	case KeyScaleY:
		return Num(s.ScaleY)
	case KeyRotation:
		return Num(s.Rotation)
	case KeyRotateX:
		return Num(s.RotateX)
	case KeyRotateY:
		return Num(s.RotateY)
	case KeyOpacity:
		return Num(s.Opacity)
	case KeyBackgroundColor:
		return Text(s.Fill.Clamped().Hex())
	case KeyBoxShadow:
		return Text(s.Shadow.String())
	case KeyTransformOrigin:
		return Text(s.Origin)
	case KeyTransformPerspective:
		return Num(s.Perspective)
	}
	return Value{}
}

// Set writes a property value.
func (s *Style) Set(k Key, v Value) error {
	if k.Textual() != v.IsText() {
		return fmt.Errorf("%w: %s=%s", ErrInvalidValue, k, v)
	}
	switch k {
	case KeyX:
		s.X = v.Num
	case KeyY:
		s.Y = v.Num
	case KeyScale:
		s.ScaleX, s.ScaleY = v.Num, v.Num
	case KeyScaleX:
		s.ScaleX = v.Num
	case KeyScaleY:
		s.ScaleY = v.Num
	case KeyRotation:
		s.Rotation = v.Num
	case KeyRotateX:
		s.RotateX = v.Num
	case KeyRotateY:
		s.RotateY = v.Num
	case KeyOpacity:
		s.Opacity = v.Num
	case KeyBackgroundColor:
		c, _, err := ParseColor(v.Text)
		if err != nil {
			return err
		}
		s.Fill = c
	case KeyBoxShadow:
		sh, err := ParseShadow(v.Text)
		if err != nil {
			return err
		}
		s.Shadow = sh
	case KeyTransformOrigin:
		s.Origin = v.Text
	case KeyTransformPerspective:
		s.Perspective = v.Num
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProperty, k)
	}
	return nil
}

// Apply writes every prop in canonical order.
func (s *Style) Apply(p Props) error {
	for _, k := range p.Keys() {
		if err := s.Set(k, p[k]); err != nil {
			return err
		}
	}
	return nil
}

// Mix interpolates a property between a and b at progress p. Progress may
// leave [0, 1] for overshooting eases. Keys that are not tweenable snap to b.
func Mix(k Key, a, b Value, p float64) Value {
	if !k.Tweenable() {
		return b
	}
	switch k {
	case KeyBackgroundColor:
		ca, _, errA := ParseColor(a.Text)
		cb, _, errB := ParseColor(b.Text)
		if errA != nil || errB != nil {
			return b
		}
		return Text(ca.BlendRgb(cb, p).Clamped().Hex())
	case KeyBoxShadow:
		sa, errA := ParseShadow(a.Text)
		sb, errB := ParseShadow(b.Text)
		if errA != nil || errB != nil {
			return b
		}
		return Text(sa.Lerp(sb, p).String())
	}
	return Num(a.Num + (b.Num-a.Num)*p)
}

// Lerp interpolates every component of the shadow.
func (s Shadow) Lerp(o Shadow, p float64) Shadow {
	return Shadow{
		X:     s.X + (o.X-s.X)*p,
		Y:     s.Y + (o.Y-s.Y)*p,
		Blur:  s.Blur + (o.Blur-s.Blur)*p,
		Color: s.Color.BlendRgb(o.Color, p).Clamped(),
		Alpha: s.Alpha + (o.Alpha-s.Alpha)*p,
	}
}

func (s Shadow) String() string {
	r, g, b := s.Color.Clamped().RGB255()
	return fmt.Sprintf("%spx %spx %spx rgba(%d, %d, %d, %s)",
		formatFloat(s.X), formatFloat(s.Y), formatFloat(s.Blur), r, g, b, formatFloat(s.Alpha))
}

// ParseShadow parses "<x> <y> [blur] <color>" where lengths may carry a px
// suffix and the colour is hex, rgb() or rgba().
func ParseShadow(text string) (Shadow, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "none" {
		return Shadow{}, nil
	}
	colorAt := strings.Index(text, "rgb")
	if colorAt < 0 {
		colorAt = strings.Index(text, "#")
	}
	if colorAt < 0 {
		return Shadow{}, fmt.Errorf("%w: shadow %q has no colour", ErrInvalidValue, text)
	}
	c, alpha, err := ParseColor(text[colorAt:])
	if err != nil {
		return Shadow{}, err
	}
	fields := strings.Fields(text[:colorAt])
	if len(fields) < 2 || len(fields) > 3 {
		return Shadow{}, fmt.Errorf("%w: shadow %q needs 2 or 3 lengths", ErrInvalidValue, text)
	}
	lengths := make([]float64, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return Shadow{}, fmt.Errorf("%w: shadow length %q", ErrInvalidValue, f)
		}
		lengths[i] = v
	}
	return Shadow{X: lengths[0], Y: lengths[1], Blur: lengths[2], Color: c, Alpha: alpha}, nil
}

// ParseColor parses #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(text string) (colorful.Color, float64, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		c, err := colorful.Hex(text)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: colour %q", ErrInvalidValue, text)
		}
		return c, 1, nil
	}
	// nothing may follow the closing parenthesis
	open, close := strings.IndexByte(text, '('), len(text)-1
	if open < 0 || close <= open || text[close] != ')' {
		return colorful.Color{}, 0, fmt.Errorf("%w: colour %q", ErrInvalidValue, text)
	}
	fn := strings.TrimSpace(text[:open])
	parts := strings.Split(text[open+1:close], ",")
	if (fn != "rgb" || len(parts) != 3) && (fn != "rgba" || len(parts) != 4) {
		return colorful.Color{}, 0, fmt.Errorf("%w: colour %q", ErrInvalidValue, text)
	}
	ch := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: colour %q", ErrInvalidValue, text)
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(ch) == 4 {
		alpha = ch[3]
	}
	return colorful.Color{R: ch[0] / 255, G: ch[1] / 255, B: ch[2] / 255}, alpha, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
