package motion

import (
	"fmt"
	"sort"
	"strconv"
)

// Key names an animatable (or instantly applied) property of a target.
type Key string

const (
	KeyX                    Key = "x"
	KeyY                    Key = "y"
	KeyScale                Key = "scale"
	KeyScaleX               Key = "scaleX"
	KeyScaleY               Key = "scaleY"
	KeyRotation             Key = "rotation"
	KeyRotateX              Key = "rotateX"
	KeyRotateY              Key = "rotateY"
	KeyOpacity              Key = "opacity"
	KeyBackgroundColor      Key = "backgroundColor"
	KeyBoxShadow            Key = "boxShadow"
	KeyTransformOrigin      Key = "transformOrigin"
	KeyTransformPerspective Key = "transformPerspective"
)

// keyOrder is the canonical ordering used when iterating props.
var keyOrder = []Key{
	KeyX, KeyY, KeyScale, KeyScaleX, KeyScaleY,
	KeyRotation, KeyRotateX, KeyRotateY, KeyOpacity,
	KeyBackgroundColor, KeyBoxShadow, KeyTransformOrigin, KeyTransformPerspective,
}

var keyIndex = func() map[Key]int {
	m := make(map[Key]int, len(keyOrder))
	for i, k := range keyOrder {
		m[k] = i
	}
	return m
}()

// LookupKey resolves a property name as written in code text.
func LookupKey(name string) (Key, bool) {
	k := Key(name)
	_, ok := keyIndex[k]
	return k, ok
}

// Keys returns every supported property in canonical order.
func Keys() []Key {
	out := make([]Key, len(keyOrder))
	copy(out, keyOrder)
	return out
}

// Textual reports whether the key takes a string value.
func (k Key) Textual() bool {
	switch k {
	case KeyBackgroundColor, KeyBoxShadow, KeyTransformOrigin:
		return true
	}
	return false
}

// Tweenable reports whether values of the key are interpolated over time.
// Non-tweenable keys are applied when a tween starts.
func (k Key) Tweenable() bool {
	return k != KeyTransformOrigin && k != KeyTransformPerspective
}

// Value is a numeric or textual property value.
type Value struct {
	Num  float64
	Text string
	text bool
}

// Num returns a numeric value.
func Num(v float64) Value { return Value{Num: v} }

// Text returns a textual value.
func Text(s string) Value { return Value{Text: s, text: true} }

func (v Value) IsText() bool { return v.text }

func (v Value) String() string {
	if v.text {
		return strconv.Quote(v.Text)
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// Props maps property keys to values.
type Props map[Key]Value

// Keys returns the keys present in p in canonical order.
func (p Props) Keys() []Key {
	keys := make([]Key, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyIndex[keys[i]] < keyIndex[keys[j]] })
	return keys
}

func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	c := make(Props, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Validate checks every key is supported and carries the right value kind.
func (p Props) Validate() error {
	for k, v := range p {
		if _, ok := keyIndex[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProperty, k)
		}
		if k.Textual() != v.IsText() {
			return fmt.Errorf("%w: %s=%s", ErrInvalidValue, k, v)
		}
		switch k {
		case KeyBackgroundColor:
			if _, _, err := ParseColor(v.Text); err != nil {
				return err
			}
		case KeyBoxShadow:
			if _, err := ParseShadow(v.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
