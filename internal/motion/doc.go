// Package motion provides the core primitives shared by the preset catalog,
// the tween engine and the playback controller.
//
// The package defines:
//
//   - [Target]: a demo element whose [Style] is animated
//   - [Props]: a set of property values keyed by [Key]
//   - [Options]: tween timing (ease, duration, delay, repeat, yoyo, stagger)
//   - [Effect]: an ordered list of [Step] values, optionally sequenced
//   - [Engine]: the animation engine handle effects are played against
//
// # Example
//
//	fx := motion.Effect{Steps: []motion.Step{{
//		Method:   motion.MethodFrom,
//		Selector: motion.SelectorElement,
//		From:     motion.Props{motion.KeyY: motion.Num(60), motion.KeyOpacity: motion.Num(0)},
//		Options:  motion.Options{Ease: "back.out(1.7)", Duration: 0.5},
//	}}}
//	err := fx.Play(eng, stage.Resolve)
//
// # Thread Safety
//
// Targets are owned by a single goroutine. Engines write to target styles
// only from their Tick method, so callers must tick and render from the same
// goroutine.
package motion
