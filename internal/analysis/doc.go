// Package analysis inspects captured motion.
//
//   - [MotionPath]: one channel plotted against another, such as x against y
//   - [Crossings]: instants where a channel passes through a level
//   - [Spectrum]: frequency content of a channel, for shakes and loops
//
// # Oscillation
//
// Elastic and looping presets oscillate; the dominant frequency tells them
// apart:
//
//	sp := analysis.Spectrum(res, 0, motion.KeyX)
//	hz, _ := sp.Dominant()
package analysis
