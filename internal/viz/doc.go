// Package viz provides the terminal preset browser.
//
// The browser is a Bubble Tea program built around [App]:
//
//   - a category bar and variant list for picking a preset
//   - a Braille [Canvas] stage that draws the box or the item row in 3D
//   - a code pane rendered with glamour, editable when enabled
//   - a quick-reference footer of entrance, transition and exit eases
//
// # Key Bindings
//
//	←/→   - Previous/next category (1-8 jump directly)
//	↑/↓   - Previous/next variant
//	Enter - Play the selected preset
//	R     - Reset the stage
//	Y     - Toggle yoyo mode
//	C     - Show or hide the code pane
//	E     - Edit the code (editable mode)
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Mouse clicks on categories, variants and buttons are resolved through
// bubblezone marks.
package viz
