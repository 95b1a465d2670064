package motion

import "errors"

// Domain errors for catalog lookups and playback.
var (
	// ErrUnknownCategory indicates a pattern category id that is not in the catalog.
	ErrUnknownCategory = errors.New("motion: unknown pattern category")

	// ErrUnknownVariant indicates a variant id not declared under the current category.
	ErrUnknownVariant = errors.New("motion: unknown variant")

	// ErrEngineNotLoaded indicates playback was requested before the engine finished loading.
	ErrEngineNotLoaded = errors.New("motion: animation engine not loaded")

	// ErrPlaying indicates an operation refused because a playback is running.
	ErrPlaying = errors.New("motion: playback in progress")

	// ErrNoVariant indicates no variant is resolved for the current selection.
	ErrNoVariant = errors.New("motion: no variant selected")

	// ErrUnknownProperty indicates a property name outside the supported set.
	ErrUnknownProperty = errors.New("motion: unknown property")

	// ErrInvalidValue indicates a property value that cannot be applied.
	ErrInvalidValue = errors.New("motion: invalid property value")

	// ErrUnknownSelector indicates a target selector that resolves to nothing.
	ErrUnknownSelector = errors.New("motion: unknown target selector")
)

// ScriptError wraps a failure raised while compiling or running edited code.
type ScriptError struct {
	Category string
	Variant  string
	Source   string
	Wrapped  error
}

func (e *ScriptError) Error() string {
	return "edited code for " + e.Category + "/" + e.Variant + ": " + e.Wrapped.Error()
}

func (e *ScriptError) Unwrap() error {
	return e.Wrapped
}
