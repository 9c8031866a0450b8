package physics

import "errors"

var (
	// ErrParameterBounds indicates a coefficient outside its physical range.
	ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the model does not expose.
	ErrUnknownParam = errors.New("physics: unknown parameter")

	// ErrResonance indicates undamped forcing at the natural frequency, which
	// has no bounded steady-state term.
	ErrResonance = errors.New("physics: undamped resonance has no steady-state solution")
)
