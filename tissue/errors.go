package tissue

import "errors"

var (
	// ErrPressure is returned when an initial ambient pressure is not positive.
	ErrPressure = errors.New("tissue: ambient pressure must be positive")

	// ErrLength is returned when tension slices are not exactly Compartments long.
	ErrLength = errors.New("tissue: tension slices must have 17 entries")

	// ErrNegativeTension is returned when a supplied tension is negative or NaN.
	ErrNegativeTension = errors.New("tissue: tension must be non-negative")

	// ErrIndex is returned for a compartment index outside 0..16.
	ErrIndex = errors.New("tissue: compartment index out of range")
)
