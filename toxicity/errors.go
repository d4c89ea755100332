package toxicity

import "errors"

var (
	// ErrSetpoint indicates a closed-circuit setpoint outside MinSetpoint..MaxSetpoint.
	ErrSetpoint = errors.New("toxicity: setpoint out of range")

	// ErrPressure indicates a non-positive initial ambient pressure.
	ErrPressure = errors.New("toxicity: ambient pressure must be positive")

	// ErrDepth indicates a negative depth.
	ErrDepth = errors.New("toxicity: depth must be non-negative")
)
