package deco

import (
	"errors"
	"fmt"
)

// Precondition errors.
var (
	// ErrNegativeDepth indicates a depth below zero.
	ErrNegativeDepth = errors.New("deco: depth must be non-negative")

	// ErrNegativeDuration indicates a duration below zero.
	ErrNegativeDuration = errors.New("deco: duration must be non-negative")

	// ErrInvalidGas wraps a missing or invalid breathing gas.
	ErrInvalidGas = errors.New("deco: invalid gas")

	// ErrGradientFactor indicates GF values outside MinGF..MaxGF or low > high.
	ErrGradientFactor = errors.New("deco: invalid gradient factors")

	// ErrConsumptionRate indicates a surface consumption rate outside MinRMV..MaxRMV.
	ErrConsumptionRate = errors.New("deco: consumption rate out of range")

	// ErrSettings indicates an unknown altitude, last stop or alarm threshold.
	ErrSettings = errors.New("deco: invalid settings")

	// ErrOptions indicates a non-positive search bound, rate or PO2 limit.
	ErrOptions = errors.New("deco: invalid options")
)

// Planning errors.
var (
	// ErrNoBreathableGas is returned when no gas satisfies the PO2 limits at a
	// depth the ascent must pass through.
	ErrNoBreathableGas = errors.New("deco: no breathable gas")

	// ErrIncompletePlan marks a plan cut short by a search bound. The returned
	// Plan holds the stops computed so far and must not be treated as safe.
	ErrIncompletePlan = errors.New("deco: incomplete plan")

	// ErrStopLimit is returned when a single stop exceeds Options.MaxStopMinutes.
	ErrStopLimit = fmt.Errorf("%w: stop time limit reached", ErrIncompletePlan)

	// ErrCycleLimit is returned when the plan exceeds Options.MaxStopCycles stops.
	ErrCycleLimit = fmt.Errorf("%w: stop cycle limit reached", ErrIncompletePlan)
)
