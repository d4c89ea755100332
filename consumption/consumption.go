// Package consumption scales surface breathing rates (SAC/RMV) to depth and
// estimates how long a cylinder will last.
//
// Volumes are in the caller's unit (cuft by convention), pressures of the
// cylinder in psi, depths and ambient pressure in fsw.
package consumption

import (
	"math"

	"github.com/katalvlaran/decoplan/gas"
)

// DefaultServicePressure is the cylinder rating assumed when none is given (psi).
const DefaultServicePressure = 3000.0

// Tank is the state of one cylinder.
type Tank struct {
	Capacity        float64 // volume at service pressure
	ServicePressure float64 // rated pressure
	Pressure        float64 // current gauge pressure
	ReservePercent  float64 // share of service pressure held back
}

// NewTank returns the cylinder described by g at the given gauge pressure,
// rated at DefaultServicePressure.
func NewTank(g gas.Gas, pressure float64) Tank {
	return Tank{
		Capacity:        g.TankCapacity,
		ServicePressure: DefaultServicePressure,
		Pressure:        pressure,
		ReservePercent:  g.ReservePercent,
	}
}

// Usable returns the volume above the reserve, never negative.
func (t Tank) Usable() float64 {
	if t.ServicePressure <= 0 || t.Capacity <= 0 {
		return 0
	}
	reserve := t.ReservePercent / 100 * t.ServicePressure
	usable := math.Max(0, t.Pressure) - reserve
	if usable <= 0 {
		return 0
	}

	return usable * t.Capacity / t.ServicePressure
}

// RateAtDepth scales the surface rate sac by absolute pressure at depth.
// Negative sac or depth count as 0; a non-positive pInit yields 0.
func RateAtDepth(sac, depth, pInit float64) float64 {
	if pInit <= 0 {
		return 0
	}
	sac = math.Max(0, sac)
	depth = math.Max(0, depth)

	return sac * (depth + pInit) / pInit
}

// Volume returns the gas used breathing sac for minutes at avgDepth.
func Volume(sac, avgDepth, minutes, pInit float64) float64 {
	if minutes <= 0 {
		return 0
	}

	return RateAtDepth(sac, avgDepth, pInit) * minutes
}

// TimeRemaining returns the minutes of usable gas left in t at depth.
// It is 0 when nothing above the reserve remains and +Inf when the rate is 0.
func TimeRemaining(t Tank, sac, depth, pInit float64) float64 {
	usable := t.Usable()
	if usable <= 0 {
		return 0
	}
	rate := RateAtDepth(sac, depth, pInit)
	if rate <= 0 {
		return math.Inf(1)
	}

	return usable / rate
}
