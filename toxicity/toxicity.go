package toxicity

import (
	"fmt"
	"math"

	"github.com/katalvlaran/decoplan/gas"
	"gonum.org/v1/gonum/interp"
)

const (
	// CNSLimitPercent is the CNS clock value treated as the exposure limit.
	CNSLimitPercent = 100.0

	// OTUHalfLife is the surface half-life of single-dive OTU, in minutes.
	OTUHalfLife = 90.0

	// MinSetpoint and MaxSetpoint bound a rebreather setpoint (ATA).
	MinSetpoint = 0.4
	MaxSetpoint = 1.6

	// otuThreshold is the PO2 below which no OTU accrue.
	otuThreshold = 0.5
)

// NOAA single-exposure limits expressed as %/min.
var (
	cnsPO2  = []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 1.6}
	cnsRate = []float64{
		0,
		100.0 / 720, 100.0 / 570, 100.0 / 450, 100.0 / 360, 100.0 / 300,
		100.0 / 240, 100.0 / 210, 100.0 / 180, 100.0 / 150, 100.0 / 120,
		100.0 / 45,
	}
	cnsCurve = mustFit(cnsPO2, cnsRate)
)

func mustFit(xs, ys []float64) *interp.PiecewiseLinear {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		panic(err)
	}

	return &pl
}

// PO2 returns the partial pressure of oxygen (ATA) breathed on g at depth (fsw)
// with initial ambient pressure pInit (fsw). Open circuit scales the O2
// fraction by absolute pressure; closed circuit delivers the setpoint, capped
// at ambient pressure. setpoint is ignored for open circuit.
func PO2(g gas.Gas, depth, pInit, setpoint float64) (float64, error) {
	if !(pInit > 0) {
		return 0, fmt.Errorf("%w: %v", ErrPressure, pInit)
	}
	if !(depth >= 0) {
		return 0, fmt.Errorf("%w: %v", ErrDepth, depth)
	}
	if err := g.Validate(); err != nil {
		return 0, err
	}

	ambient := (depth + pInit) / gas.FswPerATA
	if g.Circuit == gas.ClosedCircuit {
		if setpoint < MinSetpoint || setpoint > MaxSetpoint || math.IsNaN(setpoint) {
			return 0, fmt.Errorf("%w: %v not in [%v, %v]", ErrSetpoint, setpoint, MinSetpoint, MaxSetpoint)
		}

		return math.Min(setpoint, ambient), nil
	}

	return g.O2 * ambient, nil
}

// ROTD returns the daily OTU accumulation rate (OTU/min) at po2.
func ROTD(po2 float64) float64 {
	if po2 < otuThreshold {
		return 0
	}

	return -0.17 + 0.82*po2 + 0.35*po2*po2
}

// ROTS returns the single-dive OTU accumulation rate (OTU/min) at po2.
func ROTS(po2 float64) float64 {
	switch {
	case po2 <= 1.0:
		return ROTD(po2)
	case po2 < 1.13:
		return 2.5*po2 - 1.5
	case po2 < 1.5:
		return 4.56 - 7.2*po2 + 3.84*po2*po2
	default:
		return 41.7*po2 - 60
	}
}

// CNSRate returns the CNS clock rate (%/min) at po2: 0 at or below 0.5 ATA,
// linear between the table anchors, constant above 1.6 ATA.
func CNSRate(po2 float64) float64 {
	if po2 <= cnsPO2[0] {
		return 0
	}

	return cnsCurve.Predict(po2)
}

// DecayOTU returns single-dive OTU remaining after minutes at the surface.
// Negative inputs are treated as 0.
func DecayOTU(otu, minutes float64) float64 {
	if otu <= 0 {
		return 0
	}
	if minutes <= 0 {
		return otu
	}

	return otu * math.Pow(0.5, minutes/OTUHalfLife)
}

// OxygenTimeRemaining returns the minutes left at po2 before the CNS clock
// reaches CNSLimitPercent. It is 0 at or past the limit and +Inf when the
// rate is zero.
func OxygenTimeRemaining(po2, cns float64) float64 {
	if cns >= CNSLimitPercent {
		return 0
	}
	cns = math.Max(0, cns)
	rate := CNSRate(po2)
	if rate <= 0 {
		return math.Inf(1)
	}

	return (CNSLimitPercent - cns) / rate
}
