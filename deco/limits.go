package deco

import (
	"fmt"
	"math"

	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"gonum.org/v1/gonum/floats"
)

// MValue returns the largest inert-gas tension compartment c tolerates at
// ambient pressure (fsw), scaled by the gradient factor gf (a fraction):
//
//	M = ambient + gf·(a + ambient·(1/b - 1))
//
// with a and b mixed by the current tensions. A vanishing b yields
// math.MaxFloat64, so that compartment never limits the ascent.
func MValue(c tissue.Compartment, pN2, pHe, ambient, gf float64) float64 {
	a, b := c.Mix(pN2, pHe)
	if b <= minChange {
		return math.MaxFloat64
	}

	return ambient + gf*(a+ambient*(1/b-1))
}

// GradientFactor returns the gradient factor (fraction) that applies at depth
// once the first stop of the ascent is known. Without a first stop, or at the
// surface, GF-high applies; at or below the first stop GF-low applies; in
// between the value moves linearly from GF-low to GF-high.
func GradientFactor(depth, firstStop float64, s Settings) float64 {
	lo, hi := s.gfLow(), s.gfHigh()
	switch {
	case firstStop <= minChange:
		return hi
	case depth >= firstStop:
		return lo
	case depth <= minChange:
		return hi
	default:
		return hi - (hi-lo)*depth/firstStop
	}
}

// Ceiling returns the shallowest depth (fsw, ≥ 0) the diver may ascend to
// with tissues st, using GF-low. It inverts the M-value equation per
// compartment and keeps the deepest result.
//
// Complexity: O(17).
func (e *Engine) Ceiling(st tissue.State, s Settings) float64 {
	pInit := s.Altitude.InitialPressure()
	gf := s.gfLow()

	var tolerated [tissue.Compartments]float64
	for i, c := range e.table {
		tolerated[i] = toleratedAmbient(c, st.N2[i], st.He[i], gf, pInit)
	}
	deepest := math.Max(0, floats.Max(tolerated[:]))

	return math.Max(0, deepest-pInit)
}

func toleratedAmbient(c tissue.Compartment, pN2, pHe, gf, pInit float64) float64 {
	a, b := c.Mix(pN2, pHe)
	if b <= minChange {
		return 0
	}
	p := pN2 + pHe
	denom := 1 + gf*(1/b-1)
	if math.Abs(denom) < 1e-9 {
		if p > gf*a {
			return math.MaxFloat64
		}

		return pInit
	}

	return (p - gf*a) / denom
}

// NextStopDepth rounds a ceiling to a stop depth: 0 when no stop is needed,
// the last stop when the ceiling lies above it, otherwise the next multiple
// of StopIncrement at or below the ceiling.
func (e *Engine) NextStopDepth(ceiling float64, last LastStop) float64 {
	switch {
	case ceiling <= 0:
		return 0
	case ceiling <= last.Depth():
		return last.Depth()
	default:
		inc := e.opts.StopIncrement
		return math.Ceil(ceiling/inc) * inc
	}
}

// withinLimits reports whether every compartment is at or below its M-value
// at ambient pressure.
func (e *Engine) withinLimits(st tissue.State, ambient, gf float64) bool {
	for i, c := range e.table {
		if st.Total(i) > MValue(c, st.N2[i], st.He[i], ambient, gf) {
			return false
		}
	}

	return true
}

// CanSurface reports whether a direct ascent from depth on g at
// Options.AscentRate keeps every compartment within its GF-high surface
// M-value.
func (e *Engine) CanSurface(st tissue.State, depth float64, g gas.Gas, s Settings) (bool, error) {
	if !(depth >= 0) {
		return false, fmt.Errorf("%w: %v", ErrNegativeDepth, depth)
	}
	if err := g.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if err := s.Validate(); err != nil {
		return false, err
	}

	return e.canSurface(st, depth, g, s), nil
}

func (e *Engine) canSurface(st tissue.State, depth float64, g gas.Gas, s Settings) bool {
	pInit := s.Altitude.InitialPressure()
	up := e.load(st, depth, 0, depth/(e.opts.AscentRate/60), g, pInit, false)

	return e.withinLimits(up, pInit, s.gfHigh())
}
