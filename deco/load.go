package deco

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/decoplan/consumption"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"github.com/katalvlaran/decoplan/toxicity"
)

const (
	waterStep   = 1.0  // seconds
	surfaceStep = 60.0 // seconds

	// surfaceN2 is the nitrogen fraction breathed during a surface interval.
	surfaceN2 = 0.7902

	// minChange is the smallest depth or rate treated as non-zero.
	minChange = 1e-6
)

// Load returns st after breathing g for d while moving linearly from start to
// end (fsw). With surface set the diver is on the surface breathing air and the
// surface half-times apply; start and end are ignored. A zero duration returns
// st unchanged.
//
// Algorithm:
//  1. Split d into n = max(1, round(d/step)) steps of 1 s (60 s on the surface).
//  2. For step i take depth = start + (end-start)·i·Δt/d and ambient = depth + pInit.
//  3. Move every tension toward fraction·ambient by 1 - exp(-ln2·Δt/halfTime).
//
// Complexity: O(n·17), O(17) when depth is constant.
func (e *Engine) Load(st tissue.State, start, end float64, d time.Duration, g gas.Gas, pInit float64, surface bool) (tissue.State, error) {
	if !(start >= 0) || !(end >= 0) {
		return st, fmt.Errorf("%w: %v -> %v", ErrNegativeDepth, start, end)
	}
	if d < 0 {
		return st, fmt.Errorf("%w: %v", ErrNegativeDuration, d)
	}
	if err := g.Validate(); err != nil {
		return st, fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if !(pInit > 0) {
		return st, fmt.Errorf("%w: initial pressure %v", ErrSettings, pInit)
	}

	return e.load(st, start, end, d.Seconds(), g, pInit, surface), nil
}

// load is Load without validation; seconds may be fractional.
func (e *Engine) load(st tissue.State, start, end, seconds float64, g gas.Gas, pInit float64, surface bool) tissue.State {
	if seconds <= 0 {
		return st
	}

	step := waterStep
	fN2, fHe := g.N2(), g.He
	if surface {
		step = surfaceStep
		start, end = 0, 0
		fN2, fHe = surfaceN2, 0
	}
	n := math.Max(1, math.Round(seconds/step))
	dt := seconds / n

	if start == end {
		ambient := start + pInit
		return e.advance(st, fN2*ambient, fHe*ambient, dt*n, surface)
	}

	var (
		depth, ambient float64
		steps          = int(n)
	)
	for i := 0; i < steps; i++ {
		depth = start + (end-start)*float64(i)*dt/seconds
		ambient = depth + pInit
		st = e.advance(st, fN2*ambient, fHe*ambient, dt, surface)
	}

	return st
}

// advance moves every compartment toward constant inspired pressures for
// seconds, using the surface or in-water half-times.
func (e *Engine) advance(st tissue.State, inN2, inHe, seconds float64, surface bool) tissue.State {
	minutes := seconds / 60
	for i, c := range e.table {
		hN2, hHe := c.N2HalfTime, c.HeHalfTime
		if surface {
			hN2, hHe = c.N2SurfaceHalfTime, c.HeSurfaceHalfTime
		}
		st.N2[i] += (inN2 - st.N2[i]) * (1 - math.Exp(-math.Ln2*minutes/hN2))
		st.He[i] += (inHe - st.He[i]) * (1 - math.Exp(-math.Ln2*minutes/hHe))
	}

	return st
}

// LoadSegment loads one Segment that starts at prevDepth with tissues prev.
// Travel to the segment depth is breathed on transit and charged at the
// segment's descent or ascent rate; the rest of the segment's duration is spent
// at depth on the segment gas. Oxygen dose and gas use (dive RMV) are charged
// at each phase's average depth; travel volume goes to TransitGasUsed.
func (e *Engine) LoadSegment(prev tissue.State, prevDepth float64, sg Segment, transit gas.Gas, s Settings) (SegmentResult, error) {
	if !(prevDepth >= 0) {
		return SegmentResult{}, fmt.Errorf("%w: previous depth %v", ErrNegativeDepth, prevDepth)
	}
	if err := sg.Validate(); err != nil {
		return SegmentResult{}, err
	}
	if err := transit.Validate(); err != nil {
		return SegmentResult{}, fmt.Errorf("%w: transit: %w", ErrInvalidGas, err)
	}
	if err := s.Validate(); err != nil {
		return SegmentResult{}, err
	}

	pInit := s.Altitude.InitialPressure()
	res := SegmentResult{State: prev}

	var transitSec float64
	if delta := math.Abs(sg.Depth - prevDepth); delta > minChange {
		rate := sg.AscentRate
		if sg.Depth > prevDepth {
			rate = sg.DescentRate
		}
		if rate > minChange {
			transitSec = delta / (rate / 60)
		}
	}

	if transitSec > 0 {
		res.State = e.load(prev, prevDepth, sg.Depth, transitSec, transit, pInit, false)
		avg := (prevDepth + sg.Depth) / 2
		if err := e.charge(&res.Exposure, &res.TransitGasUsed, transit, avg, transitSec/60, pInit, sg.Setpoint, s.Rates.Dive); err != nil {
			return SegmentResult{}, err
		}
		if transitSec > minChange {
			res.Transit = time.Duration(transitSec * float64(time.Second))
		}
	}

	atDepth := math.Max(0, sg.Duration.Seconds()-transitSec)
	if atDepth > 0 {
		res.State = e.load(res.State, sg.Depth, sg.Depth, atDepth, sg.Gas, pInit, false)
		if err := e.charge(&res.Exposure, &res.GasUsed, sg.Gas, sg.Depth, atDepth/60, pInit, sg.Setpoint, s.Rates.Dive); err != nil {
			return SegmentResult{}, err
		}
	}

	return res, nil
}

// charge adds the oxygen dose and gas volume of breathing g for minutes at depth.
func (e *Engine) charge(exp *toxicity.Exposure, used *float64, g gas.Gas, depth, minutes, pInit, setpoint, rmv float64) error {
	po2, err := toxicity.PO2(g, depth, pInit, setpoint)
	if err != nil {
		return err
	}
	*exp = exp.Add(po2, minutes)
	*used += consumption.Volume(rmv, depth, minutes, pInit)

	return nil
}
