package deco

// Staged ascent planning.
//
// The plan is a loop of three phases, repeated until the ceiling clears:
//
//	Stage 1: determine the next stop from the GF-low ceiling
//	Stage 2: ascend to it on the best gas for the leg
//	Stage 3: stay until a move to the next shallower stop keeps every
//	         compartment within its interpolated M-value
//
// Each search is bounded (Options.MaxStopMinutes, Options.MaxStopCycles);
// reaching a bound ends planning with a tagged Status and ErrIncompletePlan.

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"github.com/katalvlaran/decoplan/toxicity"
	"go.uber.org/zap"
)

// stopOutcome is the result of one stop-length search.
type stopOutcome struct {
	state     tissue.State
	minutes   int
	converged bool
}

// Plan computes the ascent from b to the surface using the listed gases.
//
// A direct ascent is tried first: if CanSurface holds, the plan has no stops.
// Otherwise stops are placed at the rounded GF-low ceiling, never deeper than
// the depth the previous stop was shown to clear, so stop depths strictly
// decrease and never go shallower than s.LastStop. When the ceiling still
// rounds to the current stop after it has cleared into the last-stop zone,
// the final ascent starts from there (see ClearanceRule).
//
// On ErrStopLimit or ErrCycleLimit the returned Plan holds the stops computed
// so far and a matching Status. ErrNoBreathableGas aborts planning.
func (e *Engine) Plan(b Bottom, gases []gas.Gas, s Settings) (Plan, error) {
	if !(b.Depth >= 0) {
		return Plan{}, fmt.Errorf("%w: %v", ErrNegativeDepth, b.Depth)
	}
	if err := b.Gas.Validate(); err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if b.Gas.Circuit == gas.ClosedCircuit &&
		(b.Setpoint < toxicity.MinSetpoint || b.Setpoint > toxicity.MaxSetpoint) {
		return Plan{}, fmt.Errorf("%w: %v", toxicity.ErrSetpoint, b.Setpoint)
	}
	if err := s.Validate(); err != nil {
		return Plan{}, err
	}

	p := Plan{Status: Complete, State: b.State, GasUsed: make(map[string]float64)}
	var (
		pInit   = s.Altitude.InitialPressure()
		st      = b.State
		depth   = b.Depth
		current = b.Gas
		cleared = -1.0 // depth the last stop search proved reachable
		err     error
	)

	if e.canSurface(st, depth, current, s) {
		st, err = e.leg(&p, st, depth, 0, e.opts.AscentRate, current, pInit, b.Setpoint, s)
		if err != nil {
			return p, err
		}
		p.State = st

		return p, nil
	}

	for cycle := 0; ; cycle++ {
		if cycle >= e.opts.MaxStopCycles {
			p.Status = CycleLimitExceeded
			p.State = st
			e.log.Warn("deco plan incomplete",
				zap.Stringer("status", p.Status), zap.Int("cycles", cycle), zap.Float64("depth", depth))

			return p, fmt.Errorf("%w after %d stops", ErrCycleLimit, len(p.Stops))
		}

		// Stage 1: next stop.
		ceiling := e.Ceiling(st, s)
		if ceiling <= 0 {
			break
		}
		next := e.NextStopDepth(ceiling, s.LastStop)
		if next >= depth {
			switch {
			case cleared < 0:
				next = depth
			case cleared < s.LastStop.Depth():
				// The last stop cleared the zone above it; no shallower stop exists.
				e.log.Debug("last stop cleared", zap.Float64("depth", depth), zap.Float64("ceiling", ceiling))
				next = 0
			default:
				next = cleared
			}
		}
		if next <= 0 {
			break
		}
		if p.FirstStop == 0 {
			p.FirstStop = next
		}

		// Stage 2: ascend.
		if depth > next {
			current, err = e.BestGas((depth+next)/2, gases, current, s)
			if err != nil {
				p.State = st
				return p, err
			}
			st, err = e.leg(&p, st, depth, next, e.ascentRate(depth, next, s), current, pInit, b.Setpoint, s)
			if err != nil {
				return p, err
			}
			depth = next
		}

		// Stage 3: stop.
		current, err = e.BestGas(depth, gases, current, s)
		if err != nil {
			p.State = st
			return p, err
		}
		out, err := e.decompress(st, depth, current, gases, p.FirstStop, s)
		if err != nil {
			p.State = st
			return p, err
		}
		st = out.state
		if out.minutes > 0 {
			p.Stops = append(p.Stops, Stop{Depth: depth, Minutes: out.minutes, Gas: current})
			p.Ascent += time.Duration(out.minutes) * time.Minute
			var used float64
			if err = e.charge(&p.Exposure, &used, current, depth, float64(out.minutes), pInit, b.Setpoint, s.Rates.Deco); err != nil {
				p.State = st
				return p, err
			}
			p.GasUsed[current.Name] += used
			e.log.Debug("deco stop",
				zap.Float64("depth", depth), zap.Int("minutes", out.minutes), zap.String("gas", current.Name))
		}
		if !out.converged {
			p.Status = StopLimitExceeded
			p.State = st
			e.log.Warn("deco plan incomplete",
				zap.Stringer("status", p.Status), zap.Float64("depth", depth), zap.Int("minutes", out.minutes))

			return p, fmt.Errorf("%w at %.0f ft", ErrStopLimit, depth)
		}
		cleared = e.clearance(depth, s.LastStop)
	}

	if depth > 0 {
		current, err = e.BestGas(depth/2, gases, current, s)
		if err != nil {
			p.State = st
			return p, err
		}
		st, err = e.leg(&p, st, depth, 0, e.ascentRate(depth, 0, s), current, pInit, b.Setpoint, s)
		if err != nil {
			return p, err
		}
	}
	p.State = st

	return p, nil
}

// decompress searches the length of the stop at depth: one minute at a time,
// until an ascent to the next shallower stop stays within the M-values at the
// gradient factor interpolated for that depth.
func (e *Engine) decompress(st tissue.State, depth float64, g gas.Gas, gases []gas.Gas, firstStop float64, s Settings) (stopOutcome, error) {
	pInit := s.Altitude.InitialPressure()
	target := e.clearance(depth, s.LastStop)
	gf := GradientFactor(target, firstStop, s)

	up, err := e.BestGas((depth+target)/2, gases, g, s)
	if err != nil {
		return stopOutcome{state: st}, err
	}
	travel := (depth - target) / (e.ascentRate(depth, target, s) / 60)

	for t := 1; t <= e.opts.MaxStopMinutes; t++ {
		st = e.load(st, depth, depth, 60, g, pInit, false)
		trial := e.load(st, depth, target, travel, up, pInit, false)
		if e.withinLimits(trial, target+pInit, gf) {
			return stopOutcome{state: st, minutes: t, converged: true}, nil
		}
	}

	return stopOutcome{state: st, minutes: e.opts.MaxStopMinutes}, nil
}

// clearance returns the depth a stop at depth is tested against: one
// increment shallower, clamped at the surface. Under ClearToSurface anything
// above the last stop becomes the surface.
func (e *Engine) clearance(depth float64, last LastStop) float64 {
	next := math.Max(0, depth-e.opts.StopIncrement)
	if e.opts.Clearance == ClearToSurface && next < last.Depth() {
		return 0
	}

	return next
}

// ascentRate picks the final rate for the last leg and inside the last stop
// zone, and the deco rate elsewhere.
func (e *Engine) ascentRate(from, to float64, s Settings) float64 {
	if to <= 0 || from <= s.LastStop.Depth() {
		return e.opts.FinalAscentRate
	}

	return e.opts.DecoAscentRate
}

// leg ascends from one depth to another on g and charges it to p.
func (e *Engine) leg(p *Plan, st tissue.State, from, to, rate float64, g gas.Gas, pInit, setpoint float64, s Settings) (tissue.State, error) {
	seconds := math.Abs(from-to) / (rate / 60)
	if seconds <= 0 {
		return st, nil
	}
	st = e.load(st, from, to, seconds, g, pInit, false)
	var used float64
	if err := e.charge(&p.Exposure, &used, g, (from+to)/2, seconds/60, pInit, setpoint, s.Rates.Deco); err != nil {
		p.State = st
		return st, err
	}
	p.GasUsed[g.Name] += used
	p.Ascent += time.Duration(seconds * float64(time.Second))

	return st, nil
}
