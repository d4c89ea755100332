package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
)

// Run computes every dive of p in order with engine e.
//
// Dives are computed even after one of them ends with an incomplete ascent;
// the first such condition is returned, wrapping deco.ErrIncompletePlan, with
// the full Result. Any other error aborts the run.
func Run(e *deco.Engine, p Plan) (Result, error) {
	if len(p.Dives) == 0 {
		return Result{}, ErrNoDives
	}
	if err := p.Settings.Validate(); err != nil {
		return Result{}, err
	}

	pInit := p.Settings.Altitude.InitialPressure()
	st, err := tissue.NewState(pInit)
	if err != nil {
		return Result{}, err
	}

	res := Result{PlanID: p.ID, GasUsed: make(map[string]float64)}
	var incomplete error
	for i, d := range p.Dives {
		if i > 0 {
			if d.SurfaceInterval < 0 {
				return res, fmt.Errorf("dive %d: %w", i+1, ErrSurfaceInterval)
			}
			st, err = e.Load(st, 0, 0, d.SurfaceInterval, gas.Air(), pInit, true)
			if err != nil {
				return res, fmt.Errorf("dive %d: surface interval: %w", i+1, err)
			}
			res.Exposure = res.Exposure.Surface(d.SurfaceInterval.Minutes())
		}

		dr, err := runDive(e, p, d, st)
		if err != nil && !errors.Is(err, deco.ErrIncompletePlan) {
			return res, fmt.Errorf("dive %d: %w", i+1, err)
		}
		if err != nil && incomplete == nil {
			incomplete = fmt.Errorf("dive %d: %w", i+1, err)
		}

		st = dr.Deco.State
		res.Dives = append(res.Dives, dr)
		res.Exposure = res.Exposure.Plus(dr.Exposure)
		res.Runtime += dr.Runtime
		for name, v := range dr.GasUsed {
			res.GasUsed[name] += v
		}
	}

	return res, incomplete
}

// runDive loads the segments of d from st, then plans the ascent.
func runDive(e *deco.Engine, p Plan, d Dive, st tissue.State) (DiveResult, error) {
	if len(d.Segments) == 0 {
		return DiveResult{}, ErrNoSegments
	}

	s := p.Settings
	dr := DiveResult{GasUsed: make(map[string]float64)}
	prevDepth := 0.0
	transit := d.Segments[0].Gas
	for j, sg := range d.Segments {
		entered := sg.Depth
		sg.Depth = p.Water.Pressure(sg.Depth)

		r, err := e.LoadSegment(st, prevDepth, sg, transit, s)
		if err != nil {
			return dr, fmt.Errorf("segment %d: %w", j+1, err)
		}
		dr.Segments = append(dr.Segments, r)
		dr.Exposure = dr.Exposure.Plus(r.Exposure)
		if r.TransitGasUsed > 0 {
			dr.GasUsed[transit.Name] += r.TransitGasUsed
		}
		dr.GasUsed[sg.Gas.Name] += r.GasUsed
		dr.MaxDepth = math.Max(dr.MaxDepth, entered)
		dr.BottomTime += max(sg.Duration, r.Transit)
		dr.Alarms = append(dr.Alarms, alarms(j, entered, sg.Gas, s.Alarms)...)

		st = r.State
		prevDepth = sg.Depth
		transit = sg.Gas
	}

	last := d.Segments[len(d.Segments)-1]
	ndl, err := e.NDL(st, prevDepth, last.Gas, s)
	if err != nil {
		return dr, err
	}
	dr.NDL = ndl

	plan, err := e.Plan(deco.Bottom{State: st, Depth: prevDepth, Gas: last.Gas, Setpoint: last.Setpoint}, p.Gases, s)
	dr.Deco = plan
	if err != nil && !errors.Is(err, deco.ErrIncompletePlan) {
		return dr, err
	}
	dr.Incomplete = plan.Status != deco.Complete
	dr.Exposure = dr.Exposure.Plus(plan.Exposure)
	for name, v := range plan.GasUsed {
		dr.GasUsed[name] += v
	}
	dr.Runtime = dr.BottomTime + plan.Ascent

	return dr, err
}

// alarms checks one segment against the END and WOB thresholds.
func alarms(segment int, depth float64, g gas.Gas, a deco.AlarmSettings) []Alarm {
	var out []Alarm
	if a.ENDEnabled {
		if end := g.END(depth, gas.Imperial, a.OxygenNarcotic); end > a.ENDThreshold {
			out = append(out, Alarm{Kind: ENDAlarm, Segment: segment, Gas: g.Name, Depth: depth, Value: end, Threshold: a.ENDThreshold})
		}
	}
	if a.WOBEnabled {
		if limit, ok := g.WOBAlarmDepth(a.WOBThreshold, gas.Imperial); ok && depth > limit {
			out = append(out, Alarm{Kind: WOBAlarm, Segment: segment, Gas: g.Name, Depth: depth, Value: g.WOB(depth, gas.Imperial), Threshold: a.WOBThreshold})
		}
	}

	return out
}
