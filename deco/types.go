package deco

import (
	"fmt"
	"time"

	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"github.com/katalvlaran/decoplan/toxicity"
	"go.uber.org/zap"
)

// ClearanceRule selects the target a stop is tested against.
type ClearanceRule int

const (
	// ClearNextIncrement ends a stop once an ascent of one StopIncrement
	// (clamped at the surface) stays within the gradient factor interpolated
	// for that depth. A stop that clears into the last-stop zone ends the
	// staged ascent.
	ClearNextIncrement ClearanceRule = iota

	// ClearToSurface treats any candidate shallower than the last stop as the
	// surface, so the last stop lasts until a direct ascent passes at GF-high.
	ClearToSurface
)

// String implements fmt.Stringer.
func (r ClearanceRule) String() string {
	switch r {
	case ClearNextIncrement:
		return "next increment"
	case ClearToSurface:
		return "to surface"
	default:
		return fmt.Sprintf("ClearanceRule(%d)", int(r))
	}
}

// Options tune the engine's search bounds and ascent profile.
//
// Fields:
//   - MaxStopMinutes  — longest single stop searched before giving up (240).
//   - MaxStopCycles   — most stops planned before giving up (50).
//   - MaxNDLMinutes   — longest bottom time tried by NDL (300).
//   - AscentRate      — direct-ascent rate used by NDL and CanSurface (ft/min).
//   - DecoAscentRate  — rate between stops deeper than the last stop.
//   - FinalAscentRate — rate from the last stop zone to the surface.
//   - StopIncrement   — spacing of standard stop depths (10 ft).
//   - Clearance       — which depth a stop must clear before the ascent resumes.
//   - MaxPO2, MinPO2  — global PO2 window for decompression gas selection.
//   - Logger          — receives Debug/Warn events; nil disables logging.
type Options struct {
	MaxStopMinutes  int
	MaxStopCycles   int
	MaxNDLMinutes   int
	AscentRate      float64
	DecoAscentRate  float64
	FinalAscentRate float64
	StopIncrement   float64
	Clearance       ClearanceRule
	MaxPO2          float64
	MinPO2          float64
	Logger          *zap.Logger
}

// DefaultOptions returns the reference bounds and rates.
func DefaultOptions() Options {
	return Options{
		MaxStopMinutes:  240,
		MaxStopCycles:   50,
		MaxNDLMinutes:   300,
		AscentRate:      DefaultAscentRate,
		DecoAscentRate:  30,
		FinalAscentRate: 10,
		StopIncrement:   10,
		Clearance:       ClearNextIncrement,
		MaxPO2:          1.6,
		MinPO2:          gas.MinSafePO2,
	}
}

func (o Options) validate() error {
	if o.MaxStopMinutes <= 0 || o.MaxStopCycles <= 0 || o.MaxNDLMinutes <= 0 {
		return fmt.Errorf("%w: search bounds must be positive", ErrOptions)
	}
	if !(o.AscentRate > 0) || !(o.DecoAscentRate > 0) || !(o.FinalAscentRate > 0) {
		return fmt.Errorf("%w: ascent rates must be positive", ErrOptions)
	}
	if !(o.StopIncrement > 0) {
		return fmt.Errorf("%w: stop increment must be positive", ErrOptions)
	}
	if o.Clearance != ClearNextIncrement && o.Clearance != ClearToSurface {
		return fmt.Errorf("%w: %v", ErrOptions, o.Clearance)
	}
	if !(o.MinPO2 > 0) || o.MaxPO2 < o.MinPO2 {
		return fmt.Errorf("%w: PO2 window %v..%v", ErrOptions, o.MinPO2, o.MaxPO2)
	}

	return nil
}

// Rates suggested for new segments (ft/min).
const (
	DefaultDescentRate = 60.0
	DefaultAscentRate  = 30.0
)

// Segment is one leg of a dive: travel from the previous depth to Depth, then
// stay there for the rest of Duration.
type Segment struct {
	Depth       float64
	Duration    time.Duration
	Gas         gas.Gas
	AscentRate  float64
	DescentRate float64
	Setpoint    float64 // closed circuit only
}

// Validate checks depth, duration, gas and (for closed circuit) setpoint.
func (sg Segment) Validate() error {
	if !(sg.Depth >= 0) {
		return fmt.Errorf("%w: %v", ErrNegativeDepth, sg.Depth)
	}
	if sg.Duration < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDuration, sg.Duration)
	}
	if err := sg.Gas.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if sg.Gas.Circuit == gas.ClosedCircuit &&
		(sg.Setpoint < toxicity.MinSetpoint || sg.Setpoint > toxicity.MaxSetpoint) {
		return fmt.Errorf("%w: %v", toxicity.ErrSetpoint, sg.Setpoint)
	}

	return nil
}

// SegmentResult is the outcome of loading one Segment.
//
// Gas use is split by phase because travel is breathed on the transit gas:
// GasUsed is the time at depth on the segment gas, TransitGasUsed the travel.
type SegmentResult struct {
	State          tissue.State
	Exposure       toxicity.Exposure
	GasUsed        float64
	TransitGasUsed float64
	Transit        time.Duration // zero when the depth did not change
}

// TotalGasUsed returns the volume of both phases.
func (r SegmentResult) TotalGasUsed() float64 { return r.GasUsed + r.TransitGasUsed }

// HasTransit reports whether the segment included travel between depths.
func (r SegmentResult) HasTransit() bool { return r.Transit > 0 }

// NDLResult is the outcome of the no-decompression search.
type NDLResult struct {
	Minutes  int
	Exceeded bool // limits already broken with no further bottom time
	Capped   bool // MaxNDLMinutes reached without breaking limits
}

// Stop is one decompression stop.
type Stop struct {
	Depth   float64
	Minutes int
	Gas     gas.Gas
}

// Status tags how a Plan ended.
type Status int

const (
	Complete Status = iota
	StopLimitExceeded
	CycleLimitExceeded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Complete:
		return "complete"
	case StopLimitExceeded:
		return "stop time limit exceeded"
	case CycleLimitExceeded:
		return "stop cycle limit exceeded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Bottom is where the ascent starts.
type Bottom struct {
	State    tissue.State
	Depth    float64
	Gas      gas.Gas
	Setpoint float64 // used when a closed-circuit gas is breathed
}

// Plan is a staged ascent from a Bottom to the surface.
//
// Fields:
//   - Stops     — deepest first, strictly shallower each time.
//   - FirstStop — depth of the first stop, 0 for a direct ascent.
//   - Status    — Complete, or which search bound cut the plan short.
//   - State     — tissues on arrival at the surface (or where planning stopped).
//   - Ascent    — total time from leaving the bottom to surfacing.
//   - Exposure  — oxygen dose accumulated during the ascent.
//   - GasUsed   — volume per gas name at the deco consumption rate.
type Plan struct {
	Stops     []Stop
	FirstStop float64
	Status    Status
	State     tissue.State
	Ascent    time.Duration
	Exposure  toxicity.Exposure
	GasUsed   map[string]float64
}

// DecoMinutes returns the summed stop time.
func (p Plan) DecoMinutes() int {
	total := 0
	for _, s := range p.Stops {
		total += s.Minutes
	}

	return total
}
