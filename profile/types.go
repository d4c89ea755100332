package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/toxicity"
)

// Water selects the density used to convert depth to pressure.
type Water int

const (
	SaltWater Water = iota
	FreshWater
)

// freshRatio converts fresh-water feet to seawater-equivalent feet.
const freshRatio = 33.0 / 34.0

// String implements fmt.Stringer.
func (w Water) String() string {
	if w == FreshWater {
		return "fresh"
	}

	return "salt"
}

// Pressure returns the seawater-equivalent depth (fsw) of depth feet of w.
func (w Water) Pressure(depth float64) float64 {
	if w == FreshWater {
		return depth * freshRatio
	}

	return depth
}

// Dive is one immersion.
type Dive struct {
	SurfaceInterval time.Duration // time on the surface before this dive; ignored for the first
	Segments        []deco.Segment
}

// Plan is a series of dives planned together.
type Plan struct {
	ID       uuid.UUID
	Title    string
	Water    Water
	Settings deco.Settings
	Gases    []gas.Gas
	Dives    []Dive
}

// New returns an empty plan with a fresh ID and default settings.
func New(title string) Plan {
	return Plan{
		ID:       uuid.New(),
		Title:    title,
		Settings: deco.DefaultSettings(),
	}
}

// AlarmKind identifies which limit an Alarm reports.
type AlarmKind int

const (
	ENDAlarm AlarmKind = iota
	WOBAlarm
)

// String implements fmt.Stringer.
func (k AlarmKind) String() string {
	if k == WOBAlarm {
		return "WOB"
	}

	return "END"
}

// Alarm is raised when a segment exceeds an END or work-of-breathing threshold.
type Alarm struct {
	Kind      AlarmKind
	Segment   int
	Gas       string
	Depth     float64 // segment depth
	Value     float64 // END or WOB at that depth
	Threshold float64
}

// DiveResult summarises one dive.
//
// Fields:
//   - Segments   — per-segment loading results, in order.
//   - MaxDepth   — deepest segment depth (as entered).
//   - BottomTime — summed segment durations.
//   - NDL        — no-decompression limit at the last segment.
//   - Deco       — ascent plan from the last segment.
//   - Incomplete — set when Deco stopped at a search bound.
//   - Runtime    — BottomTime plus the ascent.
//   - Exposure   — oxygen dose of this dive alone.
//   - GasUsed    — volume per gas name, segments and ascent.
//   - Alarms     — END / WOB alarms raised by the segments.
type DiveResult struct {
	Segments   []deco.SegmentResult
	MaxDepth   float64
	BottomTime time.Duration
	NDL        deco.NDLResult
	Deco       deco.Plan
	Incomplete bool
	Runtime    time.Duration
	Exposure   toxicity.Exposure
	GasUsed    map[string]float64
	Alarms     []Alarm
}

// Result summarises a whole plan.
type Result struct {
	PlanID   uuid.UUID
	Dives    []DiveResult
	Exposure toxicity.Exposure // after the last dive, with surface decay applied
	GasUsed  map[string]float64
	Runtime  time.Duration
}
