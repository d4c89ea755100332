package deco_test

import (
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"github.com/katalvlaran/decoplan/toxicity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pInit = 33.0

// fresh returns a sea-level saturated state.
func fresh(t testing.TB) tissue.State {
	t.Helper()
	st, err := tissue.NewState(pInit)
	require.NoError(t, err)

	return st
}

// atDepth loads a fresh state at a constant depth for minutes on g.
func atDepth(t testing.TB, e *deco.Engine, depth float64, minutes int, g gas.Gas) tissue.State {
	t.Helper()
	st, err := e.Load(fresh(t), depth, depth, time.Duration(minutes)*time.Minute, g, pInit, false)
	require.NoError(t, err)

	return st
}

func mustGas(t testing.TB, o2, he float64, opts ...gas.Option) gas.Gas {
	t.Helper()
	g, err := gas.New(o2, he, opts...)
	require.NoError(t, err)

	return g
}

//----------------------------------------------------------------------------//
// Settings and Options
//----------------------------------------------------------------------------//

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, deco.DefaultSettings().Validate())

	cases := []struct {
		name   string
		mutate func(*deco.Settings)
		err    error
	}{
		{"GFLowTooSmall", func(s *deco.Settings) { s.GFLow = 10 }, deco.ErrGradientFactor},
		{"GFHighTooLarge", func(s *deco.Settings) { s.GFHigh = 100 }, deco.ErrGradientFactor},
		{"GFInverted", func(s *deco.Settings) { s.GFLow, s.GFHigh = 80, 40 }, deco.ErrGradientFactor},
		{"UnknownAltitude", func(s *deco.Settings) { s.Altitude = 42 }, deco.ErrSettings},
		{"UnknownLastStop", func(s *deco.Settings) { s.LastStop = 15 }, deco.ErrSettings},
		{"DiveRMVLow", func(s *deco.Settings) { s.Rates.Dive = 0.1 }, deco.ErrConsumptionRate},
		{"DecoRMVHigh", func(s *deco.Settings) { s.Rates.Deco = 5 }, deco.ErrConsumptionRate},
		{"AlarmThreshold", func(s *deco.Settings) { s.Alarms.ENDThreshold = 250 }, deco.ErrSettings},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := deco.DefaultSettings()
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tc.err)
		})
	}
}

func TestAltitude(t *testing.T) {
	cases := []struct {
		feet float64
		want deco.Altitude
		p    float64
	}{
		{-20, deco.SeaLevel, 33.0},
		{3000, deco.SeaLevel, 33.0},
		{3001, deco.Altitude5000, 28.8},
		{6000, deco.Altitude7000, 26.2},
		{12500, deco.Altitude13000, 19.6},
		{20000, deco.AltitudeAbove13000, 17.8},
	}
	for _, tc := range cases {
		a := deco.AltitudeForFeet(tc.feet)
		assert.Equal(t, tc.want, a, "feet=%v", tc.feet)
		assert.Equal(t, tc.p, a.InitialPressure())
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := map[string]func(*deco.Options){
		"ZeroStopMinutes": func(o *deco.Options) { o.MaxStopMinutes = 0 },
		"ZeroCycles":      func(o *deco.Options) { o.MaxStopCycles = 0 },
		"ZeroNDL":         func(o *deco.Options) { o.MaxNDLMinutes = 0 },
		"ZeroAscent":      func(o *deco.Options) { o.FinalAscentRate = 0 },
		"ZeroIncrement":   func(o *deco.Options) { o.StopIncrement = 0 },
		"PO2Window":       func(o *deco.Options) { o.MaxPO2 = 0.1 },
		"ClearanceRule":   func(o *deco.Options) { o.Clearance = deco.ClearanceRule(7) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := deco.DefaultOptions()
			mutate(&o)
			_, err := deco.New(o)
			assert.ErrorIs(t, err, deco.ErrOptions)
		})
	}
}

//----------------------------------------------------------------------------//
// Load
//----------------------------------------------------------------------------//

// TestLoad_ZeroDuration checks that loading for no time is a no-op.
func TestLoad_ZeroDuration(t *testing.T) {
	e := deco.Default()
	st := atDepth(t, e, 80, 15, gas.Air())

	out, err := e.Load(st, 80, 0, 0, gas.Air(), pInit, false)
	require.NoError(t, err)
	assert.True(t, st.Equal(out))
}

// TestLoad_Monotonic checks on-gassing never lowers a tension while ambient
// pressure stays above it.
func TestLoad_Monotonic(t *testing.T) {
	e := deco.Default()
	tx := mustGas(t, 0.18, 0.45)
	st := fresh(t)

	for minute := 0; minute < 60; minute++ {
		next, err := e.Load(st, 150, 150, time.Minute, tx, pInit, false)
		require.NoError(t, err)
		for i := 0; i < tissue.Compartments; i++ {
			assert.GreaterOrEqual(t, next.He[i], st.He[i], "He compartment %d minute %d", i, minute)
			assert.GreaterOrEqual(t, next.Total(i), st.Total(i), "total compartment %d minute %d", i, minute)
		}
		st = next
	}
}

// TestLoad_Saturation checks tensions approach the inspired pressure.
func TestLoad_Saturation(t *testing.T) {
	e := deco.Default()
	st := atDepth(t, e, 66, 5*24*60, gas.Air())
	for i := 0; i < tissue.Compartments; i++ {
		assert.InDelta(t, (1-gas.O2InAir)*(66+pInit), st.N2[i], 1.0, "compartment %d", i)
	}
}

// TestLoad_SurfaceInterval checks off-gassing on the surface, using surface
// half-times and ignoring the depth arguments.
func TestLoad_SurfaceInterval(t *testing.T) {
	e := deco.Default()
	loaded := atDepth(t, e, 100, 30, gas.Air())

	a, err := e.Load(loaded, 0, 0, 2*time.Hour, gas.Air(), pInit, true)
	require.NoError(t, err)
	b, err := e.Load(loaded, 100, 100, 2*time.Hour, mustGas(t, 0.5, 0), pInit, true)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "surface intervals breathe air at the surface")

	for i := 0; i < tissue.Compartments; i++ {
		assert.Less(t, a.N2[i], loaded.N2[i], "compartment %d must off-gas", i)
	}

	// Compartment 0 off-gasses slower on the surface (86.6 min) than in water (5.77 min).
	water, err := e.Load(loaded, 0, 0, 2*time.Hour, gas.Air(), pInit, false)
	require.NoError(t, err)
	assert.Greater(t, a.N2[0], water.N2[0])
}

// TestLoad_Transit checks a descent loads less than the same time at the bottom.
func TestLoad_Transit(t *testing.T) {
	e := deco.Default()
	desc, err := e.Load(fresh(t), 0, 100, 100*time.Second, gas.Air(), pInit, false)
	require.NoError(t, err)
	bottom, err := e.Load(fresh(t), 100, 100, 100*time.Second, gas.Air(), pInit, false)
	require.NoError(t, err)

	assert.Greater(t, desc.N2[0], fresh(t).N2[0])
	assert.Less(t, desc.N2[0], bottom.N2[0])
}

func TestLoad_Invalid(t *testing.T) {
	e := deco.Default()
	st := fresh(t)

	_, err := e.Load(st, -1, 0, time.Minute, gas.Air(), pInit, false)
	assert.ErrorIs(t, err, deco.ErrNegativeDepth)
	_, err = e.Load(st, 0, 10, -time.Minute, gas.Air(), pInit, false)
	assert.ErrorIs(t, err, deco.ErrNegativeDuration)
	_, err = e.Load(st, 0, 10, time.Minute, gas.Gas{}, pInit, false)
	assert.ErrorIs(t, err, deco.ErrInvalidGas)
	assert.ErrorIs(t, err, gas.ErrFraction)
}

//----------------------------------------------------------------------------//
// LoadSegment
//----------------------------------------------------------------------------//

func TestLoadSegment_DescentAndBottom(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	sg := deco.Segment{
		Depth:       100,
		Duration:    20 * time.Minute,
		Gas:         gas.Air(),
		AscentRate:  30,
		DescentRate: 60,
	}

	res, err := e.LoadSegment(fresh(t), 0, sg, gas.Air(), s)
	require.NoError(t, err)
	require.True(t, res.HasTransit())
	assert.Equal(t, 100*time.Second, res.Transit)

	transitMin := 100.0 / 60
	bottomMin := 20 - transitMin
	wantTransit := 0.9 * (50 + pInit) / pInit * transitMin
	wantBottom := 0.9 * (100 + pInit) / pInit * bottomMin
	assert.InDelta(t, wantTransit, res.TransitGasUsed, 1e-9)
	assert.InDelta(t, wantBottom, res.GasUsed, 1e-9)
	assert.InDelta(t, wantTransit+wantBottom, res.TotalGasUsed(), 1e-9)

	po2Transit := 0.21 * (50 + pInit) / 33
	po2Bottom := 0.21 * (100 + pInit) / 33
	want := toxicity.Exposure{}.Add(po2Transit, transitMin).Add(po2Bottom, bottomMin)
	assert.InDelta(t, want.CNS, res.Exposure.CNS, 1e-9)
	assert.InDelta(t, want.OTU, res.Exposure.OTU, 1e-9)

	direct, err := e.Load(fresh(t), 0, 100, 100*time.Second, gas.Air(), pInit, false)
	require.NoError(t, err)
	direct, err = e.Load(direct, 100, 100, 1100*time.Second, gas.Air(), pInit, false)
	require.NoError(t, err)
	for i := 0; i < tissue.Compartments; i++ {
		assert.InDelta(t, direct.N2[i], res.State.N2[i], 1e-9)
	}
}

// TestLoadSegment_NoTransit covers constant depth and a non-positive rate.
func TestLoadSegment_NoTransit(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	st := atDepth(t, e, 60, 10, gas.Air())

	flat, err := e.LoadSegment(st, 60, deco.Segment{Depth: 60, Duration: 10 * time.Minute, Gas: gas.Air(), AscentRate: 30, DescentRate: 60}, gas.Air(), s)
	require.NoError(t, err)
	assert.False(t, flat.HasTransit())

	noRate, err := e.LoadSegment(st, 60, deco.Segment{Depth: 30, Duration: 10 * time.Minute, Gas: gas.Air()}, gas.Air(), s)
	require.NoError(t, err)
	assert.False(t, noRate.HasTransit(), "zero ascent rate skips transit")
	assert.InDelta(t, 0.9*(30+pInit)/pInit*10, noRate.GasUsed, 1e-9)
	assert.Zero(t, noRate.TransitGasUsed)
}

// TestLoadSegment_TransitLongerThanSegment clamps time at depth to zero.
func TestLoadSegment_TransitLongerThanSegment(t *testing.T) {
	e := deco.Default()
	res, err := e.LoadSegment(fresh(t), 0, deco.Segment{Depth: 120, Duration: time.Minute, Gas: gas.Air(), DescentRate: 60}, gas.Air(), deco.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, res.Transit)

	only, err := e.Load(fresh(t), 0, 120, 2*time.Minute, gas.Air(), pInit, false)
	require.NoError(t, err)
	assert.True(t, only.Equal(res.State))
}

func TestLoadSegment_ClosedCircuit(t *testing.T) {
	e := deco.Default()
	dil := mustGas(t, 0.21, 0, gas.WithClosedCircuit())
	sg := deco.Segment{Depth: 99, Duration: 30 * time.Minute, Gas: dil, AscentRate: 30, DescentRate: 60, Setpoint: 1.3}

	res, err := e.LoadSegment(fresh(t), 99, sg, dil, deco.DefaultSettings())
	require.NoError(t, err)
	assert.InDelta(t, toxicity.CNSRate(1.3)*30, res.Exposure.CNS, 1e-9)

	sg.Setpoint = 0
	_, err = e.LoadSegment(fresh(t), 99, sg, dil, deco.DefaultSettings())
	assert.ErrorIs(t, err, toxicity.ErrSetpoint)
}

func TestLoadSegment_Invalid(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	ok := deco.Segment{Depth: 30, Duration: time.Minute, Gas: gas.Air()}

	_, err := e.LoadSegment(fresh(t), -5, ok, gas.Air(), s)
	assert.ErrorIs(t, err, deco.ErrNegativeDepth)

	bad := ok
	bad.Duration = -time.Second
	_, err = e.LoadSegment(fresh(t), 0, bad, gas.Air(), s)
	assert.ErrorIs(t, err, deco.ErrNegativeDuration)

	_, err = e.LoadSegment(fresh(t), 0, ok, gas.Gas{}, s)
	assert.ErrorIs(t, err, deco.ErrInvalidGas)

	s.GFLow = 5
	_, err = e.LoadSegment(fresh(t), 0, ok, gas.Air(), s)
	assert.ErrorIs(t, err, deco.ErrGradientFactor)
}

//----------------------------------------------------------------------------//
// M-value, gradient factors, ceiling
//----------------------------------------------------------------------------//

func TestMValue(t *testing.T) {
	c, err := tissue.At(0)
	require.NoError(t, err)

	assert.InDelta(t, 33+41+33*(1/0.505-1), deco.MValue(c, 30, 0, 33, 1), 1e-9)
	assert.InDelta(t, 33.0, deco.MValue(c, 30, 0, 33, 0), 1e-12, "GF 0 tolerates no supersaturation")

	degenerate := c
	degenerate.N2B = 0
	assert.Equal(t, math.MaxFloat64, deco.MValue(degenerate, 30, 0, 33, 1))
}

func TestGradientFactor(t *testing.T) {
	s := deco.DefaultSettings()
	cases := []struct {
		name             string
		depth, firstStop float64
		want             float64
	}{
		{"NoFirstStop", 50, 0, 0.85},
		{"AtFirstStop", 60, 60, 0.30},
		{"BelowFirstStop", 80, 60, 0.30},
		{"Surface", 0, 60, 0.85},
		{"Halfway", 30, 60, 0.575},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, deco.GradientFactor(tc.depth, tc.firstStop, s), 1e-12)
		})
	}
}

func TestCeiling(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	assert.Zero(t, e.Ceiling(fresh(t), s), "saturated on air at the surface")

	st := atDepth(t, e, 100, 20, gas.Air())
	c := e.Ceiling(st, s)
	assert.Greater(t, c, 25.0)
	assert.Less(t, c, 45.0)

	s.GFLow = 60
	assert.Less(t, e.Ceiling(st, s), c, "a higher GF-low allows a shallower ceiling")
}

func TestNextStopDepth(t *testing.T) {
	e := deco.Default()
	cases := []struct {
		ceiling float64
		last    deco.LastStop
		want    float64
	}{
		{0, deco.LastStop20, 0},
		{-3, deco.LastStop10, 0},
		{5, deco.LastStop20, 20},
		{20, deco.LastStop20, 20},
		{21, deco.LastStop10, 30},
		{33.2, deco.LastStop20, 40},
		{40, deco.LastStop20, 40},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.NextStopDepth(tc.ceiling, tc.last), "ceiling=%v last=%v", tc.ceiling, tc.last)
	}
}

//----------------------------------------------------------------------------//
// NDL
//----------------------------------------------------------------------------//

// TestNDL_Boundary checks the limit is exact to the minute.
func TestNDL_Boundary(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()

	for _, depth := range []float64{60, 80, 100, 130} {
		res, err := e.NDL(fresh(t), depth, gas.Air(), s)
		require.NoError(t, err)
		require.False(t, res.Exceeded)
		require.False(t, res.Capped)

		at := atDepth(t, e, depth, res.Minutes, gas.Air())
		ok, err := e.CanSurface(at, depth, gas.Air(), s)
		require.NoError(t, err)
		assert.True(t, ok, "depth %v: within limits at NDL=%d", depth, res.Minutes)

		over := atDepth(t, e, depth, res.Minutes+1, gas.Air())
		ok, err = e.CanSurface(over, depth, gas.Air(), s)
		require.NoError(t, err)
		assert.False(t, ok, "depth %v: exceeded at NDL+1", depth)
	}
}

// TestNDL_DecreasesWithDepth checks deeper dives have shorter limits.
func TestNDL_DecreasesWithDepth(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	prev := math.MaxInt
	for _, depth := range []float64{50, 70, 90, 110, 130} {
		res, err := e.NDL(fresh(t), depth, gas.Air(), s)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Minutes, prev, "depth %v", depth)
		prev = res.Minutes
	}
}

func TestNDL_Capped(t *testing.T) {
	e := deco.Default()
	res, err := e.NDL(fresh(t), 10, gas.Air(), deco.DefaultSettings())
	require.NoError(t, err)
	assert.True(t, res.Capped)
	assert.Equal(t, e.Options().MaxNDLMinutes, res.Minutes)
}

func TestNDL_Invalid(t *testing.T) {
	e := deco.Default()
	_, err := e.NDL(fresh(t), -1, gas.Air(), deco.DefaultSettings())
	assert.ErrorIs(t, err, deco.ErrNegativeDepth)
	_, err = e.NDL(fresh(t), 60, gas.Gas{}, deco.DefaultSettings())
	assert.ErrorIs(t, err, deco.ErrInvalidGas)
}

//----------------------------------------------------------------------------//
// Gas selection
//----------------------------------------------------------------------------//

func TestBestGas(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	nx50 := mustGas(t, 0.50, 0, gas.WithMaxPO2(1.6))
	tx := mustGas(t, 0.18, 0.45)
	gases := []gas.Gas{gas.Air(), tx, nx50, gas.Oxygen()}

	cases := []struct {
		depth float64
		want  string
	}{
		{200, "TX 18/45"},
		{100, "AIR"},
		{20, "NX 50"},
		{10, "OXYGEN"},
	}
	for _, tc := range cases {
		g, err := e.BestGas(tc.depth, gases, tx, s)
		require.NoError(t, err)
		assert.Equal(t, tc.want, g.Name, "depth %v", tc.depth)
	}
}

func TestBestGas_TieBreakAndDisabled(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()
	nx32 := mustGas(t, 0.32, 0)
	tx32 := mustGas(t, 0.32, 0.10)
	nx80 := mustGas(t, 0.80, 0, gas.WithMaxPO2(1.6), gas.WithEnabled(false))

	g, err := e.BestGas(30, []gas.Gas{tx32, nx32, nx80}, gas.Air(), s)
	require.NoError(t, err)
	assert.Equal(t, "NX 32", g.Name, "equal O2 prefers less helium; disabled gases are ignored")
}

// TestBestGas_Fallback keeps the current gas, or fails when it is unusable.
func TestBestGas_Fallback(t *testing.T) {
	e := deco.Default()
	s := deco.DefaultSettings()

	g, err := e.BestGas(50, nil, gas.Air(), s)
	require.NoError(t, err)
	assert.Equal(t, "AIR", g.Name)

	hypoxic := mustGas(t, 0.10, 0.70)
	_, err = e.BestGas(0, []gas.Gas{hypoxic}, hypoxic, s)
	assert.ErrorIs(t, err, deco.ErrNoBreathableGas)

	disabled := mustGas(t, 0.32, 0, gas.WithEnabled(false))
	_, err = e.BestGas(30, nil, disabled, s)
	assert.ErrorIs(t, err, deco.ErrNoBreathableGas, "a disabled current gas is not kept")
}
