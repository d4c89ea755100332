package deco

import (
	"fmt"
	"math"
)

// Altitude is a band of dive-site altitudes sharing one initial ambient pressure.
type Altitude int

const (
	SeaLevel       Altitude = iota // 0-3000 ft
	Altitude5000                   // 3001-5000 ft
	Altitude7000                   // 5001-7000 ft
	Altitude9000                   // 7001-9000 ft
	Altitude11000                  // 9001-11000 ft
	Altitude13000                  // 11001-13000 ft
	AltitudeAbove13000             // above 13000 ft
)

type altitudeBand struct {
	maxFeet  float64
	pressure float64
	label    string
}

var altitudeBands = [...]altitudeBand{
	SeaLevel:           {3000, 33.0, "sea level (0-3000 ft)"},
	Altitude5000:       {5000, 28.8, "3001-5000 ft"},
	Altitude7000:       {7000, 26.2, "5001-7000 ft"},
	Altitude9000:       {9000, 23.8, "7001-9000 ft"},
	Altitude11000:      {11000, 21.6, "9001-11000 ft"},
	Altitude13000:      {13000, 19.6, "11001-13000 ft"},
	AltitudeAbove13000: {math.Inf(1), 17.8, ">13000 ft"},
}

// Valid reports whether a is one of the defined bands.
func (a Altitude) Valid() bool {
	return a >= SeaLevel && int(a) < len(altitudeBands)
}

// InitialPressure returns the surface ambient pressure of the band, in fsw.
func (a Altitude) InitialPressure() float64 {
	if !a.Valid() {
		return altitudeBands[SeaLevel].pressure
	}

	return altitudeBands[a].pressure
}

// String implements fmt.Stringer.
func (a Altitude) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Altitude(%d)", int(a))
	}

	return altitudeBands[a].label
}

// AltitudeForFeet returns the band containing a site altitude in feet.
// Altitudes below sea level map to SeaLevel.
func AltitudeForFeet(feet float64) Altitude {
	for i, b := range altitudeBands {
		if math.Round(feet) <= b.maxFeet {
			return Altitude(i)
		}
	}

	return AltitudeAbove13000
}

// LastStop is the depth (ft) of the shallowest decompression stop.
type LastStop int

const (
	LastStop10 LastStop = 10
	LastStop20 LastStop = 20
)

// Depth returns the stop depth in fsw.
func (l LastStop) Depth() float64 { return float64(l) }

// Valid reports whether l is one of the supported options.
func (l LastStop) Valid() bool { return l == LastStop10 || l == LastStop20 }

// Bounds and defaults for Settings.
const (
	MinGF         = 15
	MaxGF         = 95
	DefaultGFLow  = 30
	DefaultGFHigh = 85

	MinRMV         = 0.3
	MaxRMV         = 4.0
	DefaultDiveRMV = 0.9
	DefaultDecoRMV = 0.7

	MinAlarmThreshold     = 100.0
	MaxAlarmThreshold     = 200.0
	DefaultAlarmThreshold = 100.0
)

// SurfaceRates are surface-equivalent breathing rates (cuft/min) for the
// working and decompression phases.
type SurfaceRates struct {
	Dive float64
	Deco float64
}

// AlarmSettings configure END and work-of-breathing warnings. They do not
// affect the decompression calculation.
type AlarmSettings struct {
	ENDEnabled     bool
	ENDThreshold   float64
	WOBEnabled     bool
	WOBThreshold   float64
	OxygenNarcotic bool
}

// Settings is a read-only snapshot of the user's planning preferences.
//
// Fields:
//   - GFLow, GFHigh — gradient factors in percent, MinGF ≤ GFLow ≤ GFHigh ≤ MaxGF.
//   - Altitude      — site altitude band, fixes the initial ambient pressure.
//   - LastStop      — shallowest stop depth.
//   - Rates         — surface consumption rates.
//   - Alarms        — END/WOB warning thresholds.
type Settings struct {
	GFLow    int
	GFHigh   int
	Altitude Altitude
	LastStop LastStop
	Rates    SurfaceRates
	Alarms   AlarmSettings
}

// DefaultSettings returns GF 30/85 at sea level with a 20 ft last stop.
func DefaultSettings() Settings {
	return Settings{
		GFLow:    DefaultGFLow,
		GFHigh:   DefaultGFHigh,
		Altitude: SeaLevel,
		LastStop: LastStop20,
		Rates:    SurfaceRates{Dive: DefaultDiveRMV, Deco: DefaultDecoRMV},
		Alarms: AlarmSettings{
			ENDThreshold: DefaultAlarmThreshold,
			WOBThreshold: DefaultAlarmThreshold,
		},
	}
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	if s.GFLow < MinGF || s.GFHigh > MaxGF || s.GFLow > s.GFHigh {
		return fmt.Errorf("%w: %d/%d", ErrGradientFactor, s.GFLow, s.GFHigh)
	}
	if !s.Altitude.Valid() {
		return fmt.Errorf("%w: altitude %d", ErrSettings, int(s.Altitude))
	}
	if !s.LastStop.Valid() {
		return fmt.Errorf("%w: last stop %d", ErrSettings, int(s.LastStop))
	}
	for _, r := range []float64{s.Rates.Dive, s.Rates.Deco} {
		if !(r >= MinRMV && r <= MaxRMV) {
			return fmt.Errorf("%w: %v", ErrConsumptionRate, r)
		}
	}
	for _, th := range []float64{s.Alarms.ENDThreshold, s.Alarms.WOBThreshold} {
		if !(th >= MinAlarmThreshold && th <= MaxAlarmThreshold) {
			return fmt.Errorf("%w: alarm threshold %v", ErrSettings, th)
		}
	}

	return nil
}

func (s Settings) gfLow() float64  { return float64(s.GFLow) / 100 }
func (s Settings) gfHigh() float64 { return float64(s.GFHigh) / 100 }
