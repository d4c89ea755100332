package config

import (
	"fmt"
	"time"

	"github.com/katalvlaran/decoplan/deco"
	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/profile"
)

// Settings converts the settings block.
func (s SettingsConfig) Settings() deco.Settings {
	return deco.Settings{
		GFLow:    s.GFLow,
		GFHigh:   s.GFHigh,
		Altitude: deco.AltitudeForFeet(s.AltitudeFt),
		LastStop: deco.LastStop(s.LastStopFt),
		Rates:    deco.SurfaceRates{Dive: s.DiveRMV, Deco: s.DecoRMV},
		Alarms: deco.AlarmSettings{
			ENDEnabled:     s.Alarms.ENDEnabled,
			ENDThreshold:   s.Alarms.ENDThreshold,
			WOBEnabled:     s.Alarms.WOBEnabled,
			WOBThreshold:   s.Alarms.WOBThreshold,
			OxygenNarcotic: s.Alarms.OxygenNarcotic,
		},
	}
}

// Gas builds the validated gas for slot.
func (g GasConfig) Gas(slot int) (gas.Gas, error) {
	opts := []gas.Option{gas.WithName(g.Name), gas.WithSlot(slot), gas.WithTank(g.TankCuft, g.ReservePct)}
	if g.Enabled != nil {
		opts = append(opts, gas.WithEnabled(*g.Enabled))
	}
	if g.Circuit == "cc" {
		opts = append(opts, gas.WithClosedCircuit())
	} else if g.MaxPO2 > 0 {
		opts = append(opts, gas.WithMaxPO2(g.MaxPO2))
	}

	return gas.New(g.O2, g.He, opts...)
}

// Plan converts the file into a runnable profile.Plan with a new ID.
// Segment rates left at zero take deco.DefaultAscentRate and
// deco.DefaultDescentRate.
func (f File) Plan() (profile.Plan, error) {
	p := profile.New(f.Title)
	p.Settings = f.Settings.Settings()
	if f.Water == "fresh" {
		p.Water = profile.FreshWater
	}

	byName := make(map[string]gas.Gas, len(f.Gases))
	for i, gc := range f.Gases {
		g, err := gc.Gas(i + 1)
		if err != nil {
			return profile.Plan{}, fmt.Errorf("%w: gas %q: %w", ErrInvalid, gc.Name, err)
		}
		if _, dup := byName[g.Name]; dup {
			return profile.Plan{}, fmt.Errorf("%w: duplicate gas %q", ErrInvalid, g.Name)
		}
		byName[g.Name] = g
		p.Gases = append(p.Gases, g)
	}

	for i, dc := range f.Dives {
		d := profile.Dive{SurfaceInterval: minutes(dc.SurfaceIntervalMin)}
		for j, sc := range dc.Segments {
			g, ok := byName[sc.Gas]
			if !ok {
				return profile.Plan{}, fmt.Errorf("%w: dive %d segment %d: unknown gas %q", ErrInvalid, i+1, j+1, sc.Gas)
			}
			sg := deco.Segment{
				Depth:       sc.Depth,
				Duration:    minutes(sc.Minutes),
				Gas:         g,
				AscentRate:  sc.AscentRate,
				DescentRate: sc.DescentRate,
				Setpoint:    sc.Setpoint,
			}
			if sg.AscentRate == 0 {
				sg.AscentRate = deco.DefaultAscentRate
			}
			if sg.DescentRate == 0 {
				sg.DescentRate = deco.DefaultDescentRate
			}
			d.Segments = append(d.Segments, sg)
		}
		p.Dives = append(p.Dives, d)
	}

	return p, nil
}

// Load reads the plan file at path and converts it to a profile.Plan.
func Load(path string) (profile.Plan, error) {
	f, err := LoadFile(path)
	if err != nil {
		return profile.Plan{}, err
	}

	return f.Plan()
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
