package gas

import (
	"fmt"
	"math"
)

// Circuit distinguishes open-circuit gases from rebreather diluents.
type Circuit int

const (
	// OpenCircuit gases are breathed as mixed; PO2 scales with depth.
	OpenCircuit Circuit = iota

	// ClosedCircuit gases are held at an externally supplied setpoint.
	ClosedCircuit
)

// String implements fmt.Stringer.
func (c Circuit) String() string {
	if c == ClosedCircuit {
		return "CC"
	}

	return "OC"
}

const (
	// O2InAir is the oxygen fraction used by Air.
	O2InAir = 0.21

	// DefaultMaxPO2 is the working max PO2 given to open-circuit gases by New.
	DefaultMaxPO2 = 1.4

	eps = 1e-9
)

// Gas is a validated breathing gas.
//
// Fields:
//   - Name, Slot      — free-form label and position in the user's gas list.
//   - O2, He          — fractions in [0,1]; N2 is the remainder.
//   - Circuit         — OpenCircuit or ClosedCircuit.
//   - MaxPO2          — working limit in ATA, open circuit only (0 for CC).
//   - TankCapacity    — cylinder volume at service pressure (cuft).
//   - ReservePercent  — share of service pressure kept in reserve.
//   - Enabled         — whether the gas may be selected for decompression.
type Gas struct {
	Name           string
	Slot           int
	O2             float64
	He             float64
	Circuit        Circuit
	MaxPO2         float64
	TankCapacity   float64
	ReservePercent float64
	Enabled        bool
}

// Option customises a Gas built by New.
type Option func(*Gas)

// WithName sets the display name.
func WithName(name string) Option { return func(g *Gas) { g.Name = name } }

// WithSlot sets the position of the gas in a gas list.
func WithSlot(slot int) Option { return func(g *Gas) { g.Slot = slot } }

// WithMaxPO2 sets the open-circuit working PO2 limit.
func WithMaxPO2(po2 float64) Option { return func(g *Gas) { g.MaxPO2 = po2 } }

// WithClosedCircuit marks the gas as a rebreather diluent and clears MaxPO2.
func WithClosedCircuit() Option {
	return func(g *Gas) {
		g.Circuit = ClosedCircuit
		g.MaxPO2 = 0
	}
}

// WithTank sets the cylinder capacity and reserve percentage.
func WithTank(capacity, reservePercent float64) Option {
	return func(g *Gas) {
		g.TankCapacity = capacity
		g.ReservePercent = reservePercent
	}
}

// WithEnabled sets whether the gas takes part in decompression gas selection.
func WithEnabled(enabled bool) Option { return func(g *Gas) { g.Enabled = enabled } }

// New builds an enabled open-circuit gas with DefaultMaxPO2, applies opts in
// order and validates the result.
func New(o2, he float64, opts ...Option) (Gas, error) {
	g := Gas{
		O2:      o2,
		He:      he,
		Circuit: OpenCircuit,
		MaxPO2:  DefaultMaxPO2,
		Enabled: true,
	}
	for _, opt := range opts {
		opt(&g)
	}
	if g.Name == "" {
		g.Name = g.label()
	}
	if err := g.Validate(); err != nil {
		return Gas{}, err
	}

	return g, nil
}

// Validate checks the fraction, PO2 and tank invariants. The zero Gas is invalid.
func (g Gas) Validate() error {
	if !(g.O2 > 0) || g.O2 > 1 || !(g.He >= 0) || g.He > 1 || g.O2+g.He > 1+eps {
		return fmt.Errorf("%w: o2=%v he=%v", ErrFraction, g.O2, g.He)
	}
	switch g.Circuit {
	case OpenCircuit:
		if !(g.MaxPO2 > 0) {
			return fmt.Errorf("%w: %v", ErrMaxPO2, g.MaxPO2)
		}
	case ClosedCircuit:
		if g.MaxPO2 != 0 {
			return fmt.Errorf("%w: closed circuit carries no max PO2", ErrMaxPO2)
		}
	default:
		return fmt.Errorf("%w: unknown circuit %d", ErrMaxPO2, g.Circuit)
	}
	if g.TankCapacity < 0 || g.ReservePercent < 0 || g.ReservePercent > 100 {
		return fmt.Errorf("%w: capacity=%v reserve=%v%%", ErrTank, g.TankCapacity, g.ReservePercent)
	}

	return nil
}

// N2 returns the nitrogen fraction, never negative.
func (g Gas) N2() float64 {
	return math.Max(0, 1-g.O2-g.He)
}

func (g Gas) label() string {
	o2 := int(math.Round(g.O2 * 100))
	he := int(math.Round(g.He * 100))
	switch {
	case he > 0:
		return fmt.Sprintf("TX %d/%d", o2, he)
	case o2 == 21:
		return "AIR"
	case o2 == 100:
		return "OXYGEN"
	default:
		return fmt.Sprintf("NX %d", o2)
	}
}

// Air returns enabled open-circuit air.
func Air() Gas {
	return must(New(O2InAir, 0))
}

// Oxygen returns pure oxygen limited to 1.6 ATA.
func Oxygen() Gas {
	return must(New(1, 0, WithMaxPO2(1.6)))
}

// Nitrox returns an open-circuit nitrox with the given O2 fraction.
func Nitrox(o2 float64, opts ...Option) (Gas, error) {
	return New(o2, 0, opts...)
}

// Trimix returns an open-circuit trimix.
func Trimix(o2, he float64, opts ...Option) (Gas, error) {
	return New(o2, he, opts...)
}

func must(g Gas, err error) Gas {
	if err != nil {
		panic(err)
	}

	return g
}
