package gas

import "math"

// Units selects the depth scale used by the property helpers.
type Units int

const (
	// Imperial depths are feet of seawater, 33 per atmosphere.
	Imperial Units = iota

	// Metric depths are metres of seawater, 10 per atmosphere.
	Metric
)

const (
	// FswPerATA is the depth of seawater adding one atmosphere, in feet.
	FswPerATA = 33.0

	// MswPerATA is the depth of seawater adding one atmosphere, in metres.
	MswPerATA = 10.0

	// MinSafePO2 is the lowest PO2 considered breathable.
	MinSafePO2 = 0.21

	// maxAlarmDepth caps alarm depths; anything deeper is reported as absent.
	maxAlarmDepth = 2000.0

	// Gas-density work-of-breathing model coefficients.
	wobA           = 0.167
	wobB           = 1.167
	wobDenominator = 1.202
)

// PerATA returns the depth that adds one atmosphere in these units.
func (u Units) PerATA() float64 {
	if u == Metric {
		return MswPerATA
	}

	return FswPerATA
}

// MOD returns the maximum operating depth of an open-circuit gas at its own
// MaxPO2, rounded down. ok is false for closed-circuit gases.
func (g Gas) MOD(u Units) (depth float64, ok bool) {
	if g.Circuit != OpenCircuit || !(g.O2 > 0) {
		return 0, false
	}
	c := u.PerATA()
	d := math.Floor((g.MaxPO2/g.O2 - 1) * c)

	return math.Max(0, d), true
}

func (g Gas) narcotic(oxygenNarcotic bool) float64 {
	if oxygenNarcotic {
		return g.N2() + g.O2
	}

	return g.N2()
}

// END returns the equivalent narcotic depth at depth, rounded to the nearest
// unit and clamped at 0. Oxygen counts as narcotic when oxygenNarcotic is set.
func (g Gas) END(depth float64, u Units, oxygenNarcotic bool) float64 {
	c := u.PerATA()
	end := math.Round((depth+c)*g.narcotic(oxygenNarcotic) - c)

	return math.Max(0, end)
}

// ENDAlarmDepth returns the depth (rounded) at which END reaches target. ok is false when
// the mix is effectively non-narcotic or the depth is beyond any dive.
func (g Gas) ENDAlarmDepth(target float64, u Units, oxygenNarcotic bool) (depth float64, ok bool) {
	narc := g.narcotic(oxygenNarcotic)
	if narc < eps {
		return 0, false
	}
	c := u.PerATA()
	d := (target+c)/narc - c
	if d < 0 {
		return 0, true
	}
	if d > maxAlarmDepth {
		return 0, false
	}

	return math.Round(d), true
}

// HypoxicThreshold returns the shallowest depth (rounded up) where PO2 reaches
// MinSafePO2; 0 when the gas is breathable at the surface.
func (g Gas) HypoxicThreshold(u Units) (depth float64, ok bool) {
	if !(g.O2 > 0) {
		return 0, false
	}
	if g.O2 >= MinSafePO2 {
		return 0, true
	}
	c := u.PerATA()

	return math.Ceil((MinSafePO2/g.O2 - 1) * c), true
}

// WOB returns the gas-density equivalent depth at depth, rounded and clamped at 0.
func (g Gas) WOB(depth float64, u Units) float64 {
	c := u.PerATA()
	pAmb := depth/c + 1
	density := ((g.N2()+wobA)*pAmb + wobB*g.O2*pAmb) / wobDenominator
	w := math.Round(c * (density - 1))

	return math.Max(0, w)
}

// WOBAlarmDepth returns the depth (rounded) at which WOB reaches target.
func (g Gas) WOBAlarmDepth(target float64, u Units) (depth float64, ok bool) {
	c := u.PerATA()
	z := (g.N2() + wobA) + wobB*g.O2
	if z < eps {
		return 0, false
	}
	pAmb := (target/c + 1) * wobDenominator / z
	if pAmb < 1 {
		return 0, true
	}
	d := (pAmb - 1) * c
	if d > maxAlarmDepth {
		return 0, false
	}

	return math.Round(d), true
}
