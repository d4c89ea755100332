package toxicity

// Exposure accumulates oxygen dose over a dive or a series of dives.
//
// Fields:
//   - CNS      — CNS clock, in percent of the single-exposure limit.
//   - OTU      — single-dive OTU (ROTS), decays between dives.
//   - DailyOTU — daily OTU (ROTD), never decays.
type Exposure struct {
	CNS      float64
	OTU      float64
	DailyOTU float64
}

// Add returns e plus the dose of breathing po2 for minutes. Non-positive
// durations add nothing.
func (e Exposure) Add(po2, minutes float64) Exposure {
	if minutes <= 0 {
		return e
	}
	e.CNS += CNSRate(po2) * minutes
	e.OTU += ROTS(po2) * minutes
	e.DailyOTU += ROTD(po2) * minutes

	return e
}

// Plus returns the sum of two exposures.
func (e Exposure) Plus(o Exposure) Exposure {
	return Exposure{
		CNS:      e.CNS + o.CNS,
		OTU:      e.OTU + o.OTU,
		DailyOTU: e.DailyOTU + o.DailyOTU,
	}
}

// Surface returns e after minutes at the surface: OTU decays, CNS and daily OTU
// are carried unchanged.
func (e Exposure) Surface(minutes float64) Exposure {
	e.OTU = DecayOTU(e.OTU, minutes)

	return e
}
