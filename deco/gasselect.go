package deco

import (
	"fmt"

	"github.com/katalvlaran/decoplan/gas"
)

// BestGas picks the decompression gas for depth among the enabled gases:
// the highest O2 fraction whose PO2 lies within the gas's own max PO2 (open
// circuit), Options.MaxPO2 and Options.MinPO2, ties going to the lower helium
// fraction. When no listed gas qualifies, current is kept if it is enabled
// and still breathable there; otherwise ErrNoBreathableGas is returned.
//
// Complexity: O(len(gases)).
func (e *Engine) BestGas(depth float64, gases []gas.Gas, current gas.Gas, s Settings) (gas.Gas, error) {
	pInit := s.Altitude.InitialPressure()

	var (
		best  gas.Gas
		found bool
	)
	for _, g := range gases {
		if !g.Enabled || g.Validate() != nil || !e.breathable(g, depth, pInit) {
			continue
		}
		if !found || g.O2 > best.O2 || (g.O2 == best.O2 && g.He < best.He) {
			best, found = g, true
		}
	}
	if found {
		return best, nil
	}
	if current.Enabled && current.Validate() == nil && e.breathable(current, depth, pInit) {
		return current, nil
	}

	return gas.Gas{}, fmt.Errorf("%w at %.0f ft", ErrNoBreathableGas, depth)
}

func (e *Engine) breathable(g gas.Gas, depth, pInit float64) bool {
	po2 := g.O2 * (depth + pInit) / gas.FswPerATA
	if g.Circuit == gas.OpenCircuit && g.MaxPO2 > 0 && po2 > g.MaxPO2 {
		return false
	}

	return po2 <= e.opts.MaxPO2 && po2 >= e.opts.MinPO2
}
