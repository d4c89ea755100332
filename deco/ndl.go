package deco

import (
	"fmt"

	"github.com/katalvlaran/decoplan/gas"
	"github.com/katalvlaran/decoplan/tissue"
	"go.uber.org/zap"
)

// NDL returns the no-decompression limit at depth on g starting from st: the
// largest whole number of further minutes after which a direct ascent still
// passes CanSurface.
//
// The search runs minute by minute up to Options.MaxNDLMinutes. Exceeded is set
// when even zero minutes fail; Capped when the bound is reached without failure,
// in which case Minutes is the bound.
//
// Complexity: O(MaxNDLMinutes·(17 + ascent steps)).
func (e *Engine) NDL(st tissue.State, depth float64, g gas.Gas, s Settings) (NDLResult, error) {
	if !(depth >= 0) {
		return NDLResult{}, fmt.Errorf("%w: %v", ErrNegativeDepth, depth)
	}
	if err := g.Validate(); err != nil {
		return NDLResult{}, fmt.Errorf("%w: %w", ErrInvalidGas, err)
	}
	if err := s.Validate(); err != nil {
		return NDLResult{}, err
	}

	pInit := s.Altitude.InitialPressure()
	cur := st
	for t := 0; t <= e.opts.MaxNDLMinutes; t++ {
		if t > 0 {
			cur = e.load(cur, depth, depth, 60, g, pInit, false)
		}
		if !e.canSurface(cur, depth, g, s) {
			if t == 0 {
				return NDLResult{Exceeded: true}, nil
			}

			return NDLResult{Minutes: t - 1}, nil
		}
	}
	e.log.Debug("ndl search capped", zap.Float64("depth", depth), zap.Int("minutes", e.opts.MaxNDLMinutes))

	return NDLResult{Minutes: e.opts.MaxNDLMinutes, Capped: true}, nil
}
