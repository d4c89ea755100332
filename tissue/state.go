package tissue

import (
	"fmt"
	"math"
)

// State is a snapshot of inert-gas tensions (fsw) in every compartment.
// Arrays make State a value type: assigning or passing it copies the
// tensions, so a calculation can never alter a snapshot held elsewhere.
type State struct {
	N2 [Compartments]float64
	He [Compartments]float64
}

// NewState returns a State saturated on air at the given initial ambient
// pressure: every nitrogen tension is AirN2·pInit, every helium tension is 0.
func NewState(pInit float64) (State, error) {
	if !(pInit > 0) || math.IsInf(pInit, 0) {
		return State{}, fmt.Errorf("%w: %v", ErrPressure, pInit)
	}

	var s State
	n2 := AirN2 * pInit
	for i := range s.N2 {
		s.N2[i] = n2
	}

	return s, nil
}

// FromTensions builds a State from explicit per-compartment tensions.
// Both slices must hold exactly Compartments non-negative values.
func FromTensions(n2, he []float64) (State, error) {
	if len(n2) != Compartments || len(he) != Compartments {
		return State{}, fmt.Errorf("%w: got n2=%d he=%d", ErrLength, len(n2), len(he))
	}

	var s State
	for i := 0; i < Compartments; i++ {
		if !(n2[i] >= 0) || !(he[i] >= 0) {
			return State{}, fmt.Errorf("%w: compartment %d", ErrNegativeTension, i)
		}
		s.N2[i] = n2[i]
		s.He[i] = he[i]
	}

	return s, nil
}

// Total returns the combined inert-gas tension of compartment i.
func (s State) Total(i int) float64 {
	return s.N2[i] + s.He[i]
}

// Equal reports whether two states hold identical tensions.
func (s State) Equal(o State) bool {
	return s == o
}
